package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	portsrepo "github.com/uspireit-code/uspire-ledger/internal/core/ports/repositories"
	portssvc "github.com/uspireit-code/uspire-ledger/internal/core/ports/services"
	"github.com/uspireit-code/uspire-ledger/internal/core/services"
)

// --- Mock BudgetRepository ---
type MockBudgetRepository struct {
	mock.Mock
}

var _ portsrepo.BudgetRepositoryFacade = (*MockBudgetRepository)(nil)

func (m *MockBudgetRepository) FindActiveBudget(ctx context.Context, tenantID string, fiscalYear int) (*domain.Budget, error) {
	args := m.Called(ctx, tenantID, fiscalYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindLatestRevision(ctx context.Context, budgetID string) (*domain.BudgetRevision, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetRevision), args.Error(1)
}

func (m *MockBudgetRepository) FindBudgetLine(ctx context.Context, revisionID string, key portsrepo.BudgetLineKey) (*domain.BudgetLine, error) {
	args := m.Called(ctx, revisionID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetLine), args.Error(1)
}

// --- Test Suite Setup ---
type BudgetServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo  *MockBudgetRepository
	mockJournalRepo *MockJournalRepository
	service         portssvc.BudgetControlSvc

	tenantID string
	period   domain.AccountingPeriod
	budget   domain.Budget
	revision domain.BudgetRevision

	spendAccount domain.Account
	cashAccount  domain.Account
	departmentID string
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.service = services.NewBudgetService(suite.mockBudgetRepo, suite.mockJournalRepo)

	suite.tenantID = uuid.NewString()
	suite.period = domain.AccountingPeriod{
		PeriodID:  uuid.NewString(),
		TenantID:  suite.tenantID,
		Name:      "2026-05",
		StartDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodOpen,
	}
	suite.budget = domain.Budget{BudgetID: uuid.NewString(), TenantID: suite.tenantID, FiscalYear: 2026, IsActive: true}
	suite.revision = domain.BudgetRevision{RevisionID: uuid.NewString(), BudgetID: suite.budget.BudgetID, RevisionNumber: 2, IsLatest: true}

	suite.spendAccount = domain.Account{
		AccountID:         uuid.NewString(),
		TenantID:          suite.tenantID,
		AccountType:       domain.Expense,
		IsActive:          true,
		AllowPosting:      true,
		BudgetRelevant:    true,
		BudgetControlMode: domain.ControlWarn,
	}
	suite.cashAccount = domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		AccountType:  domain.Asset,
		IsActive:     true,
		AllowPosting: true,
	}
	suite.departmentID = uuid.NewString()
}

func (suite *BudgetServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		suite.spendAccount.AccountID: suite.spendAccount,
		suite.cashAccount.AccountID:  suite.cashAccount,
	}
}

func (suite *BudgetServiceTestSuite) spendLines(amount int64) []domain.JournalLine {
	return []domain.JournalLine{
		{
			LineNumber:   1,
			AccountID:    suite.spendAccount.AccountID,
			DebitAmount:  decimal.NewFromInt(amount),
			DepartmentID: &suite.departmentID,
		},
		{
			LineNumber:   2,
			AccountID:    suite.cashAccount.AccountID,
			CreditAmount: decimal.NewFromInt(amount),
		},
	}
}

func (suite *BudgetServiceTestSuite) exactKey() portsrepo.BudgetLineKey {
	return portsrepo.BudgetLineKey{
		AccountID:    suite.spendAccount.AccountID,
		PeriodID:     suite.period.PeriodID,
		DepartmentID: &suite.departmentID,
	}
}

func (suite *BudgetServiceTestSuite) expectActiveRevision() {
	suite.mockBudgetRepo.On("FindActiveBudget", mock.Anything, suite.tenantID, 2026).Return(&suite.budget, nil).Once()
	suite.mockBudgetRepo.On("FindLatestRevision", mock.Anything, suite.budget.BudgetID).Return(&suite.revision, nil).Once()
}

func (suite *BudgetServiceTestSuite) TestCheckEntry_NoBudgetRelevantLines() {
	ctx := context.Background()
	lines := []domain.JournalLine{
		{LineNumber: 1, AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(50)},
		{LineNumber: 2, AccountID: suite.cashAccount.AccountID, CreditAmount: decimal.NewFromInt(50)},
	}
	suite.mockBudgetRepo.On("FindActiveBudget", mock.Anything, suite.tenantID, 2026).Return(&suite.budget, nil).Once()
	suite.mockBudgetRepo.On("FindLatestRevision", mock.Anything, suite.budget.BudgetID).Return(&suite.revision, nil).Once()

	result, err := suite.service.CheckEntry(ctx, suite.tenantID, &suite.period, lines, suite.accountsMap())

	suite.Require().NoError(err)
	suite.Equal(domain.BudgetOK, result.Status)
	suite.Empty(result.Lines)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "FindBudgetLine", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestCheckEntry_NoActiveBudgetWarns() {
	ctx := context.Background()
	suite.mockBudgetRepo.On("FindActiveBudget", mock.Anything, suite.tenantID, 2026).Return(nil, nil).Once()

	result, err := suite.service.CheckEntry(ctx, suite.tenantID, &suite.period, suite.spendLines(100), suite.accountsMap())

	suite.Require().NoError(err)
	suite.Equal(domain.BudgetWarn, result.Status)
	suite.Contains(result.Flags, domain.BudgetFlagNoLineFound)
	suite.Require().Len(result.Lines, 1)
	suite.Equal(1, result.Lines[0].LineNumber)
}

func (suite *BudgetServiceTestSuite) TestCheckEntry_WithinBudget() {
	ctx := context.Background()
	suite.expectActiveRevision()
	budgetLine := &domain.BudgetLine{
		BudgetLineID: uuid.NewString(),
		RevisionID:   suite.revision.RevisionID,
		AccountID:    suite.spendAccount.AccountID,
		PeriodID:     suite.period.PeriodID,
		DepartmentID: &suite.departmentID,
		Amount:       decimal.NewFromInt(1000),
	}
	suite.mockBudgetRepo.On("FindBudgetLine", mock.Anything, suite.revision.RevisionID, suite.exactKey()).Return(budgetLine, nil).Once()

	result, err := suite.service.CheckEntry(ctx, suite.tenantID, &suite.period, suite.spendLines(800), suite.accountsMap())

	suite.Require().NoError(err)
	suite.Equal(domain.BudgetOK, result.Status)
	suite.Empty(result.Flags)
	suite.Require().Len(result.Lines, 1)
	suite.True(result.Lines[0].BudgetedAmount.Equal(decimal.NewFromInt(1000)))
	suite.True(result.Lines[0].LineAmount.Equal(decimal.NewFromInt(800)))
}

func (suite *BudgetServiceTestSuite) TestCheckEntry_ExceededWarns() {
	ctx := context.Background()
	suite.expectActiveRevision()
	budgetLine := &domain.BudgetLine{
		RevisionID:   suite.revision.RevisionID,
		AccountID:    suite.spendAccount.AccountID,
		PeriodID:     suite.period.PeriodID,
		DepartmentID: &suite.departmentID,
		Amount:       decimal.NewFromInt(500),
	}
	suite.mockBudgetRepo.On("FindBudgetLine", mock.Anything, suite.revision.RevisionID, suite.exactKey()).Return(budgetLine, nil).Once()

	result, err := suite.service.CheckEntry(ctx, suite.tenantID, &suite.period, suite.spendLines(800), suite.accountsMap())

	suite.Require().NoError(err)
	suite.Equal(domain.BudgetWarn, result.Status)
	suite.Contains(result.Flags, domain.BudgetFlagExceeded)
}

func (suite *BudgetServiceTestSuite) TestCheckEntry_ExceededBlocksOnBlockMode() {
	ctx := context.Background()
	suite.spendAccount.BudgetControlMode = domain.ControlBlock
	suite.expectActiveRevision()
	budgetLine := &domain.BudgetLine{
		RevisionID:   suite.revision.RevisionID,
		AccountID:    suite.spendAccount.AccountID,
		PeriodID:     suite.period.PeriodID,
		DepartmentID: &suite.departmentID,
		Amount:       decimal.NewFromInt(500),
	}
	suite.mockBudgetRepo.On("FindBudgetLine", mock.Anything, suite.revision.RevisionID, suite.exactKey()).Return(budgetLine, nil).Once()

	result, err := suite.service.CheckEntry(ctx, suite.tenantID, &suite.period, suite.spendLines(800), suite.accountsMap())

	suite.Require().NoError(err)
	suite.Equal(domain.BudgetBlock, result.Status)
	suite.Contains(result.Flags, domain.BudgetFlagExceeded)
}

func (suite *BudgetServiceTestSuite) TestCheckEntry_FallsBackToBlankKey() {
	ctx := context.Background()
	suite.expectActiveRevision()
	fallback := &domain.BudgetLine{
		RevisionID: suite.revision.RevisionID,
		AccountID:  suite.spendAccount.AccountID,
		PeriodID:   suite.period.PeriodID,
		Amount:     decimal.NewFromInt(2000),
	}
	suite.mockBudgetRepo.On("FindBudgetLine", mock.Anything, suite.revision.RevisionID, suite.exactKey()).Return(nil, nil).Once()
	suite.mockBudgetRepo.On("FindBudgetLine", mock.Anything, suite.revision.RevisionID, suite.exactKey().Blank()).Return(fallback, nil).Once()

	result, err := suite.service.CheckEntry(ctx, suite.tenantID, &suite.period, suite.spendLines(800), suite.accountsMap())

	suite.Require().NoError(err)
	suite.Equal(domain.BudgetOK, result.Status)
	suite.True(result.Lines[0].BudgetedAmount.Equal(decimal.NewFromInt(2000)))
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCheckEntry_NoLineAtAllWarns() {
	ctx := context.Background()
	suite.expectActiveRevision()
	suite.mockBudgetRepo.On("FindBudgetLine", mock.Anything, suite.revision.RevisionID, mock.Anything).Return(nil, nil).Twice()

	result, err := suite.service.CheckEntry(ctx, suite.tenantID, &suite.period, suite.spendLines(800), suite.accountsMap())

	suite.Require().NoError(err)
	suite.Equal(domain.BudgetWarn, result.Status)
	suite.Contains(result.Flags, domain.BudgetFlagNoLineFound)
}

func (suite *BudgetServiceTestSuite) TestRepeatWarnCount_UsesTrailingWindow() {
	ctx := context.Background()
	asOf := time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)
	creatorID := uuid.NewString()
	expectedSince := asOf.AddDate(0, 0, -30)

	entryID := uuid.NewString()
	suite.mockJournalRepo.On("CountBudgetWarningsByCreator", mock.Anything, suite.tenantID, creatorID, entryID, expectedSince).Return(3, nil).Once()

	count, err := suite.service.RepeatWarnCount(ctx, suite.tenantID, creatorID, entryID, asOf)

	suite.Require().NoError(err)
	suite.Equal(3, count)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestBudgetService(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
