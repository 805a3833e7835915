package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/uspireit-code/uspire-ledger/internal/apperrors"
	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	portsrepo "github.com/uspireit-code/uspire-ledger/internal/core/ports/repositories"
	portssvc "github.com/uspireit-code/uspire-ledger/internal/core/ports/services"
	"github.com/uspireit-code/uspire-ledger/internal/core/services"
	"github.com/uspireit-code/uspire-ledger/internal/dto"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalEntryRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntriesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string, status *domain.EntryStatus) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken, status)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedToken, args.Error(2)
}

func (m *MockJournalRepository) FindActiveReversal(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) CountBudgetWarningsByCreator(ctx context.Context, tenantID, creatorUserID, excludeEntryID string, since time.Time) (int, error) {
	args := m.Called(ctx, tenantID, creatorUserID, excludeEntryID, since)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) ReplaceEntryLines(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkParked(ctx context.Context, tenantID, entryID, userID string, at time.Time) error {
	args := m.Called(ctx, tenantID, entryID, userID, at)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkSubmitted(ctx context.Context, tenantID, entryID, userID string, at time.Time, outcome portsrepo.ControlOutcome) error {
	args := m.Called(ctx, tenantID, entryID, userID, at, outcome)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkReviewed(ctx context.Context, tenantID, entryID, userID string, at time.Time, outcome portsrepo.ControlOutcome) error {
	args := m.Called(ctx, tenantID, entryID, userID, at, outcome)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkRejected(ctx context.Context, tenantID, entryID, userID string, at time.Time, reason string) error {
	args := m.Called(ctx, tenantID, entryID, userID, at, reason)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkReturned(ctx context.Context, tenantID, entryID, userID string, at time.Time, reason string) error {
	args := m.Called(ctx, tenantID, entryID, userID, at, reason)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkPosted(ctx context.Context, tenantID, entryID, userID string, at time.Time, periodID string, outcome portsrepo.ControlOutcome) (int64, error) {
	args := m.Called(ctx, tenantID, entryID, userID, at, periodID, outcome)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) CreateReversalEntry(ctx context.Context, reversal domain.JournalEntry, originalEntryID string, userID string, at time.Time) error {
	args := m.Called(ctx, reversal, originalEntryID, userID, at)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

// --- Mock PeriodGuardSvc ---
type MockPeriodGuardSvc struct {
	mock.Mock
}

var _ portssvc.PeriodGuardSvc = (*MockPeriodGuardSvc)(nil)

func (m *MockPeriodGuardSvc) ResolvePeriod(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodGuardSvc) ResolveOpenPeriod(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodGuardSvc) CutoverDate(ctx context.Context, tenantID string) (*time.Time, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockPeriodGuardSvc) AssertDateNotBeforeCutover(ctx context.Context, tenantID string, date time.Time, isOpeningBalanceEntry bool) error {
	args := m.Called(ctx, tenantID, date, isOpeningBalanceEntry)
	return args.Error(0)
}

func (m *MockPeriodGuardSvc) AssertPostable(ctx context.Context, period *domain.AccountingPeriod, isOpeningBalanceEntry bool) error {
	args := m.Called(ctx, period, isOpeningBalanceEntry)
	return args.Error(0)
}

func (m *MockPeriodGuardSvc) NextOpenPeriodDate(ctx context.Context, tenantID string, date time.Time) (time.Time, *domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(1) == nil {
		return time.Time{}, nil, args.Error(2)
	}
	return args.Get(0).(time.Time), args.Get(1).(*domain.AccountingPeriod), args.Error(2)
}

func (m *MockPeriodGuardSvc) ClosePeriod(ctx context.Context, authCtx domain.AuthContext, periodID string) error {
	args := m.Called(ctx, authCtx, periodID)
	return args.Error(0)
}

func (m *MockPeriodGuardSvc) ReopenPeriod(ctx context.Context, authCtx domain.AuthContext, periodID string) error {
	args := m.Called(ctx, authCtx, periodID)
	return args.Error(0)
}

// --- Mock DimensionValidatorSvc ---
type MockDimensionValidator struct {
	mock.Mock
}

var _ portssvc.DimensionValidatorSvc = (*MockDimensionValidator)(nil)

func (m *MockDimensionValidator) ValidateLines(ctx context.Context, tenantID string, journalDate time.Time, lines []domain.JournalLine, accounts map[string]domain.Account) error {
	args := m.Called(ctx, tenantID, journalDate, lines, accounts)
	return args.Error(0)
}

// --- Mock BudgetControlSvc ---
type MockBudgetControl struct {
	mock.Mock
}

var _ portssvc.BudgetControlSvc = (*MockBudgetControl)(nil)

func (m *MockBudgetControl) CheckEntry(ctx context.Context, tenantID string, period *domain.AccountingPeriod, lines []domain.JournalLine, accounts map[string]domain.Account) (*domain.BudgetCheckResult, error) {
	args := m.Called(ctx, tenantID, period, lines, accounts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetCheckResult), args.Error(1)
}

func (m *MockBudgetControl) RepeatWarnCount(ctx context.Context, tenantID, creatorUserID, excludeEntryID string, asOf time.Time) (int, error) {
	args := m.Called(ctx, tenantID, creatorUserID, excludeEntryID, asOf)
	return args.Int(0), args.Error(1)
}

// --- Mock EventSink ---
type MockEventSink struct {
	mock.Mock
}

var _ portsrepo.EventSink = (*MockEventSink)(nil)

func (m *MockEventSink) Record(ctx context.Context, event domain.EventRecord) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockAccountRepo  *MockAccountRepository
	mockPeriodSvc    *MockPeriodGuardSvc
	mockDimensionSvc *MockDimensionValidator
	mockBudgetSvc    *MockBudgetControl
	mockEventSink    *MockEventSink
	service          portssvc.JournalSvcFacade

	tenantID   string
	makerID    string
	reviewerID string
	posterID   string

	cashAccount    domain.Account
	expenseAccount domain.Account
	period         domain.AccountingPeriod
	journalDate    time.Time
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPeriodSvc = new(MockPeriodGuardSvc)
	suite.mockDimensionSvc = new(MockDimensionValidator)
	suite.mockBudgetSvc = new(MockBudgetControl)
	suite.mockEventSink = new(MockEventSink)

	suite.service = services.NewJournalService(
		suite.mockJournalRepo,
		suite.mockAccountRepo,
		suite.mockPeriodSvc,
		suite.mockDimensionSvc,
		suite.mockBudgetSvc,
		services.NewRiskService(decimal.Zero),
		services.NewSoDService(suite.mockEventSink),
		suite.mockEventSink,
		nil,
	)

	suite.tenantID = uuid.NewString()
	suite.makerID = uuid.NewString()
	suite.reviewerID = uuid.NewString()
	suite.posterID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		AccountType:  domain.Asset,
		IsActive:     true,
		AllowPosting: true,
	}
	suite.expenseAccount = domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		AccountType:  domain.Expense,
		IsActive:     true,
		AllowPosting: true,
	}

	suite.journalDate = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	suite.period = domain.AccountingPeriod{
		PeriodID:  uuid.NewString(),
		TenantID:  suite.tenantID,
		Name:      "2026-03",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodOpen,
	}

	// Lifecycle events are fire-and-forget; accept any.
	suite.mockEventSink.On("Record", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (suite *JournalServiceTestSuite) authCtxFor(userID string) domain.AuthContext {
	return domain.AuthContext{
		TenantID: suite.tenantID,
		UserID:   userID,
		PermissionCodes: []string{
			domain.PermJournalCreate,
			domain.PermJournalEdit,
			domain.PermJournalSubmit,
			domain.PermJournalReview,
			domain.PermJournalPost,
			domain.PermJournalReverse,
		},
	}
}

func (suite *JournalServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		suite.expenseAccount.AccountID: suite.expenseAccount,
		suite.cashAccount.AccountID:    suite.cashAccount,
	}
}

func (suite *JournalServiceTestSuite) balancedLines(entryID string) []domain.JournalLine {
	return []domain.JournalLine{
		{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			LineNumber:   1,
			AccountID:    suite.expenseAccount.AccountID,
			DebitAmount:  decimal.NewFromInt(100),
			CreditAmount: decimal.Zero,
		},
		{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			LineNumber:   2,
			AccountID:    suite.cashAccount.AccountID,
			DebitAmount:  decimal.Zero,
			CreditAmount: decimal.NewFromInt(100),
		},
	}
}

func (suite *JournalServiceTestSuite) entryInStatus(status domain.EntryStatus) *domain.JournalEntry {
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{
		EntryID:      entryID,
		TenantID:     suite.tenantID,
		JournalDate:  suite.journalDate,
		EntryType:    domain.Standard,
		Status:       status,
		Description:  "March accruals",
		BudgetStatus: domain.BudgetOK,
		TotalAmount:  decimal.NewFromInt(100),
		Lines:        suite.balancedLines(entryID),
		AuditFields: domain.AuditFields{
			CreatedAt: suite.journalDate,
			CreatedBy: suite.makerID,
		},
	}
	switch status {
	case domain.Submitted, domain.Reviewed, domain.Posted:
		entry.SubmittedBy = &suite.makerID
	}
	switch status {
	case domain.Reviewed, domain.Posted:
		entry.ReviewedBy = &suite.reviewerID
	}
	return entry
}

// --- CreateEntry ---

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.makerID)
	req := dto.CreateEntryRequest{
		JournalDate: suite.journalDate,
		Description: "Office supplies",
		Lines: []dto.JournalLineRequest{
			{AccountID: suite.expenseAccount.AccountID, DebitAmount: decimal.NewFromInt(100)},
			{AccountID: suite.cashAccount.AccountID, CreditAmount: decimal.NewFromInt(100)},
		},
	}

	suite.mockPeriodSvc.On("ResolveOpenPeriod", ctx, suite.tenantID, suite.journalDate).Return(&suite.period, nil).Once()
	suite.mockPeriodSvc.On("AssertDateNotBeforeCutover", ctx, suite.tenantID, suite.journalDate, false).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockJournalRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, authCtx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.Draft, entry.Status)
	suite.Equal(domain.Standard, entry.EntryType)
	suite.Equal(suite.makerID, entry.CreatedBy)
	suite.Nil(entry.JournalNumber)
	suite.True(entry.TotalAmount.Equal(decimal.NewFromInt(100)))
	suite.Len(entry.Lines, 2)
	suite.Equal(1, entry.Lines[0].LineNumber)
	suite.Equal(2, entry.Lines[1].LineNumber)

	suite.mockPeriodSvc.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_NoPermission() {
	ctx := context.Background()
	authCtx := domain.AuthContext{TenantID: suite.tenantID, UserID: suite.makerID}

	_, err := suite.service.CreateEntry(ctx, authCtx, dto.CreateEntryRequest{Description: "x"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_MissingDescription() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.makerID)

	_, err := suite.service.CreateEntry(ctx, authCtx, dto.CreateEntryRequest{JournalDate: suite.journalDate})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDescriptionMissing)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnbalancedDraftAllowed() {
	// Balance is a submit/park/post gate, not a create gate.
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.makerID)
	req := dto.CreateEntryRequest{
		JournalDate: suite.journalDate,
		Description: "Half-entered draft",
		Lines: []dto.JournalLineRequest{
			{AccountID: suite.expenseAccount.AccountID, DebitAmount: decimal.NewFromInt(100)},
			{AccountID: suite.cashAccount.AccountID, CreditAmount: decimal.NewFromInt(40)},
		},
	}

	suite.mockPeriodSvc.On("ResolveOpenPeriod", ctx, suite.tenantID, suite.journalDate).Return(&suite.period, nil).Once()
	suite.mockPeriodSvc.On("AssertDateNotBeforeCutover", ctx, suite.tenantID, suite.journalDate, false).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockJournalRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, authCtx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.Draft, entry.Status)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_NegativeAmount() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.makerID)
	req := dto.CreateEntryRequest{
		JournalDate: suite.journalDate,
		Description: "Bad line",
		Lines: []dto.JournalLineRequest{
			{AccountID: suite.expenseAccount.AccountID, DebitAmount: decimal.NewFromInt(-5)},
			{AccountID: suite.cashAccount.AccountID, CreditAmount: decimal.NewFromInt(5)},
		},
	}

	_, err := suite.service.CreateEntry(ctx, authCtx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_ClosedPeriod() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.makerID)
	req := dto.CreateEntryRequest{
		JournalDate: suite.journalDate,
		Description: "Into a closed month",
		Lines: []dto.JournalLineRequest{
			{AccountID: suite.expenseAccount.AccountID, DebitAmount: decimal.NewFromInt(100)},
			{AccountID: suite.cashAccount.AccountID, CreditAmount: decimal.NewFromInt(100)},
		},
	}

	suite.mockPeriodSvc.On("ResolveOpenPeriod", ctx, suite.tenantID, suite.journalDate).Return(nil, apperrors.ErrPeriodClosed).Once()

	_, err := suite.service.CreateEntry(ctx, authCtx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything)
}

// --- SubmitEntry ---

func (suite *JournalServiceTestSuite) TestSubmitEntry_Success() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.makerID)
	entry := suite.entryInStatus(domain.Draft)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entry.EntryID).Return(entry, nil)
	suite.mockPeriodSvc.On("ResolveOpenPeriod", ctx, suite.tenantID, suite.journalDate).Return(&suite.period, nil).Once()
	suite.mockPeriodSvc.On("AssertDateNotBeforeCutover", ctx, suite.tenantID, suite.journalDate, false).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockDimensionSvc.On("ValidateLines", ctx, suite.tenantID, suite.journalDate, entry.Lines, suite.accountsMap()).Return(nil).Once()
	suite.mockBudgetSvc.On("CheckEntry", ctx, suite.tenantID, &suite.period, entry.Lines, suite.accountsMap()).Return(&domain.BudgetCheckResult{Status: domain.BudgetOK}, nil).Once()

	var captured portsrepo.ControlOutcome
	suite.mockJournalRepo.On("MarkSubmitted", ctx, suite.tenantID, entry.EntryID, suite.makerID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("repositories.ControlOutcome")).
		Run(func(args mock.Arguments) { captured = args.Get(5).(portsrepo.ControlOutcome) }).
		Return(nil).Once()

	_, err := suite.service.SubmitEntry(ctx, authCtx, entry.EntryID, dto.SubmitEntryRequest{})

	suite.Require().NoError(err)
	suite.Equal(domain.BudgetOK, captured.BudgetStatus)
	// A standard manual journal always carries its base flag.
	suite.Contains(captured.Risk.Flags, domain.RiskFlagManualJournal)
	suite.Equal(domain.RiskPointsManualJournal, captured.Risk.Score)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockBudgetSvc.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestSubmitEntry_NotCreator() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.reviewerID)
	entry := suite.entryInStatus(domain.Draft)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.SubmitEntry(ctx, authCtx, entry.EntryID, dto.SubmitEntryRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotCreator)
}

func (suite *JournalServiceTestSuite) TestSubmitEntry_FromPostedFails() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.makerID)
	entry := suite.entryInStatus(domain.Posted)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.SubmitEntry(ctx, authCtx, entry.EntryID, dto.SubmitEntryRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkSubmitted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestSubmitEntry_Unbalanced() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.makerID)
	entry := suite.entryInStatus(domain.Draft)
	entry.Lines[1].CreditAmount = decimal.NewFromInt(90)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.SubmitEntry(ctx, authCtx, entry.EntryID, dto.SubmitEntryRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestSubmitEntry_BudgetBlocked() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.makerID)
	entry := suite.entryInStatus(domain.Draft)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entry.EntryID).Return(entry, nil).Once()
	suite.mockPeriodSvc.On("ResolveOpenPeriod", ctx, suite.tenantID, suite.journalDate).Return(&suite.period, nil).Once()
	suite.mockPeriodSvc.On("AssertDateNotBeforeCutover", ctx, suite.tenantID, suite.journalDate, false).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockDimensionSvc.On("ValidateLines", ctx, suite.tenantID, suite.journalDate, entry.Lines, suite.accountsMap()).Return(nil).Once()
	suite.mockBudgetSvc.On("CheckEntry", ctx, suite.tenantID, &suite.period, entry.Lines, suite.accountsMap()).
		Return(&domain.BudgetCheckResult{Status: domain.BudgetBlock, Flags: []string{domain.BudgetFlagExceeded}}, nil).Once()

	_, err := suite.service.SubmitEntry(ctx, authCtx, entry.EntryID, dto.SubmitEntryRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBudgetBlocked)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkSubmitted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestSubmitEntry_WarnWithoutJustification() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.makerID)
	entry := suite.entryInStatus(domain.Draft)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entry.EntryID).Return(entry, nil).Once()
	suite.mockPeriodSvc.On("ResolveOpenPeriod", ctx, suite.tenantID, suite.journalDate).Return(&suite.period, nil).Once()
	suite.mockPeriodSvc.On("AssertDateNotBeforeCutover", ctx, suite.tenantID, suite.journalDate, false).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockDimensionSvc.On("ValidateLines", ctx, suite.tenantID, suite.journalDate, entry.Lines, suite.accountsMap()).Return(nil).Once()
	suite.mockBudgetSvc.On("CheckEntry", ctx, suite.tenantID, &suite.period, entry.Lines, suite.accountsMap()).
		Return(&domain.BudgetCheckResult{Status: domain.BudgetWarn, Flags: []string{domain.BudgetFlagNoLineFound}}, nil).Once()

	_, err := suite.service.SubmitEntry(ctx, authCtx, entry.EntryID, dto.SubmitEntryRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBudgetJustificationRequired)
}

func (suite *JournalServiceTestSuite) TestSubmitEntry_WarnWithJustificationUplifts() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.makerID)
	entry := suite.entryInStatus(domain.Draft)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entry.EntryID).Return(entry, nil)
	suite.mockPeriodSvc.On("ResolveOpenPeriod", ctx, suite.tenantID, suite.journalDate).Return(&suite.period, nil).Once()
	suite.mockPeriodSvc.On("AssertDateNotBeforeCutover", ctx, suite.tenantID, suite.journalDate, false).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockDimensionSvc.On("ValidateLines", ctx, suite.tenantID, suite.journalDate, entry.Lines, suite.accountsMap()).Return(nil).Once()
	suite.mockBudgetSvc.On("CheckEntry", ctx, suite.tenantID, &suite.period, entry.Lines, suite.accountsMap()).
		Return(&domain.BudgetCheckResult{Status: domain.BudgetWarn, Flags: []string{domain.BudgetFlagExceeded}}, nil).Once()
	// Six prior warnings would be 30 points; the uplift caps at 20.
	suite.mockBudgetSvc.On("RepeatWarnCount", ctx, suite.tenantID, suite.makerID, entry.EntryID, mock.AnythingOfType("time.Time")).Return(6, nil).Once()

	var captured portsrepo.ControlOutcome
	suite.mockJournalRepo.On("MarkSubmitted", ctx, suite.tenantID, entry.EntryID, suite.makerID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("repositories.ControlOutcome")).
		Run(func(args mock.Arguments) { captured = args.Get(5).(portsrepo.ControlOutcome) }).
		Return(nil).Once()

	_, err := suite.service.SubmitEntry(ctx, authCtx, entry.EntryID, dto.SubmitEntryRequest{BudgetOverrideJustification: "prepaid annual license"})

	suite.Require().NoError(err)
	suite.Equal(domain.BudgetWarn, captured.BudgetStatus)
	suite.Equal("prepaid annual license", captured.BudgetJustification)
	suite.Contains(captured.Risk.Flags, domain.RiskFlagBudgetException)
	suite.Contains(captured.Risk.Flags, domain.RiskFlagBudgetRepeat)
	expected := domain.RiskPointsManualJournal + domain.RiskPointsBudgetException + domain.RiskRepeatUpliftCap
	suite.Equal(expected, captured.Risk.Score)
}

// A creator's first WARN must score the same at submit and at review: the
// warning persisted by the submit must not count as its own prior warning.
func (suite *JournalServiceTestSuite) TestSubmitThenReview_LoneWarnScoreStable() {
	ctx := context.Background()
	entry := suite.entryInStatus(domain.Draft)
	warnResult := func() *domain.BudgetCheckResult {
		return &domain.BudgetCheckResult{Status: domain.BudgetWarn, Flags: []string{domain.BudgetFlagExceeded}}
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entry.EntryID).Return(entry, nil)
	suite.mockPeriodSvc.On("ResolveOpenPeriod", ctx, suite.tenantID, suite.journalDate).Return(&suite.period, nil).Twice()
	suite.mockPeriodSvc.On("AssertDateNotBeforeCutover", ctx, suite.tenantID, suite.journalDate, false).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(suite.accountsMap(), nil).Twice()
	suite.mockDimensionSvc.On("ValidateLines", ctx, suite.tenantID, suite.journalDate, entry.Lines, suite.accountsMap()).Return(nil).Once()
	suite.mockBudgetSvc.On("CheckEntry", ctx, suite.tenantID, &suite.period, entry.Lines, suite.accountsMap()).Return(warnResult(), nil).Twice()
	suite.mockBudgetSvc.On("RepeatWarnCount", ctx, suite.tenantID, suite.makerID, entry.EntryID, mock.AnythingOfType("time.Time")).Return(0, nil).Twice()

	var submitted, reviewed portsrepo.ControlOutcome
	suite.mockJournalRepo.On("MarkSubmitted", ctx, suite.tenantID, entry.EntryID, suite.makerID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("repositories.ControlOutcome")).
		Run(func(args mock.Arguments) { submitted = args.Get(5).(portsrepo.ControlOutcome) }).
		Return(nil).Once()
	suite.mockJournalRepo.On("MarkReviewed", ctx, suite.tenantID, entry.EntryID, suite.reviewerID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("repositories.ControlOutcome")).
		Run(func(args mock.Arguments) { reviewed = args.Get(5).(portsrepo.ControlOutcome) }).
		Return(nil).Once()

	_, err := suite.service.SubmitEntry(ctx, suite.authCtxFor(suite.makerID), entry.EntryID, dto.SubmitEntryRequest{BudgetOverrideJustification: "prepaid annual license"})
	suite.Require().NoError(err)

	entry.Status = domain.Submitted
	entry.SubmittedBy = &suite.makerID
	entry.BudgetStatus = domain.BudgetWarn
	entry.BudgetOverrideJustification = "prepaid annual license"

	_, err = suite.service.ReviewEntry(ctx, suite.authCtxFor(suite.reviewerID), entry.EntryID, dto.ReviewEntryRequest{})
	suite.Require().NoError(err)

	expected := domain.RiskPointsManualJournal + domain.RiskPointsBudgetException
	suite.Equal(expected, submitted.Risk.Score)
	suite.Equal(submitted.Risk.Score, reviewed.Risk.Score)
	suite.NotContains(submitted.Risk.Flags, domain.RiskFlagBudgetRepeat)
	suite.NotContains(reviewed.Risk.Flags, domain.RiskFlagBudgetRepeat)
}

// --- ReviewEntry / RejectEntry / ReturnEntryToReview ---

func (suite *JournalServiceTestSuite) TestReviewEntry_SelfReviewBlocked() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.makerID)
	entry := suite.entryInStatus(domain.Submitted)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.ReviewEntry(ctx, authCtx, entry.EntryID, dto.ReviewEntryRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrSoDViolation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkReviewed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReviewEntry_Success() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.reviewerID)
	entry := suite.entryInStatus(domain.Submitted)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entry.EntryID).Return(entry, nil)
	suite.mockPeriodSvc.On("ResolveOpenPeriod", ctx, suite.tenantID, suite.journalDate).Return(&suite.period, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockBudgetSvc.On("CheckEntry", ctx, suite.tenantID, &suite.period, entry.Lines, suite.accountsMap()).Return(&domain.BudgetCheckResult{Status: domain.BudgetOK}, nil).Once()
	suite.mockJournalRepo.On("MarkReviewed", ctx, suite.tenantID, entry.EntryID, suite.reviewerID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("repositories.ControlOutcome")).Return(nil).Once()

	_, err := suite.service.ReviewEntry(ctx, authCtx, entry.EntryID, dto.ReviewEntryRequest{})

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestRejectEntry_ReasonRequired() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.reviewerID)

	_, err := suite.service.RejectEntry(ctx, authCtx, uuid.NewString(), dto.RejectEntryRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrReasonMissing)
}

func (suite *JournalServiceTestSuite) TestRejectEntry_Success() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.reviewerID)
	entry := suite.entryInStatus(domain.Submitted)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entry.EntryID).Return(entry, nil)
	suite.mockJournalRepo.On("MarkRejected", ctx, suite.tenantID, entry.EntryID, suite.reviewerID, mock.AnythingOfType("time.Time"), "missing receipts").Return(nil).Once()

	_, err := suite.service.RejectEntry(ctx, authCtx, entry.EntryID, dto.RejectEntryRequest{Reason: "missing receipts"})

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReturnEntryToReview_Success() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.posterID)
	entry := suite.entryInStatus(domain.Reviewed)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entry.EntryID).Return(entry, nil)
	suite.mockJournalRepo.On("MarkReturned", ctx, suite.tenantID, entry.EntryID, suite.posterID, mock.AnythingOfType("time.Time"), "revisit the period").Return(nil).Once()

	_, err := suite.service.ReturnEntryToReview(ctx, authCtx, entry.EntryID, dto.ReturnEntryRequest{Reason: "revisit the period"})

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// --- PostEntry ---

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.posterID)
	entry := suite.entryInStatus(domain.Reviewed)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entry.EntryID).Return(entry, nil)
	suite.mockPeriodSvc.On("ResolvePeriod", ctx, suite.tenantID, suite.journalDate).Return(&suite.period, nil).Once()
	suite.mockPeriodSvc.On("AssertPostable", ctx, &suite.period, false).Return(nil).Once()
	suite.mockPeriodSvc.On("AssertDateNotBeforeCutover", ctx, suite.tenantID, suite.journalDate, false).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockBudgetSvc.On("CheckEntry", ctx, suite.tenantID, &suite.period, entry.Lines, suite.accountsMap()).Return(&domain.BudgetCheckResult{Status: domain.BudgetOK}, nil).Once()
	suite.mockJournalRepo.On("MarkPosted", ctx, suite.tenantID, entry.EntryID, suite.posterID, mock.AnythingOfType("time.Time"), suite.period.PeriodID, mock.AnythingOfType("repositories.ControlOutcome")).Return(int64(1042), nil).Once()

	_, err := suite.service.PostEntry(ctx, authCtx, entry.EntryID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockPeriodSvc.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_PosterIsMaker() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.makerID)
	entry := suite.entryInStatus(domain.Reviewed)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.PostEntry(ctx, authCtx, entry.EntryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrSoDViolation)
}

func (suite *JournalServiceTestSuite) TestPostEntry_PosterIsReviewer() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.reviewerID)
	entry := suite.entryInStatus(domain.Reviewed)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.PostEntry(ctx, authCtx, entry.EntryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrSoDViolation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_FromSubmittedFails() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.posterID)
	entry := suite.entryInStatus(domain.Submitted)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.PostEntry(ctx, authCtx, entry.EntryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
}

// --- ReverseEntry ---

func (suite *JournalServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.posterID)
	original := suite.entryInStatus(domain.Posted)
	reversalDate := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, original.EntryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindActiveReversal", ctx, suite.tenantID, original.EntryID).Return(nil, nil).Once()
	suite.mockPeriodSvc.On("NextOpenPeriodDate", ctx, suite.tenantID, reversalDate).Return(reversalDate, &suite.period, nil).Once()
	suite.mockPeriodSvc.On("AssertDateNotBeforeCutover", ctx, suite.tenantID, reversalDate, false).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockDimensionSvc.On("ValidateLines", ctx, suite.tenantID, reversalDate, mock.Anything, suite.accountsMap()).Return(nil).Once()

	var captured domain.JournalEntry
	suite.mockJournalRepo.On("CreateReversalEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), original.EntryID, suite.posterID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) { captured = args.Get(1).(domain.JournalEntry) }).
		Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, authCtx, original.EntryID, dto.ReverseEntryRequest{ReversalDate: reversalDate})

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Equal(domain.Reversing, reversal.EntryType)
	suite.Equal(domain.Draft, reversal.Status)
	suite.Require().NotNil(reversal.ReversalOfID)
	suite.Equal(original.EntryID, *reversal.ReversalOfID)
	suite.Equal("Reversal of: March accruals", reversal.Description)

	// Debits and credits flip, dimensions and line numbers carry over.
	suite.Require().Len(captured.Lines, 2)
	suite.True(captured.Lines[0].CreditAmount.Equal(original.Lines[0].DebitAmount))
	suite.True(captured.Lines[1].DebitAmount.Equal(original.Lines[1].CreditAmount))
	suite.Equal(original.Lines[0].AccountID, captured.Lines[0].AccountID)
	suite.Equal(original.Lines[0].LineNumber, captured.Lines[0].LineNumber)
}

// Reversing a posted reversal must restore the original sides exactly, and
// original plus reversal must net to zero on every line.
func (suite *JournalServiceTestSuite) TestReverseEntry_RoundTripRestoresOriginal() {
	ctx := context.Background()
	original := suite.entryInStatus(domain.Posted)
	reversalDate := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	suite.mockPeriodSvc.On("NextOpenPeriodDate", ctx, suite.tenantID, reversalDate).Return(reversalDate, &suite.period, nil).Twice()
	suite.mockPeriodSvc.On("AssertDateNotBeforeCutover", ctx, suite.tenantID, reversalDate, false).Return(nil).Twice()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(suite.accountsMap(), nil).Twice()
	suite.mockDimensionSvc.On("ValidateLines", ctx, suite.tenantID, reversalDate, mock.Anything, suite.accountsMap()).Return(nil).Twice()

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, original.EntryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindActiveReversal", ctx, suite.tenantID, original.EntryID).Return(nil, nil).Once()
	suite.mockJournalRepo.On("CreateReversalEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), original.EntryID, suite.posterID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, suite.authCtxFor(suite.posterID), original.EntryID, dto.ReverseEntryRequest{ReversalDate: reversalDate})
	suite.Require().NoError(err)

	for i := range original.Lines {
		net := original.Lines[i].DebitAmount.Sub(original.Lines[i].CreditAmount).
			Add(reversal.Lines[i].DebitAmount.Sub(reversal.Lines[i].CreditAmount))
		suite.True(net.IsZero(), "line %d of original plus reversal should net to zero", i+1)
	}

	reversal.Status = domain.Posted
	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, reversal.EntryID).Return(reversal, nil).Once()
	suite.mockJournalRepo.On("FindActiveReversal", ctx, suite.tenantID, reversal.EntryID).Return(nil, nil).Once()
	suite.mockJournalRepo.On("CreateReversalEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), reversal.EntryID, suite.reviewerID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	restored, err := suite.service.ReverseEntry(ctx, suite.authCtxFor(suite.reviewerID), reversal.EntryID, dto.ReverseEntryRequest{ReversalDate: reversalDate})
	suite.Require().NoError(err)

	suite.Require().Len(restored.Lines, len(original.Lines))
	for i := range original.Lines {
		suite.Equal(original.Lines[i].AccountID, restored.Lines[i].AccountID)
		suite.True(restored.Lines[i].DebitAmount.Equal(original.Lines[i].DebitAmount))
		suite.True(restored.Lines[i].CreditAmount.Equal(original.Lines[i].CreditAmount))
	}
}

func (suite *JournalServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.posterID)
	original := suite.entryInStatus(domain.Posted)
	existing := suite.entryInStatus(domain.Draft)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, original.EntryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindActiveReversal", ctx, suite.tenantID, original.EntryID).Return(existing, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, authCtx, original.EntryID, dto.ReverseEntryRequest{ReversalDate: suite.journalDate})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyReversed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateReversalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_NotPosted() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.posterID)
	entry := suite.entryInStatus(domain.Reviewed)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, authCtx, entry.EntryID, dto.ReverseEntryRequest{ReversalDate: suite.journalDate})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_ReverserIsMaker() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.makerID)
	original := suite.entryInStatus(domain.Posted)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, original.EntryID).Return(original, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, authCtx, original.EntryID, dto.ReverseEntryRequest{ReversalDate: suite.journalDate})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrSoDViolation)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_LegacyMissingDimensions() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.posterID)
	original := suite.entryInStatus(domain.Posted)
	reversalDate := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, original.EntryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindActiveReversal", ctx, suite.tenantID, original.EntryID).Return(nil, nil).Once()
	suite.mockPeriodSvc.On("NextOpenPeriodDate", ctx, suite.tenantID, reversalDate).Return(reversalDate, &suite.period, nil).Once()
	suite.mockPeriodSvc.On("AssertDateNotBeforeCutover", ctx, suite.tenantID, reversalDate, false).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.tenantID, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockDimensionSvc.On("ValidateLines", ctx, suite.tenantID, reversalDate, mock.Anything, suite.accountsMap()).
		Return(apperrors.NewFieldError(1, "legalEntityID", "legal entity is required")).Once()

	_, err := suite.service.ReverseEntry(ctx, authCtx, original.EntryID, dto.ReverseEntryRequest{ReversalDate: reversalDate})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrLegacyMissingDimensions)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateReversalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- ParkEntry / ListEntries ---

func (suite *JournalServiceTestSuite) TestParkEntry_Success() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.makerID)
	entry := suite.entryInStatus(domain.Draft)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entry.EntryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("MarkParked", ctx, suite.tenantID, entry.EntryID, suite.makerID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	parked, err := suite.service.ParkEntry(ctx, authCtx, entry.EntryID)

	suite.Require().NoError(err)
	suite.Equal(domain.Parked, parked.Status)
}

func (suite *JournalServiceTestSuite) TestParkEntry_UnbalancedFails() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.makerID)
	entry := suite.entryInStatus(domain.Draft)
	entry.Lines[0].DebitAmount = decimal.NewFromInt(75)

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.ParkEntry(ctx, authCtx, entry.EntryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkParked", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestListEntries_DefaultLimit() {
	ctx := context.Background()
	authCtx := suite.authCtxFor(suite.makerID)

	suite.mockJournalRepo.On("ListEntriesByTenant", ctx, suite.tenantID, 20, (*string)(nil), (*domain.EntryStatus)(nil)).
		Return([]domain.JournalEntry{}, nil, nil).Once()

	resp, err := suite.service.ListEntries(ctx, authCtx, dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.Empty(resp.Entries)
	suite.Nil(resp.NextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
