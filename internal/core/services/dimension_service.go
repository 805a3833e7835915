package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uspireit-code/uspire-ledger/internal/apperrors"
	"github.com/uspireit-code/uspire-ledger/internal/core/domain"
	portsrepo "github.com/uspireit-code/uspire-ledger/internal/core/ports/repositories"
	portssvc "github.com/uspireit-code/uspire-ledger/internal/core/ports/services"
)

// dimensionService validates line dimension coding against account
// requirements and effective dating.
type dimensionService struct {
	dimensionRepo portsrepo.DimensionRepositoryFacade
}

// NewDimensionService creates the dimension validator.
func NewDimensionService(dimensionRepo portsrepo.DimensionRepositoryFacade) portssvc.DimensionValidatorSvc {
	return &dimensionService{dimensionRepo: dimensionRepo}
}

var _ portssvc.DimensionValidatorSvc = (*dimensionService)(nil)

func (s *dimensionService) ValidateLines(ctx context.Context, tenantID string, journalDate time.Time, lines []domain.JournalLine, accounts map[string]domain.Account) error {
	for i := range lines {
		if err := s.validateLine(ctx, tenantID, journalDate, &lines[i], accounts); err != nil {
			return err
		}
	}
	return nil
}

func (s *dimensionService) validateLine(ctx context.Context, tenantID string, journalDate time.Time, line *domain.JournalLine, accounts map[string]domain.Account) error {
	account, ok := accounts[line.AccountID]
	if !ok {
		return apperrors.NewFieldError(line.LineNumber, "accountID", "account not found")
	}

	// Legal entity is mandatory on every line.
	if line.LegalEntityID == nil {
		return apperrors.NewFieldError(line.LineNumber, "legalEntityID", "legal entity is required")
	}
	legalEntity, err := s.dimensionRepo.FindLegalEntityByID(ctx, tenantID, *line.LegalEntityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewFieldError(line.LineNumber, "legalEntityID", "legal entity not found")
		}
		return fmt.Errorf("failed to resolve legal entity: %w", err)
	}
	if !legalEntity.EffectiveOn(journalDate) {
		return apperrors.NewFieldError(line.LineNumber, "legalEntityID", "legal entity is not effective on the journal date")
	}

	switch account.DepartmentRequirement() {
	case domain.RequirementRequired:
		if line.DepartmentID == nil {
			return apperrors.NewFieldError(line.LineNumber, "departmentID", "department is required for this account")
		}
	case domain.RequirementForbidden:
		if line.DepartmentID != nil {
			return apperrors.NewFieldError(line.LineNumber, "departmentID", "department is not allowed on a control account")
		}
	}
	if line.DepartmentID != nil {
		department, err := s.dimensionRepo.FindDepartmentByID(ctx, tenantID, *line.DepartmentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewFieldError(line.LineNumber, "departmentID", "department not found")
			}
			return fmt.Errorf("failed to resolve department: %w", err)
		}
		if !department.EffectiveOn(journalDate) {
			return apperrors.NewFieldError(line.LineNumber, "departmentID", "department is not effective on the journal date")
		}
	}

	if account.RequiresProject && line.ProjectID == nil {
		return apperrors.NewFieldError(line.LineNumber, "projectID", "project is required for this account")
	}

	var project *domain.Project
	if line.ProjectID != nil {
		project, err = s.dimensionRepo.FindProjectByID(ctx, tenantID, *line.ProjectID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewFieldError(line.LineNumber, "projectID", "project not found")
			}
			return fmt.Errorf("failed to resolve project: %w", err)
		}
		if !project.EffectiveOn(journalDate) {
			return apperrors.NewFieldError(line.LineNumber, "projectID", "project is not effective on the journal date")
		}
		if project.RequiresFund && line.FundID == nil {
			return apperrors.NewFieldError(line.LineNumber, "fundID", "fund is required for this project")
		}
		if project.IsRestricted && line.FundID == nil {
			return apperrors.NewFieldError(line.LineNumber, "fundID", "restricted project requires a fund")
		}
	}

	if line.FundID != nil {
		// Fund presence implies project presence.
		if line.ProjectID == nil {
			return apperrors.NewFieldError(line.LineNumber, "fundID", "fund requires a project")
		}
		fund, err := s.dimensionRepo.FindFundByID(ctx, tenantID, *line.FundID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewFieldError(line.LineNumber, "fundID", "fund not found")
			}
			return fmt.Errorf("failed to resolve fund: %w", err)
		}
		if !fund.EffectiveOn(journalDate) {
			return apperrors.NewFieldError(line.LineNumber, "fundID", "fund is not effective on the journal date")
		}
		if fund.ProjectID != *line.ProjectID {
			return apperrors.NewFieldError(line.LineNumber, "fundID", "fund does not belong to the selected project")
		}
	}

	return nil
}
