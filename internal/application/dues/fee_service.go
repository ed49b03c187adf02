// Package dues implements billing periods, payment-status transitions
// and debt aggregation.
package dues

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/management360/backend/internal/domain/dues"
	"github.com/management360/backend/internal/domain/ledger"
	"github.com/management360/backend/internal/domain/registry"
	"github.com/management360/backend/internal/domain/shared"
)

// FeeService handles dues billing and debt reporting
type FeeService struct {
	feeRepo  dues.FeeRepository
	flatRepo registry.FlatRepository
	logger   *zap.Logger
}

// NewFeeService creates a new fee service
func NewFeeService(feeRepo dues.FeeRepository, flatRepo registry.FlatRepository, logger *zap.Logger) *FeeService {
	return &FeeService{feeRepo: feeRepo, flatRepo: flatRepo, logger: logger}
}

// CreateDuesPeriod bills every flat of the apartment for one month.
// The whole period lands in a single transaction: either every flat gets
// its pending fee or none do. A period can only be created once.
func (s *FeeService) CreateDuesPeriod(ctx context.Context, apartmentCode string, input CreateDuesPeriodInput) (*DuesPeriodResult, error) {
	if input.Month < 1 || input.Month > 12 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Month must be between 1 and 12")
	}
	if input.Year < 1 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Year is required")
	}
	if !input.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Amount must be positive")
	}

	exists, err := s.feeRepo.ExistsForPeriod(ctx, apartmentCode, input.Month, input.Year)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("Dues for %d/%d already exist", input.Month, input.Year))
	}

	flats, err := s.flatRepo.FindAll(ctx, apartmentCode)
	if err != nil {
		return nil, err
	}
	if len(flats) == 0 {
		return nil, shared.NewDomainError("NOT_FOUND", "Apartment has no flats to bill")
	}

	description := input.Description
	if description == "" {
		description = fmt.Sprintf("Monthly dues %d/%d", input.Month, input.Year)
	}

	month := input.Month
	year := input.Year
	fees := make([]*dues.Fee, len(flats))
	for i, flat := range flats {
		fees[i] = dues.NewFee(apartmentCode, flat.ID, input.Amount, input.DueDate, &month, &year, description)
	}

	if err := s.feeRepo.SaveBatch(ctx, fees); err != nil {
		s.logger.Error("Failed to create dues period",
			zap.String("apartment_code", apartmentCode),
			zap.Int("month", input.Month), zap.Int("year", input.Year),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Dues period created",
		zap.String("apartment_code", apartmentCode),
		zap.Int("month", input.Month), zap.Int("year", input.Year),
		zap.Int("flats", len(flats)))

	return &DuesPeriodResult{
		Period:     fmt.Sprintf("%d/%d", input.Month, input.Year),
		TotalFlats: len(flats),
		Amount:     input.Amount,
	}, nil
}

// AddFee bills one flat outside the monthly cycle
func (s *FeeService) AddFee(ctx context.Context, apartmentCode string, input AddFeeInput) (*dues.Fee, error) {
	if !input.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Amount must be positive")
	}
	if input.Month != nil && (*input.Month < 1 || *input.Month > 12) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Month must be between 1 and 12")
	}

	if _, err := s.flatRepo.FindByID(ctx, apartmentCode, input.FlatID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Flat not found")
		}
		return nil, err
	}

	fee := dues.NewFee(apartmentCode, input.FlatID, input.Amount, input.DueDate, input.Month, input.Year, input.Description)
	if err := s.feeRepo.Save(ctx, fee); err != nil {
		s.logger.Error("Failed to save fee", zap.Error(err))
		return nil, err
	}
	return fee, nil
}

// GetFees lists the apartment's fees, joined with flat display fields
func (s *FeeService) GetFees(ctx context.Context, apartmentCode string, filter dues.FeeFilter) ([]dues.FeeWithFlat, error) {
	return s.feeRepo.FindAll(ctx, apartmentCode, filter)
}

// GetFee returns one fee by ID
func (s *FeeService) GetFee(ctx context.Context, apartmentCode string, id uuid.UUID) (*dues.FeeWithFlat, error) {
	fee, err := s.feeRepo.FindByID(ctx, apartmentCode, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Fee not found")
		}
		return nil, err
	}
	return fee, nil
}

// UpdatePaymentStatus transitions a fee's payment state. When the fee is
// newly settled the matching income ledger entry is written in the same
// transaction, so the books can never show a paid fee without its income
// row. Re-marking a paid fee paid changes nothing in the ledger.
func (s *FeeService) UpdatePaymentStatus(ctx context.Context, apartmentCode string, feeID uuid.UUID, actor uuid.UUID, input UpdateStatusInput) (*dues.FeeWithFlat, error) {
	feeWithFlat, err := s.feeRepo.FindByID(ctx, apartmentCode, feeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Fee not found")
		}
		return nil, err
	}

	fee := feeWithFlat.Fee
	settled, err := fee.Transition(input.Status, input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	if settled {
		entry := ledger.NewDuesPayment(apartmentCode, feeWithFlat.FlatNumber, fee.ID, fee.Amount, actor)
		if err := s.feeRepo.SaveWithLedgerEntry(ctx, &fee, entry); err != nil {
			s.logger.Error("Failed to settle fee",
				zap.String("fee_id", fee.ID.String()), zap.Error(err))
			return nil, err
		}
		s.logger.Info("Fee settled",
			zap.String("apartment_code", apartmentCode),
			zap.String("fee_id", fee.ID.String()),
			zap.String("flat_number", feeWithFlat.FlatNumber),
			zap.String("amount", fee.Amount.String()))
	} else {
		if err := s.feeRepo.Save(ctx, &fee); err != nil {
			s.logger.Error("Failed to update fee status",
				zap.String("fee_id", fee.ID.String()), zap.Error(err))
			return nil, err
		}
	}

	feeWithFlat.Fee = fee
	return feeWithFlat, nil
}

// DeleteFee removes a fee
func (s *FeeService) DeleteFee(ctx context.Context, apartmentCode string, id uuid.UUID) error {
	if err := s.feeRepo.Delete(ctx, apartmentCode, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Fee not found")
		}
		return err
	}
	return nil
}

// CalculateDebt returns one flat's full debt picture
func (s *FeeService) CalculateDebt(ctx context.Context, apartmentCode string, flatID uuid.UUID) (*FlatDebtReport, error) {
	flat, err := s.flatRepo.FindByID(ctx, apartmentCode, flatID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Flat not found")
		}
		return nil, err
	}

	breakdown, err := s.feeRepo.DebtForFlat(ctx, apartmentCode, flatID)
	if err != nil {
		return nil, err
	}

	unpaid, err := s.feeRepo.UnpaidForFlat(ctx, apartmentCode, flatID)
	if err != nil {
		return nil, err
	}

	return &FlatDebtReport{
		Flat:        *flat,
		TotalDebt:   breakdown.TotalDebt,
		UnpaidCount: breakdown.UnpaidCount,
		TotalPaid:   breakdown.TotalPaid,
		PaidCount:   breakdown.PaidCount,
		UnpaidFees:  unpaid,
	}, nil
}

// GetDebtorFlats lists every flat carrying outstanding fees
func (s *FeeService) GetDebtorFlats(ctx context.Context, apartmentCode string) ([]dues.FlatDebt, error) {
	return s.feeRepo.DebtorFlats(ctx, apartmentCode)
}

// GetDebtSummary returns the apartment-wide collection picture
func (s *FeeService) GetDebtSummary(ctx context.Context, apartmentCode string) (*dues.DebtSummary, error) {
	return s.feeRepo.DebtSummary(ctx, apartmentCode)
}
