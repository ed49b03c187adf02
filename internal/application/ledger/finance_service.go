// Package ledger implements the building's finance book and its reports.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/management360/backend/internal/domain/ledger"
	"github.com/management360/backend/internal/domain/shared"
)

// AddRecordInput contains input for a new ledger entry
type AddRecordInput struct {
	Type            ledger.RecordType
	Description     string
	Amount          decimal.Decimal
	Category        string
	TransactionDate *time.Time
	ReceiptURL      string
}

// UpdateRecordInput describes a partial ledger update: nil fields keep
// the stored value.
type UpdateRecordInput struct {
	Type            *ledger.RecordType
	Description     *string
	Amount          *decimal.Decimal
	Category        *string
	TransactionDate *time.Time
	ReceiptURL      *string
}

// DetailedReport is the summary plus per-category breakdowns.
type DetailedReport struct {
	Summary           ledger.Summary         `json:"summary"`
	IncomeByCategory  []ledger.CategoryTotal `json:"incomeByCategory"`
	ExpenseByCategory []ledger.CategoryTotal `json:"expenseByCategory"`
}

// MonthlyReport is a calendar year's month-by-month rollup.
type MonthlyReport struct {
	Year   int                   `json:"year"`
	Months []ledger.MonthlyTotal `json:"months"`
}

// FinanceService handles ledger entries and reports
type FinanceService struct {
	recordRepo ledger.FinanceRecordRepository
	logger     *zap.Logger
}

// NewFinanceService creates a new finance service
func NewFinanceService(recordRepo ledger.FinanceRecordRepository, logger *zap.Logger) *FinanceService {
	return &FinanceService{recordRepo: recordRepo, logger: logger}
}

// AddRecord files a new entry in the apartment's ledger
func (s *FinanceService) AddRecord(ctx context.Context, apartmentCode string, actor uuid.UUID, input AddRecordInput) (*ledger.FinanceRecord, error) {
	if !input.Type.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Type must be income or expense")
	}
	if input.Description == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Description is required")
	}
	if !input.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Amount must be positive")
	}

	record := ledger.NewFinanceRecord(apartmentCode, input.Type, input.Description, input.Amount,
		input.Category, input.TransactionDate, input.ReceiptURL, actor)
	if err := s.recordRepo.Save(ctx, record); err != nil {
		s.logger.Error("Failed to save finance record", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Finance record added",
		zap.String("apartment_code", apartmentCode),
		zap.String("type", record.Type.String()),
		zap.String("amount", record.Amount.String()))
	return record, nil
}

// GetRecords lists the apartment's ledger entries matching the filter
func (s *FinanceService) GetRecords(ctx context.Context, apartmentCode string, filter ledger.RecordFilter) ([]ledger.RecordWithCreator, error) {
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Type must be income or expense")
	}
	return s.recordRepo.FindAll(ctx, apartmentCode, filter)
}

// GetRecord returns one ledger entry by ID
func (s *FinanceService) GetRecord(ctx context.Context, apartmentCode string, id uuid.UUID) (*ledger.RecordWithCreator, error) {
	record, err := s.recordRepo.FindByID(ctx, apartmentCode, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Finance record not found")
		}
		return nil, err
	}
	return record, nil
}

// GetSummary aggregates the ledger over an optional date window
func (s *FinanceService) GetSummary(ctx context.Context, apartmentCode string, start, end *time.Time) (*ledger.Summary, error) {
	return s.recordRepo.Summarize(ctx, apartmentCode, start, end)
}

// GetDetailedReport returns the summary plus per-category breakdowns
func (s *FinanceService) GetDetailedReport(ctx context.Context, apartmentCode string, start, end *time.Time) (*DetailedReport, error) {
	summary, err := s.recordRepo.Summarize(ctx, apartmentCode, start, end)
	if err != nil {
		return nil, err
	}

	income, err := s.recordRepo.TotalsByCategory(ctx, apartmentCode, ledger.TypeIncome, start, end)
	if err != nil {
		return nil, err
	}

	expense, err := s.recordRepo.TotalsByCategory(ctx, apartmentCode, ledger.TypeExpense, start, end)
	if err != nil {
		return nil, err
	}

	return &DetailedReport{
		Summary:           *summary,
		IncomeByCategory:  income,
		ExpenseByCategory: expense,
	}, nil
}

// GetMonthlyReport rolls a calendar year up per month. Year defaults to
// the current one.
func (s *FinanceService) GetMonthlyReport(ctx context.Context, apartmentCode string, year int) (*MonthlyReport, error) {
	if year == 0 {
		year = time.Now().Year()
	}

	months, err := s.recordRepo.MonthlyTotals(ctx, apartmentCode, year)
	if err != nil {
		return nil, err
	}
	return &MonthlyReport{Year: year, Months: months}, nil
}

// UpdateRecord applies a partial update to a ledger entry
func (s *FinanceService) UpdateRecord(ctx context.Context, apartmentCode string, id uuid.UUID, input UpdateRecordInput) (*ledger.FinanceRecord, error) {
	existing, err := s.recordRepo.FindByID(ctx, apartmentCode, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Finance record not found")
		}
		return nil, err
	}

	record := existing.FinanceRecord
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Type must be income or expense")
		}
		record.Type = *input.Type
	}
	if input.Description != nil {
		if *input.Description == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Description cannot be empty")
		}
		record.Description = *input.Description
	}
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Amount must be positive")
		}
		record.Amount = *input.Amount
	}
	if input.Category != nil {
		category := *input.Category
		if category == "" {
			category = ledger.DefaultCategory
		}
		record.Category = category
	}
	if input.TransactionDate != nil {
		record.TransactionDate = *input.TransactionDate
	}
	if input.ReceiptURL != nil {
		record.ReceiptURL = *input.ReceiptURL
	}
	record.Touch()

	if err := s.recordRepo.Save(ctx, &record); err != nil {
		s.logger.Error("Failed to update finance record", zap.Error(err))
		return nil, err
	}
	return &record, nil
}

// DeleteRecord removes a ledger entry
func (s *FinanceService) DeleteRecord(ctx context.Context, apartmentCode string, id uuid.UUID) error {
	if err := s.recordRepo.Delete(ctx, apartmentCode, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Finance record not found")
		}
		return err
	}

	s.logger.Info("Finance record deleted",
		zap.String("apartment_code", apartmentCode),
		zap.String("record_id", id.String()))
	return nil
}
