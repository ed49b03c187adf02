package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/management360/backend/internal/domain/ledger"
	"github.com/management360/backend/internal/domain/shared"
	"github.com/management360/backend/internal/infrastructure/persistence/models"
)

// GormFinanceRecordRepository implements FinanceRecordRepository using GORM
type GormFinanceRecordRepository struct {
	db *gorm.DB
}

// NewGormFinanceRecordRepository creates a new GormFinanceRecordRepository
func NewGormFinanceRecordRepository(db *gorm.DB) *GormFinanceRecordRepository {
	return &GormFinanceRecordRepository{db: db}
}

// recordCreatorRow is the scan target for ledger rows joined with the creator's name.
type recordCreatorRow struct {
	ID              uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ApartmentCode   string
	Type            ledger.RecordType
	Description     string
	Amount          decimal.Decimal
	Category        string
	TransactionDate time.Time
	ReceiptURL      string
	FeeID           *uuid.UUID
	CreatedBy       uuid.UUID
	FirstName       string
	LastName        string
}

func (row *recordCreatorRow) toDomain() ledger.RecordWithCreator {
	name := row.FirstName
	if row.LastName != "" {
		name = row.FirstName + " " + row.LastName
	}
	return ledger.RecordWithCreator{
		FinanceRecord: ledger.FinanceRecord{
			BaseEntity: shared.BaseEntity{
				ID:        row.ID,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
			ApartmentCode:   row.ApartmentCode,
			Type:            row.Type,
			Description:     row.Description,
			Amount:          row.Amount,
			Category:        row.Category,
			TransactionDate: row.TransactionDate,
			ReceiptURL:      row.ReceiptURL,
			FeeID:           row.FeeID,
			CreatedBy:       row.CreatedBy,
		},
		CreatedByName: name,
	}
}

const recordCreatorSelect = "finance_records.id, finance_records.created_at, finance_records.updated_at, " +
	"finance_records.apartment_code, finance_records.type, finance_records.description, " +
	"finance_records.amount, finance_records.category, finance_records.transaction_date, " +
	"finance_records.receipt_url, finance_records.fee_id, finance_records.created_by, " +
	"users.first_name, users.last_name"

// Save creates or updates a ledger entry
func (r *GormFinanceRecordRepository) Save(ctx context.Context, record *ledger.FinanceRecord) error {
	model := models.FinanceRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a ledger entry by its ID within an apartment
func (r *GormFinanceRecordRepository) FindByID(ctx context.Context, apartmentCode string, id uuid.UUID) (*ledger.RecordWithCreator, error) {
	var row recordCreatorRow
	err := r.db.WithContext(ctx).
		Table("finance_records").
		Select(recordCreatorSelect).
		Joins("LEFT JOIN users ON users.id = finance_records.created_by").
		Where("finance_records.apartment_code = ? AND finance_records.id = ?", apartmentCode, id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	result := row.toDomain()
	return &result, nil
}

// FindAll returns the apartment's ledger entries matching the filter,
// newest transaction first
func (r *GormFinanceRecordRepository) FindAll(ctx context.Context, apartmentCode string, filter ledger.RecordFilter) ([]ledger.RecordWithCreator, error) {
	query := r.db.WithContext(ctx).
		Table("finance_records").
		Select(recordCreatorSelect).
		Joins("LEFT JOIN users ON users.id = finance_records.created_by").
		Where("finance_records.apartment_code = ?", apartmentCode)

	if filter.Type != "" {
		query = query.Where("finance_records.type = ?", filter.Type)
	}
	if filter.Category != "" {
		query = query.Where("finance_records.category = ?", filter.Category)
	}
	if filter.StartDate != nil {
		query = query.Where("finance_records.transaction_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("finance_records.transaction_date <= ?", *filter.EndDate)
	}

	var rows []recordCreatorRow
	if err := query.
		Order("finance_records.transaction_date DESC, finance_records.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]ledger.RecordWithCreator, len(rows))
	for i, row := range rows {
		records[i] = row.toDomain()
	}
	return records, nil
}

// Delete deletes a ledger entry
func (r *GormFinanceRecordRepository) Delete(ctx context.Context, apartmentCode string, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("apartment_code = ?", apartmentCode).
		Delete(&models.FinanceRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Summarize aggregates the ledger over an optional date window
func (r *GormFinanceRecordRepository) Summarize(ctx context.Context, apartmentCode string, start, end *time.Time) (*ledger.Summary, error) {
	query := r.db.WithContext(ctx).
		Model(&models.FinanceRecordModel{}).
		Where("apartment_code = ?", apartmentCode)
	if start != nil {
		query = query.Where("transaction_date >= ?", *start)
	}
	if end != nil {
		query = query.Where("transaction_date <= ?", *end)
	}

	var summary ledger.Summary
	err := query.
		Select(
			"COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS total_income, " +
				"COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS total_expense, " +
				"COUNT(CASE WHEN type = 'income' THEN 1 END) AS income_count, " +
				"COUNT(CASE WHEN type = 'expense' THEN 1 END) AS expense_count").
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}

	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	return &summary, nil
}

// TotalsByCategory rolls the window up per category, largest first
func (r *GormFinanceRecordRepository) TotalsByCategory(ctx context.Context, apartmentCode string, recordType ledger.RecordType, start, end *time.Time) ([]ledger.CategoryTotal, error) {
	query := r.db.WithContext(ctx).
		Model(&models.FinanceRecordModel{}).
		Where("apartment_code = ? AND type = ?", apartmentCode, recordType)
	if start != nil {
		query = query.Where("transaction_date >= ?", *start)
	}
	if end != nil {
		query = query.Where("transaction_date <= ?", *end)
	}

	var totals []ledger.CategoryTotal
	err := query.
		Select("category, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Group("category").
		Order("total DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

// MonthlyTotals rolls a calendar year up per month. Months with no
// entries are filled with zeros so callers always get twelve rows.
func (r *GormFinanceRecordRepository) MonthlyTotals(ctx context.Context, apartmentCode string, year int) ([]ledger.MonthlyTotal, error) {
	var rows []ledger.MonthlyTotal
	err := r.db.WithContext(ctx).
		Model(&models.FinanceRecordModel{}).
		Select(
			"EXTRACT(MONTH FROM transaction_date)::int AS month, "+
				"COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS income, "+
				"COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS expense").
		Where("apartment_code = ? AND EXTRACT(YEAR FROM transaction_date) = ?", apartmentCode, year).
		Group("EXTRACT(MONTH FROM transaction_date)").
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make([]ledger.MonthlyTotal, 12)
	for i := range totals {
		totals[i] = ledger.MonthlyTotal{
			Month:   i + 1,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
			Balance: decimal.Zero,
		}
	}
	for _, row := range rows {
		if row.Month < 1 || row.Month > 12 {
			continue
		}
		totals[row.Month-1].Income = row.Income
		totals[row.Month-1].Expense = row.Expense
		totals[row.Month-1].Balance = row.Income.Sub(row.Expense)
	}
	return totals, nil
}

// Ensure GormFinanceRecordRepository implements FinanceRecordRepository
var _ ledger.FinanceRecordRepository = (*GormFinanceRecordRepository)(nil)
