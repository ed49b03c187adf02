package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/management360/backend/internal/domain/dues"
	"github.com/management360/backend/internal/domain/ledger"
	"github.com/management360/backend/internal/domain/shared"
	"github.com/management360/backend/internal/infrastructure/persistence/models"
)

// GormFeeRepository implements FeeRepository using GORM
type GormFeeRepository struct {
	db *gorm.DB
}

// NewGormFeeRepository creates a new GormFeeRepository
func NewGormFeeRepository(db *gorm.DB) *GormFeeRepository {
	return &GormFeeRepository{db: db}
}

// feeFlatRow is the scan target for fee rows joined with flat display fields.
type feeFlatRow struct {
	ID            uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ApartmentCode string
	FlatID        uuid.UUID
	Amount        decimal.Decimal
	DueDate       *time.Time
	Month         *int
	Year          *int
	Description   string
	Status        dues.PaymentStatus
	PaidDate      *time.Time
	PaymentMethod *string
	FlatNumber    string
	Block         string
	Floor         *int
}

func (row *feeFlatRow) toDomain() dues.FeeWithFlat {
	return dues.FeeWithFlat{
		Fee: dues.Fee{
			BaseEntity: shared.BaseEntity{
				ID:        row.ID,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
			ApartmentCode: row.ApartmentCode,
			FlatID:        row.FlatID,
			Amount:        row.Amount,
			DueDate:       row.DueDate,
			Month:         row.Month,
			Year:          row.Year,
			Description:   row.Description,
			Status:        row.Status,
			PaidDate:      row.PaidDate,
			PaymentMethod: row.PaymentMethod,
		},
		FlatNumber: row.FlatNumber,
		Block:      row.Block,
		Floor:      row.Floor,
	}
}

const feeFlatSelect = "fees.id, fees.created_at, fees.updated_at, fees.apartment_code, fees.flat_id, " +
	"fees.amount, fees.due_date, fees.month, fees.year, fees.description, fees.status, " +
	"fees.paid_date, fees.payment_method, flats.flat_number, flats.block, flats.floor"

// Save creates or updates a fee
func (r *GormFeeRepository) Save(ctx context.Context, fee *dues.Fee) error {
	model := models.FeeModelFromDomain(fee)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveBatch inserts all fees inside a single transaction
func (r *GormFeeRepository) SaveBatch(ctx context.Context, fees []*dues.Fee) error {
	if len(fees) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, fee := range fees {
			model := models.FeeModelFromDomain(fee)
			if err := tx.Create(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveWithLedgerEntry persists the fee and appends the given ledger record
// atomically. Either both rows land or neither does.
func (r *GormFeeRepository) SaveWithLedgerEntry(ctx context.Context, fee *dues.Fee, entry *ledger.FinanceRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		feeModel := models.FeeModelFromDomain(fee)
		if err := tx.Save(feeModel).Error; err != nil {
			return err
		}

		recordModel := models.FinanceRecordModelFromDomain(entry)
		return tx.Create(recordModel).Error
	})
}

// FindByID finds a fee by its ID within an apartment, joined with its flat
func (r *GormFeeRepository) FindByID(ctx context.Context, apartmentCode string, id uuid.UUID) (*dues.FeeWithFlat, error) {
	var row feeFlatRow
	err := r.db.WithContext(ctx).
		Table("fees").
		Select(feeFlatSelect).
		Joins("JOIN flats ON flats.id = fees.flat_id").
		Where("fees.apartment_code = ? AND fees.id = ?", apartmentCode, id).
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

// FindAll returns the apartment's fees matching the filter, newest period first
func (r *GormFeeRepository) FindAll(ctx context.Context, apartmentCode string, filter dues.FeeFilter) ([]dues.FeeWithFlat, error) {
	query := r.db.WithContext(ctx).
		Table("fees").
		Select(feeFlatSelect).
		Joins("JOIN flats ON flats.id = fees.flat_id").
		Where("fees.apartment_code = ?", apartmentCode)

	if filter.Month != nil {
		query = query.Where("fees.month = ?", *filter.Month)
	}
	if filter.Year != nil {
		query = query.Where("fees.year = ?", *filter.Year)
	}
	if filter.Status != "" {
		query = query.Where("fees.status = ?", filter.Status)
	}
	if filter.FlatID != nil {
		query = query.Where("fees.flat_id = ?", *filter.FlatID)
	}

	var rows []feeFlatRow
	if err := query.
		Order("fees.year DESC, fees.month DESC, flats.flat_number ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	fees := make([]dues.FeeWithFlat, len(rows))
	for i, row := range rows {
		fees[i] = row.toDomain()
	}
	return fees, nil
}

// ExistsForPeriod reports whether any fee row exists for the billing period
func (r *GormFeeRepository) ExistsForPeriod(ctx context.Context, apartmentCode string, month, year int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FeeModel{}).
		Where("apartment_code = ? AND month = ? AND year = ?", apartmentCode, month, year).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete deletes a fee
func (r *GormFeeRepository) Delete(ctx context.Context, apartmentCode string, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("apartment_code = ?", apartmentCode).
		Delete(&models.FeeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DebtForFlat summarizes one flat's outstanding and settled fees
func (r *GormFeeRepository) DebtForFlat(ctx context.Context, apartmentCode string, flatID uuid.UUID) (*dues.DebtBreakdown, error) {
	var breakdown dues.DebtBreakdown
	err := r.db.WithContext(ctx).
		Model(&models.FeeModel{}).
		Select(
			"COALESCE(SUM(CASE WHEN status <> 'paid' THEN amount ELSE 0 END), 0) AS total_debt, "+
				"COUNT(CASE WHEN status <> 'paid' THEN 1 END) AS unpaid_count, "+
				"COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0) AS total_paid, "+
				"COUNT(CASE WHEN status = 'paid' THEN 1 END) AS paid_count").
		Where("apartment_code = ? AND flat_id = ?", apartmentCode, flatID).
		Scan(&breakdown).Error
	if err != nil {
		return nil, err
	}
	return &breakdown, nil
}

// UnpaidForFlat returns the flat's outstanding fees, oldest period first
func (r *GormFeeRepository) UnpaidForFlat(ctx context.Context, apartmentCode string, flatID uuid.UUID) ([]dues.Fee, error) {
	var feeModels []models.FeeModel
	if err := r.db.WithContext(ctx).
		Where("apartment_code = ? AND flat_id = ? AND status <> ?", apartmentCode, flatID, dues.StatusPaid).
		Order("due_date ASC, year ASC, month ASC").
		Find(&feeModels).Error; err != nil {
		return nil, err
	}

	fees := make([]dues.Fee, len(feeModels))
	for i, model := range feeModels {
		fees[i] = *model.ToDomain()
	}
	return fees, nil
}

// DebtorFlats returns every flat carrying outstanding fees, largest debt first
func (r *GormFeeRepository) DebtorFlats(ctx context.Context, apartmentCode string) ([]dues.FlatDebt, error) {
	var debtors []dues.FlatDebt
	err := r.db.WithContext(ctx).
		Table("fees").
		Select("fees.flat_id, flats.flat_number, flats.block, flats.floor, "+
			"COUNT(*) AS unpaid_count, COALESCE(SUM(fees.amount), 0) AS total_debt").
		Joins("JOIN flats ON flats.id = fees.flat_id").
		Where("fees.apartment_code = ? AND fees.status <> ?", apartmentCode, dues.StatusPaid).
		Group("fees.flat_id, flats.flat_number, flats.block, flats.floor").
		Order("total_debt DESC").
		Scan(&debtors).Error
	if err != nil {
		return nil, err
	}
	return debtors, nil
}

// DebtSummary aggregates the apartment-wide collection picture
func (r *GormFeeRepository) DebtSummary(ctx context.Context, apartmentCode string) (*dues.DebtSummary, error) {
	var summary dues.DebtSummary
	err := r.db.WithContext(ctx).
		Model(&models.FeeModel{}).
		Select(
			"COUNT(DISTINCT CASE WHEN status <> 'paid' THEN flat_id END) AS debtor_count, "+
				"COALESCE(SUM(CASE WHEN status <> 'paid' THEN amount ELSE 0 END), 0) AS total_debt, "+
				"COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0) AS total_collected").
		Where("apartment_code = ?", apartmentCode).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Ensure GormFeeRepository implements FeeRepository
var _ dues.FeeRepository = (*GormFeeRepository)(nil)
