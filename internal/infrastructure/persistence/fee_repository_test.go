package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/management360/backend/internal/domain/dues"
	"github.com/management360/backend/internal/domain/ledger"
	"github.com/management360/backend/internal/domain/registry"
	"github.com/management360/backend/internal/domain/shared"
)

// setupFeeTestDB creates an in-memory SQLite database for testing
func setupFeeTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Create flats table
	err = db.Exec(`
		CREATE TABLE flats (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			apartment_code TEXT NOT NULL,
			flat_number TEXT NOT NULL,
			block TEXT,
			floor INTEGER,
			resident_count INTEGER NOT NULL DEFAULT 0,
			UNIQUE(apartment_code, flat_number)
		)
	`).Error
	require.NoError(t, err)

	// Create fees table
	err = db.Exec(`
		CREATE TABLE fees (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			apartment_code TEXT NOT NULL,
			flat_id TEXT NOT NULL,
			amount NUMERIC NOT NULL,
			due_date DATETIME,
			month INTEGER,
			year INTEGER,
			description TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			paid_date DATETIME,
			payment_method TEXT
		)
	`).Error
	require.NoError(t, err)

	// Create finance_records table
	err = db.Exec(`
		CREATE TABLE finance_records (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			apartment_code TEXT NOT NULL,
			type TEXT NOT NULL,
			description TEXT NOT NULL,
			amount NUMERIC NOT NULL,
			category TEXT NOT NULL,
			transaction_date DATETIME NOT NULL,
			receipt_url TEXT,
			fee_id TEXT,
			created_by TEXT NOT NULL
		)
	`).Error
	require.NoError(t, err)

	// Create users table, joined when reading back ledger entries
	err = db.Exec(`
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT,
			phone_number TEXT,
			role TEXT NOT NULL,
			apartment_code TEXT NOT NULL,
			flat_id TEXT
		)
	`).Error
	require.NoError(t, err)

	return db
}

func seedFlat(t *testing.T, db *gorm.DB, apartmentCode, number string) *registry.Flat {
	flat := registry.NewFlat(apartmentCode, number, "A", nil, 0)
	require.NoError(t, NewGormFlatRepository(db).Save(context.Background(), flat))
	return flat
}

func TestGormFeeRepository_SaveAndFindByID(t *testing.T) {
	db := setupFeeTestDB(t)
	repo := NewGormFeeRepository(db)
	ctx := context.Background()

	flat := seedFlat(t, db, "APT001", "1")
	month, year := 3, 2025
	fee := dues.NewFee("APT001", flat.ID, decimal.NewFromInt(500), nil, &month, &year, "Monthly dues 3/2025")
	require.NoError(t, repo.Save(ctx, fee))

	found, err := repo.FindByID(ctx, "APT001", fee.ID)
	require.NoError(t, err)
	assert.Equal(t, fee.ID, found.ID)
	assert.Equal(t, "1", found.FlatNumber)
	assert.Equal(t, dues.StatusPending, found.Status)
	assert.True(t, found.Amount.Equal(decimal.NewFromInt(500)))
	require.NotNil(t, found.Month)
	assert.Equal(t, 3, *found.Month)

	// Another apartment cannot see the fee
	_, err = repo.FindByID(ctx, "APT999", fee.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormFeeRepository_SaveBatchAndExistsForPeriod(t *testing.T) {
	db := setupFeeTestDB(t)
	repo := NewGormFeeRepository(db)
	ctx := context.Background()

	month, year := 4, 2025
	fees := make([]*dues.Fee, 3)
	for i, number := range []string{"1", "2", "3"} {
		flat := seedFlat(t, db, "APT001", number)
		fees[i] = dues.NewFee("APT001", flat.ID, decimal.NewFromInt(500), nil, &month, &year, "")
	}
	require.NoError(t, repo.SaveBatch(ctx, fees))

	exists, err := repo.ExistsForPeriod(ctx, "APT001", 4, 2025)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForPeriod(ctx, "APT001", 5, 2025)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsForPeriod(ctx, "APT999", 4, 2025)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormFeeRepository_FindAllFilters(t *testing.T) {
	db := setupFeeTestDB(t)
	repo := NewGormFeeRepository(db)
	ctx := context.Background()

	flat1 := seedFlat(t, db, "APT001", "1")
	flat2 := seedFlat(t, db, "APT001", "2")
	m3, m4, y := 3, 4, 2025
	require.NoError(t, repo.Save(ctx, dues.NewFee("APT001", flat1.ID, decimal.NewFromInt(500), nil, &m3, &y, "")))
	require.NoError(t, repo.Save(ctx, dues.NewFee("APT001", flat2.ID, decimal.NewFromInt(500), nil, &m3, &y, "")))
	require.NoError(t, repo.Save(ctx, dues.NewFee("APT001", flat1.ID, decimal.NewFromInt(600), nil, &m4, &y, "")))

	all, err := repo.FindAll(ctx, "APT001", dues.FeeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	// Newest period first
	require.NotNil(t, all[0].Month)
	assert.Equal(t, 4, *all[0].Month)

	march, err := repo.FindAll(ctx, "APT001", dues.FeeFilter{Month: &m3, Year: &y})
	require.NoError(t, err)
	assert.Len(t, march, 2)

	byFlat, err := repo.FindAll(ctx, "APT001", dues.FeeFilter{FlatID: &flat2.ID})
	require.NoError(t, err)
	assert.Len(t, byFlat, 1)
	assert.Equal(t, "2", byFlat[0].FlatNumber)
}

func TestGormFeeRepository_SaveWithLedgerEntry(t *testing.T) {
	db := setupFeeTestDB(t)
	repo := NewGormFeeRepository(db)
	ctx := context.Background()

	flat := seedFlat(t, db, "APT001", "7")
	fee := dues.NewFee("APT001", flat.ID, decimal.NewFromInt(500), nil, nil, nil, "")
	require.NoError(t, repo.Save(ctx, fee))

	settled, err := fee.Transition(dues.StatusPaid, "Cash")
	require.NoError(t, err)
	require.True(t, settled)

	actor := uuid.New()
	entry := ledger.NewDuesPayment("APT001", "7", fee.ID, fee.Amount, actor)
	require.NoError(t, repo.SaveWithLedgerEntry(ctx, fee, entry))

	found, err := repo.FindByID(ctx, "APT001", fee.ID)
	require.NoError(t, err)
	assert.Equal(t, dues.StatusPaid, found.Status)
	require.NotNil(t, found.PaidDate)

	record, err := NewGormFinanceRecordRepository(db).FindByID(ctx, "APT001", entry.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.TypeIncome, record.Type)
	assert.Equal(t, ledger.DuesCategory, record.Category)
	assert.True(t, record.Amount.Equal(fee.Amount))
	require.NotNil(t, record.FeeID)
	assert.Equal(t, fee.ID, *record.FeeID)
}

func TestGormFeeRepository_DebtAggregates(t *testing.T) {
	db := setupFeeTestDB(t)
	repo := NewGormFeeRepository(db)
	ctx := context.Background()

	// Three flats billed 500 each; flat 2 pays.
	month, year := 3, 2025
	flats := make([]*registry.Flat, 3)
	for i, number := range []string{"1", "2", "3"} {
		flats[i] = seedFlat(t, db, "APT001", number)
		fee := dues.NewFee("APT001", flats[i].ID, decimal.NewFromInt(500), nil, &month, &year, "")
		if number == "2" {
			_, err := fee.Transition(dues.StatusPaid, "Cash")
			require.NoError(t, err)
		}
		require.NoError(t, repo.Save(ctx, fee))
	}

	summary, err := repo.DebtSummary(ctx, "APT001")
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.DebtorCount)
	assert.True(t, summary.TotalDebt.Equal(decimal.NewFromInt(1000)))
	assert.True(t, summary.TotalCollected.Equal(decimal.NewFromInt(500)))

	debtors, err := repo.DebtorFlats(ctx, "APT001")
	require.NoError(t, err)
	require.Len(t, debtors, 2)
	for _, debtor := range debtors {
		assert.NotEqual(t, "2", debtor.FlatNumber)
		assert.Equal(t, int64(1), debtor.UnpaidCount)
		assert.True(t, debtor.TotalDebt.Equal(decimal.NewFromInt(500)))
	}

	breakdown, err := repo.DebtForFlat(ctx, "APT001", flats[0].ID)
	require.NoError(t, err)
	assert.True(t, breakdown.TotalDebt.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, int64(1), breakdown.UnpaidCount)
	assert.True(t, breakdown.TotalPaid.IsZero())

	unpaid, err := repo.UnpaidForFlat(ctx, "APT001", flats[0].ID)
	require.NoError(t, err)
	require.Len(t, unpaid, 1)
	assert.Equal(t, dues.StatusPending, unpaid[0].Status)

	// The settled flat carries no debt
	paid, err := repo.DebtForFlat(ctx, "APT001", flats[1].ID)
	require.NoError(t, err)
	assert.True(t, paid.TotalDebt.IsZero())
	assert.Equal(t, int64(1), paid.PaidCount)
}

func TestGormFeeRepository_Delete(t *testing.T) {
	db := setupFeeTestDB(t)
	repo := NewGormFeeRepository(db)
	ctx := context.Background()

	flat := seedFlat(t, db, "APT001", "1")
	fee := dues.NewFee("APT001", flat.ID, decimal.NewFromInt(500), nil, nil, nil, "")
	require.NoError(t, repo.Save(ctx, fee))

	// Another apartment cannot delete the fee
	err := repo.Delete(ctx, "APT999", fee.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = repo.FindByID(ctx, "APT001", fee.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "APT001", fee.ID))
	_, err = repo.FindByID(ctx, "APT001", fee.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
