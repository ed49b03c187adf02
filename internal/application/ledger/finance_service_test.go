package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/management360/backend/internal/domain/ledger"
	"github.com/management360/backend/internal/domain/shared"
)

// MockFinanceRecordRepository is a mock implementation of FinanceRecordRepository
type MockFinanceRecordRepository struct {
	mock.Mock
}

func (m *MockFinanceRecordRepository) Save(ctx context.Context, record *ledger.FinanceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockFinanceRecordRepository) FindByID(ctx context.Context, apartmentCode string, id uuid.UUID) (*ledger.RecordWithCreator, error) {
	args := m.Called(ctx, apartmentCode, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.RecordWithCreator), args.Error(1)
}

func (m *MockFinanceRecordRepository) FindAll(ctx context.Context, apartmentCode string, filter ledger.RecordFilter) ([]ledger.RecordWithCreator, error) {
	args := m.Called(ctx, apartmentCode, filter)
	return args.Get(0).([]ledger.RecordWithCreator), args.Error(1)
}

func (m *MockFinanceRecordRepository) Delete(ctx context.Context, apartmentCode string, id uuid.UUID) error {
	args := m.Called(ctx, apartmentCode, id)
	return args.Error(0)
}

func (m *MockFinanceRecordRepository) Summarize(ctx context.Context, apartmentCode string, start, end *time.Time) (*ledger.Summary, error) {
	args := m.Called(ctx, apartmentCode, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Summary), args.Error(1)
}

func (m *MockFinanceRecordRepository) TotalsByCategory(ctx context.Context, apartmentCode string, recordType ledger.RecordType, start, end *time.Time) ([]ledger.CategoryTotal, error) {
	args := m.Called(ctx, apartmentCode, recordType, start, end)
	return args.Get(0).([]ledger.CategoryTotal), args.Error(1)
}

func (m *MockFinanceRecordRepository) MonthlyTotals(ctx context.Context, apartmentCode string, year int) ([]ledger.MonthlyTotal, error) {
	args := m.Called(ctx, apartmentCode, year)
	return args.Get(0).([]ledger.MonthlyTotal), args.Error(1)
}

const testApartment = "APT123456"

func TestAddRecord(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("files a valid entry with defaults", func(t *testing.T) {
		repo := new(MockFinanceRecordRepository)
		service := NewFinanceService(repo, zap.NewNop())

		repo.On("Save", ctx, mock.MatchedBy(func(record *ledger.FinanceRecord) bool {
			return record.Category == ledger.DefaultCategory &&
				record.CreatedBy == actor &&
				!record.TransactionDate.IsZero()
		})).Return(nil)

		record, err := service.AddRecord(ctx, testApartment, actor, AddRecordInput{
			Type:        ledger.TypeExpense,
			Description: "Elevator maintenance",
			Amount:      decimal.NewFromInt(1200),
		})

		require.NoError(t, err)
		assert.Equal(t, ledger.TypeExpense, record.Type)
		assert.Equal(t, ledger.DefaultCategory, record.Category)
		repo.AssertExpectations(t)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		repo := new(MockFinanceRecordRepository)
		service := NewFinanceService(repo, zap.NewNop())

		cases := []struct {
			name  string
			input AddRecordInput
		}{
			{"unknown type", AddRecordInput{Type: "transfer", Description: "x", Amount: decimal.NewFromInt(1)}},
			{"empty description", AddRecordInput{Type: ledger.TypeIncome, Amount: decimal.NewFromInt(1)}},
			{"zero amount", AddRecordInput{Type: ledger.TypeIncome, Description: "x", Amount: decimal.Zero}},
			{"negative amount", AddRecordInput{Type: ledger.TypeIncome, Description: "x", Amount: decimal.NewFromInt(-5)}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := service.AddRecord(ctx, testApartment, actor, tc.input)
				var domainErr *shared.DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, "INVALID_INPUT", domainErr.Code)
			})
		}
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestGetRecords(t *testing.T) {
	ctx := context.Background()
	repo := new(MockFinanceRecordRepository)
	service := NewFinanceService(repo, zap.NewNop())

	_, err := service.GetRecords(ctx, testApartment, ledger.RecordFilter{Type: "transfer"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	repo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateRecord(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	existing := func() *ledger.RecordWithCreator {
		record := ledger.NewFinanceRecord(testApartment, ledger.TypeExpense,
			"Roof repair", decimal.NewFromInt(3000), "Maintenance", nil, "", actor)
		return &ledger.RecordWithCreator{FinanceRecord: *record, CreatedByName: "Jane Admin"}
	}

	t.Run("nil fields keep the stored value", func(t *testing.T) {
		repo := new(MockFinanceRecordRepository)
		service := NewFinanceService(repo, zap.NewNop())

		stored := existing()
		repo.On("FindByID", ctx, testApartment, stored.ID).Return(stored, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*ledger.FinanceRecord")).Return(nil)

		newAmount := decimal.NewFromInt(3500)
		record, err := service.UpdateRecord(ctx, testApartment, stored.ID, UpdateRecordInput{
			Amount: &newAmount,
		})

		require.NoError(t, err)
		assert.True(t, record.Amount.Equal(newAmount))
		assert.Equal(t, "Roof repair", record.Description)
		assert.Equal(t, "Maintenance", record.Category)
		assert.Equal(t, ledger.TypeExpense, record.Type)
	})

	t.Run("empty category falls back to the default", func(t *testing.T) {
		repo := new(MockFinanceRecordRepository)
		service := NewFinanceService(repo, zap.NewNop())

		stored := existing()
		repo.On("FindByID", ctx, testApartment, stored.ID).Return(stored, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*ledger.FinanceRecord")).Return(nil)

		empty := ""
		record, err := service.UpdateRecord(ctx, testApartment, stored.ID, UpdateRecordInput{
			Category: &empty,
		})

		require.NoError(t, err)
		assert.Equal(t, ledger.DefaultCategory, record.Category)
	})

	t.Run("rejects an invalid replacement type", func(t *testing.T) {
		repo := new(MockFinanceRecordRepository)
		service := NewFinanceService(repo, zap.NewNop())

		stored := existing()
		repo.On("FindByID", ctx, testApartment, stored.ID).Return(stored, nil)

		bad := ledger.RecordType("transfer")
		_, err := service.UpdateRecord(ctx, testApartment, stored.ID, UpdateRecordInput{Type: &bad})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("missing record yields not found", func(t *testing.T) {
		repo := new(MockFinanceRecordRepository)
		service := NewFinanceService(repo, zap.NewNop())

		id := uuid.New()
		repo.On("FindByID", ctx, testApartment, id).Return(nil, shared.ErrNotFound)

		_, err := service.UpdateRecord(ctx, testApartment, id, UpdateRecordInput{})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestGetDetailedReport(t *testing.T) {
	ctx := context.Background()
	repo := new(MockFinanceRecordRepository)
	service := NewFinanceService(repo, zap.NewNop())

	summary := &ledger.Summary{
		TotalIncome:  decimal.NewFromInt(5000),
		TotalExpense: decimal.NewFromInt(2000),
		Balance:      decimal.NewFromInt(3000),
		IncomeCount:  10,
		ExpenseCount: 4,
	}
	income := []ledger.CategoryTotal{{Category: "Dues", Total: decimal.NewFromInt(5000), Count: 10}}
	expense := []ledger.CategoryTotal{{Category: "Maintenance", Total: decimal.NewFromInt(2000), Count: 4}}

	repo.On("Summarize", ctx, testApartment, (*time.Time)(nil), (*time.Time)(nil)).Return(summary, nil)
	repo.On("TotalsByCategory", ctx, testApartment, ledger.TypeIncome, (*time.Time)(nil), (*time.Time)(nil)).Return(income, nil)
	repo.On("TotalsByCategory", ctx, testApartment, ledger.TypeExpense, (*time.Time)(nil), (*time.Time)(nil)).Return(expense, nil)

	report, err := service.GetDetailedReport(ctx, testApartment, nil, nil)

	require.NoError(t, err)
	assert.True(t, report.Summary.Balance.Equal(decimal.NewFromInt(3000)))
	assert.Len(t, report.IncomeByCategory, 1)
	assert.Len(t, report.ExpenseByCategory, 1)
}

func TestGetMonthlyReport(t *testing.T) {
	ctx := context.Background()
	repo := new(MockFinanceRecordRepository)
	service := NewFinanceService(repo, zap.NewNop())

	currentYear := time.Now().Year()
	repo.On("MonthlyTotals", ctx, testApartment, currentYear).Return([]ledger.MonthlyTotal{}, nil)

	report, err := service.GetMonthlyReport(ctx, testApartment, 0)

	require.NoError(t, err)
	assert.Equal(t, currentYear, report.Year)
	repo.AssertCalled(t, "MonthlyTotals", ctx, testApartment, currentYear)
}

func TestDeleteRecord(t *testing.T) {
	ctx := context.Background()
	repo := new(MockFinanceRecordRepository)
	service := NewFinanceService(repo, zap.NewNop())

	id := uuid.New()
	repo.On("Delete", ctx, testApartment, id).Return(shared.ErrNotFound)

	err := service.DeleteRecord(ctx, testApartment, id)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
