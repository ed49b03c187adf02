package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordFilter narrows ledger list queries. Date bounds are inclusive.
type RecordFilter struct {
	Type      RecordType
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
}

// RecordWithCreator is a ledger entry joined with the creator's name.
type RecordWithCreator struct {
	FinanceRecord
	CreatedByName string `json:"createdByName,omitempty"`
}

// Summary aggregates a date window of the ledger.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`
	IncomeCount  int64           `json:"incomeCount"`
	ExpenseCount int64           `json:"expenseCount"`
}

// CategoryTotal is one category's slice of a summary window.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}

// MonthlyTotal is one calendar month's income/expense rollup.
type MonthlyTotal struct {
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// FinanceRecordRepository defines persistence operations for ledger
// entries, all scoped by apartment code.
type FinanceRecordRepository interface {
	Save(ctx context.Context, record *FinanceRecord) error
	FindByID(ctx context.Context, apartmentCode string, id uuid.UUID) (*RecordWithCreator, error)
	FindAll(ctx context.Context, apartmentCode string, filter RecordFilter) ([]RecordWithCreator, error)
	Delete(ctx context.Context, apartmentCode string, id uuid.UUID) error

	Summarize(ctx context.Context, apartmentCode string, start, end *time.Time) (*Summary, error)
	TotalsByCategory(ctx context.Context, apartmentCode string, recordType RecordType, start, end *time.Time) ([]CategoryTotal, error)
	MonthlyTotals(ctx context.Context, apartmentCode string, year int) ([]MonthlyTotal, error)
}
