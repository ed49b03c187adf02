package dues

import (
	"context"

	"github.com/google/uuid"
	"github.com/management360/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// FeeFilter narrows fee list queries. Zero-value fields are ignored;
// supplied fields are ANDed together.
type FeeFilter struct {
	Month  *int
	Year   *int
	Status PaymentStatus
	FlatID *uuid.UUID
}

// FeeWithFlat is a fee joined with the display fields of its flat.
type FeeWithFlat struct {
	Fee
	FlatNumber string `json:"flatNumber"`
	Block      string `json:"block,omitempty"`
	Floor      *int   `json:"floor,omitempty"`
}

// FlatDebt is the per-flat debt aggregate view.
type FlatDebt struct {
	FlatID      uuid.UUID       `json:"flatId"`
	FlatNumber  string          `json:"flatNumber"`
	Block       string          `json:"block,omitempty"`
	Floor       *int            `json:"floor,omitempty"`
	UnpaidCount int64           `json:"unpaidCount"`
	TotalDebt   decimal.Decimal `json:"totalDebt"`
}

// DebtBreakdown summarizes one flat's paid and outstanding fees.
type DebtBreakdown struct {
	TotalDebt   decimal.Decimal `json:"totalDebt"`
	UnpaidCount int64           `json:"unpaidCount"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	PaidCount   int64           `json:"paidCount"`
}

// DebtSummary is the apartment-wide collection picture.
type DebtSummary struct {
	DebtorCount    int64           `json:"debtorCount"`
	TotalDebt      decimal.Decimal `json:"totalDebt"`
	TotalCollected decimal.Decimal `json:"totalCollected"`
}

// FeeRepository defines persistence operations for fees, all scoped by
// apartment code.
type FeeRepository interface {
	Save(ctx context.Context, fee *Fee) error
	// SaveBatch inserts all fees inside a single transaction: either
	// every row is written or none are.
	SaveBatch(ctx context.Context, fees []*Fee) error
	// SaveWithLedgerEntry persists the fee and appends the given ledger
	// record atomically. Used when a fee transitions to paid.
	SaveWithLedgerEntry(ctx context.Context, fee *Fee, entry *ledger.FinanceRecord) error
	FindByID(ctx context.Context, apartmentCode string, id uuid.UUID) (*FeeWithFlat, error)
	FindAll(ctx context.Context, apartmentCode string, filter FeeFilter) ([]FeeWithFlat, error)
	// ExistsForPeriod reports whether any fee row exists for the given
	// billing period in the apartment.
	ExistsForPeriod(ctx context.Context, apartmentCode string, month, year int) (bool, error)
	Delete(ctx context.Context, apartmentCode string, id uuid.UUID) error

	// Debt aggregation views.
	DebtForFlat(ctx context.Context, apartmentCode string, flatID uuid.UUID) (*DebtBreakdown, error)
	UnpaidForFlat(ctx context.Context, apartmentCode string, flatID uuid.UUID) ([]Fee, error)
	DebtorFlats(ctx context.Context, apartmentCode string) ([]FlatDebt, error)
	DebtSummary(ctx context.Context, apartmentCode string) (*DebtSummary, error)
}
