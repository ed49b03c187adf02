package dues

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/management360/backend/internal/domain/dues"
	"github.com/management360/backend/internal/domain/registry"
)

// CreateDuesPeriodInput contains input for bulk-billing a month
type CreateDuesPeriodInput struct {
	Month       int
	Year        int
	Amount      decimal.Decimal
	DueDate     *time.Time
	Description string
}

// DuesPeriodResult summarizes a created billing period
type DuesPeriodResult struct {
	Period     string          `json:"period"`
	TotalFlats int             `json:"totalFlats"`
	Amount     decimal.Decimal `json:"amount"`
}

// AddFeeInput contains input for an ad-hoc fee
type AddFeeInput struct {
	FlatID      uuid.UUID
	Amount      decimal.Decimal
	DueDate     *time.Time
	Month       *int
	Year        *int
	Description string
}

// UpdateStatusInput contains input for a payment-status transition
type UpdateStatusInput struct {
	Status        dues.PaymentStatus
	PaymentMethod string
}

// FlatDebtReport is one flat's full debt picture
type FlatDebtReport struct {
	Flat        registry.Flat   `json:"flat"`
	TotalDebt   decimal.Decimal `json:"totalDebt"`
	UnpaidCount int64           `json:"unpaidCount"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	PaidCount   int64           `json:"paidCount"`
	UnpaidFees  []dues.Fee      `json:"unpaidFees"`
}
