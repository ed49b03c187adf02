// Package dues models the monthly fee obligations assigned to flats and
// the payment-status transitions that keep them in sync with the ledger.
package dues

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/management360/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the payment state of a fee
type PaymentStatus string

const (
	StatusPending         PaymentStatus = "pending"
	StatusPaid            PaymentStatus = "paid"
	StatusOverdue         PaymentStatus = "overdue"
	StatusPendingApproval PaymentStatus = "pending_approval"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusOverdue, StatusPendingApproval:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// IsOutstanding reports whether a fee in this status still counts as debt.
// Anything other than paid is outstanding.
func (s PaymentStatus) IsOutstanding() bool {
	return s != StatusPaid
}

// DefaultPaymentMethod is recorded when a fee is settled without an
// explicit method.
const DefaultPaymentMethod = "Cash"

// Fee is one billing period's due obligation for a single flat.
type Fee struct {
	shared.BaseEntity
	ApartmentCode string          `json:"apartmentCode"`
	FlatID        uuid.UUID       `json:"flatId"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       *time.Time      `json:"dueDate,omitempty"`
	Month         *int            `json:"month,omitempty"`
	Year          *int            `json:"year,omitempty"`
	Description   string          `json:"description,omitempty"`
	Status        PaymentStatus   `json:"status"`
	PaidDate      *time.Time      `json:"paidDate,omitempty"`
	PaymentMethod *string         `json:"paymentMethod,omitempty"`
}

// NewFee creates a pending fee for the given flat.
func NewFee(apartmentCode string, flatID uuid.UUID, amount decimal.Decimal, dueDate *time.Time, month, year *int, description string) *Fee {
	return &Fee{
		BaseEntity:    shared.NewBaseEntity(),
		ApartmentCode: apartmentCode,
		FlatID:        flatID,
		Amount:        amount,
		DueDate:       dueDate,
		Month:         month,
		Year:          year,
		Description:   description,
		Status:        StatusPending,
	}
}

// Transition moves the fee to the given status and keeps the payment
// fields consistent: paid date exists only while the fee is paid, the
// payment method only while it is paid or awaiting approval. Moving a
// paid fee back to pending therefore erases its payment trail.
//
// It returns true when the transition newly settles the fee, i.e. the
// caller must emit a ledger entry. Re-settling an already-paid fee
// returns false so the ledger is never double-credited.
func (f *Fee) Transition(status PaymentStatus, paymentMethod string) (settled bool, err error) {
	if !status.IsValid() {
		return false, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("invalid payment status %q", status))
	}

	wasPaid := f.Status == StatusPaid
	f.Status = status

	switch status {
	case StatusPaid:
		now := time.Now()
		f.PaidDate = &now
		method := paymentMethod
		if method == "" {
			method = DefaultPaymentMethod
		}
		f.PaymentMethod = &method
	case StatusPendingApproval:
		f.PaidDate = nil
		method := paymentMethod
		if method == "" {
			method = DefaultPaymentMethod
		}
		f.PaymentMethod = &method
	default:
		f.PaidDate = nil
		f.PaymentMethod = nil
	}

	f.Touch()
	return status == StatusPaid && !wasPaid, nil
}
