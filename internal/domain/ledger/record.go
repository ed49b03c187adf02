// Package ledger models the building's income/expense book and the
// aggregate reports derived from it.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/management360/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RecordType distinguishes income from expense entries
type RecordType string

const (
	TypeIncome  RecordType = "income"
	TypeExpense RecordType = "expense"
)

// IsValid checks if the type is a valid RecordType
func (t RecordType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

// String returns the string representation of RecordType
func (t RecordType) String() string {
	return string(t)
}

// DefaultCategory is used when an entry is filed without a category.
const DefaultCategory = "Other"

// DuesCategory marks ledger entries generated from fee payments.
const DuesCategory = "Dues"

// FinanceRecord is one entry in the building's financial ledger.
// FeeID links entries generated from a fee payment back to their fee.
type FinanceRecord struct {
	shared.BaseEntity
	ApartmentCode   string          `json:"apartmentCode"`
	Type            RecordType      `json:"type"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	TransactionDate time.Time       `json:"transactionDate"`
	ReceiptURL      string          `json:"receiptUrl,omitempty"`
	FeeID           *uuid.UUID      `json:"feeId,omitempty"`
	CreatedBy       uuid.UUID       `json:"createdBy"`
}

// NewFinanceRecord creates a ledger entry, applying the category and
// date defaults.
func NewFinanceRecord(apartmentCode string, recordType RecordType, description string, amount decimal.Decimal, category string, transactionDate *time.Time, receiptURL string, createdBy uuid.UUID) *FinanceRecord {
	if category == "" {
		category = DefaultCategory
	}
	date := time.Now()
	if transactionDate != nil {
		date = *transactionDate
	}
	return &FinanceRecord{
		BaseEntity:      shared.NewBaseEntity(),
		ApartmentCode:   apartmentCode,
		Type:            recordType,
		Description:     description,
		Amount:          amount,
		Category:        category,
		TransactionDate: date,
		ReceiptURL:      receiptURL,
		CreatedBy:       createdBy,
	}
}

// NewDuesPayment creates the income entry emitted when a fee is paid.
// Amount and apartment are taken from the fee; the description names the
// flat so the entry stays readable on its own.
func NewDuesPayment(apartmentCode, flatNumber string, feeID uuid.UUID, amount decimal.Decimal, createdBy uuid.UUID) *FinanceRecord {
	record := NewFinanceRecord(
		apartmentCode,
		TypeIncome,
		"Dues payment - Flat "+flatNumber,
		amount,
		DuesCategory,
		nil,
		"",
		createdBy,
	)
	record.FeeID = &feeID
	return record
}
