package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/management360/backend/internal/domain/ledger"
)

// FinanceRecordModel is the persistence model for the FinanceRecord entity.
type FinanceRecordModel struct {
	BaseModel
	ApartmentCode   string            `gorm:"type:varchar(20);not null;index:idx_finance_apartment"`
	Type            ledger.RecordType `gorm:"type:varchar(10);not null;index"`
	Description     string            `gorm:"type:text;not null"`
	Amount          decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Category        string            `gorm:"type:varchar(50);not null;default:'Other';index"`
	TransactionDate time.Time         `gorm:"not null;index"`
	ReceiptURL      string            `gorm:"type:text"`
	FeeID           *uuid.UUID        `gorm:"type:uuid;index"`
	CreatedBy       uuid.UUID         `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (FinanceRecordModel) TableName() string {
	return "finance_records"
}

// ToDomain converts the persistence model to a domain FinanceRecord entity.
func (m *FinanceRecordModel) ToDomain() *ledger.FinanceRecord {
	return &ledger.FinanceRecord{
		BaseEntity:      m.BaseModel.ToDomain(),
		ApartmentCode:   m.ApartmentCode,
		Type:            m.Type,
		Description:     m.Description,
		Amount:          m.Amount,
		Category:        m.Category,
		TransactionDate: m.TransactionDate,
		ReceiptURL:      m.ReceiptURL,
		FeeID:           m.FeeID,
		CreatedBy:       m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain FinanceRecord entity.
func (m *FinanceRecordModel) FromDomain(r *ledger.FinanceRecord) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.ApartmentCode = r.ApartmentCode
	m.Type = r.Type
	m.Description = r.Description
	m.Amount = r.Amount
	m.Category = r.Category
	m.TransactionDate = r.TransactionDate
	m.ReceiptURL = r.ReceiptURL
	m.FeeID = r.FeeID
	m.CreatedBy = r.CreatedBy
}

// FinanceRecordModelFromDomain creates a new persistence model from a domain FinanceRecord.
func FinanceRecordModelFromDomain(r *ledger.FinanceRecord) *FinanceRecordModel {
	m := &FinanceRecordModel{}
	m.FromDomain(r)
	return m
}
