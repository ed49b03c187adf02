package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/management360/backend/internal/domain/dues"
)

// FeeModel is the persistence model for the Fee entity.
type FeeModel struct {
	BaseModel
	ApartmentCode string             `gorm:"type:varchar(20);not null;index:idx_fee_apartment"`
	FlatID        uuid.UUID          `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	DueDate       *time.Time         `gorm:"index"`
	Month         *int               `gorm:"index:idx_fee_period"`
	Year          *int               `gorm:"index:idx_fee_period"`
	Description   string             `gorm:"type:text"`
	Status        dues.PaymentStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaidDate      *time.Time
	PaymentMethod *string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (FeeModel) TableName() string {
	return "fees"
}

// ToDomain converts the persistence model to a domain Fee entity.
func (m *FeeModel) ToDomain() *dues.Fee {
	return &dues.Fee{
		BaseEntity:    m.BaseModel.ToDomain(),
		ApartmentCode: m.ApartmentCode,
		FlatID:        m.FlatID,
		Amount:        m.Amount,
		DueDate:       m.DueDate,
		Month:         m.Month,
		Year:          m.Year,
		Description:   m.Description,
		Status:        m.Status,
		PaidDate:      m.PaidDate,
		PaymentMethod: m.PaymentMethod,
	}
}

// FromDomain populates the persistence model from a domain Fee entity.
func (m *FeeModel) FromDomain(f *dues.Fee) {
	m.FromDomainBaseEntity(f.BaseEntity)
	m.ApartmentCode = f.ApartmentCode
	m.FlatID = f.FlatID
	m.Amount = f.Amount
	m.DueDate = f.DueDate
	m.Month = f.Month
	m.Year = f.Year
	m.Description = f.Description
	m.Status = f.Status
	m.PaidDate = f.PaidDate
	m.PaymentMethod = f.PaymentMethod
}

// FeeModelFromDomain creates a new persistence model from a domain Fee.
func FeeModelFromDomain(f *dues.Fee) *FeeModel {
	m := &FeeModel{}
	m.FromDomain(f)
	return m
}
