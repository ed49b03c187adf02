package models

import (
	"github.com/management360/backend/internal/domain/registry"
)

// FlatModel is the persistence model for the Flat entity.
type FlatModel struct {
	BaseModel
	ApartmentCode string `gorm:"type:varchar(20);not null;uniqueIndex:idx_flat_apartment_number,priority:1"`
	FlatNumber    string `gorm:"type:varchar(20);not null;uniqueIndex:idx_flat_apartment_number,priority:2"`
	Block         string `gorm:"type:varchar(20)"`
	Floor         *int
	ResidentCount int `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (FlatModel) TableName() string {
	return "flats"
}

// ToDomain converts the persistence model to a domain Flat entity.
func (m *FlatModel) ToDomain() *registry.Flat {
	return &registry.Flat{
		BaseEntity:    m.BaseModel.ToDomain(),
		ApartmentCode: m.ApartmentCode,
		FlatNumber:    m.FlatNumber,
		Block:         m.Block,
		Floor:         m.Floor,
		ResidentCount: m.ResidentCount,
	}
}

// FromDomain populates the persistence model from a domain Flat entity.
func (m *FlatModel) FromDomain(f *registry.Flat) {
	m.FromDomainBaseEntity(f.BaseEntity)
	m.ApartmentCode = f.ApartmentCode
	m.FlatNumber = f.FlatNumber
	m.Block = f.Block
	m.Floor = f.Floor
	m.ResidentCount = f.ResidentCount
}

// FlatModelFromDomain creates a new persistence model from a domain Flat.
func FlatModelFromDomain(f *registry.Flat) *FlatModel {
	m := &FlatModel{}
	m.FromDomain(f)
	return m
}
