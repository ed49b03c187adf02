package models

import (
	"github.com/google/uuid"

	"github.com/management360/backend/internal/domain/parking"
)

// ParkingSlotModel is the persistence model for the ParkingSlot entity.
type ParkingSlotModel struct {
	BaseModel
	ApartmentCode string           `gorm:"type:varchar(20);not null;uniqueIndex:idx_slot_apartment_number,priority:1"`
	SlotNumber    string           `gorm:"type:varchar(20);not null;uniqueIndex:idx_slot_apartment_number,priority:2"`
	Floor         *int
	Block         string           `gorm:"type:varchar(20)"`
	Type          parking.SlotType `gorm:"type:varchar(10);not null;default:'normal'"`
	IsOccupied    bool             `gorm:"not null;default:false;index"`
	FlatID        *uuid.UUID       `gorm:"type:uuid;index"`
	PlateID       *uuid.UUID       `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ParkingSlotModel) TableName() string {
	return "parking_slots"
}

// ToDomain converts the persistence model to a domain ParkingSlot entity.
func (m *ParkingSlotModel) ToDomain() *parking.ParkingSlot {
	return &parking.ParkingSlot{
		BaseEntity:    m.BaseModel.ToDomain(),
		ApartmentCode: m.ApartmentCode,
		SlotNumber:    m.SlotNumber,
		Floor:         m.Floor,
		Block:         m.Block,
		Type:          m.Type,
		IsOccupied:    m.IsOccupied,
		FlatID:        m.FlatID,
		PlateID:       m.PlateID,
	}
}

// FromDomain populates the persistence model from a domain ParkingSlot entity.
func (m *ParkingSlotModel) FromDomain(s *parking.ParkingSlot) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.ApartmentCode = s.ApartmentCode
	m.SlotNumber = s.SlotNumber
	m.Floor = s.Floor
	m.Block = s.Block
	m.Type = s.Type
	m.IsOccupied = s.IsOccupied
	m.FlatID = s.FlatID
	m.PlateID = s.PlateID
}

// ParkingSlotModelFromDomain creates a new persistence model from a domain ParkingSlot.
func ParkingSlotModelFromDomain(s *parking.ParkingSlot) *ParkingSlotModel {
	m := &ParkingSlotModel{}
	m.FromDomain(s)
	return m
}

// PlateModel is the persistence model for the Plate entity.
type PlateModel struct {
	BaseModel
	ApartmentCode string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_plate_apartment_number,priority:1"`
	PlateNumber   string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_plate_apartment_number,priority:2"`
	OwnerName     string     `gorm:"type:varchar(200)"`
	FlatID        *uuid.UUID `gorm:"type:uuid;index"`
	VehicleModel  string     `gorm:"type:varchar(100)"`
	Color         string     `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (PlateModel) TableName() string {
	return "plates"
}

// ToDomain converts the persistence model to a domain Plate entity.
func (m *PlateModel) ToDomain() *parking.Plate {
	return &parking.Plate{
		BaseEntity:    m.BaseModel.ToDomain(),
		ApartmentCode: m.ApartmentCode,
		PlateNumber:   m.PlateNumber,
		OwnerName:     m.OwnerName,
		FlatID:        m.FlatID,
		VehicleModel:  m.VehicleModel,
		Color:         m.Color,
	}
}

// FromDomain populates the persistence model from a domain Plate entity.
func (m *PlateModel) FromDomain(p *parking.Plate) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.ApartmentCode = p.ApartmentCode
	m.PlateNumber = p.PlateNumber
	m.OwnerName = p.OwnerName
	m.FlatID = p.FlatID
	m.VehicleModel = p.VehicleModel
	m.Color = p.Color
}

// PlateModelFromDomain creates a new persistence model from a domain Plate.
func PlateModelFromDomain(p *parking.Plate) *PlateModel {
	m := &PlateModel{}
	m.FromDomain(p)
	return m
}
