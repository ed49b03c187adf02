// Package parking models the building's parking slots and registered
// vehicle plates.
package parking

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/management360/backend/internal/domain/shared"
)

// SlotType distinguishes regular slots from reserved ones
type SlotType string

const (
	SlotTypeNormal   SlotType = "normal"
	SlotTypeDisabled SlotType = "disabled"
	SlotTypeVisitor  SlotType = "visitor"
)

// ParkingSlot is one parking space within the apartment's lot.
// When occupied it points at the flat and plate using it.
type ParkingSlot struct {
	shared.BaseEntity
	ApartmentCode string     `json:"apartmentCode"`
	SlotNumber    string     `json:"slotNumber"`
	Floor         *int       `json:"floor,omitempty"`
	Block         string     `json:"block,omitempty"`
	Type          SlotType   `json:"type"`
	IsOccupied    bool       `json:"isOccupied"`
	FlatID        *uuid.UUID `json:"flatId,omitempty"`
	PlateID       *uuid.UUID `json:"plateId,omitempty"`
}

// NewParkingSlot creates an empty slot, defaulting to the normal type.
func NewParkingSlot(apartmentCode, slotNumber string, floor *int, block string, slotType SlotType) *ParkingSlot {
	if slotType == "" {
		slotType = SlotTypeNormal
	}
	return &ParkingSlot{
		BaseEntity:    shared.NewBaseEntity(),
		ApartmentCode: apartmentCode,
		SlotNumber:    slotNumber,
		Floor:         floor,
		Block:         block,
		Type:          slotType,
	}
}

// Assign parks a vehicle in the slot.
func (s *ParkingSlot) Assign(flatID, plateID uuid.UUID) error {
	if s.IsOccupied {
		return shared.NewDomainError("INVALID_STATE", "Slot is already occupied")
	}
	s.IsOccupied = true
	s.FlatID = &flatID
	s.PlateID = &plateID
	s.Touch()
	return nil
}

// Release removes the parked vehicle from the slot.
func (s *ParkingSlot) Release() {
	s.IsOccupied = false
	s.FlatID = nil
	s.PlateID = nil
	s.Touch()
}

// GenerateSlots builds empty normal slots numbered 1..count. Used when an
// admin bootstraps an apartment.
func GenerateSlots(apartmentCode string, count int) []*ParkingSlot {
	slots := make([]*ParkingSlot, 0, count)
	for i := 1; i <= count; i++ {
		slots = append(slots, NewParkingSlot(apartmentCode, strconv.Itoa(i), nil, "", SlotTypeNormal))
	}
	return slots
}
