package parking

import (
	"context"

	"github.com/google/uuid"
)

// SlotWithVehicle joins a slot with the flat and plate occupying it.
type SlotWithVehicle struct {
	ParkingSlot
	FlatNumber   string `json:"flatNumber,omitempty"`
	PlateNumber  string `json:"plateNumber,omitempty"`
	OwnerName    string `json:"ownerName,omitempty"`
	VehicleModel string `json:"vehicleModel,omitempty"`
}

// OccupancyFilter narrows slot listings.
type OccupancyFilter struct {
	// Occupied filters by occupancy when set.
	Occupied *bool
	Floor    *int
}

// OccupancySummary counts the lot's slots by state.
type OccupancySummary struct {
	Total    int64 `json:"total"`
	Occupied int64 `json:"occupied"`
	Empty    int64 `json:"empty"`
}

// SlotRepository defines persistence operations for parking slots.
type SlotRepository interface {
	Save(ctx context.Context, slot *ParkingSlot) error
	SaveBatch(ctx context.Context, slots []*ParkingSlot) error
	FindByID(ctx context.Context, apartmentCode string, id uuid.UUID) (*SlotWithVehicle, error)
	FindByNumber(ctx context.Context, apartmentCode, slotNumber string) (*ParkingSlot, error)
	FindAll(ctx context.Context, apartmentCode string, filter OccupancyFilter) ([]SlotWithVehicle, error)
	Summary(ctx context.Context, apartmentCode string) (*OccupancySummary, error)
	Delete(ctx context.Context, apartmentCode string, id uuid.UUID) error
}

// PlateWithFlat joins a plate with its flat's display fields.
type PlateWithFlat struct {
	Plate
	FlatNumber string `json:"flatNumber,omitempty"`
	Block      string `json:"block,omitempty"`
	Floor      *int   `json:"floor,omitempty"`
}

// PlateRepository defines persistence operations for vehicle plates.
type PlateRepository interface {
	Save(ctx context.Context, plate *Plate) error
	FindByID(ctx context.Context, apartmentCode string, id uuid.UUID) (*PlateWithFlat, error)
	FindByNumber(ctx context.Context, apartmentCode, plateNumber string) (*Plate, error)
	FindAll(ctx context.Context, apartmentCode string) ([]PlateWithFlat, error)
	Delete(ctx context.Context, apartmentCode string, id uuid.UUID) error
}
