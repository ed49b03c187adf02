package parking

import (
	"strings"

	"github.com/google/uuid"
	"github.com/management360/backend/internal/domain/shared"
)

// Plate is a registered vehicle plate, unique per apartment.
type Plate struct {
	shared.BaseEntity
	ApartmentCode string     `json:"apartmentCode"`
	PlateNumber   string     `json:"plateNumber"`
	OwnerName     string     `json:"ownerName,omitempty"`
	FlatID        *uuid.UUID `json:"flatId,omitempty"`
	VehicleModel  string     `json:"vehicleModel,omitempty"`
	Color         string     `json:"color,omitempty"`
}

// NormalizePlateNumber canonicalizes a plate for storage and comparison.
func NormalizePlateNumber(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}

// NewPlate creates a plate with its number normalized.
func NewPlate(apartmentCode, plateNumber, ownerName string, flatID *uuid.UUID, vehicleModel, color string) *Plate {
	return &Plate{
		BaseEntity:    shared.NewBaseEntity(),
		ApartmentCode: apartmentCode,
		PlateNumber:   NormalizePlateNumber(plateNumber),
		OwnerName:     ownerName,
		FlatID:        flatID,
		VehicleModel:  vehicleModel,
		Color:         color,
	}
}
