// Package registry holds the flat registry: the source of truth for which
// dwelling units exist within an apartment.
package registry

import (
	"strconv"

	"github.com/management360/backend/internal/domain/shared"
)

// Flat represents a single dwelling unit within an apartment.
// Flat numbers are unique per apartment code.
type Flat struct {
	shared.BaseEntity
	ApartmentCode string `json:"apartmentCode"`
	FlatNumber    string `json:"flatNumber"`
	Block         string `json:"block,omitempty"`
	Floor         *int   `json:"floor,omitempty"`
	ResidentCount int    `json:"residentCount"`
}

// NewFlat creates a flat for the given apartment.
func NewFlat(apartmentCode, flatNumber, block string, floor *int, residentCount int) *Flat {
	return &Flat{
		BaseEntity:    shared.NewBaseEntity(),
		ApartmentCode: apartmentCode,
		FlatNumber:    flatNumber,
		Block:         block,
		Floor:         floor,
		ResidentCount: residentCount,
	}
}

// GenerateSequence builds flats numbered 1..count in block "A",
// four flats per floor. Used when an admin bootstraps an apartment.
func GenerateSequence(apartmentCode string, count int) []*Flat {
	flats := make([]*Flat, 0, count)
	for i := 1; i <= count; i++ {
		floor := (i + 3) / 4
		flats = append(flats, NewFlat(apartmentCode, strconv.Itoa(i), "A", &floor, 0))
	}
	return flats
}
