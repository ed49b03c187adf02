package registry

import (
	"context"

	"github.com/google/uuid"
)

// FlatRepository defines persistence operations for flats.
// Every method is scoped by apartment code; implementations must never
// return rows belonging to another apartment.
type FlatRepository interface {
	Save(ctx context.Context, flat *Flat) error
	SaveBatch(ctx context.Context, flats []*Flat) error
	FindByID(ctx context.Context, apartmentCode string, id uuid.UUID) (*Flat, error)
	FindByNumber(ctx context.Context, apartmentCode, flatNumber string) (*Flat, error)
	FindAll(ctx context.Context, apartmentCode string) ([]Flat, error)
	CountResidents(ctx context.Context, flatID uuid.UUID) (int64, error)
	Delete(ctx context.Context, apartmentCode string, id uuid.UUID) error
}
