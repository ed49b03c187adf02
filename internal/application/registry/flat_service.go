// Package registry implements flat registry management.
package registry

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/management360/backend/internal/domain/registry"
	"github.com/management360/backend/internal/domain/shared"
)

// CreateFlatInput contains input for creating a single flat
type CreateFlatInput struct {
	FlatNumber    string
	Block         string
	Floor         *int
	ResidentCount int
}

// UpdateFlatInput describes a partial flat update: nil fields keep the
// stored value.
type UpdateFlatInput struct {
	FlatNumber    *string
	Block         *string
	Floor         *int
	ResidentCount *int
}

// FlatWithResidents is a flat joined with its registered account count.
type FlatWithResidents struct {
	registry.Flat
	RegisteredResidents int64 `json:"registeredResidents"`
}

// FlatService handles flat registry operations
type FlatService struct {
	flatRepo registry.FlatRepository
	logger   *zap.Logger
}

// NewFlatService creates a new flat service
func NewFlatService(flatRepo registry.FlatRepository, logger *zap.Logger) *FlatService {
	return &FlatService{flatRepo: flatRepo, logger: logger}
}

// List returns every flat of the apartment
func (s *FlatService) List(ctx context.Context, apartmentCode string) ([]registry.Flat, error) {
	return s.flatRepo.FindAll(ctx, apartmentCode)
}

// Get returns one flat with its registered resident account count
func (s *FlatService) Get(ctx context.Context, apartmentCode string, id uuid.UUID) (*FlatWithResidents, error) {
	flat, err := s.flatRepo.FindByID(ctx, apartmentCode, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Flat not found")
		}
		return nil, err
	}

	residents, err := s.flatRepo.CountResidents(ctx, flat.ID)
	if err != nil {
		return nil, err
	}

	return &FlatWithResidents{Flat: *flat, RegisteredResidents: residents}, nil
}

// Create adds a flat to the apartment. Flat numbers are unique per apartment.
func (s *FlatService) Create(ctx context.Context, apartmentCode string, input CreateFlatInput) (*registry.Flat, error) {
	flatNumber := strings.TrimSpace(input.FlatNumber)
	if flatNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Flat number is required")
	}

	if _, err := s.flatRepo.FindByNumber(ctx, apartmentCode, flatNumber); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A flat with this number already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	flat := registry.NewFlat(apartmentCode, flatNumber, input.Block, input.Floor, input.ResidentCount)
	if err := s.flatRepo.Save(ctx, flat); err != nil {
		s.logger.Error("Failed to save flat", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Flat created",
		zap.String("apartment_code", apartmentCode),
		zap.String("flat_number", flatNumber))
	return flat, nil
}

// Generate bulk-creates flats numbered 1..count for a fresh apartment.
// It refuses to run once any flat exists to avoid colliding numbers.
func (s *FlatService) Generate(ctx context.Context, apartmentCode string, count int) ([]registry.Flat, error) {
	if count <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Flat count must be positive")
	}

	existing, err := s.flatRepo.FindAll(ctx, apartmentCode)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Apartment already has flats")
	}

	flats := registry.GenerateSequence(apartmentCode, count)
	if err := s.flatRepo.SaveBatch(ctx, flats); err != nil {
		s.logger.Error("Failed to generate flats", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Flats generated",
		zap.String("apartment_code", apartmentCode),
		zap.Int("count", count))

	result := make([]registry.Flat, len(flats))
	for i, flat := range flats {
		result[i] = *flat
	}
	return result, nil
}

// Update applies a partial update to a flat
func (s *FlatService) Update(ctx context.Context, apartmentCode string, id uuid.UUID, input UpdateFlatInput) (*registry.Flat, error) {
	flat, err := s.flatRepo.FindByID(ctx, apartmentCode, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Flat not found")
		}
		return nil, err
	}

	if input.FlatNumber != nil {
		flatNumber := strings.TrimSpace(*input.FlatNumber)
		if flatNumber == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Flat number cannot be empty")
		}
		if flatNumber != flat.FlatNumber {
			if _, err := s.flatRepo.FindByNumber(ctx, apartmentCode, flatNumber); err == nil {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "A flat with this number already exists")
			} else if !errors.Is(err, shared.ErrNotFound) {
				return nil, err
			}
		}
		flat.FlatNumber = flatNumber
	}
	if input.Block != nil {
		flat.Block = *input.Block
	}
	if input.Floor != nil {
		flat.Floor = input.Floor
	}
	if input.ResidentCount != nil {
		if *input.ResidentCount < 0 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Resident count cannot be negative")
		}
		flat.ResidentCount = *input.ResidentCount
	}
	flat.Touch()

	if err := s.flatRepo.Save(ctx, flat); err != nil {
		s.logger.Error("Failed to update flat", zap.Error(err))
		return nil, err
	}
	return flat, nil
}

// Delete removes a flat from the registry. A flat with registered
// resident accounts cannot be removed.
func (s *FlatService) Delete(ctx context.Context, apartmentCode string, id uuid.UUID) error {
	residents, err := s.flatRepo.CountResidents(ctx, id)
	if err != nil {
		return err
	}
	if residents > 0 {
		return shared.NewDomainError("INVALID_STATE", "Flat has registered residents and cannot be deleted")
	}

	if err := s.flatRepo.Delete(ctx, apartmentCode, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Flat not found")
		}
		return err
	}

	s.logger.Info("Flat deleted",
		zap.String("apartment_code", apartmentCode),
		zap.String("flat_id", id.String()))
	return nil
}
