package parking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/management360/backend/internal/domain/parking"
	"github.com/management360/backend/internal/domain/registry"
	"github.com/management360/backend/internal/domain/shared"
)

// AddPlateInput contains input for registering a vehicle plate
type AddPlateInput struct {
	PlateNumber  string
	OwnerName    string
	FlatID       *uuid.UUID
	VehicleModel string
	Color        string
}

// UpdatePlateInput describes a partial plate update: nil fields keep the
// stored value.
type UpdatePlateInput struct {
	PlateNumber  *string
	OwnerName    *string
	FlatID       *uuid.UUID
	VehicleModel *string
	Color        *string
}

// PlateService handles vehicle plate registration
type PlateService struct {
	plateRepo parking.PlateRepository
	flatRepo  registry.FlatRepository
	logger    *zap.Logger
}

// NewPlateService creates a new plate service
func NewPlateService(plateRepo parking.PlateRepository, flatRepo registry.FlatRepository, logger *zap.Logger) *PlateService {
	return &PlateService{plateRepo: plateRepo, flatRepo: flatRepo, logger: logger}
}

// Add registers a plate. Plate numbers are normalized and unique per
// apartment; the optional flat must belong to the apartment.
func (s *PlateService) Add(ctx context.Context, apartmentCode string, input AddPlateInput) (*parking.Plate, error) {
	plateNumber := parking.NormalizePlateNumber(input.PlateNumber)
	if plateNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Plate number is required")
	}

	if _, err := s.plateRepo.FindByNumber(ctx, apartmentCode, plateNumber); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "This plate is already registered")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if input.FlatID != nil {
		if _, err := s.flatRepo.FindByID(ctx, apartmentCode, *input.FlatID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND", "Flat not found")
			}
			return nil, err
		}
	}

	plate := parking.NewPlate(apartmentCode, plateNumber, input.OwnerName, input.FlatID, input.VehicleModel, input.Color)
	if err := s.plateRepo.Save(ctx, plate); err != nil {
		s.logger.Error("Failed to save plate", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Plate registered",
		zap.String("apartment_code", apartmentCode),
		zap.String("plate_number", plateNumber))
	return plate, nil
}

// List returns the apartment's plates joined with flat display fields
func (s *PlateService) List(ctx context.Context, apartmentCode string) ([]parking.PlateWithFlat, error) {
	return s.plateRepo.FindAll(ctx, apartmentCode)
}

// Get returns one plate by ID
func (s *PlateService) Get(ctx context.Context, apartmentCode string, id uuid.UUID) (*parking.PlateWithFlat, error) {
	plate, err := s.plateRepo.FindByID(ctx, apartmentCode, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Plate not found")
		}
		return nil, err
	}
	return plate, nil
}

// Update applies a partial update to a plate
func (s *PlateService) Update(ctx context.Context, apartmentCode string, id uuid.UUID, input UpdatePlateInput) (*parking.Plate, error) {
	existing, err := s.plateRepo.FindByID(ctx, apartmentCode, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Plate not found")
		}
		return nil, err
	}

	plate := existing.Plate
	if input.PlateNumber != nil {
		plateNumber := parking.NormalizePlateNumber(*input.PlateNumber)
		if plateNumber == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Plate number cannot be empty")
		}
		if plateNumber != plate.PlateNumber {
			if _, err := s.plateRepo.FindByNumber(ctx, apartmentCode, plateNumber); err == nil {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "This plate is already registered")
			} else if !errors.Is(err, shared.ErrNotFound) {
				return nil, err
			}
		}
		plate.PlateNumber = plateNumber
	}
	if input.OwnerName != nil {
		plate.OwnerName = *input.OwnerName
	}
	if input.FlatID != nil {
		if _, err := s.flatRepo.FindByID(ctx, apartmentCode, *input.FlatID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND", "Flat not found")
			}
			return nil, err
		}
		plate.FlatID = input.FlatID
	}
	if input.VehicleModel != nil {
		plate.VehicleModel = *input.VehicleModel
	}
	if input.Color != nil {
		plate.Color = *input.Color
	}
	plate.Touch()

	if err := s.plateRepo.Save(ctx, &plate); err != nil {
		s.logger.Error("Failed to update plate", zap.Error(err))
		return nil, err
	}
	return &plate, nil
}

// Delete removes a plate
func (s *PlateService) Delete(ctx context.Context, apartmentCode string, id uuid.UUID) error {
	if err := s.plateRepo.Delete(ctx, apartmentCode, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Plate not found")
		}
		return err
	}
	return nil
}
