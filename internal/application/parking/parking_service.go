// Package parking implements parking lot and vehicle plate management.
package parking

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/management360/backend/internal/domain/parking"
	"github.com/management360/backend/internal/domain/registry"
	"github.com/management360/backend/internal/domain/shared"
)

// AddSlotInput contains input for creating a parking slot
type AddSlotInput struct {
	SlotNumber string
	Floor      *int
	Block      string
	Type       parking.SlotType
}

// AssignVehicleInput contains input for parking a vehicle in a slot
type AssignVehicleInput struct {
	FlatID  uuid.UUID
	PlateID uuid.UUID
}

// SlotListing pairs the slot slice with the lot's occupancy summary.
type SlotListing struct {
	Slots   []parking.SlotWithVehicle `json:"slots"`
	Summary parking.OccupancySummary  `json:"summary"`
}

// ParkingService handles parking slot operations
type ParkingService struct {
	slotRepo  parking.SlotRepository
	plateRepo parking.PlateRepository
	flatRepo  registry.FlatRepository
	logger    *zap.Logger
}

// NewParkingService creates a new parking service
func NewParkingService(slotRepo parking.SlotRepository, plateRepo parking.PlateRepository, flatRepo registry.FlatRepository, logger *zap.Logger) *ParkingService {
	return &ParkingService{slotRepo: slotRepo, plateRepo: plateRepo, flatRepo: flatRepo, logger: logger}
}

// AddSlot creates a parking slot. Slot numbers are unique per apartment.
func (s *ParkingService) AddSlot(ctx context.Context, apartmentCode string, input AddSlotInput) (*parking.ParkingSlot, error) {
	slotNumber := strings.TrimSpace(input.SlotNumber)
	if slotNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Slot number is required")
	}

	if _, err := s.slotRepo.FindByNumber(ctx, apartmentCode, slotNumber); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A slot with this number already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	slot := parking.NewParkingSlot(apartmentCode, slotNumber, input.Floor, input.Block, input.Type)
	if err := s.slotRepo.Save(ctx, slot); err != nil {
		s.logger.Error("Failed to save parking slot", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Parking slot added",
		zap.String("apartment_code", apartmentCode),
		zap.String("slot_number", slotNumber))
	return slot, nil
}

// ListSlots returns the lot's slots matching the filter, with the
// occupancy summary
func (s *ParkingService) ListSlots(ctx context.Context, apartmentCode string, filter parking.OccupancyFilter) (*SlotListing, error) {
	slots, err := s.slotRepo.FindAll(ctx, apartmentCode, filter)
	if err != nil {
		return nil, err
	}

	summary, err := s.slotRepo.Summary(ctx, apartmentCode)
	if err != nil {
		return nil, err
	}

	return &SlotListing{Slots: slots, Summary: *summary}, nil
}

// GetSlot returns one slot with its occupying flat and plate
func (s *ParkingService) GetSlot(ctx context.Context, apartmentCode string, id uuid.UUID) (*parking.SlotWithVehicle, error) {
	slot, err := s.slotRepo.FindByID(ctx, apartmentCode, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Parking slot not found")
		}
		return nil, err
	}
	return slot, nil
}

// AssignVehicle parks a registered vehicle in an empty slot
func (s *ParkingService) AssignVehicle(ctx context.Context, apartmentCode string, id uuid.UUID, input AssignVehicleInput) (*parking.SlotWithVehicle, error) {
	slotView, err := s.slotRepo.FindByID(ctx, apartmentCode, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Parking slot not found")
		}
		return nil, err
	}

	if _, err := s.flatRepo.FindByID(ctx, apartmentCode, input.FlatID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Flat not found")
		}
		return nil, err
	}
	if _, err := s.plateRepo.FindByID(ctx, apartmentCode, input.PlateID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Plate not found")
		}
		return nil, err
	}

	slot := slotView.ParkingSlot
	if err := slot.Assign(input.FlatID, input.PlateID); err != nil {
		return nil, err
	}

	if err := s.slotRepo.Save(ctx, &slot); err != nil {
		s.logger.Error("Failed to assign vehicle", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Vehicle assigned to slot",
		zap.String("apartment_code", apartmentCode),
		zap.String("slot_number", slot.SlotNumber))

	return s.slotRepo.FindByID(ctx, apartmentCode, id)
}

// RemoveVehicle empties an occupied slot
func (s *ParkingService) RemoveVehicle(ctx context.Context, apartmentCode string, id uuid.UUID) (*parking.ParkingSlot, error) {
	slotView, err := s.slotRepo.FindByID(ctx, apartmentCode, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Parking slot not found")
		}
		return nil, err
	}

	slot := slotView.ParkingSlot
	if !slot.IsOccupied {
		return nil, shared.NewDomainError("INVALID_STATE", "Slot is already empty")
	}
	slot.Release()

	if err := s.slotRepo.Save(ctx, &slot); err != nil {
		s.logger.Error("Failed to remove vehicle", zap.Error(err))
		return nil, err
	}
	return &slot, nil
}

// ToggleSlot flips a slot's occupancy by its number. An occupied slot is
// released; an empty one is marked occupied without vehicle details.
func (s *ParkingService) ToggleSlot(ctx context.Context, apartmentCode, slotNumber string) (*parking.ParkingSlot, error) {
	slot, err := s.slotRepo.FindByNumber(ctx, apartmentCode, slotNumber)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Parking slot not found")
		}
		return nil, err
	}

	if slot.IsOccupied {
		slot.Release()
	} else {
		slot.IsOccupied = true
		slot.Touch()
	}

	if err := s.slotRepo.Save(ctx, slot); err != nil {
		s.logger.Error("Failed to toggle slot", zap.Error(err))
		return nil, err
	}
	return slot, nil
}

// DeleteSlot removes an empty slot from the lot
func (s *ParkingService) DeleteSlot(ctx context.Context, apartmentCode string, id uuid.UUID) error {
	slot, err := s.slotRepo.FindByID(ctx, apartmentCode, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Parking slot not found")
		}
		return err
	}
	if slot.IsOccupied {
		return shared.NewDomainError("INVALID_STATE", "Slot is occupied and cannot be deleted")
	}

	if err := s.slotRepo.Delete(ctx, apartmentCode, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Parking slot not found")
		}
		return err
	}
	return nil
}
