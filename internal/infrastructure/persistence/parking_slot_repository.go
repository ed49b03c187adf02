package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/management360/backend/internal/domain/parking"
	"github.com/management360/backend/internal/domain/shared"
	"github.com/management360/backend/internal/infrastructure/persistence/models"
)

// GormSlotRepository implements SlotRepository using GORM
type GormSlotRepository struct {
	db *gorm.DB
}

// NewGormSlotRepository creates a new GormSlotRepository
func NewGormSlotRepository(db *gorm.DB) *GormSlotRepository {
	return &GormSlotRepository{db: db}
}

// slotVehicleRow is the scan target for slots joined with their occupying
// flat and plate.
type slotVehicleRow struct {
	ID            uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ApartmentCode string
	SlotNumber    string
	Floor         *int
	Block         string
	Type          parking.SlotType
	IsOccupied    bool
	FlatID        *uuid.UUID
	PlateID       *uuid.UUID
	FlatNumber    string
	PlateNumber   string
	OwnerName     string
	VehicleModel  string
}

func (row *slotVehicleRow) toDomain() parking.SlotWithVehicle {
	return parking.SlotWithVehicle{
		ParkingSlot: parking.ParkingSlot{
			BaseEntity: shared.BaseEntity{
				ID:        row.ID,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
			ApartmentCode: row.ApartmentCode,
			SlotNumber:    row.SlotNumber,
			Floor:         row.Floor,
			Block:         row.Block,
			Type:          row.Type,
			IsOccupied:    row.IsOccupied,
			FlatID:        row.FlatID,
			PlateID:       row.PlateID,
		},
		FlatNumber:   row.FlatNumber,
		PlateNumber:  row.PlateNumber,
		OwnerName:    row.OwnerName,
		VehicleModel: row.VehicleModel,
	}
}

const slotVehicleSelect = "parking_slots.id, parking_slots.created_at, parking_slots.updated_at, " +
	"parking_slots.apartment_code, parking_slots.slot_number, parking_slots.floor, " +
	"parking_slots.block, parking_slots.type, parking_slots.is_occupied, " +
	"parking_slots.flat_id, parking_slots.plate_id, " +
	"flats.flat_number, plates.plate_number, plates.owner_name, plates.vehicle_model"

func (r *GormSlotRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("parking_slots").
		Select(slotVehicleSelect).
		Joins("LEFT JOIN flats ON flats.id = parking_slots.flat_id").
		Joins("LEFT JOIN plates ON plates.id = parking_slots.plate_id")
}

// Save creates or updates a parking slot
func (r *GormSlotRepository) Save(ctx context.Context, slot *parking.ParkingSlot) error {
	model := models.ParkingSlotModelFromDomain(slot)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveBatch creates or updates multiple slots in a transaction
func (r *GormSlotRepository) SaveBatch(ctx context.Context, slots []*parking.ParkingSlot) error {
	if len(slots) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, slot := range slots {
			model := models.ParkingSlotModelFromDomain(slot)
			if err := tx.Save(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID finds a slot by its ID within an apartment
func (r *GormSlotRepository) FindByID(ctx context.Context, apartmentCode string, id uuid.UUID) (*parking.SlotWithVehicle, error) {
	var row slotVehicleRow
	err := r.joined(ctx).
		Where("parking_slots.apartment_code = ? AND parking_slots.id = ?", apartmentCode, id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	result := row.toDomain()
	return &result, nil
}

// FindByNumber finds a slot by its number within an apartment
func (r *GormSlotRepository) FindByNumber(ctx context.Context, apartmentCode, slotNumber string) (*parking.ParkingSlot, error) {
	var model models.ParkingSlotModel
	if err := r.db.WithContext(ctx).
		Where("apartment_code = ? AND slot_number = ?", apartmentCode, slotNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns the apartment's slots matching the filter, by slot number
func (r *GormSlotRepository) FindAll(ctx context.Context, apartmentCode string, filter parking.OccupancyFilter) ([]parking.SlotWithVehicle, error) {
	query := r.joined(ctx).
		Where("parking_slots.apartment_code = ?", apartmentCode)

	if filter.Occupied != nil {
		query = query.Where("parking_slots.is_occupied = ?", *filter.Occupied)
	}
	if filter.Floor != nil {
		query = query.Where("parking_slots.floor = ?", *filter.Floor)
	}

	var rows []slotVehicleRow
	if err := query.
		Order("parking_slots.slot_number ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	slots := make([]parking.SlotWithVehicle, len(rows))
	for i, row := range rows {
		slots[i] = row.toDomain()
	}
	return slots, nil
}

// Summary counts the lot's slots by occupancy state
func (r *GormSlotRepository) Summary(ctx context.Context, apartmentCode string) (*parking.OccupancySummary, error) {
	var summary parking.OccupancySummary
	err := r.db.WithContext(ctx).
		Model(&models.ParkingSlotModel{}).
		Select(
			"COUNT(*) AS total, " +
				"COUNT(CASE WHEN is_occupied THEN 1 END) AS occupied, " +
				"COUNT(CASE WHEN NOT is_occupied THEN 1 END) AS empty").
		Where("apartment_code = ?", apartmentCode).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Delete deletes a parking slot
func (r *GormSlotRepository) Delete(ctx context.Context, apartmentCode string, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("apartment_code = ?", apartmentCode).
		Delete(&models.ParkingSlotModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormSlotRepository implements SlotRepository
var _ parking.SlotRepository = (*GormSlotRepository)(nil)
