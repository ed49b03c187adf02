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

// GormPlateRepository implements PlateRepository using GORM
type GormPlateRepository struct {
	db *gorm.DB
}

// NewGormPlateRepository creates a new GormPlateRepository
func NewGormPlateRepository(db *gorm.DB) *GormPlateRepository {
	return &GormPlateRepository{db: db}
}

// plateFlatRow is the scan target for plates joined with flat display fields.
type plateFlatRow struct {
	ID            uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ApartmentCode string
	PlateNumber   string
	OwnerName     string
	FlatID        *uuid.UUID
	VehicleModel  string
	Color         string
	FlatNumber    string
	Block         string
	Floor         *int
}

func (row *plateFlatRow) toDomain() parking.PlateWithFlat {
	return parking.PlateWithFlat{
		Plate: parking.Plate{
			BaseEntity: shared.BaseEntity{
				ID:        row.ID,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
			ApartmentCode: row.ApartmentCode,
			PlateNumber:   row.PlateNumber,
			OwnerName:     row.OwnerName,
			FlatID:        row.FlatID,
			VehicleModel:  row.VehicleModel,
			Color:         row.Color,
		},
		FlatNumber: row.FlatNumber,
		Block:      row.Block,
		Floor:      row.Floor,
	}
}

const plateFlatSelect = "plates.id, plates.created_at, plates.updated_at, " +
	"plates.apartment_code, plates.plate_number, plates.owner_name, " +
	"plates.flat_id, plates.vehicle_model, plates.color, " +
	"flats.flat_number, flats.block, flats.floor"

// Save creates or updates a plate
func (r *GormPlateRepository) Save(ctx context.Context, plate *parking.Plate) error {
	model := models.PlateModelFromDomain(plate)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a plate by its ID within an apartment
func (r *GormPlateRepository) FindByID(ctx context.Context, apartmentCode string, id uuid.UUID) (*parking.PlateWithFlat, error) {
	var row plateFlatRow
	err := r.db.WithContext(ctx).
		Table("plates").
		Select(plateFlatSelect).
		Joins("LEFT JOIN flats ON flats.id = plates.flat_id").
		Where("plates.apartment_code = ? AND plates.id = ?", apartmentCode, id).
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

// FindByNumber finds a plate by its normalized number within an apartment
func (r *GormPlateRepository) FindByNumber(ctx context.Context, apartmentCode, plateNumber string) (*parking.Plate, error) {
	var model models.PlateModel
	if err := r.db.WithContext(ctx).
		Where("apartment_code = ? AND plate_number = ?", apartmentCode, parking.NormalizePlateNumber(plateNumber)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns the apartment's plates ordered by plate number
func (r *GormPlateRepository) FindAll(ctx context.Context, apartmentCode string) ([]parking.PlateWithFlat, error) {
	var rows []plateFlatRow
	if err := r.db.WithContext(ctx).
		Table("plates").
		Select(plateFlatSelect).
		Joins("LEFT JOIN flats ON flats.id = plates.flat_id").
		Where("plates.apartment_code = ?", apartmentCode).
		Order("plates.plate_number ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	plates := make([]parking.PlateWithFlat, len(rows))
	for i, row := range rows {
		plates[i] = row.toDomain()
	}
	return plates, nil
}

// Delete deletes a plate
func (r *GormPlateRepository) Delete(ctx context.Context, apartmentCode string, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("apartment_code = ?", apartmentCode).
		Delete(&models.PlateModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormPlateRepository implements PlateRepository
var _ parking.PlateRepository = (*GormPlateRepository)(nil)
