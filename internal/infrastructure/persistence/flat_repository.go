package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/management360/backend/internal/domain/registry"
	"github.com/management360/backend/internal/domain/shared"
	"github.com/management360/backend/internal/infrastructure/persistence/models"
)

// GormFlatRepository implements FlatRepository using GORM
type GormFlatRepository struct {
	db *gorm.DB
}

// NewGormFlatRepository creates a new GormFlatRepository
func NewGormFlatRepository(db *gorm.DB) *GormFlatRepository {
	return &GormFlatRepository{db: db}
}

// Save creates or updates a flat
func (r *GormFlatRepository) Save(ctx context.Context, flat *registry.Flat) error {
	model := models.FlatModelFromDomain(flat)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveBatch creates or updates multiple flats in a transaction
func (r *GormFlatRepository) SaveBatch(ctx context.Context, flats []*registry.Flat) error {
	if len(flats) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, flat := range flats {
			model := models.FlatModelFromDomain(flat)
			if err := tx.Save(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID finds a flat by its ID within an apartment
func (r *GormFlatRepository) FindByID(ctx context.Context, apartmentCode string, id uuid.UUID) (*registry.Flat, error) {
	var model models.FlatModel
	if err := r.db.WithContext(ctx).
		Where("apartment_code = ? AND id = ?", apartmentCode, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a flat by its number within an apartment
func (r *GormFlatRepository) FindByNumber(ctx context.Context, apartmentCode, flatNumber string) (*registry.Flat, error) {
	var model models.FlatModel
	if err := r.db.WithContext(ctx).
		Where("apartment_code = ? AND flat_number = ?", apartmentCode, flatNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every flat of the apartment ordered by flat number
func (r *GormFlatRepository) FindAll(ctx context.Context, apartmentCode string) ([]registry.Flat, error) {
	var flatModels []models.FlatModel
	if err := r.db.WithContext(ctx).
		Where("apartment_code = ?", apartmentCode).
		Order("block ASC, floor ASC, flat_number ASC").
		Find(&flatModels).Error; err != nil {
		return nil, err
	}

	flats := make([]registry.Flat, len(flatModels))
	for i, model := range flatModels {
		flats[i] = *model.ToDomain()
	}
	return flats, nil
}

// CountResidents counts user accounts attached to the flat
func (r *GormFlatRepository) CountResidents(ctx context.Context, flatID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("flat_id = ?", flatID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete deletes a flat
func (r *GormFlatRepository) Delete(ctx context.Context, apartmentCode string, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("apartment_code = ?", apartmentCode).
		Delete(&models.FlatModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormFlatRepository implements FlatRepository
var _ registry.FlatRepository = (*GormFlatRepository)(nil)
