package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/management360/backend/internal/domain/identity"
	"github.com/management360/backend/internal/domain/shared"
	"github.com/management360/backend/internal/infrastructure/persistence/models"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a user by email, case-insensitively
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// AdminExistsForApartment reports whether the apartment code belongs to a
// registered admin
func (r *GormUserRepository) AdminExistsForApartment(ctx context.Context, apartmentCode string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("apartment_code = ? AND role = ?", apartmentCode, identity.RoleAdmin).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindInApartment returns every user of the apartment except the given
// one, admins first
func (r *GormUserRepository) FindInApartment(ctx context.Context, apartmentCode string, exclude uuid.UUID) ([]identity.UserDirectoryEntry, error) {
	var userModels []models.UserModel
	if err := r.db.WithContext(ctx).
		Where("apartment_code = ? AND id <> ?", apartmentCode, exclude).
		Order("CASE WHEN role = 'admin' THEN 0 ELSE 1 END, first_name ASC").
		Find(&userModels).Error; err != nil {
		return nil, err
	}

	entries := make([]identity.UserDirectoryEntry, len(userModels))
	for i, model := range userModels {
		user := model.ToDomain()
		entries[i] = identity.UserDirectoryEntry{
			UserID:   user.ID,
			FullName: user.FullName(),
			Email:    user.Email,
			Role:     user.Role,
		}
	}
	return entries, nil
}

// MemberOfApartment reports whether the user belongs to the apartment
func (r *GormUserRepository) MemberOfApartment(ctx context.Context, apartmentCode string, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("apartment_code = ? AND id = ?", apartmentCode, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormUserRepository implements UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
