package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/management360/backend/internal/domain/community"
	"github.com/management360/backend/internal/domain/shared"
	"github.com/management360/backend/internal/infrastructure/persistence/models"
)

// GormAnnouncementRepository implements AnnouncementRepository using GORM
type GormAnnouncementRepository struct {
	db *gorm.DB
}

// NewGormAnnouncementRepository creates a new GormAnnouncementRepository
func NewGormAnnouncementRepository(db *gorm.DB) *GormAnnouncementRepository {
	return &GormAnnouncementRepository{db: db}
}

// announcementAuthorRow is the scan target for announcements joined with
// their author's display fields.
type announcementAuthorRow struct {
	ID            uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ApartmentCode string
	Title         string
	Content       string
	Priority      community.Priority
	CreatedBy     uuid.UUID
	FirstName     string
	LastName      string
	AuthorEmail   string
}

func (row *announcementAuthorRow) toDomain() community.AnnouncementWithAuthor {
	name := row.FirstName
	if row.LastName != "" {
		name = row.FirstName + " " + row.LastName
	}
	return community.AnnouncementWithAuthor{
		Announcement: community.Announcement{
			BaseEntity: shared.BaseEntity{
				ID:        row.ID,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
			ApartmentCode: row.ApartmentCode,
			Title:         row.Title,
			Content:       row.Content,
			Priority:      row.Priority,
			CreatedBy:     row.CreatedBy,
		},
		AuthorName:  name,
		AuthorEmail: row.AuthorEmail,
	}
}

const announcementAuthorSelect = "announcements.id, announcements.created_at, announcements.updated_at, " +
	"announcements.apartment_code, announcements.title, announcements.content, " +
	"announcements.priority, announcements.created_by, " +
	"users.first_name, users.last_name, users.email AS author_email"

// Save creates or updates an announcement
func (r *GormAnnouncementRepository) Save(ctx context.Context, announcement *community.Announcement) error {
	model := models.AnnouncementModelFromDomain(announcement)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds an announcement by its ID within an apartment
func (r *GormAnnouncementRepository) FindByID(ctx context.Context, apartmentCode string, id uuid.UUID) (*community.AnnouncementWithAuthor, error) {
	var row announcementAuthorRow
	err := r.db.WithContext(ctx).
		Table("announcements").
		Select(announcementAuthorSelect).
		Joins("LEFT JOIN users ON users.id = announcements.created_by").
		Where("announcements.apartment_code = ? AND announcements.id = ?", apartmentCode, id).
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

// FindAll returns the apartment's announcements, newest first, optionally
// filtered by priority
func (r *GormAnnouncementRepository) FindAll(ctx context.Context, apartmentCode string, priority community.Priority) ([]community.AnnouncementWithAuthor, error) {
	query := r.db.WithContext(ctx).
		Table("announcements").
		Select(announcementAuthorSelect).
		Joins("LEFT JOIN users ON users.id = announcements.created_by").
		Where("announcements.apartment_code = ?", apartmentCode)

	if priority != "" {
		query = query.Where("announcements.priority = ?", priority)
	}

	var rows []announcementAuthorRow
	if err := query.
		Order("announcements.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	announcements := make([]community.AnnouncementWithAuthor, len(rows))
	for i, row := range rows {
		announcements[i] = row.toDomain()
	}
	return announcements, nil
}

// Delete deletes an announcement
func (r *GormAnnouncementRepository) Delete(ctx context.Context, apartmentCode string, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("apartment_code = ?", apartmentCode).
		Delete(&models.AnnouncementModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormAnnouncementRepository implements AnnouncementRepository
var _ community.AnnouncementRepository = (*GormAnnouncementRepository)(nil)
