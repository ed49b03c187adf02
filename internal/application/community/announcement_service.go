// Package community implements the announcement board and internal
// messaging.
package community

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/management360/backend/internal/domain/community"
	"github.com/management360/backend/internal/domain/shared"
)

// AddAnnouncementInput contains input for posting an announcement
type AddAnnouncementInput struct {
	Title    string
	Content  string
	Priority community.Priority
}

// AnnouncementService handles the announcement board
type AnnouncementService struct {
	announcementRepo community.AnnouncementRepository
	logger           *zap.Logger
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(announcementRepo community.AnnouncementRepository, logger *zap.Logger) *AnnouncementService {
	return &AnnouncementService{announcementRepo: announcementRepo, logger: logger}
}

// Add posts a new announcement
func (s *AnnouncementService) Add(ctx context.Context, apartmentCode string, author uuid.UUID, input AddAnnouncementInput) (*community.Announcement, error) {
	if input.Title == "" || input.Content == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Title and content are required")
	}
	if input.Priority != "" && !input.Priority.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Priority must be normal, high or urgent")
	}

	announcement := community.NewAnnouncement(apartmentCode, input.Title, input.Content, input.Priority, author)
	if err := s.announcementRepo.Save(ctx, announcement); err != nil {
		s.logger.Error("Failed to save announcement", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Announcement posted",
		zap.String("apartment_code", apartmentCode),
		zap.String("priority", string(announcement.Priority)))
	return announcement, nil
}

// List returns the apartment's announcements, optionally filtered by priority
func (s *AnnouncementService) List(ctx context.Context, apartmentCode string, priority community.Priority) ([]community.AnnouncementWithAuthor, error) {
	if priority != "" && !priority.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Priority must be normal, high or urgent")
	}
	return s.announcementRepo.FindAll(ctx, apartmentCode, priority)
}

// Get returns one announcement by ID
func (s *AnnouncementService) Get(ctx context.Context, apartmentCode string, id uuid.UUID) (*community.AnnouncementWithAuthor, error) {
	announcement, err := s.announcementRepo.FindByID(ctx, apartmentCode, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Announcement not found")
		}
		return nil, err
	}
	return announcement, nil
}

// Update applies a partial update to an announcement
func (s *AnnouncementService) Update(ctx context.Context, apartmentCode string, id uuid.UUID, patch community.AnnouncementPatch) (*community.Announcement, error) {
	existing, err := s.announcementRepo.FindByID(ctx, apartmentCode, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Announcement not found")
		}
		return nil, err
	}

	announcement := existing.Announcement
	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Title cannot be empty")
		}
		announcement.Title = *patch.Title
	}
	if patch.Content != nil {
		if *patch.Content == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Content cannot be empty")
		}
		announcement.Content = *patch.Content
	}
	if patch.Priority != nil {
		if !patch.Priority.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Priority must be normal, high or urgent")
		}
		announcement.Priority = *patch.Priority
	}
	announcement.Touch()

	if err := s.announcementRepo.Save(ctx, &announcement); err != nil {
		s.logger.Error("Failed to update announcement", zap.Error(err))
		return nil, err
	}
	return &announcement, nil
}

// Delete removes an announcement
func (s *AnnouncementService) Delete(ctx context.Context, apartmentCode string, id uuid.UUID) error {
	if err := s.announcementRepo.Delete(ctx, apartmentCode, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Announcement not found")
		}
		return err
	}
	return nil
}
