// Package community covers the building's announcement board and the
// internal messaging between residents and management.
package community

import (
	"github.com/google/uuid"
	"github.com/management360/backend/internal/domain/shared"
)

// Priority represents an announcement's urgency
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid checks if the priority is a valid Priority
func (p Priority) IsValid() bool {
	switch p {
	case PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Announcement is a notice posted by an apartment admin.
type Announcement struct {
	shared.BaseEntity
	ApartmentCode string    `json:"apartmentCode"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Priority      Priority  `json:"priority"`
	CreatedBy     uuid.UUID `json:"createdBy"`
}

// NewAnnouncement creates an announcement, defaulting to normal priority.
func NewAnnouncement(apartmentCode, title, content string, priority Priority, createdBy uuid.UUID) *Announcement {
	if priority == "" {
		priority = PriorityNormal
	}
	return &Announcement{
		BaseEntity:    shared.NewBaseEntity(),
		ApartmentCode: apartmentCode,
		Title:         title,
		Content:       content,
		Priority:      priority,
		CreatedBy:     createdBy,
	}
}
