package models

import (
	"github.com/google/uuid"

	"github.com/management360/backend/internal/domain/community"
)

// AnnouncementModel is the persistence model for the Announcement entity.
type AnnouncementModel struct {
	BaseModel
	ApartmentCode string             `gorm:"type:varchar(20);not null;index:idx_announcement_apartment"`
	Title         string             `gorm:"type:varchar(255);not null"`
	Content       string             `gorm:"type:text;not null"`
	Priority      community.Priority `gorm:"type:varchar(10);not null;default:'normal'"`
	CreatedBy     uuid.UUID          `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (AnnouncementModel) TableName() string {
	return "announcements"
}

// ToDomain converts the persistence model to a domain Announcement entity.
func (m *AnnouncementModel) ToDomain() *community.Announcement {
	return &community.Announcement{
		BaseEntity:    m.BaseModel.ToDomain(),
		ApartmentCode: m.ApartmentCode,
		Title:         m.Title,
		Content:       m.Content,
		Priority:      m.Priority,
		CreatedBy:     m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain Announcement entity.
func (m *AnnouncementModel) FromDomain(a *community.Announcement) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.ApartmentCode = a.ApartmentCode
	m.Title = a.Title
	m.Content = a.Content
	m.Priority = a.Priority
	m.CreatedBy = a.CreatedBy
}

// AnnouncementModelFromDomain creates a new persistence model from a domain Announcement.
func AnnouncementModelFromDomain(a *community.Announcement) *AnnouncementModel {
	m := &AnnouncementModel{}
	m.FromDomain(a)
	return m
}

// MessageModel is the persistence model for the Message entity.
// A NULL receiver addresses the message to management.
type MessageModel struct {
	BaseModel
	ApartmentCode string     `gorm:"type:varchar(20);not null;index:idx_message_apartment"`
	SenderID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	ReceiverID    *uuid.UUID `gorm:"type:uuid;index"`
	Subject       string     `gorm:"type:varchar(255)"`
	Content       string     `gorm:"type:text;not null"`
	IsRead        bool       `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (MessageModel) TableName() string {
	return "messages"
}

// ToDomain converts the persistence model to a domain Message entity.
func (m *MessageModel) ToDomain() *community.Message {
	return &community.Message{
		BaseEntity:    m.BaseModel.ToDomain(),
		ApartmentCode: m.ApartmentCode,
		SenderID:      m.SenderID,
		ReceiverID:    m.ReceiverID,
		Subject:       m.Subject,
		Content:       m.Content,
		IsRead:        m.IsRead,
	}
}

// FromDomain populates the persistence model from a domain Message entity.
func (m *MessageModel) FromDomain(msg *community.Message) {
	m.FromDomainBaseEntity(msg.BaseEntity)
	m.ApartmentCode = msg.ApartmentCode
	m.SenderID = msg.SenderID
	m.ReceiverID = msg.ReceiverID
	m.Subject = msg.Subject
	m.Content = msg.Content
	m.IsRead = msg.IsRead
}

// MessageModelFromDomain creates a new persistence model from a domain Message.
func MessageModelFromDomain(msg *community.Message) *MessageModel {
	m := &MessageModel{}
	m.FromDomain(msg)
	return m
}
