package community

import (
	"github.com/google/uuid"
	"github.com/management360/backend/internal/domain/shared"
)

// Message is one internal mail between apartment members. A nil
// ReceiverID addresses the message to management: every admin sees it.
type Message struct {
	shared.BaseEntity
	ApartmentCode string     `json:"apartmentCode"`
	SenderID      uuid.UUID  `json:"senderId"`
	ReceiverID    *uuid.UUID `json:"receiverId,omitempty"`
	Subject       string     `json:"subject,omitempty"`
	Content       string     `json:"content"`
	IsRead        bool       `json:"isRead"`
}

// NewMessage creates an unread message.
func NewMessage(apartmentCode string, senderID uuid.UUID, receiverID *uuid.UUID, subject, content string) *Message {
	return &Message{
		BaseEntity:    shared.NewBaseEntity(),
		ApartmentCode: apartmentCode,
		SenderID:      senderID,
		ReceiverID:    receiverID,
		Subject:       subject,
		Content:       content,
	}
}

// VisibleTo reports whether the user may read this message: sender,
// receiver, or anyone when the message is addressed to management.
func (m *Message) VisibleTo(userID uuid.UUID) bool {
	if m.SenderID == userID {
		return true
	}
	if m.ReceiverID == nil {
		return true
	}
	return *m.ReceiverID == userID
}
