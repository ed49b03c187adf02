package community

import (
	"context"

	"github.com/google/uuid"
	"github.com/management360/backend/internal/domain/identity"
)

// AnnouncementWithAuthor joins an announcement with its author's name.
type AnnouncementWithAuthor struct {
	Announcement
	AuthorName  string `json:"authorName,omitempty"`
	AuthorEmail string `json:"authorEmail,omitempty"`
}

// AnnouncementPatch describes a partial update: nil fields keep the
// stored value.
type AnnouncementPatch struct {
	Title    *string
	Content  *string
	Priority *Priority
}

// AnnouncementRepository defines persistence operations for announcements.
type AnnouncementRepository interface {
	Save(ctx context.Context, announcement *Announcement) error
	FindByID(ctx context.Context, apartmentCode string, id uuid.UUID) (*AnnouncementWithAuthor, error)
	FindAll(ctx context.Context, apartmentCode string, priority Priority) ([]AnnouncementWithAuthor, error)
	Delete(ctx context.Context, apartmentCode string, id uuid.UUID) error
}

// MessageWithNames joins a message with sender/receiver display fields.
type MessageWithNames struct {
	Message
	SenderName   string        `json:"senderName,omitempty"`
	SenderRole   identity.Role `json:"senderRole,omitempty"`
	ReceiverName string        `json:"receiverName,omitempty"`
	ReceiverRole identity.Role `json:"receiverRole,omitempty"`
}

// InboxQuery selects which slice of the apartment's mail a user sees.
type InboxQuery struct {
	UserID  uuid.UUID
	IsAdmin bool
	// IsRead filters by read state when set.
	IsRead *bool
}

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	Save(ctx context.Context, message *Message) error
	FindByID(ctx context.Context, apartmentCode string, id uuid.UUID) (*MessageWithNames, error)
	Inbox(ctx context.Context, apartmentCode string, q InboxQuery) ([]MessageWithNames, error)
	UnreadCount(ctx context.Context, apartmentCode string, q InboxQuery) (int64, error)
	Sent(ctx context.Context, apartmentCode string, senderID uuid.UUID) ([]MessageWithNames, error)
	Conversation(ctx context.Context, apartmentCode string, userID, otherID uuid.UUID) ([]MessageWithNames, error)
	MarkRead(ctx context.Context, apartmentCode string, id, receiverID uuid.UUID) (*Message, error)
	// Delete removes the message. When ownedBy is non-nil the row is only
	// deleted if that user is the sender or receiver.
	Delete(ctx context.Context, apartmentCode string, id uuid.UUID, ownedBy *uuid.UUID) error
}
