package community

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/management360/backend/internal/domain/community"
	"github.com/management360/backend/internal/domain/identity"
	"github.com/management360/backend/internal/domain/shared"
)

// SendMessageInput contains input for sending a message. A nil receiver
// addresses the message to management.
type SendMessageInput struct {
	ReceiverID *uuid.UUID
	Subject    string
	Content    string
}

// InboxResult pairs the inbox slice with its unread count.
type InboxResult struct {
	Messages    []community.MessageWithNames `json:"messages"`
	UnreadCount int64                        `json:"unreadCount"`
}

// Caller identifies the acting user to the message service.
type Caller struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// MessageService handles internal mail between apartment members
type MessageService struct {
	messageRepo community.MessageRepository
	userRepo    identity.UserRepository
	logger      *zap.Logger
}

// NewMessageService creates a new message service
func NewMessageService(messageRepo community.MessageRepository, userRepo identity.UserRepository, logger *zap.Logger) *MessageService {
	return &MessageService{messageRepo: messageRepo, userRepo: userRepo, logger: logger}
}

// Send delivers a message. The receiver, when named, must share the
// apartment; sending to oneself is rejected.
func (s *MessageService) Send(ctx context.Context, apartmentCode string, caller Caller, input SendMessageInput) (*community.Message, error) {
	if input.Content == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Content is required")
	}

	if input.ReceiverID != nil {
		if *input.ReceiverID == caller.UserID {
			return nil, shared.NewDomainError("INVALID_INPUT", "Cannot send a message to yourself")
		}
		member, err := s.userRepo.MemberOfApartment(ctx, apartmentCode, *input.ReceiverID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, shared.NewDomainError("NOT_FOUND", "Receiver not found in this apartment")
		}
	}

	message := community.NewMessage(apartmentCode, caller.UserID, input.ReceiverID, input.Subject, input.Content)
	if err := s.messageRepo.Save(ctx, message); err != nil {
		s.logger.Error("Failed to save message", zap.Error(err))
		return nil, err
	}
	return message, nil
}

// Inbox returns the caller's received mail with its unread count
func (s *MessageService) Inbox(ctx context.Context, apartmentCode string, caller Caller, isRead *bool) (*InboxResult, error) {
	q := community.InboxQuery{UserID: caller.UserID, IsAdmin: caller.IsAdmin, IsRead: isRead}

	messages, err := s.messageRepo.Inbox(ctx, apartmentCode, q)
	if err != nil {
		return nil, err
	}

	unread, err := s.messageRepo.UnreadCount(ctx, apartmentCode, q)
	if err != nil {
		return nil, err
	}

	return &InboxResult{Messages: messages, UnreadCount: unread}, nil
}

// Sent returns the caller's sent mail
func (s *MessageService) Sent(ctx context.Context, apartmentCode string, caller Caller) ([]community.MessageWithNames, error) {
	return s.messageRepo.Sent(ctx, apartmentCode, caller.UserID)
}

// Get returns one message. Only participants (or any admin for
// management mail) may read it; opening an unread message as its
// receiver marks it read.
func (s *MessageService) Get(ctx context.Context, apartmentCode string, caller Caller, id uuid.UUID) (*community.MessageWithNames, error) {
	message, err := s.messageRepo.FindByID(ctx, apartmentCode, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Message not found")
		}
		return nil, err
	}

	if !s.canRead(&message.Message, caller) {
		return nil, shared.NewDomainError("FORBIDDEN", "You are not a participant of this message")
	}

	if !message.IsRead && s.isReceiver(&message.Message, caller) {
		if _, err := s.messageRepo.MarkRead(ctx, apartmentCode, id, caller.UserID); err != nil {
			s.logger.Warn("Failed to mark message read on open",
				zap.String("message_id", id.String()), zap.Error(err))
		} else {
			message.IsRead = true
		}
	}

	return message, nil
}

// Conversation returns the caller's exchange with another user
func (s *MessageService) Conversation(ctx context.Context, apartmentCode string, caller Caller, otherID uuid.UUID) ([]community.MessageWithNames, error) {
	member, err := s.userRepo.MemberOfApartment(ctx, apartmentCode, otherID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, shared.NewDomainError("NOT_FOUND", "User not found in this apartment")
	}
	return s.messageRepo.Conversation(ctx, apartmentCode, caller.UserID, otherID)
}

// MarkRead flags a message the caller received as read
func (s *MessageService) MarkRead(ctx context.Context, apartmentCode string, caller Caller, id uuid.UUID) (*community.Message, error) {
	message, err := s.messageRepo.MarkRead(ctx, apartmentCode, id, caller.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Message not found")
		}
		return nil, err
	}
	return message, nil
}

// Delete removes a message. Admins may delete any message of their
// apartment; residents only their own mail.
func (s *MessageService) Delete(ctx context.Context, apartmentCode string, caller Caller, id uuid.UUID) error {
	var ownedBy *uuid.UUID
	if !caller.IsAdmin {
		ownedBy = &caller.UserID
	}

	if err := s.messageRepo.Delete(ctx, apartmentCode, id, ownedBy); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Message not found")
		}
		return err
	}
	return nil
}

// ListUsers returns the recipient picker: every other apartment member.
func (s *MessageService) ListUsers(ctx context.Context, apartmentCode string, caller Caller) ([]identity.UserDirectoryEntry, error) {
	return s.userRepo.FindInApartment(ctx, apartmentCode, caller.UserID)
}

func (s *MessageService) canRead(m *community.Message, caller Caller) bool {
	if m.ReceiverID == nil {
		return caller.IsAdmin || m.SenderID == caller.UserID
	}
	return m.VisibleTo(caller.UserID)
}

func (s *MessageService) isReceiver(m *community.Message, caller Caller) bool {
	if m.ReceiverID == nil {
		return caller.IsAdmin
	}
	return *m.ReceiverID == caller.UserID
}
