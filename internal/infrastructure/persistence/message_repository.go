package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/management360/backend/internal/domain/community"
	"github.com/management360/backend/internal/domain/identity"
	"github.com/management360/backend/internal/domain/shared"
	"github.com/management360/backend/internal/infrastructure/persistence/models"
)

// GormMessageRepository implements MessageRepository using GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GormMessageRepository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// messageNamesRow is the scan target for messages joined with sender and
// receiver display fields.
type messageNamesRow struct {
	ID                uuid.UUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
	ApartmentCode     string
	SenderID          uuid.UUID
	ReceiverID        *uuid.UUID
	Subject           string
	Content           string
	IsRead            bool
	SenderFirstName   string
	SenderLastName    string
	SenderRole        identity.Role
	ReceiverFirstName string
	ReceiverLastName  string
	ReceiverRole      identity.Role
}

func fullName(first, last string) string {
	if last == "" {
		return first
	}
	return first + " " + last
}

func (row *messageNamesRow) toDomain() community.MessageWithNames {
	receiverName := fullName(row.ReceiverFirstName, row.ReceiverLastName)
	if row.ReceiverID == nil {
		receiverName = "Management"
	}
	return community.MessageWithNames{
		Message: community.Message{
			BaseEntity: shared.BaseEntity{
				ID:        row.ID,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
			ApartmentCode: row.ApartmentCode,
			SenderID:      row.SenderID,
			ReceiverID:    row.ReceiverID,
			Subject:       row.Subject,
			Content:       row.Content,
			IsRead:        row.IsRead,
		},
		SenderName:   fullName(row.SenderFirstName, row.SenderLastName),
		SenderRole:   row.SenderRole,
		ReceiverName: receiverName,
		ReceiverRole: row.ReceiverRole,
	}
}

const messageNamesSelect = "messages.id, messages.created_at, messages.updated_at, " +
	"messages.apartment_code, messages.sender_id, messages.receiver_id, " +
	"messages.subject, messages.content, messages.is_read, " +
	"senders.first_name AS sender_first_name, senders.last_name AS sender_last_name, senders.role AS sender_role, " +
	"receivers.first_name AS receiver_first_name, receivers.last_name AS receiver_last_name, receivers.role AS receiver_role"

func (r *GormMessageRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("messages").
		Select(messageNamesSelect).
		Joins("JOIN users AS senders ON senders.id = messages.sender_id").
		Joins("LEFT JOIN users AS receivers ON receivers.id = messages.receiver_id")
}

// inboxScope narrows a query to the messages the user receives. Admins
// also see mail addressed to management (NULL receiver).
func inboxScope(query *gorm.DB, q community.InboxQuery) *gorm.DB {
	if q.IsAdmin {
		query = query.Where("(messages.receiver_id = ? OR messages.receiver_id IS NULL)", q.UserID)
	} else {
		query = query.Where("messages.receiver_id = ?", q.UserID)
	}
	if q.IsRead != nil {
		query = query.Where("messages.is_read = ?", *q.IsRead)
	}
	return query
}

// Save creates or updates a message
func (r *GormMessageRepository) Save(ctx context.Context, message *community.Message) error {
	model := models.MessageModelFromDomain(message)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a message by its ID within an apartment
func (r *GormMessageRepository) FindByID(ctx context.Context, apartmentCode string, id uuid.UUID) (*community.MessageWithNames, error) {
	var row messageNamesRow
	err := r.joined(ctx).
		Where("messages.apartment_code = ? AND messages.id = ?", apartmentCode, id).
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

// Inbox returns the messages the user receives, newest first
func (r *GormMessageRepository) Inbox(ctx context.Context, apartmentCode string, q community.InboxQuery) ([]community.MessageWithNames, error) {
	query := inboxScope(r.joined(ctx).
		Where("messages.apartment_code = ?", apartmentCode), q)

	var rows []messageNamesRow
	if err := query.
		Order("messages.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	messages := make([]community.MessageWithNames, len(rows))
	for i, row := range rows {
		messages[i] = row.toDomain()
	}
	return messages, nil
}

// UnreadCount counts the user's unread inbox messages
func (r *GormMessageRepository) UnreadCount(ctx context.Context, apartmentCode string, q community.InboxQuery) (int64, error) {
	unread := false
	q.IsRead = &unread

	query := inboxScope(r.db.WithContext(ctx).
		Model(&models.MessageModel{}).
		Where("messages.apartment_code = ?", apartmentCode), q)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Sent returns the messages the user has sent, newest first
func (r *GormMessageRepository) Sent(ctx context.Context, apartmentCode string, senderID uuid.UUID) ([]community.MessageWithNames, error) {
	var rows []messageNamesRow
	if err := r.joined(ctx).
		Where("messages.apartment_code = ? AND messages.sender_id = ?", apartmentCode, senderID).
		Order("messages.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	messages := make([]community.MessageWithNames, len(rows))
	for i, row := range rows {
		messages[i] = row.toDomain()
	}
	return messages, nil
}

// Conversation returns the two users' exchange in chronological order
func (r *GormMessageRepository) Conversation(ctx context.Context, apartmentCode string, userID, otherID uuid.UUID) ([]community.MessageWithNames, error) {
	var rows []messageNamesRow
	if err := r.joined(ctx).
		Where("messages.apartment_code = ?", apartmentCode).
		Where("(messages.sender_id = ? AND messages.receiver_id = ?) OR (messages.sender_id = ? AND messages.receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("messages.created_at ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	messages := make([]community.MessageWithNames, len(rows))
	for i, row := range rows {
		messages[i] = row.toDomain()
	}
	return messages, nil
}

// MarkRead flags the message as read. Only the receiver (or an admin for
// management mail) may mark it, which the caller expresses via receiverID.
func (r *GormMessageRepository) MarkRead(ctx context.Context, apartmentCode string, id, receiverID uuid.UUID) (*community.Message, error) {
	var model models.MessageModel
	err := r.db.WithContext(ctx).
		Where("apartment_code = ? AND id = ?", apartmentCode, id).
		Where("receiver_id = ? OR receiver_id IS NULL", receiverID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	model.IsRead = true
	model.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// Delete removes the message. When ownedBy is non-nil the row is only
// deleted if that user is the sender or receiver.
func (r *GormMessageRepository) Delete(ctx context.Context, apartmentCode string, id uuid.UUID, ownedBy *uuid.UUID) error {
	query := r.db.WithContext(ctx).
		Where("apartment_code = ?", apartmentCode)
	if ownedBy != nil {
		query = query.Where("sender_id = ? OR receiver_id = ?", *ownedBy, *ownedBy)
	}

	result := query.Delete(&models.MessageModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormMessageRepository implements MessageRepository
var _ community.MessageRepository = (*GormMessageRepository)(nil)
