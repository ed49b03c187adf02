package community

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/management360/backend/internal/domain/community"
	"github.com/management360/backend/internal/domain/identity"
	"github.com/management360/backend/internal/domain/shared"
)

// MockMessageRepository is a mock implementation of MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Save(ctx context.Context, message *community.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) FindByID(ctx context.Context, apartmentCode string, id uuid.UUID) (*community.MessageWithNames, error) {
	args := m.Called(ctx, apartmentCode, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*community.MessageWithNames), args.Error(1)
}

func (m *MockMessageRepository) Inbox(ctx context.Context, apartmentCode string, q community.InboxQuery) ([]community.MessageWithNames, error) {
	args := m.Called(ctx, apartmentCode, q)
	return args.Get(0).([]community.MessageWithNames), args.Error(1)
}

func (m *MockMessageRepository) UnreadCount(ctx context.Context, apartmentCode string, q community.InboxQuery) (int64, error) {
	args := m.Called(ctx, apartmentCode, q)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) Sent(ctx context.Context, apartmentCode string, senderID uuid.UUID) ([]community.MessageWithNames, error) {
	args := m.Called(ctx, apartmentCode, senderID)
	return args.Get(0).([]community.MessageWithNames), args.Error(1)
}

func (m *MockMessageRepository) Conversation(ctx context.Context, apartmentCode string, userID, otherID uuid.UUID) ([]community.MessageWithNames, error) {
	args := m.Called(ctx, apartmentCode, userID, otherID)
	return args.Get(0).([]community.MessageWithNames), args.Error(1)
}

func (m *MockMessageRepository) MarkRead(ctx context.Context, apartmentCode string, id, receiverID uuid.UUID) (*community.Message, error) {
	args := m.Called(ctx, apartmentCode, id, receiverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*community.Message), args.Error(1)
}

func (m *MockMessageRepository) Delete(ctx context.Context, apartmentCode string, id uuid.UUID, ownedBy *uuid.UUID) error {
	args := m.Called(ctx, apartmentCode, id, ownedBy)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) AdminExistsForApartment(ctx context.Context, apartmentCode string) (bool, error) {
	args := m.Called(ctx, apartmentCode)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindInApartment(ctx context.Context, apartmentCode string, exclude uuid.UUID) ([]identity.UserDirectoryEntry, error) {
	args := m.Called(ctx, apartmentCode, exclude)
	return args.Get(0).([]identity.UserDirectoryEntry), args.Error(1)
}

func (m *MockUserRepository) MemberOfApartment(ctx context.Context, apartmentCode string, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, apartmentCode, id)
	return args.Bool(0), args.Error(1)
}

const testApartment = "APT123456"

func newMessageService(messageRepo *MockMessageRepository, userRepo *MockUserRepository) *MessageService {
	return NewMessageService(messageRepo, userRepo, zap.NewNop())
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()
	sender := Caller{UserID: uuid.New()}

	t.Run("delivers mail to a fellow member", func(t *testing.T) {
		messageRepo := new(MockMessageRepository)
		userRepo := new(MockUserRepository)
		service := newMessageService(messageRepo, userRepo)

		receiverID := uuid.New()
		userRepo.On("MemberOfApartment", ctx, testApartment, receiverID).Return(true, nil)
		messageRepo.On("Save", ctx, mock.MatchedBy(func(message *community.Message) bool {
			return message.SenderID == sender.UserID &&
				message.ReceiverID != nil && *message.ReceiverID == receiverID &&
				!message.IsRead
		})).Return(nil)

		message, err := service.Send(ctx, testApartment, sender, SendMessageInput{
			ReceiverID: &receiverID, Subject: "Hello", Content: "Hi neighbour",
		})

		require.NoError(t, err)
		assert.Equal(t, "Hi neighbour", message.Content)
		messageRepo.AssertExpectations(t)
	})

	t.Run("nil receiver addresses management", func(t *testing.T) {
		messageRepo := new(MockMessageRepository)
		userRepo := new(MockUserRepository)
		service := newMessageService(messageRepo, userRepo)

		messageRepo.On("Save", ctx, mock.MatchedBy(func(message *community.Message) bool {
			return message.ReceiverID == nil
		})).Return(nil)

		_, err := service.Send(ctx, testApartment, sender, SendMessageInput{Content: "Broken elevator"})

		require.NoError(t, err)
		userRepo.AssertNotCalled(t, "MemberOfApartment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects sending to oneself", func(t *testing.T) {
		service := newMessageService(new(MockMessageRepository), new(MockUserRepository))

		self := sender.UserID
		_, err := service.Send(ctx, testApartment, sender, SendMessageInput{
			ReceiverID: &self, Content: "note to self",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})

	t.Run("rejects a receiver outside the apartment", func(t *testing.T) {
		messageRepo := new(MockMessageRepository)
		userRepo := new(MockUserRepository)
		service := newMessageService(messageRepo, userRepo)

		stranger := uuid.New()
		userRepo.On("MemberOfApartment", ctx, testApartment, stranger).Return(false, nil)

		_, err := service.Send(ctx, testApartment, sender, SendMessageInput{
			ReceiverID: &stranger, Content: "hello",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		messageRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		service := newMessageService(new(MockMessageRepository), new(MockUserRepository))

		_, err := service.Send(ctx, testApartment, sender, SendMessageInput{Subject: "no body"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})
}

func TestGetMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("opening unread mail as the receiver marks it read", func(t *testing.T) {
		messageRepo := new(MockMessageRepository)
		service := newMessageService(messageRepo, new(MockUserRepository))

		receiver := Caller{UserID: uuid.New()}
		message := community.NewMessage(testApartment, uuid.New(), &receiver.UserID, "Hello", "Hi")
		withNames := &community.MessageWithNames{Message: *message, SenderName: "Resi Dent"}

		messageRepo.On("FindByID", ctx, testApartment, message.ID).Return(withNames, nil)
		messageRepo.On("MarkRead", ctx, testApartment, message.ID, receiver.UserID).Return(message, nil)

		result, err := service.Get(ctx, testApartment, receiver, message.ID)

		require.NoError(t, err)
		assert.True(t, result.IsRead)
		messageRepo.AssertExpectations(t)
	})

	t.Run("sender reads without marking", func(t *testing.T) {
		messageRepo := new(MockMessageRepository)
		service := newMessageService(messageRepo, new(MockUserRepository))

		sender := Caller{UserID: uuid.New()}
		receiverID := uuid.New()
		message := community.NewMessage(testApartment, sender.UserID, &receiverID, "Hello", "Hi")
		withNames := &community.MessageWithNames{Message: *message}

		messageRepo.On("FindByID", ctx, testApartment, message.ID).Return(withNames, nil)

		result, err := service.Get(ctx, testApartment, sender, message.ID)

		require.NoError(t, err)
		assert.False(t, result.IsRead)
		messageRepo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("a bystander may not read a private message", func(t *testing.T) {
		messageRepo := new(MockMessageRepository)
		service := newMessageService(messageRepo, new(MockUserRepository))

		receiverID := uuid.New()
		message := community.NewMessage(testApartment, uuid.New(), &receiverID, "Hello", "Hi")
		withNames := &community.MessageWithNames{Message: *message}

		messageRepo.On("FindByID", ctx, testApartment, message.ID).Return(withNames, nil)

		_, err := service.Get(ctx, testApartment, Caller{UserID: uuid.New()}, message.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})

	t.Run("any admin may read management mail", func(t *testing.T) {
		messageRepo := new(MockMessageRepository)
		service := newMessageService(messageRepo, new(MockUserRepository))

		admin := Caller{UserID: uuid.New(), IsAdmin: true}
		message := community.NewMessage(testApartment, uuid.New(), nil, "Complaint", "Elevator")
		withNames := &community.MessageWithNames{Message: *message}

		messageRepo.On("FindByID", ctx, testApartment, message.ID).Return(withNames, nil)
		messageRepo.On("MarkRead", ctx, testApartment, message.ID, admin.UserID).Return(message, nil)

		result, err := service.Get(ctx, testApartment, admin, message.ID)

		require.NoError(t, err)
		assert.True(t, result.IsRead)
	})
}

func TestDeleteMessage(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("residents only delete their own mail", func(t *testing.T) {
		messageRepo := new(MockMessageRepository)
		service := newMessageService(messageRepo, new(MockUserRepository))

		resident := Caller{UserID: uuid.New()}
		messageRepo.On("Delete", ctx, testApartment, id, &resident.UserID).Return(nil)

		require.NoError(t, service.Delete(ctx, testApartment, resident, id))
		messageRepo.AssertExpectations(t)
	})

	t.Run("admins delete unrestricted", func(t *testing.T) {
		messageRepo := new(MockMessageRepository)
		service := newMessageService(messageRepo, new(MockUserRepository))

		admin := Caller{UserID: uuid.New(), IsAdmin: true}
		messageRepo.On("Delete", ctx, testApartment, id, (*uuid.UUID)(nil)).Return(nil)

		require.NoError(t, service.Delete(ctx, testApartment, admin, id))
		messageRepo.AssertExpectations(t)
	})
}

func TestConversation(t *testing.T) {
	ctx := context.Background()
	messageRepo := new(MockMessageRepository)
	userRepo := new(MockUserRepository)
	service := newMessageService(messageRepo, userRepo)

	caller := Caller{UserID: uuid.New()}
	stranger := uuid.New()
	userRepo.On("MemberOfApartment", ctx, testApartment, stranger).Return(false, nil)

	_, err := service.Conversation(ctx, testApartment, caller, stranger)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	messageRepo.AssertNotCalled(t, "Conversation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
