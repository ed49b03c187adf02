package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appcommunity "github.com/management360/backend/internal/application/community"
)

type sendMessageRequest struct {
	// ReceiverID is omitted when the message is addressed to management.
	ReceiverID *uuid.UUID `json:"receiverId"`
	Subject    string     `json:"subject"`
	Content    string     `json:"content" binding:"required"`
}

// MessageHandler handles the internal mail endpoints.
type MessageHandler struct {
	*BaseHandler
	messageService *appcommunity.MessageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService *appcommunity.MessageService, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{
		BaseHandler:    NewBaseHandler(logger),
		messageService: messageService,
	}
}

// Send delivers a message to another member or to management
func (h *MessageHandler) Send(c *gin.Context) {
	apartmentCode, caller, ok := h.callerContext(c)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid message payload: "+err.Error())
		return
	}

	message, err := h.messageService.Send(c.Request.Context(), apartmentCode, caller, appcommunity.SendMessageInput{
		ReceiverID: req.ReceiverID,
		Subject:    req.Subject,
		Content:    req.Content,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Message sent", message)
}

// Inbox returns the caller's received messages with the unread count
func (h *MessageHandler) Inbox(c *gin.Context) {
	apartmentCode, caller, ok := h.callerContext(c)
	if !ok {
		return
	}

	isRead, err := boolQuery(c, "isRead")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	inbox, err := h.messageService.Inbox(c.Request.Context(), apartmentCode, caller, isRead)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Inbox retrieved", inbox)
}

// Sent returns the caller's sent messages
func (h *MessageHandler) Sent(c *gin.Context) {
	apartmentCode, caller, ok := h.callerContext(c)
	if !ok {
		return
	}

	messages, err := h.messageService.Sent(c.Request.Context(), apartmentCode, caller)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Sent messages retrieved", messages)
}

// Get returns one message; opening it as the receiver marks it read
func (h *MessageHandler) Get(c *gin.Context) {
	apartmentCode, caller, ok := h.callerContext(c)
	if !ok {
		return
	}
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	message, err := h.messageService.Get(c.Request.Context(), apartmentCode, caller, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Message retrieved", message)
}

// Conversation returns the back-and-forth with another member, oldest first
func (h *MessageHandler) Conversation(c *gin.Context) {
	apartmentCode, caller, ok := h.callerContext(c)
	if !ok {
		return
	}
	otherID, ok := h.ParseUUIDParam(c, "userId")
	if !ok {
		return
	}

	messages, err := h.messageService.Conversation(c.Request.Context(), apartmentCode, caller, otherID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Conversation retrieved", messages)
}

// MarkRead marks a received message as read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	apartmentCode, caller, ok := h.callerContext(c)
	if !ok {
		return
	}
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	message, err := h.messageService.MarkRead(c.Request.Context(), apartmentCode, caller, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Message marked as read", message)
}

// Delete removes a message. Admins can delete any; residents their own.
func (h *MessageHandler) Delete(c *gin.Context) {
	apartmentCode, caller, ok := h.callerContext(c)
	if !ok {
		return
	}
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.messageService.Delete(c.Request.Context(), apartmentCode, caller, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Message deleted", nil)
}

// ListUsers returns the apartment's members as recipient candidates
func (h *MessageHandler) ListUsers(c *gin.Context) {
	apartmentCode, caller, ok := h.callerContext(c)
	if !ok {
		return
	}

	users, err := h.messageService.ListUsers(c.Request.Context(), apartmentCode, caller)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Users retrieved", users)
}

func (h *MessageHandler) callerContext(c *gin.Context) (string, appcommunity.Caller, bool) {
	apartmentCode, ok := h.CurrentApartmentCode(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "Authorization token required")
		return "", appcommunity.Caller{}, false
	}
	userID, ok := h.CurrentUserID(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "Authorization token required")
		return "", appcommunity.Caller{}, false
	}
	return apartmentCode, appcommunity.Caller{UserID: userID, IsAdmin: h.IsAdmin(c)}, true
}
