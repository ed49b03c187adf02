package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcommunity "github.com/management360/backend/internal/application/community"
	"github.com/management360/backend/internal/domain/community"
)

type addAnnouncementRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Priority string `json:"priority" binding:"omitempty,oneof=normal high urgent"`
}

type updateAnnouncementRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Priority *string `json:"priority" binding:"omitempty,oneof=normal high urgent"`
}

// AnnouncementHandler handles the announcement board endpoints.
type AnnouncementHandler struct {
	*BaseHandler
	announcementService *appcommunity.AnnouncementService
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(announcementService *appcommunity.AnnouncementService, logger *zap.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		BaseHandler:         NewBaseHandler(logger),
		announcementService: announcementService,
	}
}

// Create posts a new announcement
func (h *AnnouncementHandler) Create(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	author, ok := h.CurrentUserID(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "Authorization token required")
		return
	}

	var req addAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid announcement payload: "+err.Error())
		return
	}

	announcement, err := h.announcementService.Add(c.Request.Context(), apartmentCode, author, appcommunity.AddAnnouncementInput{
		Title:    req.Title,
		Content:  req.Content,
		Priority: community.Priority(req.Priority),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Announcement created", announcement)
}

// List returns announcements, newest first
func (h *AnnouncementHandler) List(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)

	announcements, err := h.announcementService.List(c.Request.Context(), apartmentCode, community.Priority(c.Query("priority")))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Announcements retrieved", announcements)
}

// Get returns one announcement with its author
func (h *AnnouncementHandler) Get(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	announcement, err := h.announcementService.Get(c.Request.Context(), apartmentCode, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Announcement retrieved", announcement)
}

// Update patches an announcement
func (h *AnnouncementHandler) Update(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req updateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid announcement payload: "+err.Error())
		return
	}

	patch := community.AnnouncementPatch{
		Title:   req.Title,
		Content: req.Content,
	}
	if req.Priority != nil {
		priority := community.Priority(*req.Priority)
		patch.Priority = &priority
	}

	announcement, err := h.announcementService.Update(c.Request.Context(), apartmentCode, id, patch)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Announcement updated", announcement)
}

// Delete removes an announcement
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.announcementService.Delete(c.Request.Context(), apartmentCode, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Announcement deleted", nil)
}
