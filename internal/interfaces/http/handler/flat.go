package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/management360/backend/internal/application/registry"
)

type createFlatRequest struct {
	FlatNumber    string `json:"flatNumber" binding:"required"`
	Block         string `json:"block"`
	Floor         *int   `json:"floor"`
	ResidentCount int    `json:"residentCount" binding:"omitempty,min=0"`
}

type updateFlatRequest struct {
	FlatNumber    *string `json:"flatNumber"`
	Block         *string `json:"block"`
	Floor         *int    `json:"floor"`
	ResidentCount *int    `json:"residentCount"`
}

type generateFlatsRequest struct {
	Count int `json:"count" binding:"required,min=1,max=1000"`
}

// FlatHandler handles flat registry endpoints.
type FlatHandler struct {
	*BaseHandler
	flatService *registry.FlatService
}

// NewFlatHandler creates a new flat handler
func NewFlatHandler(flatService *registry.FlatService, logger *zap.Logger) *FlatHandler {
	return &FlatHandler{
		BaseHandler: NewBaseHandler(logger),
		flatService: flatService,
	}
}

// List returns all flats in the apartment
func (h *FlatHandler) List(c *gin.Context) {
	apartmentCode, ok := h.CurrentApartmentCode(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "Authorization token required")
		return
	}

	flats, err := h.flatService.List(c.Request.Context(), apartmentCode)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Flats retrieved", flats)
}

// Get returns one flat with its registered resident count
func (h *FlatHandler) Get(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	flat, err := h.flatService.Get(c.Request.Context(), apartmentCode, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Flat retrieved", flat)
}

// Create adds a single flat
func (h *FlatHandler) Create(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)

	var req createFlatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid flat payload: "+err.Error())
		return
	}

	flat, err := h.flatService.Create(c.Request.Context(), apartmentCode, registry.CreateFlatInput{
		FlatNumber:    req.FlatNumber,
		Block:         req.Block,
		Floor:         req.Floor,
		ResidentCount: req.ResidentCount,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Flat created", flat)
}

// Generate seeds the apartment with sequentially numbered flats
func (h *FlatHandler) Generate(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)

	var req generateFlatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Count must be between 1 and 1000")
		return
	}

	flats, err := h.flatService.Generate(c.Request.Context(), apartmentCode, req.Count)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Flats generated", flats)
}

// Update patches a flat's details
func (h *FlatHandler) Update(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req updateFlatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid flat payload: "+err.Error())
		return
	}

	flat, err := h.flatService.Update(c.Request.Context(), apartmentCode, id, registry.UpdateFlatInput{
		FlatNumber:    req.FlatNumber,
		Block:         req.Block,
		Floor:         req.Floor,
		ResidentCount: req.ResidentCount,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Flat updated", flat)
}

// Delete removes a flat without registered residents
func (h *FlatHandler) Delete(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.flatService.Delete(c.Request.Context(), apartmentCode, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Flat deleted", nil)
}
