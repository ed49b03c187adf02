package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appparking "github.com/management360/backend/internal/application/parking"
)

type addPlateRequest struct {
	PlateNumber  string     `json:"plateNumber" binding:"required"`
	OwnerName    string     `json:"ownerName" binding:"required"`
	FlatID       *uuid.UUID `json:"flatId"`
	VehicleModel string     `json:"vehicleModel"`
	Color        string     `json:"color"`
}

type updatePlateRequest struct {
	PlateNumber  *string    `json:"plateNumber"`
	OwnerName    *string    `json:"ownerName"`
	FlatID       *uuid.UUID `json:"flatId"`
	VehicleModel *string    `json:"vehicleModel"`
	Color        *string    `json:"color"`
}

// PlateHandler handles vehicle plate endpoints.
type PlateHandler struct {
	*BaseHandler
	plateService *appparking.PlateService
}

// NewPlateHandler creates a new plate handler
func NewPlateHandler(plateService *appparking.PlateService, logger *zap.Logger) *PlateHandler {
	return &PlateHandler{
		BaseHandler:  NewBaseHandler(logger),
		plateService: plateService,
	}
}

// Create registers a vehicle plate
func (h *PlateHandler) Create(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)

	var req addPlateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid plate payload: "+err.Error())
		return
	}

	plate, err := h.plateService.Add(c.Request.Context(), apartmentCode, appparking.AddPlateInput{
		PlateNumber:  req.PlateNumber,
		OwnerName:    req.OwnerName,
		FlatID:       req.FlatID,
		VehicleModel: req.VehicleModel,
		Color:        req.Color,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Plate registered", plate)
}

// List returns registered plates with their flats
func (h *PlateHandler) List(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)

	plates, err := h.plateService.List(c.Request.Context(), apartmentCode)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Plates retrieved", plates)
}

// Get returns one plate
func (h *PlateHandler) Get(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	plate, err := h.plateService.Get(c.Request.Context(), apartmentCode, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Plate retrieved", plate)
}

// Update patches a plate's details
func (h *PlateHandler) Update(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req updatePlateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid plate payload: "+err.Error())
		return
	}

	plate, err := h.plateService.Update(c.Request.Context(), apartmentCode, id, appparking.UpdatePlateInput{
		PlateNumber:  req.PlateNumber,
		OwnerName:    req.OwnerName,
		FlatID:       req.FlatID,
		VehicleModel: req.VehicleModel,
		Color:        req.Color,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Plate updated", plate)
}

// Delete removes a plate registration
func (h *PlateHandler) Delete(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.plateService.Delete(c.Request.Context(), apartmentCode, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Plate deleted", nil)
}
