package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appparking "github.com/management360/backend/internal/application/parking"
	"github.com/management360/backend/internal/domain/parking"
)

type addSlotRequest struct {
	SlotNumber string `json:"slotNumber" binding:"required"`
	Floor      *int   `json:"floor"`
	Block      string `json:"block"`
	Type       string `json:"type" binding:"omitempty,oneof=normal disabled visitor"`
}

type assignVehicleRequest struct {
	FlatID  uuid.UUID `json:"flatId" binding:"required"`
	PlateID uuid.UUID `json:"plateId" binding:"required"`
}

// ParkingHandler handles parking lot endpoints.
type ParkingHandler struct {
	*BaseHandler
	parkingService *appparking.ParkingService
}

// NewParkingHandler creates a new parking handler
func NewParkingHandler(parkingService *appparking.ParkingService, logger *zap.Logger) *ParkingHandler {
	return &ParkingHandler{
		BaseHandler:    NewBaseHandler(logger),
		parkingService: parkingService,
	}
}

// Create adds a parking slot
func (h *ParkingHandler) Create(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)

	var req addSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid slot payload: "+err.Error())
		return
	}

	slot, err := h.parkingService.AddSlot(c.Request.Context(), apartmentCode, appparking.AddSlotInput{
		SlotNumber: req.SlotNumber,
		Floor:      req.Floor,
		Block:      req.Block,
		Type:       parking.SlotType(req.Type),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Parking slot created", slot)
}

// List returns slots with the lot's occupancy summary
func (h *ParkingHandler) List(c *gin.Context) {
	h.list(c, nil)
}

// ListOccupied returns only occupied slots
func (h *ParkingHandler) ListOccupied(c *gin.Context) {
	occupied := true
	h.list(c, &occupied)
}

// ListAvailable returns only empty slots
func (h *ParkingHandler) ListAvailable(c *gin.Context) {
	occupied := false
	h.list(c, &occupied)
}

func (h *ParkingHandler) list(c *gin.Context, occupied *bool) {
	apartmentCode, _ := h.CurrentApartmentCode(c)

	filter := parking.OccupancyFilter{Occupied: occupied}
	if occupied == nil {
		q, err := boolQuery(c, "occupied")
		if err != nil {
			h.BadRequest(c, err.Error())
			return
		}
		filter.Occupied = q
	}
	floor, err := intQuery(c, "floor")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter.Floor = floor

	listing, err := h.parkingService.ListSlots(c.Request.Context(), apartmentCode, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Parking slots retrieved", listing)
}

// Get returns one slot with its occupying vehicle
func (h *ParkingHandler) Get(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	slot, err := h.parkingService.GetSlot(c.Request.Context(), apartmentCode, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Parking slot retrieved", slot)
}

// Assign parks a registered vehicle in an empty slot
func (h *ParkingHandler) Assign(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req assignVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "flatId and plateId are required")
		return
	}

	slot, err := h.parkingService.AssignVehicle(c.Request.Context(), apartmentCode, id, appparking.AssignVehicleInput{
		FlatID:  req.FlatID,
		PlateID: req.PlateID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Vehicle assigned", slot)
}

// Remove vacates an occupied slot
func (h *ParkingHandler) Remove(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	slot, err := h.parkingService.RemoveVehicle(c.Request.Context(), apartmentCode, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Vehicle removed", slot)
}

// Toggle flips a slot's occupancy by slot number
func (h *ParkingHandler) Toggle(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	slotNumber := c.Param("id")

	slot, err := h.parkingService.ToggleSlot(c.Request.Context(), apartmentCode, slotNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Parking slot toggled", slot)
}

// Delete removes an empty slot
func (h *ParkingHandler) Delete(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.parkingService.DeleteSlot(c.Request.Context(), apartmentCode, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Parking slot deleted", nil)
}
