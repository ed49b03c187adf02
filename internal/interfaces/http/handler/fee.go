package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appdues "github.com/management360/backend/internal/application/dues"
	"github.com/management360/backend/internal/domain/dues"
)

type createDuesPeriodRequest struct {
	Month       int             `json:"month" binding:"required,min=1,max=12"`
	Year        int             `json:"year" binding:"required,min=1"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	DueDate     string          `json:"dueDate"`
	Description string          `json:"description"`
}

type addFeeRequest struct {
	FlatID      uuid.UUID       `json:"flatId" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	DueDate     string          `json:"dueDate"`
	Month       *int            `json:"month" binding:"omitempty,min=1,max=12"`
	Year        *int            `json:"year" binding:"omitempty,min=1"`
	Description string          `json:"description"`
}

type updateFeeStatusRequest struct {
	Status        string `json:"status" binding:"required,oneof=pending paid overdue pending_approval"`
	PaymentMethod string `json:"paymentMethod"`
}

// FeeHandler handles dues billing and debt reporting endpoints.
type FeeHandler struct {
	*BaseHandler
	feeService *appdues.FeeService
}

// NewFeeHandler creates a new fee handler
func NewFeeHandler(feeService *appdues.FeeService, logger *zap.Logger) *FeeHandler {
	return &FeeHandler{
		BaseHandler: NewBaseHandler(logger),
		feeService:  feeService,
	}
}

// CreateDuesPeriod bills every flat in the apartment for one month
func (h *FeeHandler) CreateDuesPeriod(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)

	var req createDuesPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid dues period payload: "+err.Error())
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.feeService.CreateDuesPeriod(c.Request.Context(), apartmentCode, appdues.CreateDuesPeriodInput{
		Month:       req.Month,
		Year:        req.Year,
		Amount:      req.Amount,
		DueDate:     dueDate,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Dues period created", result)
}

// Create adds a single ad-hoc fee to a flat
func (h *FeeHandler) Create(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)

	var req addFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid fee payload: "+err.Error())
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	fee, err := h.feeService.AddFee(c.Request.Context(), apartmentCode, appdues.AddFeeInput{
		FlatID:      req.FlatID,
		Amount:      req.Amount,
		DueDate:     dueDate,
		Month:       req.Month,
		Year:        req.Year,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Fee created", fee)
}

// List returns the apartment's fees, optionally filtered
func (h *FeeHandler) List(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)

	filter, ok := h.feeFilter(c)
	if !ok {
		return
	}

	fees, err := h.feeService.GetFees(c.Request.Context(), apartmentCode, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Fees retrieved", fees)
}

// Get returns one fee joined with its flat
func (h *FeeHandler) Get(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	fee, err := h.feeService.GetFee(c.Request.Context(), apartmentCode, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Fee retrieved", fee)
}

// UpdateStatus transitions a fee's payment status. Settling a fee also
// books the payment as ledger income.
func (h *FeeHandler) UpdateStatus(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := h.CurrentUserID(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "Authorization token required")
		return
	}

	var req updateFeeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Status must be one of: pending, paid, overdue, pending_approval")
		return
	}

	fee, err := h.feeService.UpdatePaymentStatus(c.Request.Context(), apartmentCode, id, actor, appdues.UpdateStatusInput{
		Status:        dues.PaymentStatus(req.Status),
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Payment status updated", fee)
}

// Delete removes a fee
func (h *FeeHandler) Delete(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.feeService.DeleteFee(c.Request.Context(), apartmentCode, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Fee deleted", nil)
}

// Debt returns one flat's full debt report
func (h *FeeHandler) Debt(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	flatID, ok := h.ParseUUIDParam(c, "flatId")
	if !ok {
		return
	}

	report, err := h.feeService.CalculateDebt(c.Request.Context(), apartmentCode, flatID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Debt calculated", report)
}

// Debtors returns every flat with outstanding dues, largest debt first
func (h *FeeHandler) Debtors(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)

	debtors, err := h.feeService.GetDebtorFlats(c.Request.Context(), apartmentCode)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Debtor flats retrieved", debtors)
}

// Summary returns the apartment-wide collection picture
func (h *FeeHandler) Summary(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)

	summary, err := h.feeService.GetDebtSummary(c.Request.Context(), apartmentCode)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Debt summary retrieved", summary)
}

func (h *FeeHandler) feeFilter(c *gin.Context) (dues.FeeFilter, bool) {
	var filter dues.FeeFilter

	month, err := intQuery(c, "month")
	if err != nil {
		h.BadRequest(c, err.Error())
		return filter, false
	}
	year, err := intQuery(c, "year")
	if err != nil {
		h.BadRequest(c, err.Error())
		return filter, false
	}
	filter.Month = month
	filter.Year = year

	if status := c.Query("status"); status != "" {
		parsed := dues.PaymentStatus(status)
		if !parsed.IsValid() {
			h.BadRequest(c, "Invalid status filter")
			return filter, false
		}
		filter.Status = parsed
	}

	if raw := c.Query("flatId"); raw != "" {
		flatID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid flatId filter")
			return filter, false
		}
		filter.FlatID = &flatID
	}

	return filter, true
}
