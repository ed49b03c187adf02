package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appledger "github.com/management360/backend/internal/application/ledger"
	"github.com/management360/backend/internal/domain/ledger"
)

type addRecordRequest struct {
	Type            string          `json:"type" binding:"required,oneof=income expense"`
	Description     string          `json:"description" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Category        string          `json:"category"`
	TransactionDate string          `json:"transactionDate"`
	ReceiptURL      string          `json:"receiptUrl"`
}

type updateRecordRequest struct {
	Type            *string          `json:"type" binding:"omitempty,oneof=income expense"`
	Description     *string          `json:"description"`
	Amount          *decimal.Decimal `json:"amount"`
	Category        *string          `json:"category"`
	TransactionDate string           `json:"transactionDate"`
	ReceiptURL      *string          `json:"receiptUrl"`
}

// FinanceHandler handles ledger and financial report endpoints.
type FinanceHandler struct {
	*BaseHandler
	financeService *appledger.FinanceService
}

// NewFinanceHandler creates a new finance handler
func NewFinanceHandler(financeService *appledger.FinanceService, logger *zap.Logger) *FinanceHandler {
	return &FinanceHandler{
		BaseHandler:    NewBaseHandler(logger),
		financeService: financeService,
	}
}

// Create files a new ledger entry
func (h *FinanceHandler) Create(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	actor, ok := h.CurrentUserID(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "Authorization token required")
		return
	}

	var req addRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid record payload: "+err.Error())
		return
	}
	transactionDate, err := parseDate(req.TransactionDate)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.financeService.AddRecord(c.Request.Context(), apartmentCode, actor, appledger.AddRecordInput{
		Type:            ledger.RecordType(req.Type),
		Description:     req.Description,
		Amount:          req.Amount,
		Category:        req.Category,
		TransactionDate: transactionDate,
		ReceiptURL:      req.ReceiptURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Record created", record)
}

// List returns ledger entries, optionally filtered
func (h *FinanceHandler) List(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)

	filter, ok := h.recordFilter(c)
	if !ok {
		return
	}

	records, err := h.financeService.GetRecords(c.Request.Context(), apartmentCode, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Records retrieved", records)
}

// Get returns one ledger entry
func (h *FinanceHandler) Get(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	record, err := h.financeService.GetRecord(c.Request.Context(), apartmentCode, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Record retrieved", record)
}

// Summary returns income/expense totals for an optional date window
func (h *FinanceHandler) Summary(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)

	start, end, ok := h.dateWindow(c)
	if !ok {
		return
	}

	summary, err := h.financeService.GetSummary(c.Request.Context(), apartmentCode, start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Summary retrieved", summary)
}

// DetailedReport returns the summary with per-category breakdowns
func (h *FinanceHandler) DetailedReport(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)

	start, end, ok := h.dateWindow(c)
	if !ok {
		return
	}

	report, err := h.financeService.GetDetailedReport(c.Request.Context(), apartmentCode, start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Detailed report retrieved", report)
}

// MonthlyReport returns a year's month-by-month totals
func (h *FinanceHandler) MonthlyReport(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)

	year, err := intQuery(c, "year")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	yearValue := 0
	if year != nil {
		yearValue = *year
	}

	report, err := h.financeService.GetMonthlyReport(c.Request.Context(), apartmentCode, yearValue)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Monthly report retrieved", report)
}

// Update patches a ledger entry
func (h *FinanceHandler) Update(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req updateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid record payload: "+err.Error())
		return
	}
	transactionDate, err := parseDate(req.TransactionDate)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := appledger.UpdateRecordInput{
		Description:     req.Description,
		Amount:          req.Amount,
		Category:        req.Category,
		TransactionDate: transactionDate,
		ReceiptURL:      req.ReceiptURL,
	}
	if req.Type != nil {
		recordType := ledger.RecordType(*req.Type)
		input.Type = &recordType
	}

	record, err := h.financeService.UpdateRecord(c.Request.Context(), apartmentCode, id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Record updated", record)
}

// Delete removes a ledger entry
func (h *FinanceHandler) Delete(c *gin.Context) {
	apartmentCode, _ := h.CurrentApartmentCode(c)
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.financeService.DeleteRecord(c.Request.Context(), apartmentCode, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Record deleted", nil)
}

func (h *FinanceHandler) recordFilter(c *gin.Context) (ledger.RecordFilter, bool) {
	var filter ledger.RecordFilter

	if recordType := c.Query("type"); recordType != "" {
		parsed := ledger.RecordType(recordType)
		if !parsed.IsValid() {
			h.BadRequest(c, "Type filter must be income or expense")
			return filter, false
		}
		filter.Type = parsed
	}
	filter.Category = c.Query("category")

	start, end, ok := h.dateWindow(c)
	if !ok {
		return filter, false
	}
	filter.StartDate = start
	filter.EndDate = end

	return filter, true
}

func (h *FinanceHandler) dateWindow(c *gin.Context) (*time.Time, *time.Time, bool) {
	start, err := dateQuery(c, "startDate")
	if err != nil {
		h.BadRequest(c, err.Error())
		return nil, nil, false
	}
	end, err := dateQuery(c, "endDate")
	if err != nil {
		h.BadRequest(c, err.Error())
		return nil, nil, false
	}
	return start, end, true
}
