package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/jewel-billing/internal/application/service"
	"github.com/sangkips/jewel-billing/internal/presentation/http/dto/request"
	"github.com/sangkips/jewel-billing/internal/presentation/http/dto/response"
)

// BillHandler handles bill-related HTTP requests
type BillHandler struct {
	billService   *service.BillService
	reportService *service.ReportService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *service.BillService, reportService *service.ReportService) *BillHandler {
	return &BillHandler{billService: billService, reportService: reportService}
}

// Create handles bill creation
// @Summary Create bill
// @Tags bills
// @Accept json
// @Produce json
// @Param request body request.CreateBillRequest true "Bill data"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /bills [post]
func (h *BillHandler) Create(c *gin.Context) {
	var req request.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input, err := toBillInput(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	bill, err := h.billService.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill created successfully", bill)
}

// Preview recomputes totals for an unsaved bill
// @Summary Preview bill totals
// @Tags bills
// @Router /bills/preview [post]
func (h *BillHandler) Preview(c *gin.Context) {
	var req request.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	out, err := h.billService.Preview(&service.BillInput{Items: req.LineItems()})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Totals computed", response.NewPreviewResponse(out))
}

// Search looks a bill up by invoice number
// @Summary Search bill
// @Tags bills
// @Param invoiceNo path string true "Invoice number"
// @Router /bills/search/{invoiceNo} [get]
func (h *BillHandler) Search(c *gin.Context) {
	view, err := h.billService.Search(c.Request.Context(), c.Param("invoiceNo"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", response.NewBillViewResponse(view))
}

// Cancel cancels an active bill
// @Summary Cancel bill
// @Tags bills
// @Param invoiceNo path string true "Invoice number"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /bills/cancel/{invoiceNo} [put]
func (h *BillHandler) Cancel(c *gin.Context) {
	bill, err := h.billService.Cancel(c.Request.Context(), c.Param("invoiceNo"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill cancelled successfully", bill)
}

// History lists the most recent bills
// @Summary Bill history
// @Tags bills
// @Router /bills/history [get]
func (h *BillHandler) History(c *gin.Context) {
	bills, err := h.billService.History(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill history retrieved successfully", bills)
}

// ExportHistory downloads the bill history as a spreadsheet
// @Summary Export bill history
// @Tags bills
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /bills/history/export [get]
func (h *BillHandler) ExportHistory(c *gin.Context) {
	export, err := h.reportService.ExportHistory(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, export.FileName, contentTypeXLSX, export.Content)
}

// DownloadPDF renders the invoice document
// @Summary Download invoice PDF
// @Tags bills
// @Produce application/pdf
// @Param invoiceNo path string true "Invoice number"
// @Router /bills/{invoiceNo}/pdf [get]
func (h *BillHandler) DownloadPDF(c *gin.Context) {
	doc, err := h.billService.RenderPDF(c.Request.Context(), c.Param("invoiceNo"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, doc.FileName, contentTypePDF, doc.Content)
}
