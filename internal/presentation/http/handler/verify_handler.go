package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/jewel-billing/internal/application/service"
	"github.com/sangkips/jewel-billing/internal/presentation/http/dto/response"
)

// VerifyHandler serves the public page reached from the invoice QR code
type VerifyHandler struct {
	billService *service.BillService
}

// NewVerifyHandler creates a new verify handler
func NewVerifyHandler(billService *service.BillService) *VerifyHandler {
	return &VerifyHandler{billService: billService}
}

// Verify handles bill verification by id
// @Summary Verify bill
// @Tags verify
// @Param id path string true "Bill ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /verify/{id} [get]
func (h *VerifyHandler) Verify(c *gin.Context) {
	out, err := h.billService.Verify(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill verified", response.NewVerifyResponse(out))
}
