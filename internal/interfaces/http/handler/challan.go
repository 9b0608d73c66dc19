package handler

import (
	"github.com/gin-gonic/gin"

	billingapp "github.com/orderbill/backend/internal/application/billing"
)

// ChallanHandler handles challan API endpoints
type ChallanHandler struct {
	BaseHandler
	challanService *billingapp.ChallanService
}

// NewChallanHandler creates a new ChallanHandler
func NewChallanHandler(challanService *billingapp.ChallanService) *ChallanHandler {
	return &ChallanHandler{challanService: challanService}
}

// Create handles POST /billing/challans
func (h *ChallanHandler) Create(c *gin.Context) {
	var req billingapp.CreateChallanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	challan, err := h.challanService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, challan)
}

// Get handles GET /billing/challans/:id
func (h *ChallanHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid challan ID")
		return
	}

	challan, err := h.challanService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, challan)
}

// List handles GET /billing/challans
func (h *ChallanHandler) List(c *gin.Context) {
	var filter billingapp.ChallanListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.challanService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Delete handles DELETE /billing/challans/:id
func (h *ChallanHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid challan ID")
		return
	}

	if err := h.challanService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ResetBilling handles POST /billing/challans/:id/reset-billing
func (h *ChallanHandler) ResetBilling(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid challan ID")
		return
	}

	if err := h.challanService.ResetBilling(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
