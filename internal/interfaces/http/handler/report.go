package handler

import (
	"github.com/gin-gonic/gin"

	reportapp "github.com/orderbill/backend/internal/application/report"
)

// ReportHandler handles dashboard report API endpoints
type ReportHandler struct {
	BaseHandler
	summaryService *reportapp.SummaryService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(summaryService *reportapp.SummaryService) *ReportHandler {
	return &ReportHandler{summaryService: summaryService}
}

// GetSummary handles GET /report/summary
func (h *ReportHandler) GetSummary(c *gin.Context) {
	summary, err := h.summaryService.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// InvalidateSummary handles POST /report/summary/invalidate
func (h *ReportHandler) InvalidateSummary(c *gin.Context) {
	if err := h.summaryService.Invalidate(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
