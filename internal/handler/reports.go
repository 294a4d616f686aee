package handler

import (
	"net/http"

	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// Summary godoc
// @Summary      Dashboard summary
// @Description  Inventory and sales aggregates for the dashboard.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.SummaryResponse
// @Router       /api/v1/reports/summary [get]
func (h *ReportsHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
