package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/One-Orco/quickrent-backend/internal/core/ports"
)

// ReportHandler serves the admin analytics summary.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Summary handles GET /v1/reports/summary.
//
// @Summary      Admin analytics summary
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.ReportSummary
// @Failure      403  {object}  errorResponse
// @Router       /v1/reports/summary [get]
func (h *ReportHandler) Summary(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	summary, err := h.service.Summary(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
