package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/parik/salon-console/internal/core/ports"
)

// ReportHandler triggers daily report generation on the backend.
type ReportHandler struct {
	reporter ports.Reporter
	refresh  RefreshStrategy
}

func NewReportHandler(reporter ports.Reporter, refresh RefreshStrategy) *ReportHandler {
	return &ReportHandler{reporter: reporter, refresh: refresh}
}

// Generate handles POST /reports/generate/:date.
func (h *ReportHandler) Generate(c echo.Context) error {
	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
	}
	if err := h.reporter.GenerateReport(c.Request().Context(), date); err != nil {
		return err
	}
	return h.refresh.Done(c, "reports")
}
