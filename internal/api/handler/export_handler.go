package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parik/salon-console/internal/core/ports"
)

var (
	exportTypes   = map[string]bool{"services": true, "masters": true, "appointments": true, "users": true, "reports": true}
	exportFormats = map[string]bool{"csv": true, "json": true}
)

// ExportHandler streams backend export downloads through the console.
type ExportHandler struct {
	exporter ports.Exporter
}

func NewExportHandler(exporter ports.Exporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// Download handles GET /export/:type/:format.
func (h *ExportHandler) Download(c echo.Context) error {
	typ, format := c.Param("type"), c.Param("format")
	if !exportTypes[typ] {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown export type")
	}
	if !exportFormats[format] {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown export format")
	}

	exp, err := h.exporter.ExportData(c.Request().Context(), typ, format)
	if err != nil {
		return err
	}
	defer exp.Body.Close()

	filename := exp.Filename
	if filename == "" {
		filename = fmt.Sprintf("%s.%s", typ, format)
	}
	contentType := exp.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Stream(http.StatusOK, contentType, exp.Body)
}
