package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parik/salon-console/internal/core/domain"
	"github.com/parik/salon-console/internal/core/ports"
)

// CatalogHandler proxies the service and master maintenance forms to the
// backend.
type CatalogHandler struct {
	admin   ports.CatalogAdmin
	refresh RefreshStrategy
}

func NewCatalogHandler(admin ports.CatalogAdmin, refresh RefreshStrategy) *CatalogHandler {
	return &CatalogHandler{admin: admin, refresh: refresh}
}

type serviceRequest struct {
	Name        string  `form:"name"        json:"name"        validate:"required"`
	Description string  `form:"description" json:"description"`
	Price       float64 `form:"price"       json:"price"       validate:"gte=0"`
	Duration    int     `form:"duration"    json:"duration"    validate:"gt=0"`
}

// GetService handles GET /services/:id, feeding the edit form prefill.
func (h *CatalogHandler) GetService(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	s, err := h.admin.GetService(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// SaveService handles POST /services and PUT /services/:id.
func (h *CatalogHandler) SaveService(c echo.Context) error {
	var req serviceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var id int64
	if c.Param("id") != "" {
		var err error
		if id, err = pathID(c); err != nil {
			return err
		}
	}

	err := h.admin.SaveService(c.Request().Context(), id, domain.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
	})
	if err != nil {
		return err
	}
	return h.refresh.Done(c, "services")
}

// DeleteService handles DELETE /services/:id.
func (h *CatalogHandler) DeleteService(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.admin.DeleteService(c.Request().Context(), id); err != nil {
		return err
	}
	return h.refresh.Done(c, "services")
}

type masterRequest struct {
	Name           string  `form:"name"           json:"name"   validate:"required"`
	Specialization string  `form:"specialization" json:"specialization"`
	Experience     int     `form:"experience"     json:"experience" validate:"gte=0"`
	Rating         float64 `form:"rating"         json:"rating"     validate:"gte=0,lte=5"`
	UserID         int64   `form:"userId"         json:"userId"     validate:"required"`
}

// GetMaster handles GET /masters/:id.
func (h *CatalogHandler) GetMaster(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	m, err := h.admin.GetMaster(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// SaveMaster handles POST /masters and PUT /masters/:id.
func (h *CatalogHandler) SaveMaster(c echo.Context) error {
	var req masterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var id int64
	if c.Param("id") != "" {
		var err error
		if id, err = pathID(c); err != nil {
			return err
		}
	}

	err := h.admin.SaveMaster(c.Request().Context(), id, domain.Master{
		Name:           req.Name,
		Specialization: req.Specialization,
		Experience:     req.Experience,
		Rating:         req.Rating,
		UserID:         req.UserID,
	})
	if err != nil {
		return err
	}
	return h.refresh.Done(c, "masters")
}

// DeleteMaster handles DELETE /masters/:id.
func (h *CatalogHandler) DeleteMaster(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.admin.DeleteMaster(c.Request().Context(), id); err != nil {
		return err
	}
	return h.refresh.Done(c, "masters")
}
