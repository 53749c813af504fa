package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/parik/salon-console/internal/api/middleware"
	"github.com/parik/salon-console/internal/core/ports"
)

// AppointmentHandler hosts the booking form and the appointment lifecycle
// actions.
type AppointmentHandler struct {
	composer  ports.Composer
	scheduler ports.Scheduler
	refresh   RefreshStrategy
}

func NewAppointmentHandler(composer ports.Composer, scheduler ports.Scheduler, refresh RefreshStrategy) *AppointmentHandler {
	return &AppointmentHandler{composer: composer, scheduler: scheduler, refresh: refresh}
}

// NewForm handles GET /appointments/new: assemble the booking form and
// render it as the modal fragment.
//
// @Summary      Render the appointment booking form
// @Tags         appointments
// @Produce      html
// @Success      200  {string}  string
// @Failure      502  {object}  map[string]string
// @Router       /appointments/new [get]
func (h *AppointmentHandler) NewForm(c echo.Context) error {
	form, err := h.composer.Prepare(c.Request().Context(), middleware.SessionFrom(c))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "booking-form", form)
}

type submitRequest struct {
	Token     string `form:"token"`
	ClientID  string `form:"clientId"`
	MasterID  string `form:"masterId"  validate:"required"`
	ServiceID string `form:"serviceId" validate:"required"`
	Date      string `form:"date"      validate:"required,datetime=2006-01-02"`
	Time      string `form:"time"      validate:"required"`
}

// Create handles POST /appointments: one create request per submission.
//
// @Summary      Create an appointment from the booking form
// @Tags         appointments
// @Accept       x-www-form-urlencoded
// @Success      204
// @Success      303
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /appointments [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.composer.Submit(c.Request().Context(), middleware.SessionFrom(c), ports.FormValues{
		Token:     req.Token,
		ClientID:  req.ClientID,
		MasterID:  req.MasterID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
	})
	if err != nil {
		return err
	}

	return h.refresh.Done(c, "appointments")
}

// Complete handles POST /appointments/:id/complete.
func (h *AppointmentHandler) Complete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.scheduler.CompleteAppointment(c.Request().Context(), id); err != nil {
		return err
	}
	return h.refresh.Done(c, "appointments")
}

// Cancel handles POST /appointments/:id/cancel.
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.scheduler.CancelAppointment(c.Request().Context(), id); err != nil {
		return err
	}
	return h.refresh.Done(c, "appointments")
}

// Delete handles DELETE /appointments/:id.
func (h *AppointmentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.scheduler.DeleteAppointment(c.Request().Context(), id); err != nil {
		return err
	}
	return h.refresh.Done(c, "appointments")
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
