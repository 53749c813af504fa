package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parik/salon-console/internal/api/middleware"
	"github.com/parik/salon-console/internal/core/domain"
	"github.com/parik/salon-console/internal/core/ports"
	"github.com/parik/salon-console/internal/core/service"
	"github.com/parik/salon-console/internal/pkg/config"
)

// ConsoleHandler renders the tabbed admin page.
type ConsoleHandler struct {
	roster  *service.RosterService
	display config.Display
}

func NewConsoleHandler(roster *service.RosterService, display config.Display) *ConsoleHandler {
	return &ConsoleHandler{roster: roster, display: display}
}

type pageData struct {
	Tabs    []config.Tab
	Active  string
	Session *domain.Session
	Stats   map[string]any

	Services     []domain.Service
	Masters      []domain.Master
	Appointments []domain.Appointment
	Users        []domain.User
	Reports      []domain.Report
}

// Home handles GET /. The active tab's list is fetched server-side with the
// search and sort params forwarded from the query string.
func (h *ConsoleHandler) Home(c echo.Context) error {
	ctx := c.Request().Context()

	data := pageData{
		Tabs:    h.display.Tabs,
		Active:  h.activeTab(c.QueryParam("tab")),
		Session: middleware.SessionFrom(c),
		Stats:   h.roster.Statistics(ctx),
	}
	params := ports.ListParams{
		Search: c.QueryParam("search"),
		SortBy: c.QueryParam("sortBy"),
		Order:  c.QueryParam("order"),
	}

	var err error
	switch data.Active {
	case "services":
		data.Services, err = h.roster.Services(ctx, params)
	case "masters":
		data.Masters, err = h.roster.Masters(ctx, params)
	case "appointments":
		data.Appointments, err = h.roster.Appointments(ctx, params)
	case "users":
		data.Users, err = h.roster.Users(ctx)
	case "reports":
		data.Reports, err = h.roster.Reports(ctx)
	}
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "page", data)
}

// activeTab falls back to the first configured tab for unknown keys so a
// stale bookmark never renders an empty shell.
func (h *ConsoleHandler) activeTab(key string) string {
	for _, t := range h.display.Tabs {
		if t.Key == key {
			return key
		}
	}
	if len(h.display.Tabs) > 0 {
		return h.display.Tabs[0].Key
	}
	return "services"
}
