package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/parik/salon-console/internal/core/domain"
	"github.com/parik/salon-console/internal/core/ports"
)

// sortable whitelists the sort keys each tab may forward to the backend.
// Anything else is dropped rather than passed through.
var sortable = map[string]map[string]bool{
	"services":     {"name": true, "price": true, "duration": true},
	"appointments": {"date": true, "status": true},
}

// RosterService serves the console's list tabs and the dashboard statistics.
type RosterService struct {
	directory ports.Directory
	scheduler ports.Scheduler
	reporter  ports.Reporter
	logger    zerolog.Logger
}

func NewRosterService(directory ports.Directory, scheduler ports.Scheduler, reporter ports.Reporter, logger zerolog.Logger) *RosterService {
	return &RosterService{directory: directory, scheduler: scheduler, reporter: reporter, logger: logger}
}

// sanitize drops unknown sort keys and normalizes order to asc/desc.
func sanitize(tab string, p ports.ListParams) ports.ListParams {
	if p.SortBy != "" && !sortable[tab][p.SortBy] {
		p.SortBy = ""
		p.Order = ""
	}
	if p.Order != "" && p.Order != "asc" && p.Order != "desc" {
		p.Order = "asc"
	}
	return p
}

func (s *RosterService) Services(ctx context.Context, p ports.ListParams) ([]domain.Service, error) {
	return s.directory.ListServices(ctx, sanitize("services", p))
}

func (s *RosterService) Masters(ctx context.Context, p ports.ListParams) ([]domain.Master, error) {
	return s.directory.ListMasters(ctx, sanitize("masters", p))
}

func (s *RosterService) Appointments(ctx context.Context, p ports.ListParams) ([]domain.Appointment, error) {
	return s.scheduler.ListAppointments(ctx, sanitize("appointments", p))
}

func (s *RosterService) Users(ctx context.Context) ([]domain.User, error) {
	return s.directory.ListUsers(ctx)
}

func (s *RosterService) Reports(ctx context.Context) ([]domain.Report, error) {
	return s.reporter.ListReports(ctx)
}

// Statistics tolerates a failing statistics endpoint: the dashboard renders
// without numbers instead of erroring the whole page.
func (s *RosterService) Statistics(ctx context.Context) map[string]any {
	stats, err := s.reporter.Statistics(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("statistics unavailable")
		return map[string]any{}
	}
	return stats
}
