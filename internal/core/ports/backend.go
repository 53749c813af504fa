// Package ports defines the interfaces between the console's core services
// and everything that lives at the edges: the salon backend API and the
// submission guard.
package ports

import (
	"context"
	"io"

	"github.com/parik/salon-console/internal/core/domain"
)

// ListParams are the query controls the backend accepts on list reads.
// Zero values are omitted from the outgoing query string.
type ListParams struct {
	Search string
	SortBy string
	Order  string
}

// Directory provides the three reference collections the booking form is
// assembled from.
type Directory interface {
	ListServices(ctx context.Context, p ListParams) ([]domain.Service, error)
	ListMasters(ctx context.Context, p ListParams) ([]domain.Master, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// Scheduler covers the appointment lifecycle calls.
type Scheduler interface {
	ListAppointments(ctx context.Context, p ListParams) ([]domain.Appointment, error)
	CreateAppointment(ctx context.Context, draft domain.AppointmentDraft) error
	CompleteAppointment(ctx context.Context, id int64) error
	CancelAppointment(ctx context.Context, id int64) error
	DeleteAppointment(ctx context.Context, id int64) error
}

// CatalogAdmin covers create/update/delete for the admin-managed resources.
type CatalogAdmin interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	SaveService(ctx context.Context, id int64, s domain.Service) error
	DeleteService(ctx context.Context, id int64) error

	GetMaster(ctx context.Context, id int64) (*domain.Master, error)
	SaveMaster(ctx context.Context, id int64, m domain.Master) error
	DeleteMaster(ctx context.Context, id int64) error

	CreateUser(ctx context.Context, u domain.User, password string) error
	UpdateUser(ctx context.Context, id int64, u domain.User) error
	DeleteUser(ctx context.Context, id int64) error
}

// Reporter covers report generation and the dashboard statistics blob.
type Reporter interface {
	ListReports(ctx context.Context) ([]domain.Report, error)
	GenerateReport(ctx context.Context, date string) error
	Statistics(ctx context.Context) (map[string]any, error)
}

// Export is a backend-produced download streamed through the console.
// Callers own closing Body.
type Export struct {
	ContentType string
	Filename    string
	Body        io.ReadCloser
}

// Exporter triggers backend data exports.
type Exporter interface {
	ExportData(ctx context.Context, typ, format string) (*Export, error)
}

// Backend is the full salon API surface the console consumes.
type Backend interface {
	Directory
	Scheduler
	CatalogAdmin
	Reporter
	Exporter
	Ping(ctx context.Context) error
}
