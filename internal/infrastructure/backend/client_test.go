package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/parik/salon-console/internal/core/domain"
	"github.com/parik/salon-console/internal/core/ports"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api", 2*time.Second, zerolog.Nop())
}

func TestListServices_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/services" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("sortBy"); got != "price" {
			t.Errorf("sortBy not forwarded, got %q", got)
		}
		_, _ = w.Write([]byte(`[{"id":1,"name":"Haircut","price":500},{"id":2,"name":"Coloring","price":1500.5}]`))
	})

	services, err := c.ListServices(context.Background(), ports.ListParams{SortBy: "price", Order: "asc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(services) != 2 {
		t.Fatalf("expected 2 services, got %d", len(services))
	}
	if services[0].Name != "Haircut" || services[1].Price != 1500.5 {
		t.Errorf("decoded services wrong: %+v", services)
	}
}

func TestListServices_NonSuccessStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	_, err := c.ListServices(context.Background(), ports.ListParams{})
	var be *domain.BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if be.Status != http.StatusBadGateway || be.Detail != "upstream down" || be.Resource != "services" {
		t.Errorf("error fields wrong: %+v", be)
	}
}

func TestListMasters_WrongShapeDegradesToEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"not an array"}`))
	})

	masters, err := c.ListMasters(context.Background(), ports.ListParams{})
	if err != nil {
		t.Fatalf("shape mismatch must not fail the read: %v", err)
	}
	if masters == nil || len(masters) != 0 {
		t.Errorf("expected empty collection, got %v", masters)
	}
}

func TestListUsers_NullBodyDegradesToEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})

	users, err := c.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Errorf("expected empty non-nil collection, got %#v", users)
	}
}

func TestCreateAppointment_PostsDraftBody(t *testing.T) {
	var captured map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/appointments" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured)
		w.WriteHeader(http.StatusCreated)
	})

	draft := domain.AppointmentDraft{
		ClientID: 3, MasterID: 5, ServiceID: 9,
		Date: "2025-01-10", Time: "14:30:00", Status: domain.StatusScheduled,
	}
	if err := c.CreateAppointment(context.Background(), draft); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]any{
		"clientId": float64(3), "masterId": float64(5), "serviceId": float64(9),
		"date": "2025-01-10", "time": "14:30:00", "status": "Scheduled",
	}
	for k, v := range want {
		if captured[k] != v {
			t.Errorf("draft field %s = %v, want %v", k, captured[k], v)
		}
	}
}

func TestCreateAppointment_ErrorCarriesBodyText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("Master unavailable"))
	})

	err := c.CreateAppointment(context.Background(), domain.AppointmentDraft{})
	var be *domain.BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if be.Status != http.StatusBadRequest || be.Detail != "Master unavailable" {
		t.Errorf("error fields wrong: %+v", be)
	}
}

func TestSaveService_CreateVersusUpdate(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
	})

	_ = c.SaveService(context.Background(), 0, domain.Service{Name: "Manicure"})
	if gotMethod != http.MethodPost || gotPath != "/api/services" {
		t.Errorf("create: got %s %s", gotMethod, gotPath)
	}

	_ = c.SaveService(context.Background(), 7, domain.Service{Name: "Manicure"})
	if gotMethod != http.MethodPut || gotPath != "/api/services/7" {
		t.Errorf("update: got %s %s", gotMethod, gotPath)
	}
}

func TestExportData_StreamsBlob(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/export-import/export/users/csv" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("id,username\n1,maria\n"))
	})

	exp, err := c.ExportData(context.Background(), "users", "csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer exp.Body.Close()

	if exp.ContentType != "text/csv" || exp.Filename != "users.csv" {
		t.Errorf("export metadata wrong: %+v", exp)
	}
	blob, _ := io.ReadAll(exp.Body)
	if string(blob) != "id,username\n1,maria\n" {
		t.Errorf("blob wrong: %q", blob)
	}
}

func TestTransportError_IsBackendError(t *testing.T) {
	c := New("http://127.0.0.1:1", 200*time.Millisecond, zerolog.Nop())

	_, err := c.ListUsers(context.Background())
	var be *domain.BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected BackendError for transport failure, got %v", err)
	}
	if be.Status != 0 {
		t.Errorf("transport failures carry no HTTP status, got %d", be.Status)
	}
}

func TestTransportError_PreservesCancellationCause(t *testing.T) {
	c := New("http://127.0.0.1:1", time.Second, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListUsers(ctx)
	var be *domain.BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("cancellation must stay visible through the backend error")
	}
}
