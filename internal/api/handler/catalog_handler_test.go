package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/parik/salon-console/internal/core/domain"
)

type stubAdmin struct {
	services map[int64]domain.Service
	masters  map[int64]domain.Master

	savedServiceID int64
	savedService   *domain.Service
	savedMasterID  int64
	savedMaster    *domain.Master
	deletedService int64
	deletedMaster  int64
	createdUser    *domain.User
	createdPass    string
	updatedUser    *domain.User
	deletedUser    int64
}

func (s *stubAdmin) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	sv := s.services[id]
	return &sv, nil
}

func (s *stubAdmin) SaveService(ctx context.Context, id int64, sv domain.Service) error {
	s.savedServiceID, s.savedService = id, &sv
	return nil
}

func (s *stubAdmin) DeleteService(ctx context.Context, id int64) error {
	s.deletedService = id
	return nil
}

func (s *stubAdmin) GetMaster(ctx context.Context, id int64) (*domain.Master, error) {
	m := s.masters[id]
	return &m, nil
}

func (s *stubAdmin) SaveMaster(ctx context.Context, id int64, m domain.Master) error {
	s.savedMasterID, s.savedMaster = id, &m
	return nil
}

func (s *stubAdmin) DeleteMaster(ctx context.Context, id int64) error {
	s.deletedMaster = id
	return nil
}

func (s *stubAdmin) CreateUser(ctx context.Context, u domain.User, password string) error {
	s.createdUser, s.createdPass = &u, password
	return nil
}

func (s *stubAdmin) UpdateUser(ctx context.Context, id int64, u domain.User) error {
	u.ID = id
	s.updatedUser = &u
	return nil
}

func (s *stubAdmin) DeleteUser(ctx context.Context, id int64) error {
	s.deletedUser = id
	return nil
}

func adminFormContext(t *testing.T, path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCatalogHandler_SaveService_Create(t *testing.T) {
	admin := &stubAdmin{}
	h := NewCatalogHandler(admin, ReloadRefresh{})

	form := url.Values{
		"name":        {"Haircut"},
		"description": {"Classic cut"},
		"price":       {"500"},
		"duration":    {"30"},
	}
	c, rec := adminFormContext(t, "/services", form)
	if err := h.SaveService(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if admin.savedServiceID != 0 {
		t.Fatalf("create should pass id 0, got %d", admin.savedServiceID)
	}
	want := domain.Service{Name: "Haircut", Description: "Classic cut", Price: 500, Duration: 30}
	if *admin.savedService != want {
		t.Fatalf("saved %+v, want %+v", *admin.savedService, want)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/?tab=services" {
		t.Fatalf("expected redirect to services tab, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestCatalogHandler_SaveService_Update(t *testing.T) {
	admin := &stubAdmin{}
	h := NewCatalogHandler(admin, ReloadRefresh{})

	form := url.Values{"name": {"Haircut"}, "price": {"550"}, "duration": {"30"}}
	c, _ := adminFormContext(t, "/services/4", form)
	c.SetParamNames("id")
	c.SetParamValues("4")

	if err := h.SaveService(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if admin.savedServiceID != 4 {
		t.Fatalf("update should pass id 4, got %d", admin.savedServiceID)
	}
}

func TestCatalogHandler_SaveService_Invalid(t *testing.T) {
	admin := &stubAdmin{}
	h := NewCatalogHandler(admin, ReloadRefresh{})

	// missing name, zero duration
	form := url.Values{"price": {"500"}, "duration": {"0"}}
	c, _ := adminFormContext(t, "/services", form)

	err := h.SaveService(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if admin.savedService != nil {
		t.Fatal("invalid payload must not reach the backend")
	}
}

func TestCatalogHandler_GetService_JSON(t *testing.T) {
	admin := &stubAdmin{services: map[int64]domain.Service{
		9: {ID: 9, Name: "Coloring", Price: 1200.5, Duration: 90},
	}}
	h := NewCatalogHandler(admin, ReloadRefresh{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/services/9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := h.GetService(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var got domain.Service
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Name != "Coloring" || got.Price != 1200.5 {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestCatalogHandler_SaveMaster_Create(t *testing.T) {
	admin := &stubAdmin{}
	h := NewCatalogHandler(admin, ReloadRefresh{})

	form := url.Values{
		"name":           {"Irina"},
		"specialization": {"Colorist"},
		"experience":     {"5"},
		"rating":         {"4.8"},
		"userId":         {"12"},
	}
	c, _ := adminFormContext(t, "/masters", form)
	if err := h.SaveMaster(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	want := domain.Master{Name: "Irina", Specialization: "Colorist", Experience: 5, Rating: 4.8, UserID: 12}
	if *admin.savedMaster != want {
		t.Fatalf("saved %+v, want %+v", *admin.savedMaster, want)
	}
}

func TestCatalogHandler_SaveMaster_RatingOutOfRange(t *testing.T) {
	admin := &stubAdmin{}
	h := NewCatalogHandler(admin, ReloadRefresh{})

	form := url.Values{"name": {"Irina"}, "rating": {"6"}, "userId": {"12"}}
	c, _ := adminFormContext(t, "/masters", form)

	err := h.SaveMaster(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestCatalogHandler_Delete(t *testing.T) {
	admin := &stubAdmin{}
	h := NewCatalogHandler(admin, FragmentRefresh{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.DeleteService(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if admin.deletedService != 3 {
		t.Fatalf("deleted id %d", admin.deletedService)
	}
	if rec.Code != http.StatusNoContent || rec.Header().Get(RefreshHeader) != "services" {
		t.Fatalf("expected fragment refresh for services, got %d %q", rec.Code, rec.Header().Get(RefreshHeader))
	}
}

func TestUserHandler_Create(t *testing.T) {
	admin := &stubAdmin{}
	h := NewUserHandler(admin, ReloadRefresh{})

	form := url.Values{
		"username": {"kat"},
		"email":    {"kat@example.com"},
		"password": {"secret1"},
		"role":     {"Client"},
	}
	c, _ := adminFormContext(t, "/users", form)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if admin.createdUser == nil || admin.createdUser.Username != "kat" || admin.createdUser.Role != domain.RoleClient {
		t.Fatalf("created %+v", admin.createdUser)
	}
	if admin.createdPass != "secret1" {
		t.Fatalf("password %q", admin.createdPass)
	}
}

func TestUserHandler_Update(t *testing.T) {
	admin := &stubAdmin{}
	h := NewUserHandler(admin, ReloadRefresh{})

	form := url.Values{
		"username": {"kat"},
		"email":    {"kat@new.example.com"},
		"role":     {"Master"},
	}
	c, _ := adminFormContext(t, "/users/7", form)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if admin.updatedUser == nil || admin.updatedUser.ID != 7 || admin.updatedUser.Role != domain.RoleMaster {
		t.Fatalf("updated %+v", admin.updatedUser)
	}
}

func TestUserHandler_Create_RejectsUnknownRole(t *testing.T) {
	admin := &stubAdmin{}
	h := NewUserHandler(admin, ReloadRefresh{})

	form := url.Values{
		"username": {"kat"},
		"email":    {"kat@example.com"},
		"password": {"secret1"},
		"role":     {"Owner"},
	}
	c, _ := adminFormContext(t, "/users", form)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if admin.createdUser != nil {
		t.Fatal("invalid payload must not reach the backend")
	}
}
