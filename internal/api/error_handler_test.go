package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/parik/salon-console/internal/core/domain"
)

func resolve(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	return resolveError(err, zerolog.Nop(), c)
}

func TestResolveError_Mappings(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			"prepare failure is a bad gateway",
			&domain.PrepareError{Failures: []*domain.BackendError{{Resource: "masters", Status: 502, Detail: "down"}}},
			http.StatusBadGateway,
			"loading booking data failed: masters: backend returned 502: down",
		},
		{
			"parse failure is a caller error",
			&domain.ParseError{Field: "clientId", Value: "abc"},
			http.StatusBadRequest,
			`field "clientId": "abc" is not a valid id`,
		},
		{
			"submit rejection keeps backend status and verbatim detail",
			&domain.SubmitError{Status: 400, Detail: "Master unavailable"},
			http.StatusBadRequest,
			"Master unavailable",
		},
		{
			"submit transport failure reads as bad gateway",
			&domain.SubmitError{Detail: "connection refused"},
			http.StatusBadGateway,
			"connection refused",
		},
		{
			"empty submit detail falls back to generic message",
			&domain.SubmitError{Status: 400},
			http.StatusBadRequest,
			"failed to create appointment",
		},
		{
			"duplicate submit is a conflict",
			domain.ErrSubmitInFlight,
			http.StatusConflict,
			"appointment submission already in progress",
		},
		{
			"unexpected error is masked",
			errors.New("pq: secret table missing"),
			http.StatusInternalServerError,
			"internal server error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := resolve(t, tc.err)
			if code != tc.wantCode {
				t.Errorf("code = %d, want %d", code, tc.wantCode)
			}
			if msg != tc.wantMsg {
				t.Errorf("msg = %q, want %q", msg, tc.wantMsg)
			}
		})
	}
}

func TestResolveError_EchoHTTPError(t *testing.T) {
	code, msg := resolve(t, echo.NewHTTPError(http.StatusNotFound, "not found"))
	if code != http.StatusNotFound || msg != "not found" {
		t.Errorf("got %d %q", code, msg)
	}
}
