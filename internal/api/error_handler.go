package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/parik/salon-console/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known console errors to their appropriate HTTP status codes.
//   - Passes backend-provided detail text through verbatim so the UI can
//     show the server's own message.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var (
		prepErr   *domain.PrepareError
		parseErr  *domain.ParseError
		submitErr *domain.SubmitError
		beErr     *domain.BackendError
	)
	switch {
	case errors.As(err, &prepErr):
		return http.StatusBadGateway, prepErr.Error()
	case errors.As(err, &parseErr):
		return http.StatusBadRequest, parseErr.Error()
	case errors.As(err, &submitErr):
		// The backend's rejection code is the UI's rejection code; a
		// transport-level failure has no code and reads as a bad gateway.
		code := submitErr.Status
		if code < http.StatusBadRequest {
			code = http.StatusBadGateway
		}
		return code, submitErr.Error()
	case errors.Is(err, domain.ErrSubmitInFlight):
		return http.StatusConflict, err.Error()
	case errors.As(err, &beErr):
		code := beErr.Status
		if code < http.StatusBadRequest {
			code = http.StatusBadGateway
		}
		return code, beErr.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
