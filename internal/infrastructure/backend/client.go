// Package backend implements the REST client for the salon API. It is the
// only place the console talks to the network, and the boundary where the
// collection-shape fallback policy lives.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/parik/salon-console/internal/api/metrics"
	"github.com/parik/salon-console/internal/core/domain"
	"github.com/parik/salon-console/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Client talks to the salon backend under its /api base path.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// New builds a Client. baseURL includes the /api prefix, e.g.
// "http://localhost:8081/api". A non-positive timeout gets the default.
func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

var _ ports.Backend = (*Client)(nil)

// ── Directory ────────────────────────────────────────────────────────────────

func (c *Client) ListServices(ctx context.Context, p ports.ListParams) ([]domain.Service, error) {
	body, err := c.call(ctx, "services", http.MethodGet, "/services", listQuery(p), nil)
	if err != nil {
		return nil, err
	}
	return decodeCollection[domain.Service](c.logger, "services", body), nil
}

func (c *Client) ListMasters(ctx context.Context, p ports.ListParams) ([]domain.Master, error) {
	body, err := c.call(ctx, "masters", http.MethodGet, "/masters", listQuery(p), nil)
	if err != nil {
		return nil, err
	}
	return decodeCollection[domain.Master](c.logger, "masters", body), nil
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	body, err := c.call(ctx, "users", http.MethodGet, "/users", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeCollection[domain.User](c.logger, "users", body), nil
}

// ── Scheduler ────────────────────────────────────────────────────────────────

func (c *Client) ListAppointments(ctx context.Context, p ports.ListParams) ([]domain.Appointment, error) {
	body, err := c.call(ctx, "appointments", http.MethodGet, "/appointments", listQuery(p), nil)
	if err != nil {
		return nil, err
	}
	return decodeCollection[domain.Appointment](c.logger, "appointments", body), nil
}

func (c *Client) CreateAppointment(ctx context.Context, draft domain.AppointmentDraft) error {
	_, err := c.call(ctx, "appointments", http.MethodPost, "/appointments", nil, draft)
	return err
}

func (c *Client) CompleteAppointment(ctx context.Context, id int64) error {
	_, err := c.call(ctx, "appointments", http.MethodPut, fmt.Sprintf("/appointments/%d/complete", id), nil, nil)
	return err
}

func (c *Client) CancelAppointment(ctx context.Context, id int64) error {
	_, err := c.call(ctx, "appointments", http.MethodPut, fmt.Sprintf("/appointments/%d/cancel", id), nil, nil)
	return err
}

func (c *Client) DeleteAppointment(ctx context.Context, id int64) error {
	_, err := c.call(ctx, "appointments", http.MethodDelete, fmt.Sprintf("/appointments/%d", id), nil, nil)
	return err
}

// ── CatalogAdmin ─────────────────────────────────────────────────────────────

func (c *Client) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	body, err := c.call(ctx, "services", http.MethodGet, fmt.Sprintf("/services/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	var s domain.Service
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("decode service: %w", err)
	}
	return &s, nil
}

// SaveService creates when id is zero, updates otherwise.
func (c *Client) SaveService(ctx context.Context, id int64, s domain.Service) error {
	method, path := http.MethodPost, "/services"
	if id > 0 {
		method, path = http.MethodPut, fmt.Sprintf("/services/%d", id)
	}
	_, err := c.call(ctx, "services", method, path, nil, s)
	return err
}

func (c *Client) DeleteService(ctx context.Context, id int64) error {
	_, err := c.call(ctx, "services", http.MethodDelete, fmt.Sprintf("/services/%d", id), nil, nil)
	return err
}

func (c *Client) GetMaster(ctx context.Context, id int64) (*domain.Master, error) {
	body, err := c.call(ctx, "masters", http.MethodGet, fmt.Sprintf("/masters/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	var m domain.Master
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("decode master: %w", err)
	}
	return &m, nil
}

// SaveMaster creates when id is zero, updates otherwise.
func (c *Client) SaveMaster(ctx context.Context, id int64, m domain.Master) error {
	method, path := http.MethodPost, "/masters"
	if id > 0 {
		method, path = http.MethodPut, fmt.Sprintf("/masters/%d", id)
	}
	_, err := c.call(ctx, "masters", method, path, nil, m)
	return err
}

func (c *Client) DeleteMaster(ctx context.Context, id int64) error {
	_, err := c.call(ctx, "masters", http.MethodDelete, fmt.Sprintf("/masters/%d", id), nil, nil)
	return err
}

func (c *Client) CreateUser(ctx context.Context, u domain.User, password string) error {
	payload := map[string]any{
		"username": u.Username,
		"password": password,
		"role":     u.Role,
		"email":    u.Email,
	}
	if u.Phone != "" {
		payload["phone"] = u.Phone
	}
	_, err := c.call(ctx, "users", http.MethodPost, "/users", nil, payload)
	return err
}

// UpdateUser never touches credentials; password changes stay with the
// backend's own account flows.
func (c *Client) UpdateUser(ctx context.Context, id int64, u domain.User) error {
	_, err := c.call(ctx, "users", http.MethodPut, fmt.Sprintf("/users/%d", id), nil, u)
	return err
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	_, err := c.call(ctx, "users", http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
	return err
}

// ── Reporter ─────────────────────────────────────────────────────────────────

func (c *Client) ListReports(ctx context.Context) ([]domain.Report, error) {
	body, err := c.call(ctx, "reports", http.MethodGet, "/reports", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeCollection[domain.Report](c.logger, "reports", body), nil
}

func (c *Client) GenerateReport(ctx context.Context, date string) error {
	_, err := c.call(ctx, "reports", http.MethodPost, "/reports/generate/"+url.PathEscape(date), nil, nil)
	return err
}

func (c *Client) Statistics(ctx context.Context) (map[string]any, error) {
	body, err := c.call(ctx, "statistics", http.MethodGet, "/statistics", nil, nil)
	if err != nil {
		return nil, err
	}
	stats := map[string]any{}
	if err := json.Unmarshal(body, &stats); err != nil {
		c.logger.Warn().Err(err).Msg("statistics payload not an object, ignoring")
	}
	return stats, nil
}

// ── Exporter ─────────────────────────────────────────────────────────────────

// ExportData streams a backend export. The response body is handed to the
// caller unread so large blobs never sit in memory.
func (c *Client) ExportData(ctx context.Context, typ, format string) (*ports.Export, error) {
	path := fmt.Sprintf("/export-import/export/%s/%s", url.PathEscape(typ), url.PathEscape(format))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendRequestDuration.WithLabelValues("export", http.MethodGet).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestErrors.WithLabelValues("export", "transport").Inc()
		return nil, &domain.BackendError{Resource: "export", Detail: err.Error(), Err: err}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		metrics.BackendRequestErrors.WithLabelValues("export", strconv.Itoa(resp.StatusCode)).Inc()
		return nil, &domain.BackendError{Resource: "export", Status: resp.StatusCode, Detail: strings.TrimSpace(string(detail))}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &ports.Export{
		ContentType: contentType,
		Filename:    typ + "." + format,
		Body:        resp.Body,
	}, nil
}

// Ping checks backend reachability for the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.call(ctx, "statistics", http.MethodGet, "/statistics", nil, nil)
	return err
}

// ── Plumbing ─────────────────────────────────────────────────────────────────

const maxErrorBody = 8 << 10

// call performs one backend request and returns the response body. Non-2xx
// responses become a BackendError carrying the plain-text body as detail.
func (c *Client) call(ctx context.Context, resource, method, path string, query url.Values, payload any) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", resource, err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(resource, method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestErrors.WithLabelValues(resource, "transport").Inc()
		return nil, &domain.BackendError{Resource: resource, Detail: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		metrics.BackendRequestErrors.WithLabelValues(resource, strconv.Itoa(resp.StatusCode)).Inc()
		return nil, &domain.BackendError{
			Resource: resource,
			Status:   resp.StatusCode,
			Detail:   strings.TrimSpace(string(detail)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", resource, err)
	}
	return body, nil
}

func listQuery(p ports.ListParams) url.Values {
	q := url.Values{}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.SortBy != "" {
		q.Set("sortBy", p.SortBy)
	}
	if p.Order != "" {
		q.Set("order", p.Order)
	}
	return q
}

// decodeCollection applies the shape-fallback policy for list reads: a 2xx
// payload that does not decode as a JSON array degrades to the empty
// collection. This masks a backend contract violation on purpose, so it is
// logged loudly and unit-tested directly.
func decodeCollection[T any](log zerolog.Logger, resource string, body []byte) []T {
	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		log.Warn().Str("resource", resource).Err(err).Msg("payload is not a collection, treating as empty")
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}
