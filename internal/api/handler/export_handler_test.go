package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/parik/salon-console/internal/core/ports"
)

type stubExporter struct {
	typ, format string
	export      *ports.Export
	err         error
}

func (s *stubExporter) ExportData(ctx context.Context, typ, format string) (*ports.Export, error) {
	s.typ, s.format = typ, format
	if s.err != nil {
		return nil, s.err
	}
	return s.export, nil
}

func exportContext(typ, format string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/export/"+typ+"/"+format, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("type", "format")
	c.SetParamValues(typ, format)
	return c, rec
}

func TestExportHandler_StreamsBackendBlob(t *testing.T) {
	stub := &stubExporter{export: &ports.Export{
		ContentType: "text/csv",
		Filename:    "services.csv",
		Body:        io.NopCloser(strings.NewReader("id,name\n1,Haircut\n")),
	}}
	h := NewExportHandler(stub)

	c, rec := exportContext("services", "csv")
	if err := h.Download(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if stub.typ != "services" || stub.format != "csv" {
		t.Fatalf("backend asked for %s/%s", stub.typ, stub.format)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "text/csv" {
		t.Fatalf("content type %q", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); cd != `attachment; filename="services.csv"` {
		t.Fatalf("content disposition %q", cd)
	}
	if got := rec.Body.String(); got != "id,name\n1,Haircut\n" {
		t.Fatalf("body %q", got)
	}
}

func TestExportHandler_RejectsUnknownType(t *testing.T) {
	stub := &stubExporter{}
	h := NewExportHandler(stub)

	c, _ := exportContext("passwords", "csv")
	err := h.Download(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if stub.typ != "" {
		t.Fatal("backend should not be called for an unknown type")
	}
}

func TestExportHandler_RejectsUnknownFormat(t *testing.T) {
	h := NewExportHandler(&stubExporter{})

	c, _ := exportContext("services", "xlsx")
	err := h.Download(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestExportHandler_FillsMissingMetadata(t *testing.T) {
	stub := &stubExporter{export: &ports.Export{
		Body: io.NopCloser(strings.NewReader("{}")),
	}}
	h := NewExportHandler(stub)

	c, rec := exportContext("users", "json")
	if err := h.Download(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != echo.MIMEOctetStream {
		t.Fatalf("content type %q", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); cd != `attachment; filename="users.json"` {
		t.Fatalf("content disposition %q", cd)
	}
}
