package archive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/domain/patient"
)

func setupHandler(svc *Service) *echo.Echo {
	e := echo.New()
	NewHandler(svc).RegisterRoutes(e.Group("/api"))
	return e
}

func TestArchiveEndpointRejectsBadDeleteOption(t *testing.T) {
	svc := newTestService(newMockLedger(), &mockPatientStore{}, &mockBillingStore{}, &mockChartStore{}, &stubBuilder{})
	e := setupHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/archives",
		strings.NewReader(`{"month":"2025-03","deleteOption":"someday"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestArchiveEndpointRejectsBadPeriod(t *testing.T) {
	svc := newTestService(newMockLedger(), &mockPatientStore{}, &mockBillingStore{}, &mockChartStore{}, &stubBuilder{})
	e := setupHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/archives",
		strings.NewReader(`{"month":"March 2025","deleteOption":"auto"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestArchiveEndpointEmptyMonth(t *testing.T) {
	svc := newTestService(newMockLedger(), &mockPatientStore{}, &mockBillingStore{}, &mockChartStore{}, &stubBuilder{})
	e := setupHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/archives",
		strings.NewReader(`{"month":"2025-03","deleteOption":"auto"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when the month has no records", rec.Code)
	}
}

func TestArchiveEndpointSuccess(t *testing.T) {
	p := &patient.Patient{
		Name:          "Asha",
		Age:           30,
		AdmissionType: patient.AdmissionIPD,
		AdmissionDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
	}
	ps := &mockPatientStore{rows: []*patient.Patient{p}}
	svc := newTestService(newMockLedger(), ps, &mockBillingStore{}, &mockChartStore{}, &stubBuilder{})
	e := setupHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/archives",
		strings.NewReader(`{"month":"2025-03","deleteOption":"manual"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Month        string `json:"month"`
			PatientCount int    `json:"patientCount"`
			DeleteOption string `json:"deleteOption"`
		} `json:"data"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !body.Success || body.Data.Month != "2025-03" || body.Data.PatientCount != 1 {
		t.Errorf("unexpected response: %+v", body)
	}
	if body.Data.DeleteOption != "manual" {
		t.Errorf("delete option = %q, want manual", body.Data.DeleteOption)
	}
}

func TestDownloadPDFHeaders(t *testing.T) {
	ledger := newMockLedger()
	svc := newTestService(ledger, &mockPatientStore{}, &mockBillingStore{}, &mockChartStore{}, &stubBuilder{})
	ctx := context.Background()
	entry := &LedgerEntry{Period: "2025-03", DeleteOption: "auto", ArchivedAt: time.Now()}
	if err := ledger.Upsert(ctx, entry); err != nil {
		t.Fatal(err)
	}
	if err := ledger.AttachReport(ctx, "2025-03", []byte("%PDF-stub")); err != nil {
		t.Fatal(err)
	}
	e := setupHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/archives/2025-03/pdf", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	cd := rec.Header().Get(echo.HeaderContentDisposition)
	if !strings.Contains(cd, "Hospital_Archive_2025-03.pdf") {
		t.Errorf("content disposition = %q", cd)
	}
}

func TestDownloadPDFUnknownPeriod(t *testing.T) {
	svc := newTestService(newMockLedger(), &mockPatientStore{}, &mockBillingStore{}, &mockChartStore{}, &stubBuilder{})
	e := setupHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/archives/2019-01/pdf", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestPurgeEndpointUnknownPeriod(t *testing.T) {
	svc := newTestService(newMockLedger(), &mockPatientStore{}, &mockBillingStore{}, &mockChartStore{}, &stubBuilder{})
	e := setupHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/archives/2019-01", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
