package patient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func setupHandler(repo Repository) *echo.Echo {
	e := echo.New()
	NewHandler(NewService(repo)).RegisterRoutes(e.Group("/api"))
	return e
}

func TestCreatePatientEndpoint(t *testing.T) {
	e := setupHandler(newMockRepo())

	body := `{"name":"Asha Patel","age":34,"admissionType":"IPD","admissionDate":"2025-03-10T09:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			UniqueID string `json:"uniqueId"`
			Status   string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.Success {
		t.Error("expected success envelope")
	}
	if resp.Data.UniqueID != "PAT000001" {
		t.Errorf("uniqueId = %q, want PAT000001", resp.Data.UniqueID)
	}
	if resp.Data.Status != "Admitted" {
		t.Errorf("status = %q, want Admitted", resp.Data.Status)
	}
}

func TestCreatePatientEndpointValidation(t *testing.T) {
	e := setupHandler(newMockRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/patients",
		strings.NewReader(`{"name":"","age":34}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetPatientEndpointInvalidID(t *testing.T) {
	e := setupHandler(newMockRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/patients/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetPatientEndpointNotFound(t *testing.T) {
	e := setupHandler(newMockRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/patients/7c9a4f4e-95f4-4f63-8d43-2f9a63b1f0aa", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
