package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"power_monitor/internal/models"
	"power_monitor/internal/service"
)

func authedRequest(method, target string, body *bytes.Buffer) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok")
	return req
}

func TestSettingsHandlers_GetAndUpdate(t *testing.T) {
	stored := models.PowerSettings{
		ID:          1,
		PricePerKWh: 7.5,
		WattsByType: map[string]float64{models.DeviceLighting: 60},
		UpdatedAt:   time.Now().UTC(),
	}
	settings := &mockSettings{getSettings: stored, updated: stored}
	auth := &mockAuth{parseIdent: service.Identity{UserID: 4, Role: models.RoleAdmin}}
	s := &service.Service{Authorization: auth, Settings: settings}
	r := newTestRouter(s)

	// GET
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/settings", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get settings status=%d, body=%s", w.Code, w.Body.String())
	}
	var got models.PowerSettings
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.PricePerKWh != 7.5 {
		t.Fatalf("unexpected settings body: %s", w.Body.String())
	}

	// PUT
	body := bytes.NewBufferString(`{"price_per_kwh":9.0,"watts_by_type":{"lighting":80}}`)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodPut, "/api/v1/settings", body))
	if w.Code != http.StatusOK {
		t.Fatalf("update settings status=%d, body=%s", w.Code, w.Body.String())
	}
	if settings.updateCalls != 1 {
		t.Fatalf("expected 1 update call, got %d", settings.updateCalls)
	}
	if settings.lastUpdate.Actor.UserID != 4 || settings.lastUpdate.Actor.Role != models.RoleAdmin {
		t.Fatalf("actor identity not forwarded: %+v", settings.lastUpdate.Actor)
	}
	if settings.lastUpdate.PricePerKWh != 9.0 {
		t.Fatalf("price not forwarded: %v", settings.lastUpdate.PricePerKWh)
	}
}

func TestSettingsHandlers_UpdateForbiddenRole(t *testing.T) {
	settings := &mockSettings{updateErr: service.ErrForbidden}
	auth := &mockAuth{parseIdent: service.Identity{UserID: 8, Role: models.RoleViewer}}
	s := &service.Service{Authorization: auth, Settings: settings}
	r := newTestRouter(s)

	body := bytes.NewBufferString(`{"price_per_kwh":9.0,"watts_by_type":{"lighting":80}}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodPut, "/api/v1/settings", body))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for viewer role, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestSettingsHandlers_UpdateValidationError(t *testing.T) {
	settings := &mockSettings{updateErr: service.ErrInvalidPrice}
	auth := &mockAuth{parseIdent: service.Identity{UserID: 8, Role: models.RoleAdmin}}
	s := &service.Service{Authorization: auth, Settings: settings}
	r := newTestRouter(s)

	body := bytes.NewBufferString(`{"price_per_kwh":-1,"watts_by_type":{"lighting":80}}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodPut, "/api/v1/settings", body))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid price, got %d", w.Code)
	}
}

func TestSettingsHandlers_UpdateStorageFailure(t *testing.T) {
	settings := &mockSettings{updateErr: errors.New("database is locked")}
	auth := &mockAuth{parseIdent: service.Identity{UserID: 8, Role: models.RoleAdmin}}
	s := &service.Service{Authorization: auth, Settings: settings}
	r := newTestRouter(s)

	body := bytes.NewBufferString(`{"price_per_kwh":7.5,"watts_by_type":{"lighting":80}}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodPut, "/api/v1/settings", body))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for storage failure, got %d (%s)", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "database is locked") {
		t.Fatalf("internal error text leaked to client: %s", w.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := &service.Service{}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}
}
