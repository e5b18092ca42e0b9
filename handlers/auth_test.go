package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"p9e.in/fleetops/middleware"
	"p9e.in/fleetops/models"
)

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	h := dbHandler(t)
	seedUser(t, h.DB, "idn_mgr1", "systemadmin", "password", models.RoleManager)
	seedUser(t, h.DB, "idn_drv1", "driver1", "password", models.RoleDriver)

	tests := []struct {
		name     string
		payload  string
		wantCode int
		wantMsg  string
	}{
		{"empty body", "", http.StatusBadRequest, "Username and password are required."},
		{"missing password", `{"username":"systemadmin"}`, http.StatusBadRequest, "Username and password are required."},
		{"unknown user", `{"username":"ghost","password":"password"}`, http.StatusUnauthorized, "Invalid username or password."},
		{"wrong password", `{"username":"systemadmin","password":"nope"}`, http.StatusUnauthorized, "Invalid username or password."},
		{"driver account", `{"username":"driver1","password":"password"}`, http.StatusForbidden, "Access denied. Only managers can log in."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tt.payload))
			rec := httptest.NewRecorder()
			h.Login(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["error"] != tt.wantMsg {
				t.Errorf("error = %q, want %q", body["error"], tt.wantMsg)
			}
		})
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	h := dbHandler(t)
	seedUser(t, h.DB, "idn_mgr1", "systemadmin", "password", models.RoleManager)

	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"username":"systemadmin","password":"password"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	claims, err := middleware.ParseToken(body["token"])
	if err != nil {
		t.Fatalf("issued token did not verify: %v", err)
	}
	if claims.UserID != "idn_mgr1" || claims.Role != models.RoleManager {
		t.Errorf("claims = %+v, want idn_mgr1 / manager", claims)
	}
}
