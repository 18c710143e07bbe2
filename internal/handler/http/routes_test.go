package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/boletapp/gastify-sync/internal/service"
	"github.com/boletapp/gastify-sync/models"
)

func TestInit_RegisterRouteIsPublic(t *testing.T) {
	mockSvc := &mockAuthService{
		registerUserFn: func(_ context.Context, user models.User) (models.User, error) {
			user.UserID = 1
			return user, nil
		},
		createTokenFn: func(context.Context, models.User) (models.Token, error) {
			return models.Token{UserID: 1, SignedString: "tok"}, nil
		},
	}
	h := newTestHandler(&service.Services{AuthService: mockSvc})

	router := h.Init()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		bytes.NewBufferString(`{"login":"maria","password":"secret"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Header().Get("X-Trace-ID") == "" {
		t.Fatal("trace id header missing")
	}
}

func TestInit_SyncRoutesRequireAuth(t *testing.T) {
	h := newTestHandler(&service.Services{AuthService: &mockAuthService{}})
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/sync/g1/changelog", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestInit_MetricsEndpointExposed(t *testing.T) {
	h := newTestHandler(&service.Services{AuthService: &mockAuthService{}})
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestInit_UnsupportedMethodIsNotFound(t *testing.T) {
	h := newTestHandler(&service.Services{AuthService: &mockAuthService{}})
	router := h.Init()

	req := httptest.NewRequest(http.MethodDelete, "/api/auth/register", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
