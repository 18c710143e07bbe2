package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/boletapp/gastify-sync/internal/service"
	"github.com/boletapp/gastify-sync/internal/utils"
	"github.com/boletapp/gastify-sync/models"
)

func TestAuth_MissingHeader(t *testing.T) {
	h := newTestHandler(&service.Services{AuthService: &mockAuthService{}})

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run without a token")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/sync/g1/pending", nil)
	rr := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	h := newTestHandler(&service.Services{AuthService: &mockAuthService{}})

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run with a malformed header")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/sync/g1/pending", nil)
	req.Header.Set("Authorization", "Bearer")
	rr := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	mockSvc := &mockAuthService{
		parseTokenFn: func(context.Context, string) (models.Token, error) {
			return models.Token{}, service.ErrTokenIsExpiredOrInvalid
		},
	}
	h := newTestHandler(&service.Services{AuthService: mockSvc})

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run with an invalid token")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/sync/g1/pending", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rr := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestAuth_ValidTokenInjectsUserID(t *testing.T) {
	mockSvc := &mockAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			if tokenString != "good-token" {
				t.Fatalf("unexpected token: %q", tokenString)
			}
			return models.Token{UserID: 42}, nil
		},
	}
	h := newTestHandler(&service.Services{AuthService: mockSvc})

	var gotUserID int64
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		userID, found := utils.GetUserIDFromContext(r.Context())
		if !found {
			t.Fatal("user ID missing from context")
		}
		gotUserID = userID
	})

	req := httptest.NewRequest(http.MethodGet, "/api/sync/g1/pending", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if gotUserID != 42 {
		t.Fatalf("expected user 42, got %d", gotUserID)
	}
}

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "valid bearer", header: "Bearer abc123", want: "abc123"},
		{name: "missing token part", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "empty token", header: "Bearer ", wantErr: ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
