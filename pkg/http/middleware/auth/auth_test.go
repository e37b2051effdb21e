package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	verifier := VerifierFunc(func(ctx context.Context, token string) (Identity, error) {
		if token == "good" {
			return Identity{UserID: 42, Role: "USER"}, nil
		}
		return Identity{}, ErrInvalidToken
	})

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectNext     bool
	}{
		{name: "missing header", header: "", expectedStatus: http.StatusUnauthorized},
		{name: "missing bearer prefix", header: "good", expectedStatus: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", expectedStatus: http.StatusUnauthorized},
		{name: "rejected token", header: "Bearer bad", expectedStatus: http.StatusUnauthorized},
		{name: "verified token", header: "Bearer good", expectedStatus: http.StatusOK, expectNext: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			handler := Authenticate(verifier)(okHandler(&called))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectNext, called)
		})
	}
}

func TestAuthenticate_InjectsIdentity(t *testing.T) {
	verifier := VerifierFunc(func(ctx context.Context, token string) (Identity, error) {
		return Identity{UserID: 42, Role: "ADMIN"}, nil
	})

	var got Identity
	var ok bool
	handler := Authenticate(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer anything")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, ok)
	assert.Equal(t, Identity{UserID: 42, Role: "ADMIN"}, got)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name           string
		identity       *Identity
		required       string
		expectedStatus int
		expectNext     bool
	}{
		{name: "matching role", identity: &Identity{Role: "ADMIN"}, required: "ADMIN", expectedStatus: http.StatusOK, expectNext: true},
		{name: "case-insensitive match", identity: &Identity{Role: "admin"}, required: "ADMIN", expectedStatus: http.StatusOK, expectNext: true},
		{name: "role mismatch", identity: &Identity{Role: "USER"}, required: "ADMIN", expectedStatus: http.StatusForbidden},
		{name: "no identity in context", identity: nil, required: "ADMIN", expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			handler := RequireRole(tt.required)(okHandler(&called))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.identity != nil {
				req = req.WithContext(context.WithValue(req.Context(), ctxKey{}, *tt.identity))
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectNext, called)
		})
	}
}

func TestVerifierFunc(t *testing.T) {
	sentinel := errors.New("verification backend down")
	f := VerifierFunc(func(ctx context.Context, token string) (Identity, error) {
		return Identity{}, sentinel
	})

	_, err := f.Verify(context.Background(), "token")

	assert.ErrorIs(t, err, sentinel)
}
