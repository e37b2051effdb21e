package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the verified caller attached to the request context.
type Identity struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

// Verifier checks a bearer token and resolves the caller's identity. Token
// issuance and verification live outside this service.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// VerifierFunc adapts a function to the Verifier interface.
type VerifierFunc func(ctx context.Context, token string) (Identity, error)

func (f VerifierFunc) Verify(ctx context.Context, token string) (Identity, error) {
	return f(ctx, token)
}

type ctxKey struct{}

// FromContext returns the identity injected by Authenticate.
func FromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(ctxKey{}).(Identity)
	return identity, ok
}

// Authenticate extracts the bearer token, verifies it and injects the
// identity into the request context. Missing or failing tokens end the
// request with 401.
func Authenticate(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, "Authorization header is required")

				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeError(w, http.StatusUnauthorized, "Authorization header is malformed")

				return
			}

			identity, err := verifier.Verify(r.Context(), token)
			if err != nil {
				slog.Warn("Token verification failed", "error", err)
				writeError(w, http.StatusUnauthorized, "Invalid or expired token")

				return
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route to a single role. Comparison is
// case-insensitive; a missing identity is a 403 the same as a mismatch.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := FromContext(r.Context())
			if !ok || !strings.EqualFold(identity.Role, role) {
				writeError(w, http.StatusForbidden, "Forbidden: you do not have the required permissions")

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
