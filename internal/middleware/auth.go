package middleware

import (
	"net/http"
	"strings"

	"github.com/saifaleee/MetroArt/internal/auth"
	"github.com/saifaleee/MetroArt/internal/response"
)

// RequireAuth returns middleware that extracts the Bearer token, verifies it
// through the token manager, and injects the subject into the request
// context. Signature, expiry, and subject rules all live in
// auth.TokenManager.Verify; this only handles the HTTP framing. Handlers for
// mutating operations additionally re-confirm the subject against the user
// store.
func RequireAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "authorization header required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "invalid authorization header format")
				return
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				response.Unauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.NewContext(r.Context(), claims)))
		})
	}
}
