package middleware

import (
	"context"
	"encoding/json"
	"net/http"
)

// TokenHeader carries the access token on authenticated requests.
const TokenHeader = "x-auth-token"

type contextKey string

const userIDKey contextKey = "userID"

// TokenVerifier resolves an access token to the user ID it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Authenticate returns middleware that admits requests carrying a valid token in the
// x-auth-token header and stores the user ID in the request context.
func Authenticate(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if token == "" {
				writeJSONError(w, http.StatusUnauthorized, "no token, authorization denied")
				return
			}

			userID, err := v.Verify(token)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "token is not valid")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a copy of ctx carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext extracts the authenticated user ID from the request context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"msg": msg})
}
