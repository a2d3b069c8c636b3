package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"lingualink/infrastructure"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserID returns the authenticated user id stored by the middleware.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// WithUserID stores an authenticated user id on the context, as the
// middleware does after verifying a token.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// Middleware authenticates requests from the session cookie, falling back
// to an Authorization bearer header for non-cookie clients.
func (h *JSONHandler) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := tokenFromRequest(r)
		if tokenString == "" {
			infrastructure.RespondError(w, infrastructure.ErrMissingToken)
			return
		}

		userID, err := h.authUseCase.VerifyToken(tokenString)
		if err != nil {
			infrastructure.RespondError(w, err)
			return
		}

		ctx := WithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}
