package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"octopus/internal/models"
)

type ctxKey string

const callerKey ctxKey = "caller"

// RequireAuth: Authorization: Bearer <jwt> → subject → живой пользователь
// в контексте запроса. 401 — нет/битый токен или пользователь пропал,
// 403 — пользователь деактивирован.
func RequireAuth(tokens *TokenService, users UserStore) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const p = "Bearer "
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, p) {
				models.WriteError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			sub, ok := tokens.Validate(strings.TrimPrefix(h, p))
			if !ok {
				models.WriteError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			u, err := users.GetByEmail(r.Context(), sub)
			if err != nil {
				models.WriteError(w, http.StatusInternalServerError, "storage error")
				return
			}
			if u == nil {
				models.WriteError(w, http.StatusUnauthorized, "user not found")
				return
			}
			if !u.IsActive {
				models.WriteError(w, http.StatusForbidden, "user is inactive")
				return
			}
			ctx := context.WithValue(r.Context(), callerKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerFrom достаёт пользователя, положенного RequireAuth.
func CallerFrom(ctx context.Context) *models.User {
	u, _ := ctx.Value(callerKey).(*models.User)
	return u
}
