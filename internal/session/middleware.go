package session

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// CookieName holds the browser's session ID.
const CookieName = "calc_session"

type contextKey string

const IDKey contextKey = "session_id"

func ContextWithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, IDKey, id)
}

func IDFromContext(ctx context.Context) string {
	id, ok := ctx.Value(IDKey).(string)
	if !ok {
		return ""
	}
	return id
}

// Middleware resolves the session ID from the request cookie, issuing a new
// one when the cookie is missing or not a UUID.
func Middleware(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(CookieName); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					id = c.Value
				}
			}

			if id == "" {
				id = uuid.New().String()
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(ContextWithID(r.Context(), id)))
		})
	}
}
