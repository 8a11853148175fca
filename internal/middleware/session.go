package middleware

import (
	"context"
	"net/http"
	"strings"

	"borderwatch/internal/domain"
)

const SessionHeader = "X-Session-Id"

const maxSessionIDLen = 128

type sessionKey struct{}

// Session puts the caller's session id on the request context. Missing or
// oversized ids fall back to the anonymous session.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(SessionHeader))
		if id == "" || len(id) > maxSessionIDLen {
			id = domain.AnonymousSession
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, id)))
	})
}

func SessionFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionKey{}).(string); ok && id != "" {
		return id
	}
	return domain.AnonymousSession
}
