package web

import (
	"context"
	"net/http"

	"github.com/ghaggin/internhub/internal/auth"
	"github.com/ghaggin/internhub/internal/middleware"
)

type coreKey struct{}

// withCore attaches the browser's auth.Core to the request. It must run
// inside the session manager's Wrap.
func withCore(sessions *middleware.SessionManager, registry *auth.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			core := registry.Acquire(r.Context(), sessions.ClientID(r.Context()))
			ctx := context.WithValue(r.Context(), coreKey{}, core)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func coreFrom(ctx context.Context) *auth.Core {
	core, ok := ctx.Value(coreKey{}).(*auth.Core)
	if !ok {
		panic("web: no auth core in context")
	}
	return core
}
