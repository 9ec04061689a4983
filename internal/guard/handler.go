package guard

import (
	"net/http"
	"strconv"

	"github.com/ghaggin/internhub/internal/auth"
	"go.uber.org/zap"
)

// Handler serves a Table: it matches the request path, applies the route's
// guard and either renders, redirects or shows the waiting page.
type Handler struct {
	Table *Table
	// Session returns the snapshot of the browser behind r.
	Session func(r *http.Request) auth.Snapshot
	// Waiting renders while the session is loading. Defaults to a bare 503.
	Waiting http.Handler
	// NotFound serves paths no route matches.
	NotFound http.Handler
	// Observe, when set, is told about every decision.
	Observe func(pattern string, d Decision)
	Log     *zap.Logger
}

const retryAfterSeconds = 1

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route, params, ok := h.Table.Match(r.URL.Path)
	if !ok {
		if h.NotFound != nil {
			h.NotFound.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
		return
	}

	d := route.Evaluate(h.Session(r))
	if h.Observe != nil {
		h.Observe(route.Pattern, d)
	}

	switch d.Kind {
	case Wait:
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
		if h.Waiting != nil {
			h.Waiting.ServeHTTP(w, r)
			return
		}
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
	case Redirect:
		if h.Log != nil {
			h.Log.Debug("guard redirect",
				zap.String("path", r.URL.Path),
				zap.String("route", route.Pattern),
				zap.String("target", d.Target),
			)
		}
		http.Redirect(w, r, d.Target, http.StatusSeeOther)
	default:
		route.Handler.ServeHTTP(w, r.WithContext(withParams(r.Context(), params)))
	}
}
