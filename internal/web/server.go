package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ghaggin/internhub/internal/api"
	"github.com/ghaggin/internhub/internal/auth"
	"github.com/ghaggin/internhub/internal/config"
	"github.com/ghaggin/internhub/internal/guard"
	"github.com/ghaggin/internhub/internal/metrics"
	"github.com/ghaggin/internhub/internal/middleware"
	"github.com/ghaggin/internhub/internal/session"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	staticDir     = "web/static/"
	sweepInterval = time.Minute
)

type Server struct {
	log      *zap.Logger
	server   *http.Server
	registry *auth.Registry
	idle     time.Duration
	stop     context.CancelFunc
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Config   *config.Config
	Sessions *middleware.SessionManager
	Metrics  *metrics.Metrics
	Client   *api.Client
}

func New(p Params) (*Server, error) {
	store := session.NewStore(p.Sessions)
	registry := auth.NewRegistry(func() *auth.Core {
		return auth.New(store, p.Client,
			auth.WithLogger(p.Log),
			auth.WithObserver(p.Metrics),
		)
	}, p.Log)

	root, err := NewHandler(p.Log, p.Sessions, registry, p.Metrics)
	if err != nil {
		return nil, err
	}

	// without an idle timeout Cores live as long as the cookie
	idle := p.Config.Session.IdleTimeout
	if idle <= 0 {
		idle = p.Config.Session.Lifetime
	}

	return &Server{
		log:      p.Log,
		registry: registry,
		idle:     idle,
		server: &http.Server{
			Addr:              p.Config.Server.Addr(),
			Handler:           root,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// NewHandler builds the portal router. Every page goes through the guard
// table; /logout is an action and is always allowed.
func NewHandler(log *zap.Logger, sessions *middleware.SessionManager, registry *auth.Registry, m *metrics.Metrics) (http.Handler, error) {
	v := &views{log: log}

	table, err := routes(v)
	if err != nil {
		return nil, err
	}

	pages := &guard.Handler{
		Table: table,
		Session: func(r *http.Request) auth.Snapshot {
			return coreFrom(r.Context()).Snapshot()
		},
		Waiting: http.HandlerFunc(v.loading),
		Observe: func(pattern string, d guard.Decision) {
			m.ObserveGuard(pattern, d.Kind.String())
		},
		Log: log,
	}

	root := chi.NewRouter()
	root.Use(chimw.RequestID)
	root.Use(chimw.Recoverer)
	root.Use(middleware.RequestLogger(log))
	root.Use(m.Middleware)

	root.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if m != nil {
		root.Handle("/metrics", m.Handler())
	}
	root.Handle("/static/*", http.StripPrefix("/static", http.FileServer(http.Dir(staticDir))))

	// Session
	root.Group(func(r chi.Router) {
		r.Use(sessions.Wrap)
		r.Use(withCore(sessions, registry))

		r.Post("/logout", v.logout)
		r.Handle("/", pages)
		r.Handle("/*", pages)
	})

	return root, nil
}

func RegisterHooks(lc fx.Lifecycle, s *Server) {
	lc.Append(fx.Hook{
		OnStart: s.Start,
		OnStop:  s.Stop,
	})
}

func (s *Server) Start(_ context.Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	s.stop = cancel
	go s.registry.Run(ctx, sweepInterval, s.idle)

	go func() {
		s.log.Info("portal listening", zap.String("addr", s.server.Addr))
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("error starting server", zap.Error(err))
		}
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.stop != nil {
		s.stop()
	}
	return s.server.Shutdown(ctx)
}
