package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/ghaggin/internhub/internal/config"
	"github.com/ghaggin/internhub/internal/session"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	clientIDKey = "client_id"
)

// SessionManager is the browser-scoped durable storage of the portal. It
// satisfies session.KV for whichever browser the context belongs to.
type SessionManager struct {
	impl *scs.SessionManager
}

type SessionParams struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Log    *zap.Logger
}

func NewSessionManager(p SessionParams) (*SessionManager, error) {
	impl := scs.New()
	impl.Lifetime = p.Config.Session.Lifetime
	impl.IdleTimeout = p.Config.Session.IdleTimeout
	impl.Cookie.Name = p.Config.Session.CookieName
	impl.Cookie.Secure = p.Config.Session.CookieSecure
	impl.Cookie.HttpOnly = true
	impl.Cookie.SameSite = http.SameSiteLaxMode

	if p.Config.Session.Store == "redis" {
		rdb := redis.NewClient(&redis.Options{Addr: p.Config.Session.RedisAddr})
		impl.Store = session.NewRedisStore(rdb, p.Config.Session.RedisPrefix)
		p.LC.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			},
			OnStop: func(_ context.Context) error {
				return rdb.Close()
			},
		})
		p.Log.Info("using redis session store", zap.String("addr", p.Config.Session.RedisAddr))
	}

	impl.ErrorFunc = func(w http.ResponseWriter, r *http.Request, err error) {
		p.Log.Error("session error", zap.Error(err), zap.String("path", r.URL.Path))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}

	return &SessionManager{impl: impl}, nil
}

// NewTestSessionManager returns a manager backed by scs' in-memory store.
func NewTestSessionManager() *SessionManager {
	return &SessionManager{impl: scs.New()}
}

func (s *SessionManager) Wrap(next http.Handler) http.Handler {
	return s.impl.LoadAndSave(next)
}

func (s *SessionManager) GetString(ctx context.Context, key string) string {
	return s.impl.GetString(ctx, key)
}

func (s *SessionManager) PutString(ctx context.Context, key, value string) {
	s.impl.Put(ctx, key, value)
}

func (s *SessionManager) Remove(ctx context.Context, key string) {
	s.impl.Remove(ctx, key)
}

func (s *SessionManager) RenewToken(ctx context.Context) error {
	return s.impl.RenewToken(ctx)
}

// ClientID identifies the browser behind ctx. It is created on first use and
// survives login and logout.
func (s *SessionManager) ClientID(ctx context.Context) string {
	id := s.impl.GetString(ctx, clientIDKey)
	if id == "" {
		id = uuid.NewString()
		s.impl.Put(ctx, clientIDKey, id)
	}
	return id
}
