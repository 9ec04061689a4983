// Package auth owns the session lifecycle of one browser: restoring it from
// storage, logging in and out, and deriving role flags.
package auth

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ghaggin/internhub/internal/api"
	"github.com/ghaggin/internhub/internal/model"
	"go.uber.org/zap"
)

type SessionStore interface {
	Load(ctx context.Context) (model.Session, bool)
	Save(ctx context.Context, token string, user *model.User) error
	SaveUser(ctx context.Context, user *model.User) error
	Clear(ctx context.Context)
}

type Observer interface {
	ObserveAuth(operation, outcome string)
}

type LoginResult struct {
	Success bool
	Message string
	Next    Next
	Err     error
}

// Registration is the role-dependent form sent to POST /register.
type Registration map[string]string

type Core struct {
	store    SessionStore
	base     *api.Client
	log      *zap.Logger
	observer Observer
	now      func() time.Time

	// op admits one session operation at a time
	op sync.Mutex

	mu     sync.RWMutex
	state  State
	user   *model.User
	token  string
	errMsg string
	client *api.Client
}

type Option func(*Core)

func WithLogger(log *zap.Logger) Option {
	return func(c *Core) { c.log = log }
}

func WithObserver(o Observer) Option {
	return func(c *Core) { c.observer = o }
}

func WithClock(now func() time.Time) Option {
	return func(c *Core) { c.now = now }
}

// New returns a Core in the restoring state. base must carry no token.
func New(store SessionStore, base *api.Client, opts ...Option) *Core {
	c := &Core{
		store:  store,
		base:   base.WithoutToken(),
		log:    zap.NewNop(),
		now:    time.Now,
		state:  StateRestoring,
		client: base.WithoutToken(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Restore loads the stored session and always settles in either the
// authenticated or the anonymous state.
func (c *Core) Restore(ctx context.Context) {
	c.op.Lock()
	defer c.op.Unlock()
	c.restore(ctx)
}

// Sync re-reads storage so a Core notices logouts and profile updates made
// elsewhere (another replica, an expired browser session). It is skipped while
// an operation is running.
func (c *Core) Sync(ctx context.Context) {
	if !c.op.TryLock() {
		return
	}
	defer c.op.Unlock()
	c.restore(ctx)
}

func (c *Core) restore(ctx context.Context) {
	s, ok := c.store.Load(ctx)
	if ok && tokenExpired(s.Token, c.now()) {
		c.log.Info("stored token expired, discarding session", zap.Int("user_id", s.User.ID))
		c.store.Clear(ctx)
		ok = false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if ok {
		c.setLocked(s.Token, s.User)
		return
	}
	c.clearLocked()
}

func (c *Core) Login(ctx context.Context, email, password string) LoginResult {
	if !c.op.TryLock() {
		c.observe("login", "busy")
		return LoginResult{Message: ErrOperationInFlight.Error(), Err: ErrOperationInFlight}
	}
	defer c.op.Unlock()

	c.begin(true)

	s, err := c.authenticate(ctx, "/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		msg := loginMessage(err)
		c.fail(msg)
		c.observe("login", "failure")
		c.log.Info("login failed", zap.String("email", email), zap.Error(err))
		return LoginResult{Message: msg, Err: err}
	}

	c.establish(s)
	c.observe("login", "success")
	c.log.Info("login", zap.Int("user_id", s.User.ID), zap.String("role", string(s.User.Role)))
	return LoginResult{Success: true, Next: afterLogin(s.User.Role)}
}

// Register creates an account and signs it in. Unlike Login it reports
// failure as an error, leaving the session as it was.
func (c *Core) Register(ctx context.Context, data Registration) (*model.User, Next, error) {
	if !c.op.TryLock() {
		c.observe("register", "busy")
		return nil, Next{}, ErrOperationInFlight
	}
	defer c.op.Unlock()

	c.begin(false)

	s, err := c.authenticate(ctx, "/register", data)
	if err != nil {
		c.abort()
		c.observe("register", "failure")
		c.log.Info("registration failed", zap.String("email", data["email"]), zap.Error(err))
		return nil, Next{}, &RegistrationError{Err: err}
	}

	c.establish(s)
	c.observe("register", "success")
	c.log.Info("registered", zap.Int("user_id", s.User.ID), zap.String("role", string(s.User.Role)))

	u := *s.User
	return &u, afterRegister(s.User.Role), nil
}

// Logout tells the backend (best effort) and then always clears the local
// session. Logging out an anonymous session does nothing.
func (c *Core) Logout(ctx context.Context) Next {
	c.op.Lock()
	defer c.op.Unlock()

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()

	if token != "" {
		if _, err := c.base.WithToken(token).Post(ctx, "/logout", nil); err != nil {
			c.log.Warn("remote logout failed", zap.Error(err))
		}
		c.observe("logout", "success")
	}

	c.store.Clear(ctx)
	c.mu.Lock()
	if c.state != StateAnonymous {
		c.clearLocked()
	}
	c.mu.Unlock()

	return RedirectTo(PathLogin)
}

// Expire drops the session locally without calling the backend. It is what
// runs when the backend answers 401 to the session's token.
func (c *Core) Expire(ctx context.Context) {
	c.expire(ctx, "")
}

func (c *Core) expire(ctx context.Context, token string) {
	c.op.Lock()
	defer c.op.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == "" || (token != "" && token != c.token) {
		return
	}

	c.store.Clear(ctx)
	c.clearLocked()
	c.observe("expire", "success")
	c.log.Info("session expired by backend")
}

// UpdateUser swaps in a new copy of the signed-in user, for example after a
// profile edit. The token is untouched.
func (c *Core) UpdateUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return ErrNilUser
	}

	c.op.Lock()
	defer c.op.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return ErrNotAuthenticated
	}
	if user.Role != c.user.Role {
		return ErrRoleChanged
	}

	if err := c.store.SaveUser(ctx, user); err != nil {
		return err
	}
	u := *user
	c.user = &u
	return nil
}

func (c *Core) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		State: c.state,
		Token: c.token,
		Error: c.errMsg,
	}
	if c.user != nil {
		u := *c.user
		s.User = &u
	}
	return s
}

// Client returns the backend client for the current session: authenticated
// when signed in, anonymous otherwise.
func (c *Core) Client() *api.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}

func (c *Core) authenticate(ctx context.Context, path string, body any) (model.Session, error) {
	res, err := c.base.Post(ctx, path, body)
	if err != nil {
		return model.Session{}, err
	}

	var payload struct {
		User  *model.User `json:"user"`
		Token string      `json:"token"`
	}
	if err := decodeAuth(res, &payload); err != nil {
		return model.Session{}, err
	}

	s := model.Session{Token: payload.Token, User: payload.User}
	if !s.Valid() {
		return model.Session{}, errMalformedAuth
	}
	if err := c.store.Save(ctx, s.Token, s.User); err != nil {
		return model.Session{}, err
	}
	return s, nil
}

// decodeAuth accepts {user, token} bare or wrapped in "data".
func decodeAuth(res *api.Response, v any) error {
	return json.Unmarshal(res.Unwrap("data"), v)
}

func (c *Core) begin(clearErr bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateAuthenticating
	if clearErr {
		c.errMsg = ""
	}
}

func (c *Core) fail(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = msg
	c.settleLocked()
}

func (c *Core) abort() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settleLocked()
}

// settleLocked leaves the authenticating state without touching the session.
func (c *Core) settleLocked() {
	if c.user != nil {
		c.state = StateAuthenticated
		return
	}
	c.state = StateAnonymous
}

func (c *Core) establish(s model.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = ""
	c.setLocked(s.Token, s.User)
}

func (c *Core) setLocked(token string, user *model.User) {
	u := *user
	c.token = token
	c.user = &u
	c.state = StateAuthenticated
	c.client = c.base.WithToken(token).OnUnauthorized(func(ctx context.Context) {
		c.expire(ctx, token)
	})
}

func (c *Core) clearLocked() {
	c.token = ""
	c.user = nil
	c.state = StateAnonymous
	c.client = c.base
}

func (c *Core) observe(op, outcome string) {
	if c.observer != nil {
		c.observer.ObserveAuth(op, outcome)
	}
}
