package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

var (
	errMissingBaseURL = errors.New("api base url is required")
	errBadBaseURL     = errors.New("api base url must be an absolute http(s) url")
	errBadPort        = errors.New("server port out of range")
	errBadStore       = errors.New("session store must be memory or redis")
)

type Config struct {
	Server  Server  `yaml:"server"`
	API     API     `yaml:"api"`
	Session Session `yaml:"session"`
	Log     Log     `yaml:"log"`
}

type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// API points at the Backend API, including its path prefix (e.g. /api).
type API struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type Session struct {
	Store        string        `yaml:"store"`
	RedisAddr    string        `yaml:"redis_addr"`
	RedisPrefix  string        `yaml:"redis_prefix"`
	Lifetime     time.Duration `yaml:"lifetime"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
	CookieName   string        `yaml:"cookie_name"`
	CookieSecure bool          `yaml:"cookie_secure"`
}

type Log struct {
	Development bool `yaml:"development"`
}

func Default() *Config {
	return &Config{
		Server: Server{
			Host: "localhost",
			Port: 8123,
		},
		API: API{
			BaseURL: "http://localhost:8000/api",
			Timeout: 10 * time.Second,
		},
		Session: Session{
			Store:       "memory",
			RedisPrefix: "internhub:session:",
			Lifetime:    24 * time.Hour,
			IdleTimeout: 2 * time.Hour,
			CookieName:  "internhub_session",
		},
		Log: Log{
			Development: true,
		},
	}
}

// New loads the config file named by INTERNHUB_CONFIG (or the default path),
// then applies .env and environment overrides.
func New() (*Config, error) {
	return Load(filePath())
}

func Load(path string) (*Config, error) {
	cfg := Default()

	if err := loadFile(cfg, path); err != nil {
		return nil, err
	}
	if err := loadEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errMissingBaseURL
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", errBadBaseURL, c.API.BaseURL)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: %d", errBadPort, c.Server.Port)
	}
	if c.Session.Store != "memory" && c.Session.Store != "redis" {
		return fmt.Errorf("%w: %q", errBadStore, c.Session.Store)
	}
	return nil
}
