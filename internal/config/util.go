package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultPath = "./config/config.yaml"
	envPrefix   = "INTERNHUB_"
)

func filePath() string {
	if p := os.Getenv(envPrefix + "CONFIG"); p != "" {
		return p
	}
	return defaultPath
}

// loadFile overlays the yaml file on cfg. A missing file leaves the defaults.
func loadFile(cfg *Config, path string) error {
	filename, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	yamlFile, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(yamlFile, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", filename, err)
	}
	return nil
}

func loadEnv(cfg *Config) error {
	// .env is optional; real environment variables win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	setString(&cfg.Server.Host, "HOST")
	setString(&cfg.API.BaseURL, "API_BASE_URL")
	setString(&cfg.Session.Store, "SESSION_STORE")
	setString(&cfg.Session.RedisAddr, "REDIS_ADDR")

	if err := setInt(&cfg.Server.Port, "PORT"); err != nil {
		return err
	}
	if err := setDuration(&cfg.API.Timeout, "API_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Session.Lifetime, "SESSION_LIFETIME"); err != nil {
		return err
	}
	if err := setBool(&cfg.Session.CookieSecure, "COOKIE_SECURE"); err != nil {
		return err
	}
	return setBool(&cfg.Log.Development, "LOG_DEVELOPMENT")
}

func setString(dst *string, name string) {
	if v, ok := os.LookupEnv(envPrefix + name); ok {
		*dst = v
	}
}

func setInt(dst *int, name string) error {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, name, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, name string) error {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, name, err)
	}
	*dst = d
	return nil
}

func setBool(dst *bool, name string) error {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, name, err)
	}
	*dst = b
	return nil
}
