package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config is read from the environment. A .env file in the working
// directory is loaded first when present; real env vars win over it.
type Config struct {
	API      APIConfig
	Token    string `env:"TODOODOO_TOKEN"`
	Theme    string `env:"TODOODOO_THEME, default=classic"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	LogFile  string `env:"LOG_FILE"`

	Mock MockConfig
}

type APIConfig struct {
	BaseURL string        `env:"TODOODOO_API_URL, default=https://api.todoodoo.com"`
	Timeout time.Duration `env:"TODOODOO_TIMEOUT, default=15s"`
}

// MockConfig only matters to todoodoo-mock.
type MockConfig struct {
	Addr       string            `env:"MOCK_ADDR, default=:8089"`
	JWTSecret  string            `env:"MOCK_JWT_SECRET, default=todoodoo-dev-secret"`
	Users      map[string]string `env:"MOCK_USERS, default=demo:demo"`
	WrapTodos  bool              `env:"MOCK_WRAP_TODOS, default=true"`
	TokenField string            `env:"MOCK_TOKEN_FIELD, default=access_token"`
	TokenTTL   time.Duration     `env:"MOCK_TOKEN_TTL, default=24h"`
}

// Load reads .env (if any) and the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("TODOODOO_API_URL must be an absolute URL, got %q", c.API.BaseURL)
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")

	if c.API.Timeout <= 0 {
		return fmt.Errorf("TODOODOO_TIMEOUT must be positive, got %s", c.API.Timeout)
	}
	return nil
}
