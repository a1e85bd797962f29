package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/go-pg/pg/v10"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

type Config struct {
	Database pg.Options
	App      struct {
		Host string
		Port int
	}
	Store struct {
		// Backend is "memory" or "postgres".
		Backend    string
		LogQueries bool
	}
	Push struct {
		// VAPIDPublicKey is served to browsers; a key is generated when empty.
		VAPIDPublicKey string
	}
}

func defaults() Config {
	var cfg Config
	cfg.App.Host = "0.0.0.0"
	cfg.App.Port = 3000
	cfg.Store.Backend = BackendMemory
	cfg.Database.Addr = "localhost:5432"
	cfg.Database.MaxRetries = 3
	return cfg
}

// Load reads a TOML file on top of the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := defaults()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendPostgres:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.App.Port)
	}

	return nil
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.App.Host, strconv.Itoa(c.App.Port))
}

// ApplyDatabaseURL replaces the connection settings with the ones from a
// postgres:// URL, keeping pool tuning from the file.
func (c *Config) ApplyDatabaseURL(rawURL string) error {
	opt, err := pg.ParseURL(rawURL)
	if err != nil {
		return fmt.Errorf("parse database url: %w", err)
	}

	c.Database.Addr = opt.Addr
	c.Database.User = opt.User
	c.Database.Password = opt.Password
	c.Database.Database = opt.Database
	c.Database.TLSConfig = opt.TLSConfig
	c.Database.ApplicationName = opt.ApplicationName

	return nil
}

// DatabaseURL renders the connection settings as a postgres:// URL for database/sql drivers.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   c.Database.Addr,
		Path:   "/" + c.Database.Database,
	}
	if c.Database.Password != "" {
		u.User = url.UserPassword(c.Database.User, c.Database.Password)
	} else if c.Database.User != "" {
		u.User = url.User(c.Database.User)
	}
	if c.Database.TLSConfig == nil {
		u.RawQuery = "sslmode=disable"
	}

	return u.String()
}
