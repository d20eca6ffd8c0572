// Package config loads process configuration once at startup. The resulting
// Config is passed explicitly to the components that need it.
package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port          string
	DBDriver      string
	DatabaseURL   string
	SessionSecret string
	MediaRoot     string
	PostsPerPage  int
	GinMode       string
	// SecureCookies marks the session cookie Secure. Defaults to on in release mode.
	SecureCookies bool
}

// Load reads .env (when present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=blogicum port=5432 sslmode=disable TimeZone=UTC")
	v.SetDefault("SESSION_SECRET", "secret_key_change_me")
	v.SetDefault("MEDIA_ROOT", "./media")
	v.SetDefault("POSTS_PER_PAGE", 10)
	v.SetDefault("GIN_MODE", "debug")
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("SESSION_COOKIE_SECURE", strings.EqualFold(v.GetString("GIN_MODE"), "release"))
	cfg := &Config{
		Port:          v.GetString("PORT"),
		DBDriver:      strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseURL:   v.GetString("DATABASE_URL"),
		SessionSecret: v.GetString("SESSION_SECRET"),
		MediaRoot:     v.GetString("MEDIA_ROOT"),
		PostsPerPage:  v.GetInt("POSTS_PER_PAGE"),
		GinMode:       v.GetString("GIN_MODE"),
		SecureCookies: v.GetBool("SESSION_COOKIE_SECURE"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.PostsPerPage < 1 {
		return fmt.Errorf("POSTS_PER_PAGE must be positive, got %d", c.PostsPerPage)
	}
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET must not be empty")
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
