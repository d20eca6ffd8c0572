package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := FromViper(newViper())
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.PostsPerPage)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("POSTS_PER_PAGE", "3")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "file::memory:")

	cfg, err := FromViper(newViper())
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.PostsPerPage)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "file::memory:", cfg.DatabaseURL)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Setenv("POSTS_PER_PAGE", "0")
	_, err := FromViper(newViper())
	assert.Error(t, err)

	t.Setenv("POSTS_PER_PAGE", "10")
	t.Setenv("DB_DRIVER", "mysql")
	_, err = FromViper(newViper())
	assert.Error(t, err)
}

func TestSecureCookiesFollowReleaseMode(t *testing.T) {
	cfg, err := FromViper(newViper())
	require.NoError(t, err)
	assert.False(t, cfg.SecureCookies)

	t.Setenv("GIN_MODE", "release")
	cfg, err = FromViper(newViper())
	require.NoError(t, err)
	assert.True(t, cfg.SecureCookies)

	t.Setenv("SESSION_COOKIE_SECURE", "false")
	cfg, err = FromViper(newViper())
	require.NoError(t, err)
	assert.False(t, cfg.SecureCookies)
}
