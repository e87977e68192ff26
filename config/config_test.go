package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DB_DSN", "REDIS_ADDR", "AUTH_SESSION_TTL", "SERVER_CORS_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverPgx, cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Redis.SessionTTL)
	assert.Equal(t, 30, cfg.Auth.LoginRatePerMinute)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_SQLITE_PATH", "/tmp/x.db")
	t.Setenv("AUTH_SESSION_TTL", "90m")
	t.Setenv("SERVER_CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("JOBS_CACHE_AUDIT_SCHEDULE", "")
	t.Setenv("DB_MAX_CONNS", "not-a-number")
	t.Setenv("AUTH_REQUIRE_SESSION", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/x.db", cfg.Database.ConnString())
	assert.Equal(t, 90*time.Minute, cfg.Redis.SessionTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Empty(t, cfg.Jobs.CacheAuditSchedule, "explicit empty disables the audit")
	assert.Equal(t, 10, cfg.Database.MaxConns)
	assert.True(t, cfg.Auth.RequireSession)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080"},
			Database: DatabaseConfig{Driver: DriverPgx, Host: "localhost"},
			Auth:     AuthConfig{LoginRatePerMinute: 30, LoginBurst: 10},
		}
	}

	require.NoError(t, valid().Validate())

	cases := map[string]func(c *Config){
		"missing port":   func(c *Config) { c.Server.Port = "" },
		"unknown driver": func(c *Config) { c.Database.Driver = "mysql" },
		"sqlite no path": func(c *Config) { c.Database.Driver = DriverSQLite },
		"negative pool":  func(c *Config) { c.Database.MaxConns = -1 },
		"zero burst":     func(c *Config) { c.Auth.LoginBurst = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestConnString(t *testing.T) {
	d := DatabaseConfig{Driver: DriverPostgres, Host: "db", Port: 5433, User: "u", Password: "p", Name: "bugs"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=bugs sslmode=disable", d.ConnString())

	d.DSN = "postgres://x"
	assert.Equal(t, "postgres://x", d.ConnString())
}
