package config_test

import (
	"net/url"
	"testing"

	"hotel/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 7, cfg.Ledger.InvoiceDueDays)
	assert.Equal(t, 30, cfg.Ledger.DashboardCacheTTL)
	assert.Equal(t, "5432", cfg.DB.Postgres.Write.Port)
}

func TestLoad_RejectsInvalidLedgerSettings(t *testing.T) {
	t.Setenv("LEDGER_INVOICE_DUE_DAYS", "-1")
	t.Setenv("KAFKA_ENABLE", "true")
	t.Setenv("KAFKA_BROKERS", "")

	_, err := config.Load()
	require.Error(t, err)

	assert.Contains(t, err.Error(), "LEDGER_INVOICE_DUE_DAYS")
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{
			name:    "rate limiter without window",
			mutate:  func(c *config.Config) { c.App.RateLimiter.Enable = true; c.App.RateLimiter.WindowSeconds = 0 },
			wantErr: "APP_RATE_LIMITER",
		},
		{
			name:    "dashboard ttl zero",
			mutate:  func(c *config.Config) { c.Ledger.DashboardCacheTTL = 0 },
			wantErr: "LEDGER_DASHBOARD_CACHE_TTL",
		},
		{
			name:    "sample ratio out of range",
			mutate:  func(c *config.Config) { c.External.Otel.SampleRatio = 1.5 },
			wantErr: "SAMPLE_RATIO",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Ledger.InvoiceDueDays = 7
			cfg.Ledger.DashboardCacheTTL = 30
			cfg.App.RateLimiter.MaxRequests = 10
			cfg.App.RateLimiter.WindowSeconds = 60
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPostgresNode_DSN(t *testing.T) {
	node := config.PostgresNode{Host: "db", Port: "5432", Username: "front desk", Password: "p@ss/word", SSLMode: "require"}

	parsed, err := url.Parse(node.DSN("hotel", url.Values{"x-migrations-table": {"ledger_migrations"}}))
	require.NoError(t, err)

	password, _ := parsed.User.Password()

	assert.Equal(t, "front desk", parsed.User.Username())
	assert.Equal(t, "p@ss/word", password)
	assert.Equal(t, "db:5432", parsed.Host)
	assert.Equal(t, "/hotel", parsed.Path)
	assert.Equal(t, "require", parsed.Query().Get("sslmode"))
	assert.Equal(t, "ledger_migrations", parsed.Query().Get("x-migrations-table"))
}
