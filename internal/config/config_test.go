package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
env: local
http_server:
  address: "0.0.0.0:8080"
  timeout: 15s
  idle_timeout: 90s
db_user: dash
db_password: s3cret
db_host: warehouse
db_port: 3307
db_name: curvas
admin_login: admin
admin_pass: pass
cors_origins:
  - "http://localhost:5173"
  - "https://dashboard.example.com"
engine:
  reconciliation_tolerance: 0.5
  min_active_month_cost: 250
  fetch_timeout: 3s
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, 90*time.Second, cfg.IdleTimeout)
	assert.Equal(t, []string{"http://localhost:5173", "https://dashboard.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 0.5, cfg.ReconciliationTolerance)
	assert.Equal(t, 250.0, cfg.MinActiveMonthCost)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "./frontend-dist", cfg.FrontendDir)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "db_user: dash\ndb_name: curvas\n"))
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "localhost:4001", cfg.Address)
	assert.Equal(t, 1.0, cfg.ReconciliationTolerance)
	assert.Equal(t, 300.0, cfg.MinActiveMonthCost)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.True(t, cfg.ParseTime)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MIN_ACTIVE_MONTH_COST", "500")

	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 500.0, cfg.MinActiveMonthCost)
}

func TestLoad_MissingRequired(t *testing.T) {
	_, err := Load(writeConfig(t, "env: local\n"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "dash:s3cret@tcp(warehouse:3307)/curvas")
	assert.Contains(t, dsn, "parseTime=true")
}
