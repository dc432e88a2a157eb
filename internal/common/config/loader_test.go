// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
app:
  name: fulfillment-server
database:
  postgres:
    host: localhost
    database: ticketbot
    user: tester
  redis:
    address: localhost:6379
notifications:
  sms:
    enabled: false
`

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	t.Setenv("MOVIE_TABLE", "")
	t.Setenv("ORDER_TABLE", "")

	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10000, cfg.Server.RequestTimeout)
	assert.Equal(t, "DummyMovie", cfg.Catalog.MovieTable)
	assert.Equal(t, "DummyOrder", cfg.Catalog.OrderTable)
	assert.Equal(t, 300, cfg.Catalog.CacheTTL)
	assert.Equal(t, "America/Los_Angeles", cfg.App.Timezone)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
}

func TestLoadFromFile_EnvOverridesTableNames(t *testing.T) {
	t.Setenv("MOVIE_TABLE", "ProdMovie")
	t.Setenv("ORDER_TABLE", "ProdOrder")

	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "ProdMovie", cfg.Catalog.MovieTable)
	assert.Equal(t, "ProdOrder", cfg.Catalog.OrderTable)
}

func TestLoadFromFile_MissingRequiredFields(t *testing.T) {
	_, err := LoadFromFile(writeConfig(t, `
app:
  name: fulfillment-server
database:
  postgres:
    host: localhost
`))
	assert.Error(t, err)
}

func TestLoadFromFile_SMSRequiresRegion(t *testing.T) {
	t.Setenv("AWS_REGION", "")

	_, err := LoadFromFile(writeConfig(t, `
app:
  name: fulfillment-server
database:
  postgres:
    host: localhost
    database: ticketbot
    user: tester
  redis:
    address: localhost:6379
notifications:
  sms:
    enabled: true
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "region")
}

func TestGetDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host: "db", Port: 5432, Database: "ticketbot",
		User: "u", Password: "p", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=ticketbot sslmode=disable", cfg.GetDSN())
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, int64(1500), GetDuration(1500).Milliseconds())
}
