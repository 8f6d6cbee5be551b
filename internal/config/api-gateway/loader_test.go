package api_gateway_config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, SourceMock, cfg.Source.Kind)
	assert.Equal(t, 7, cfg.Source.TrendDays)
	assert.Equal(t, 2*time.Second, cfg.DB.QueryTimeout)
	assert.Equal(t, "runboard/api-gateway", cfg.LoggerConfig().App)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source:
  kind: postgres
  trend_days: 14
server:
  http_addr: ":9999"
`), 0o600))
	t.Setenv("SERVER_HTTP_ADDR", ":7000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, SourcePostgres, cfg.Source.Kind)
	assert.Equal(t, 14, cfg.Source.TrendDays)
	assert.Equal(t, ":7000", cfg.Server.HTTPAddr)
}

func TestLoad_Rejects(t *testing.T) {
	t.Setenv("SOURCE_KIND", "sqlite")
	_, err := Load("")
	var ce ErrConfig
	require.ErrorAs(t, err, &ce)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
