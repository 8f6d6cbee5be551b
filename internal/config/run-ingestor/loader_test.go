package run_ingestor_config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost:9094"}, cfg.Kafka.Brokers)
	assert.Equal(t, "runboard.runs.result", cfg.Kafka.Topic)
	assert.Equal(t, 5, cfg.Retry.Attempts)
	assert.Equal(t, 200*time.Millisecond, cfg.Retry.BaseDelay)
	assert.Equal(t, "runboard/run-ingestor", cfg.Log.App)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("KAFKA_GROUP_ID", "ingestor-b")
	t.Setenv("RETRY_ATTEMPTS", "2")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ingestor-b", cfg.Kafka.GroupID)
	assert.Equal(t, 2, cfg.Retry.Attempts)
}
