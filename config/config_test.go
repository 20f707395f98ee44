package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
http:
  addr: ":9090"
network:
  dataset: "/data/net.json"
search:
  time_weight: 1
  energy_weight: 0.5
  expansion_budget: 5000
metrics:
  prometheus_enabled: true
  prometheus_port: "2112"
scorer:
  endpoint: "http://scorer:8000/score"
mqtt:
  enabled: false
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "/data/net.json", cfg.Network.Dataset)
	assert.InDelta(t, 0.5, cfg.Search.EnergyWeight, 1e-9)
	assert.Equal(t, 5000, cfg.Search.ExpansionBudget)
	assert.True(t, cfg.Metrics.PrometheusEnabled)
	assert.Equal(t, "http://scorer:8000/score", cfg.Scorer.Endpoint)
	assert.False(t, cfg.MQTT.Enabled)

	// Defaults fill the gaps.
	assert.InDelta(t, 0.1, cfg.Search.EnergyResolutionKWh, 1e-9)
	assert.Equal(t, 10, cfg.Scorer.TimeoutSeconds)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", "network: {}\n"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Empty(t, cfg.Network.Dataset)
	assert.InDelta(t, 1, cfg.Search.TimeWeight, 1e-9)
	assert.Equal(t, 200000, cfg.Search.ExpansionBudget)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("EV_HTTP__ADDR", ":7070")

	cfg, err := Load(writeConfig(t, "config.yaml", sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTP.Addr)
}

func TestLoadJSON(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.json", `{"http": {"addr": ":6060"}}`))
	require.NoError(t, err)
	assert.Equal(t, ":6060", cfg.HTTP.Addr)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load(writeConfig(t, "config.toml", "addr = ':8080'"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidSearchConfig(t *testing.T) {
	_, err := Load(writeConfig(t, "config.yaml", `
search:
  time_weight: -1
`))
	assert.Error(t, err)
}
