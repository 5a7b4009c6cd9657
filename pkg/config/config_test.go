package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-graphsim/pkg/graph"
	"github.com/dd0wney/cluso-graphsim/pkg/tlg"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graphsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.Equal(t, DefaultWorkers(), cfg.Workers)
	assert.Equal(t, graph.Undirected, cfg.GraphDirectedness())
	assert.Equal(t, "sphere", cfg.Metric)
	assert.NoError(t, cfg.Validate())

	_, set, err := cfg.Format()
	require.NoError(t, err)
	assert.False(t, set)
}

func TestLoad_EmptyPath(t *testing.T) {
	t.Setenv(EnvDatabaseURL, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	t.Setenv(EnvDatabaseURL, "")
	path := writeConfig(t, `
workers: 3
directedness: directed
metric: veo
input_format: gml
label_as_id: true
log_level: debug
metrics_addr: ":9090"
s3:
  profile: research
  region: eu-west-1
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, graph.Directed, cfg.GraphDirectedness())
	assert.Equal(t, "veo", cfg.Metric)
	assert.True(t, cfg.LabelAsID)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, S3Config{Profile: "research", Region: "eu-west-1"}, cfg.S3)

	format, set, err := cfg.Format()
	require.NoError(t, err)
	assert.True(t, set)
	assert.Equal(t, tlg.FormatGML, format)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv(EnvDatabaseURL, "")
	cfg, err := Load(writeConfig(t, "metric: fuzzy\n"))
	require.NoError(t, err)

	assert.Equal(t, "fuzzy", cfg.Metric)
	assert.Equal(t, DefaultWorkers(), cfg.Workers)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverridesDatabaseURL(t *testing.T) {
	t.Setenv(EnvDatabaseURL, "postgres://env@localhost/graphsim")
	cfg, err := Load(writeConfig(t, "database_url: postgres://file@localhost/graphsim\n"))
	require.NoError(t, err)
	assert.Equal(t, "postgres://env@localhost/graphsim", cfg.DatabaseURL)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(EnvDatabaseURL, "")
	tests := []struct {
		name string
		body string
	}{
		{"zero workers", "workers: 0\n"},
		{"unknown metric", "metric: cosine\n"},
		{"unknown directedness", "directedness: both\n"},
		{"unknown format", "input_format: csv\n"},
		{"unknown log level", "log_level: trace\n"},
		{"bad metrics addr", "metrics_addr: nowhere\n"},
		{"two stores", "database_url: postgres://x\ndata_dir: /tmp/runs\n"},
		{"malformed yaml", "workers: [1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
