package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/nfe-mapper/internal/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("", noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 0, cfg.Encode.Indent)
	assert.Equal(t, "stderr", cfg.GetLoggerConfig().Output)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "nfe.yaml", `
log:
  level: debug
  format: json
server:
  addr: "127.0.0.1:9090"
  read_timeout: 5s
  debug: true
encode:
  indent: 2
`)

	cfg, err := config.Load(path, noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Output, "unset keys keep defaults")
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, 2, cfg.Encode.Indent)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "nfe.yaml", "server:\n  addr: \":7000\"\nencode:\n  indent: 2\n")
	t.Setenv("NFE_SERVER_ADDR", ":7001")
	t.Setenv("NFE_ENCODE_INDENT", "4")
	t.Setenv("NFE_SERVER_WRITE_TIMEOUT", "1m")
	t.Setenv("NFE_BATCH_WORKERS", "8")

	cfg, err := config.Load(path, noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, ":7001", cfg.Server.Addr)
	assert.Equal(t, 4, cfg.Encode.Indent)
	assert.Equal(t, time.Minute, cfg.Server.WriteTimeout)
	assert.Equal(t, 8, cfg.Batch.Workers)
}

func TestLoad_DotEnv(t *testing.T) {
	// registered so the variable godotenv sets is removed afterwards
	t.Setenv("NFE_LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("NFE_LOG_LEVEL"))

	env := writeFile(t, "test.env", "NFE_LOG_LEVEL=warn\n")

	cfg, err := config.Load("", env)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{name: "bad yaml", yaml: "log: [unclosed"},
		{name: "bad level", yaml: "log:\n  level: loud\n"},
		{name: "negative indent", yaml: "encode:\n  indent: -1\n"},
		{name: "no workers", yaml: "batch:\n  workers: 0\n"},
		{name: "bad duration", env: map[string]string{"NFE_SERVER_READ_TIMEOUT": "soon"}},
		{name: "bad debug flag", env: map[string]string{"NFE_SERVER_DEBUG": "maybe"}},
		{name: "bad indent", env: map[string]string{"NFE_ENCODE_INDENT": "two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.yaml != "" {
				path = writeFile(t, "nfe.yaml", tt.yaml)
			}

			cfg, err := config.Load(path, noEnvFile(t))
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"), noEnvFile(t))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
