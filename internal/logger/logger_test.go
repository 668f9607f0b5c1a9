package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/nfe-mapper/internal/logger"
)

func TestNew_InvalidLevel(t *testing.T) {
	cfg := logger.DefaultConfig()
	cfg.Level = "loud"

	_, err := logger.New(cfg)
	assert.Error(t, err)
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nfe.log")
	cfg := logger.LogConfig{Level: "debug", Format: "json", Output: path}

	l, err := logger.New(cfg)
	require.NoError(t, err)
	l.Debug().Str("chave", "123").Msg("decoded document")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"decoded document"`)
	assert.Contains(t, string(data), `"chave":"123"`)
}

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(&buf, "json", "").Level(zerolog.WarnLevel)

	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(&buf, "console", "15:04")

	l.Info().Str("envelope", "nfeProc").Msg("located infNFe")

	assert.Contains(t, buf.String(), "located infNFe")
	assert.Contains(t, buf.String(), "envelope=nfeProc")
	assert.NotContains(t, buf.String(), `{"`)
}

func TestSetup_Global(t *testing.T) {
	previous := log.Logger
	previousLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(previousLevel)
	})

	path := filepath.Join(t.TempDir(), "global.log")
	require.NoError(t, logger.Setup(logger.LogConfig{Level: "info", Format: "json", Output: path}))

	componentLog := logger.WithComponent("server")
	componentLog.Info().Msg("listening")
	requestLog := logger.WithRequestID("req-1")
	requestLog.Debug().Msg("filtered out")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"server"`)
	assert.NotContains(t, string(data), "filtered out")
}
