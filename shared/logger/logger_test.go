package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"hotel/config"
	"hotel/shared/constant"
	"hotel/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		value string
		want  zerolog.Level
	}{
		{value: "debug", want: zerolog.DebugLevel},
		{value: "warn", want: zerolog.WarnLevel},
		{value: "error", want: zerolog.ErrorLevel},
		{value: "", want: zerolog.InfoLevel},
		{value: "chatty", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.Level(tt.value))
		})
	}
}

func TestNew_ProductionWritesJSON(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvProduction
	cfg.App.Name = "hotel-ledger"

	var buf bytes.Buffer

	l := logger.New(cfg, &buf)
	l.Info().Str("invoice_id", "inv-1").Msg("payment applied")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "hotel-ledger", line["service"])
	assert.Equal(t, "inv-1", line["invoice_id"])
	assert.Equal(t, "payment applied", line["message"])
	assert.Contains(t, line, "time")
}

func TestNew_DevelopmentUsesConsole(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvDevelopment

	var buf bytes.Buffer

	l := logger.New(cfg, &buf)
	l.Info().Msg("room 101 checked out")

	assert.Contains(t, buf.String(), "room 101 checked out")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestInit_SetsGlobalLevel(t *testing.T) {
	original, originalLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(originalLevel)
	})

	cfg := &config.Config{}
	cfg.Server.LogLevel = "warn"

	logger.Init(cfg)

	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	original := log.Logger
	t.Cleanup(func() { log.Logger = original })

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger.ErrorWithStack(errors.New("failed to lock invoice row"))

	assert.Contains(t, buf.String(), "failed to lock invoice row")
	assert.Contains(t, buf.String(), "logger_test")
}
