package slogpretty

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer

	log := setupPrettySlog(&buf)
	log.With(slog.String("op", "test")).
		WithGroup("booking").
		Info("booking created", slog.Int64("id", 42))

	out := buf.String()
	assert.Contains(t, out, "booking created")
	assert.Contains(t, out, `"op": "test"`)
	assert.Contains(t, out, `"booking.id": 42`)
}

func TestSetupLogger(t *testing.T) {
	for _, env := range []string{envLocal, envDev, envProd, "unknown"} {
		t.Run(env, func(t *testing.T) {
			require.NotNil(t, SetupLogger(env))
		})
	}
}
