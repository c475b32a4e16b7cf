package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	t.Run("level filters messages", func(t *testing.T) {
		var buf bytes.Buffer
		Init("warn", &buf)

		log.Info().Msg("hidden")
		log.Warn().Msg("shown")

		require.NotContains(t, buf.String(), "hidden")
		require.Contains(t, buf.String(), "shown")
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		Init("chatty", &buf)

		log.Debug().Msg("hidden")
		log.Info().Msg("shown")

		require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
		require.Contains(t, buf.String(), "unknown log level")
		require.NotContains(t, buf.String(), "hidden")
		require.Contains(t, buf.String(), "shown")
	})
}
