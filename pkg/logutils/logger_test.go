package logutils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tagHook struct{}

func (tagHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) { e.Bool("hooked", true) }

func TestNew(t *testing.T) {
	t.Run("invalid level", func(t *testing.T) {
		_, closer, err := New("loud", "")
		require.Error(t, err)
		closer()
	})

	t.Run("writes JSON to nested file and appends", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state", "signup", "signup.log")

		for _, msg := range []string{"first", "second"} {
			logger, closer, err := New("info", path, tagHook{})
			require.NoError(t, err)
			logger.Info().Msg(msg)
			logger.Debug().Msg("filtered")
			closer()
		}

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 2)

		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
		assert.Equal(t, "second", entry["message"])
		assert.Equal(t, true, entry["hooked"])
		assert.Contains(t, entry, "time")
	})

	t.Run("empty file discards", func(t *testing.T) {
		logger, closer, err := New("debug", "")
		require.NoError(t, err)
		defer closer()
		assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
	})
}
