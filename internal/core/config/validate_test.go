package config

import (
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Config)
		wantFields []string
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name:       "unknown theme",
			mutate:     func(c *Config) { c.Theme = "neon" },
			wantFields: []string{"theme"},
		},
		{
			name:       "unknown timezone",
			mutate:     func(c *Config) { c.DefaultTimezone = "(GMT+99:00) Nowhere" },
			wantFields: []string{"default_timezone"},
		},
		{
			name: "negative durations",
			mutate: func(c *Config) {
				c.SubmitDelay = -time.Second
				c.ConfirmRedirect = -time.Second
			},
			wantFields: []string{"submit_delay", "confirm_redirect"},
		},
		{
			name:       "cursor idle too short",
			mutate:     func(c *Config) { c.CursorIdle = time.Millisecond },
			wantFields: []string{"cursor_idle"},
		},
		{
			name:   "zero redirect disables auto advance",
			mutate: func(c *Config) { c.ConfirmRedirect = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)

			got := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				got = append(got, fe.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, got)
		})
	}
}

func TestValidate_ThemeMessageListsThemes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Theme = "neon"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tokyo-night")
}
