package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/signup/internal/core/registration"
	"github.com/colonyops/signup/internal/core/styles"
)

// Validate checks that the configuration is valid. Failures are
// criterio.FieldErrors keyed by the YAML key.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if err := knownTheme(c.Theme); err != nil {
		errs = errs.Append("theme", err)
	}
	if err := knownTimezone(c.DefaultTimezone); err != nil {
		errs = errs.Append("default_timezone", err)
	}

	durations := []struct {
		key string
		val time.Duration
		min time.Duration
	}{
		{"submit_delay", c.SubmitDelay, 0},
		{"confirm_redirect", c.ConfirmRedirect, 0},
		{"cursor_idle", c.CursorIdle, 10 * time.Millisecond},
	}
	for _, d := range durations {
		if d.val < d.min {
			errs = errs.Append(d.key, fmt.Errorf("must be at least %s", d.min))
		}
	}

	return errs.ToError()
}

func knownTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

func knownTimezone(tz string) error {
	if !registration.DefaultCatalog().HasTimezone(tz) {
		return fmt.Errorf("unknown time zone %q", tz)
	}
	return nil
}
