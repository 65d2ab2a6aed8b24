package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/signup/internal/core/datemask"
	"github.com/colonyops/signup/internal/core/styles"
)

type MaskCmd struct {
	flags *Flags
}

// NewMaskCmd creates a new mask command.
func NewMaskCmd(flags *Flags) *MaskCmd {
	return &MaskCmd{flags: flags}
}

// Register adds the mask command to the application.
func (cmd *MaskCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "mask",
		Usage:     "Normalize and validate DD/MM/YY dates",
		UsageText: "signup mask <input>...",
		Description: `Prints each input as the date field would show it, followed by the
validation outcome. Exits 1 if any input is invalid.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *MaskCmd) run(_ context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("at least one input is required")
	}

	w := c.Root().Writer
	invalid := 0
	for _, raw := range c.Args().Slice() {
		value := datemask.Mask(raw)
		if err := datemask.Validate(value); err != nil {
			invalid++
			reason, _ := datemask.ReasonOf(err)
			_, _ = fmt.Fprintf(w, "%-10q -> %-10q %s (%s)\n", raw, value, styles.TextErrorStyle.Render(err.Error()), reason)
			continue
		}
		_, _ = fmt.Fprintf(w, "%-10q -> %-10q %s\n", raw, value, styles.TextSuccessStyle.Render("ok"))
	}

	if invalid > 0 {
		return cli.Exit("", 1)
	}
	return nil
}
