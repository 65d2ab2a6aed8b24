package commands

import (
	"context"
	"fmt"
	"io"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/signup/internal/core/logging"
	"github.com/colonyops/signup/internal/core/registration"
	"github.com/colonyops/signup/internal/core/styles"
	"github.com/colonyops/signup/internal/tui"
)

type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Run executes the wizard. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.config()

	deps := tui.Deps{
		Context:   ctx,
		Config:    cfg,
		Catalog:   registration.DefaultCatalog(),
		Submitter: registration.NewSimulatedSubmitter(cfg.SubmitDelay, logging.Component("registration")),
		Logger:    logging.Component("wizard"),
	}

	p := tea.NewProgram(tui.New(deps), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run wizard: %w", err)
	}

	m, ok := final.(tui.Model)
	if !ok {
		return fmt.Errorf("unexpected model type %T", final)
	}

	res := m.Result()
	log.Info().
		Bool("cancelled", res.Cancelled).
		Int("steps", len(res.Summaries)).
		Msg("wizard finished")

	printResult(c.Root().Writer, res)
	return nil
}

func printResult(w io.Writer, res tui.Result) {
	switch {
	case res.Cancelled:
		_, _ = fmt.Fprintln(w, styles.TextMutedStyle.Render("Signup cancelled. Nothing was submitted."))
	case res.Receipt != nil:
		_, _ = fmt.Fprintln(w, styles.TextSuccessStyle.Render("✓ Account created"))
		_, _ = fmt.Fprintf(w, "  username: %s\n  email:    %s\n  id:       %s\n",
			res.Receipt.Username, res.Receipt.Email, res.Receipt.ID)
	}
}
