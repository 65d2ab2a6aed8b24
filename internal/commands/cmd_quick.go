package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/signup/internal/core/datemask"
	"github.com/colonyops/signup/internal/core/logging"
	"github.com/colonyops/signup/internal/core/registration"
	"github.com/colonyops/signup/internal/core/styles"
	"github.com/colonyops/signup/internal/core/validate"
)

type QuickCmd struct {
	flags *Flags

	// submitter is replaced in tests
	submitter registration.Submitter
}

// NewQuickCmd creates a new quick command.
func NewQuickCmd(flags *Flags) *QuickCmd {
	return &QuickCmd{flags: flags}
}

// Register adds the quick command to the application.
func (cmd *QuickCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "quick",
		Usage:     "Sign up with a line-mode form",
		UsageText: "signup quick",
		Description: `Collects the same information as the wizard in a single scrolling form.

Dates of birth may be typed with or without separators; "150699" is read as 15/06/99.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *QuickCmd) run(ctx context.Context, c *cli.Command) error {
	w := c.Root().Writer

	_, _ = fmt.Fprintln(w, styles.BannerStyle.Render(styles.Banner))
	_, _ = fmt.Fprintln(w)

	record, err := cmd.runForm(ctx)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			_, _ = fmt.Fprintln(w, styles.TextMutedStyle.Render("Signup cancelled. Nothing was submitted."))
			return nil
		}
		return fmt.Errorf("form: %w", err)
	}

	return cmd.submit(ctx, w, record)
}

func (cmd *QuickCmd) runForm(ctx context.Context) (registration.Record, error) {
	var (
		r       registration.Record
		captcha bool
		catalog = registration.DefaultCatalog()
	)
	r.Locale.Timezone = cmd.flags.config().DefaultTimezone

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email address").
				Placeholder("you@example.com").
				Validate(validate.Email).
				Value(&r.Email),
			huh.NewConfirm().
				Title("I'm not a robot").
				Affirmative("Yes").
				Negative("No").
				Validate(validate.Captcha).
				Value(&captcha),
		),
		huh.NewGroup(
			huh.NewInput().Title("First name").Validate(validate.FirstName).Value(&r.Account.FirstName),
			huh.NewInput().Title("Last name").Validate(validate.LastName).Value(&r.Account.LastName),
			huh.NewInput().
				Title("Date of birth").
				Description("DD/MM/YY").
				Placeholder("DD/MM/YY").
				Validate(func(s string) error { return datemask.Validate(datemask.Mask(s)) }).
				Value(&r.Account.DateOfBirth),
			huh.NewInput().Title("Username").Validate(validate.Username).Value(&r.Account.Username),
			huh.NewInput().
				Title("Password").
				Description("Min. 8 characters with an uppercase letter and a number").
				EchoMode(huh.EchoModePassword).
				Validate(validate.Password).
				Value(&r.Account.Password),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Validate(validate.ConfirmPassword(func() string { return r.Account.Password })).
				Value(&r.Account.ConfirmPassword),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Country of residence").
				Options(huh.NewOptions(catalog.Countries...)...).
				Filtering(true).
				Height(10).
				Validate(validate.Country).
				Value(&r.Locale.Country),
			huh.NewSelect[string]().
				Title("Region").
				Description("Optional").
				OptionsFunc(func() []huh.Option[string] {
					return regionOptions(catalog, r.Locale.Country)
				}, &r.Locale.Country).
				Height(10).
				Value(&r.Locale.Region),
			huh.NewSelect[string]().
				Title("Time zone").
				Options(huh.NewOptions(catalog.Timezones...)...).
				Filtering(true).
				Height(10).
				Validate(validate.Timezone).
				Value(&r.Locale.Timezone),
		),
	).WithTheme(styles.FormTheme())

	if err := form.RunWithContext(ctx); err != nil {
		return registration.Record{}, err
	}

	return r.Normalize(), nil
}

// regionOptions lists the regions of country behind an explicit "none"
// entry, since the field is optional.
func regionOptions(catalog *registration.Catalog, country string) []huh.Option[string] {
	regions := catalog.RegionsFor(country)
	opts := make([]huh.Option[string], 0, len(regions)+1)
	opts = append(opts, huh.NewOption("None", ""))
	for _, r := range regions {
		opts = append(opts, huh.NewOption(r, r))
	}
	return opts
}

func (cmd *QuickCmd) submit(ctx context.Context, w io.Writer, r registration.Record) error {
	sub := cmd.submitter
	if sub == nil {
		sub = registration.NewSimulatedSubmitter(cmd.flags.config().SubmitDelay, logging.Component("registration"))
	}

	_, _ = fmt.Fprintln(w, styles.TextMutedStyle.Render("Submitting registration..."))

	receipt, err := sub.Submit(ctx, r)
	if err != nil {
		printFieldErrors(w, err)
		return cli.Exit("", 1)
	}

	_, _ = fmt.Fprintln(w, styles.TextSuccessStyle.Render("✓ Account created"))
	_, _ = fmt.Fprintf(w, "  username: %s\n  email:    %s\n  id:       %s\n",
		receipt.Username, receipt.Email, receipt.ID)
	return nil
}
