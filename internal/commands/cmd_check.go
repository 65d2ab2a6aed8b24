package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/signup/internal/core/registration"
	"github.com/colonyops/signup/internal/core/styles"
	"github.com/colonyops/signup/pkg/iojson"
)

type CheckCmd struct {
	flags  *Flags
	reader iojson.FileReader[registration.Record]
	json   bool
}

// NewCheckCmd creates a new check command.
func NewCheckCmd(flags *Flags) *CheckCmd {
	return &CheckCmd{
		flags:  flags,
		reader: iojson.FileReader[registration.Record]{Strict: true},
	}
}

// Register adds the check command to the application.
func (cmd *CheckCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "check",
		Usage:     "Validate a registration record",
		UsageText: "signup check [-f record.json] [--json]",
		Description: `Reads a JSON registration record from a file or stdin and applies the
same rules as the wizard. The date of birth is normalized first, so "150699"
is accepted as 15/06/99.

Exits 1 when the record is invalid.`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the result as JSON",
				Destination: &cmd.json,
			},
		},
		Action: cmd.run,
	})

	return app
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type checkResult struct {
	Valid  bool                `json:"valid"`
	Record registration.Record `json:"record"`
	Errors []fieldError        `json:"errors,omitempty"`
}

func (cmd *CheckCmd) run(_ context.Context, c *cli.Command) error {
	record, err := cmd.reader.Read()
	if err != nil {
		return fmt.Errorf("read record: %w", err)
	}
	record = record.Normalize()

	checkErr := registration.Check(record, registration.DefaultCatalog())

	// never echo the password back
	record.Account.Password, record.Account.ConfirmPassword = "", ""
	result := checkResult{
		Valid:  checkErr == nil,
		Record: record,
		Errors: fieldErrors(checkErr),
	}

	w := c.Root().Writer
	if cmd.json {
		if err := iojson.WriteWith(w, c.Root().ErrWriter, result); err != nil {
			return err
		}
	} else {
		printCheck(w, result)
	}

	if !result.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func printCheck(w io.Writer, result checkResult) {
	if result.Valid {
		_, _ = fmt.Fprintln(w, styles.TextSuccessStyle.Render("✓ record is valid"))
		_, _ = fmt.Fprintf(w, "  date of birth: %s\n", result.Record.Account.DateOfBirth)
		return
	}

	for _, fe := range result.Errors {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.TextErrorStyle.Render("✗"), fe.Field, fe.Message)
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.TextErrorStyle.Render(fmt.Sprintf("%d error(s) found", len(result.Errors))))
}

// fieldErrors flattens err into one entry per field. Errors that are not
// field errors are reported under "record".
func fieldErrors(err error) []fieldError {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []fieldError{{Field: "record", Message: err.Error()}}
	}

	out := make([]fieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, fieldError{Field: fe.Field, Message: fe.Err.Error()})
	}
	return out
}

func printFieldErrors(w io.Writer, err error) {
	for _, fe := range fieldErrors(err) {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.TextErrorStyle.Render("✗"), fe.Field, fe.Message)
	}
}
