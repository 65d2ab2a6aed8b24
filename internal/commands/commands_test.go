package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/signup/internal/core/registration"
	"github.com/colonyops/signup/internal/tui"
	"github.com/colonyops/signup/pkg/tuitest"
)

const validRecordJSON = `{
  "email": "ada@example.com",
  "account": {
    "first_name": "Ada",
    "last_name": "Lovelace",
    "date_of_birth": "101215",
    "username": "ada_l",
    "password": "Secret123",
    "confirm_password": "Secret123"
  },
  "locale": {
    "country": "United Kingdom",
    "region": "England",
    "timezone": "(GMT+00:00) Dublin, Edinburgh, Lisbon, London"
  }
}`

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	flags := &Flags{}
	app := &cli.Command{
		Name:           "signup",
		Writer:         &out,
		ErrWriter:      &out,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	app = NewCheckCmd(flags).Register(app)
	app = NewMaskCmd(flags).Register(app)

	err := app.Run(context.Background(), append([]string{"signup"}, args...))
	return tuitest.StripANSI(out.String()), err
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "record.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	return exitErr.ExitCode()
}

func TestCheckCmd(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		out, err := runApp(t, "check", "-f", writeFile(t, validRecordJSON))
		require.NoError(t, err)
		assert.Contains(t, out, "✓ record is valid")
		assert.Contains(t, out, "date of birth: 10/12/15")
	})

	t.Run("invalid record", func(t *testing.T) {
		var r registration.Record
		require.NoError(t, json.Unmarshal([]byte(validRecordJSON), &r))
		r.Email = ""
		r.Account.DateOfBirth = "311399"
		data, err := json.Marshal(r)
		require.NoError(t, err)

		out, err := runApp(t, "check", "-f", writeFile(t, string(data)))
		assert.Equal(t, 1, exitCode(t, err))
		assert.Contains(t, out, "email: Email is required")
		assert.Contains(t, out, "account.date_of_birth: Invalid date")
		assert.Contains(t, out, "2 error(s) found")
	})

	t.Run("json output omits passwords", func(t *testing.T) {
		out, err := runApp(t, "check", "--json", "-f", writeFile(t, validRecordJSON))
		require.NoError(t, err)

		var got checkResult
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.True(t, got.Valid)
		assert.Empty(t, got.Errors)
		assert.Equal(t, "10/12/15", got.Record.Account.DateOfBirth)
		assert.Empty(t, got.Record.Account.Password)
		assert.Empty(t, got.Record.Account.ConfirmPassword)
	})

	t.Run("unknown catalog value", func(t *testing.T) {
		var r registration.Record
		require.NoError(t, json.Unmarshal([]byte(validRecordJSON), &r))
		r.Locale.Region = "Bavaria"
		data, err := json.Marshal(r)
		require.NoError(t, err)

		out, err := runApp(t, "check", "--json", "-f", writeFile(t, string(data)))
		assert.Equal(t, 1, exitCode(t, err))

		var got checkResult
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.False(t, got.Valid)
		require.Len(t, got.Errors, 1)
		assert.Equal(t, "locale.region", got.Errors[0].Field)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		_, err := runApp(t, "check", "-f", writeFile(t, `{"email":"a@b.co","nickname":"x"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read record")
	})
}

func TestMaskCmd(t *testing.T) {
	t.Run("valid inputs", func(t *testing.T) {
		out, err := runApp(t, "mask", "150699", "01-02-03")
		require.NoError(t, err)
		assert.Contains(t, out, `"15/06/99"`)
		assert.Contains(t, out, `"01/02/03"`)
		assert.NotContains(t, out, "Invalid")
	})

	t.Run("invalid input", func(t *testing.T) {
		out, err := runApp(t, "mask", "150699", "151399")
		assert.Equal(t, 1, exitCode(t, err))
		assert.Contains(t, out, `"15/13/99"`)
		assert.Contains(t, out, "Invalid date (out_of_range)")
	})

	t.Run("incomplete input", func(t *testing.T) {
		out, err := runApp(t, "mask", "1/2/3")
		assert.Equal(t, 1, exitCode(t, err))
		assert.Contains(t, out, `"12/3"`)
		assert.Contains(t, out, "(malformed)")
	})

	t.Run("no inputs", func(t *testing.T) {
		_, err := runApp(t, "mask")
		assert.EqualError(t, err, "at least one input is required")
	})
}

type fakeSubmitter struct {
	err error
}

func (f fakeSubmitter) Submit(_ context.Context, r registration.Record) (registration.Receipt, error) {
	if f.err != nil {
		return registration.Receipt{}, f.err
	}
	return registration.Receipt{
		ID:        uuid.MustParse("7f1c9a52-3c1e-4f4e-9d62-1f0c5e7e2a10"),
		Username:  r.Account.Username,
		Email:     r.Email,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}, nil
}

func TestQuickCmd_Submit(t *testing.T) {
	var r registration.Record
	require.NoError(t, json.Unmarshal([]byte(validRecordJSON), &r))

	t.Run("accepted", func(t *testing.T) {
		cmd := NewQuickCmd(&Flags{})
		cmd.submitter = fakeSubmitter{}

		var out bytes.Buffer
		require.NoError(t, cmd.submit(context.Background(), &out, r))

		got := tuitest.StripANSI(out.String())
		assert.Contains(t, got, "✓ Account created")
		assert.Contains(t, got, "username: ada_l")
		assert.Contains(t, got, "7f1c9a52-3c1e-4f4e-9d62-1f0c5e7e2a10")
	})

	t.Run("rejected", func(t *testing.T) {
		var errs criterio.FieldErrorsBuilder
		errs = errs.Append("locale.country", errors.New("unknown country"))

		cmd := NewQuickCmd(&Flags{})
		cmd.submitter = fakeSubmitter{err: errs.ToError()}

		var out bytes.Buffer
		err := cmd.submit(context.Background(), &out, r)
		assert.Equal(t, 1, exitCode(t, err))
		assert.Contains(t, tuitest.StripANSI(out.String()), "✗ locale.country: unknown country")
	})
}

func TestRegionOptions(t *testing.T) {
	catalog := registration.DefaultCatalog()

	opts := regionOptions(catalog, "India")
	require.Len(t, opts, len(catalog.RegionsFor("India"))+1)
	assert.Equal(t, "None", opts[0].Key)
	assert.Empty(t, opts[0].Value)
	assert.Equal(t, "Andhra Pradesh", opts[1].Value)

	assert.Len(t, regionOptions(catalog, "Afghanistan"), 1)
}

func TestPrintResult(t *testing.T) {
	tests := []struct {
		name string
		res  tui.Result
		want string
	}{
		{"cancelled", tui.Result{Cancelled: true}, "Signup cancelled"},
		{"created", tui.Result{Receipt: &registration.Receipt{Username: "ada_l"}}, "username: ada_l"},
		{"nothing", tui.Result{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			printResult(&out, tt.res)
			got := tuitest.StripANSI(out.String())
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_STATE_HOME", "/tmp/state")

	assert.Equal(t, filepath.Join("/tmp/cfg", "signup", "config.yaml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/tmp/state", "signup", "signup.log"), DefaultLogFile())
}
