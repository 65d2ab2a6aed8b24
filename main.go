package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/signup/internal/commands"
	"github.com/colonyops/signup/internal/core/config"
	"github.com/colonyops/signup/internal/core/logging"
	"github.com/colonyops/signup/internal/core/styles"
	"github.com/colonyops/signup/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "signup",
		Usage:     "Create an account from the terminal",
		UsageText: "signup [global options] command [command options]",
		Description: `Signup walks through email confirmation, account information and address
in a full-screen wizard, then shows a summary of the new account.

Run 'signup' with no arguments to open the wizard.
Run 'signup quick' for a line-mode form.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("SIGNUP_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (empty disables logging)",
				Sources:     cli.EnvVars("SIGNUP_LOG_FILE"),
				Value:       commands.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("SIGNUP_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "env-file",
				Usage:       "load environment variables from a .env file before reading config",
				Sources:     cli.EnvVars("SIGNUP_ENV_FILE"),
				Value:       ".env",
				Destination: &flags.EnvFile,
			},
			&cli.StringFlag{
				Name:        "theme",
				Usage:       "color theme, overrides the config file",
				Sources:     cli.EnvVars("SIGNUP_THEME"),
				Destination: &flags.Theme,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := loadEnvFile(flags.EnvFile, c.IsSet("env-file")); err != nil {
				return ctx, err
			}
			// flags were parsed before the env file was read
			envFallback(c, "log-level", "SIGNUP_LOG_LEVEL", &flags.LogLevel)
			envFallback(c, "log-file", "SIGNUP_LOG_FILE", &flags.LogFile)
			envFallback(c, "config", "SIGNUP_CONFIG", &flags.ConfigPath)
			envFallback(c, "theme", "SIGNUP_THEME", &flags.Theme)

			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile, logging.ContextHook{})
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			if flags.Theme != "" {
				cfg.Theme = flags.Theme
				if err := cfg.Validate(); err != nil {
					return ctx, fmt.Errorf("theme: %w", err)
				}
			}

			styles.SetTheme(cfg.Palette())
			flags.Config = cfg

			log.Debug().
				Str("config", flags.ConfigPath).
				Str("theme", cfg.Theme).
				Msg("config loaded")

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags)

	app = commands.NewQuickCmd(flags).Register(app)
	app = commands.NewCheckCmd(flags).Register(app)
	app = commands.NewMaskCmd(flags).Register(app)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'signup --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		var exitErr cli.ExitCoder
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			fmt.Println()
			fmt.Println(runErr.Error())
			exitCode = 1
		}
	}

	os.Exit(exitCode)
}

// loadEnvFile loads path into the environment. A missing default file is
// ignored; a missing file that was asked for explicitly is an error.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return nil
	}
	return fmt.Errorf("load env file: %w", err)
}

// envFallback copies env into dst when the flag was not set on the command
// line or in the environment at startup.
func envFallback(c *cli.Command, flag, env string, dst *string) {
	if c.IsSet(flag) {
		return
	}
	if v, ok := os.LookupEnv(env); ok {
		*dst = v
	}
}
