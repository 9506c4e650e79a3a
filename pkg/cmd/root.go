package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pseudomuto/sqlriver/pkg/config"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Config     *config.Config
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run creates and executes the sqlriver CLI application with the given
// command-line arguments. The application runs once the fx lifecycle starts
// and shuts the fx application down with exit code 1 when a command fails.
//
// Global Flags:
//   - --config, -c: Config file to load instead of .sqlriver.yaml (env: SQLRIVER_CONFIG)
//
// The config provided through fx is loaded from .sqlriver.yaml in the current
// directory when present. An explicit --config replaces it before any command
// runs, so commands always see the effective settings.
//
// Example usage:
//
//	# Format a query from stdin
//	echo "select a, b from t" | sqlriver fmt
//
//	# Rewrite every .sql file under queries/ using a custom config
//	sqlriver --config river.yaml fmt -w queries/
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := &cli.Command{
		Name:  "sqlriver",
		Usage: "A river-style SQL formatter",
		Description: `sqlriver lays out SQL so that clause keywords are right-aligned
against a common column (the river), with comma-first lists, aligned
JOIN/ON blocks, indented subqueries and CTEs, and preserved comments.`,
		Version: p.Version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the sqlriver config file",
				Sources: cli.EnvVars("SQLRIVER_CONFIG"),
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Before:   loadConfig(p.Config),
		Commands: p.Commands,
	}

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			slog.Error("Error running command", "err", err)
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
			return
		}

		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}

// loadConfig replaces cfg with the file named by --config, when given.
func loadConfig(cfg *config.Config) func(context.Context, *cli.Command) (context.Context, error) {
	return func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		path := cmd.String("config")
		if path == "" {
			return ctx, nil
		}

		loaded, err := config.LoadConfigFile(path)
		if err != nil {
			return ctx, err
		}

		*cfg = *loaded
		return ctx, nil
	}
}
