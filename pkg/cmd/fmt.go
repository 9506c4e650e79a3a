package cmd

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlriver/pkg/config"
	"github.com/pseudomuto/sqlriver/pkg/consts"
	"github.com/pseudomuto/sqlriver/pkg/format"
	"github.com/urfave/cli/v3"
)

const stdinName = "<standard input>"

// fmtCmd creates a CLI command for formatting SQL in river style.
//
// The command reads standard input when no path (or a single "-") is given
// and writes the result to standard output. Paths may name files or
// directories; directories are searched recursively for .sql files, skipping
// anything matched by the config's exclude patterns.
//
// Output modes:
//   - Stdout mode (default): Formatted SQL is written to standard output
//   - Write mode (-w flag): Files are rewritten in place when they change
//   - Check mode (--check flag): Names of files that would change are listed
//     and the command fails
//
// Input that cannot be tokenized is echoed unmodified in stdout mode, left
// untouched otherwise, and makes the command fail once every path has been
// processed. Statements that could not be laid out are passed through
// verbatim and logged as warnings.
//
// Examples:
//
//	# Format a query from stdin
//	echo "select a, b from t" | sqlriver fmt
//
//	# Format all SQL files in a directory tree in-place
//	sqlriver fmt -w queries/
//
//	# Fail in CI when files need formatting
//	sqlriver fmt --check queries/ reports/
func fmtCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Format SQL files",
		ArgsUsage: "[path ...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write result to source files instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "check",
				Usage: "List files whose formatting differs and exit non-zero",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			r := &fmtRunner{
				formatter: cfg.GetFormatter(),
				config:    cfg,
				write:     cmd.Bool("write"),
				check:     cmd.Bool("check"),
				out:       writer(cmd),
			}

			if r.write && r.check {
				return errors.New("--write and --check cannot be used together")
			}

			paths := cmd.Args().Slice()
			if len(paths) == 0 || (len(paths) == 1 && paths[0] == "-") {
				if r.write {
					return errors.New("cannot write result back when reading from stdin")
				}

				if err := r.stream(reader(cmd)); err != nil {
					return err
				}

				return r.result()
			}

			for _, path := range paths {
				if err := r.path(path); err != nil {
					return err
				}
			}

			return r.result()
		},
	}
}

type fmtRunner struct {
	formatter *format.Formatter
	config    *config.Config
	write     bool
	check     bool
	out       io.Writer

	failed      int
	unformatted int
}

// path handles formatting of either a single file or directory recursively.
func (r *fmtRunner) path(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to access path: %s", path)
	}

	if info.IsDir() {
		return r.directory(path)
	}

	return r.file(path)
}

// directory recursively formats all .sql files below dir in lexicographical
// order. Files and directories matching an exclude pattern are skipped.
func (r *fmtRunner) directory(dir string) error {
	var sqlFiles []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != dir && r.config.Excluded(rel) {
				return fs.SkipDir
			}

			return nil
		}

		if strings.HasSuffix(strings.ToLower(d.Name()), consts.SQLExtension) && !r.config.Excluded(rel) {
			sqlFiles = append(sqlFiles, path)
		}

		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to walk directory: %s", dir)
	}

	if len(sqlFiles) == 0 {
		return errors.Errorf("no SQL files found in directory: %s", dir)
	}

	for _, sqlFile := range sqlFiles {
		if err := r.file(sqlFile); err != nil {
			return errors.Wrapf(err, "failed to format file: %s", sqlFile)
		}
	}

	return nil
}

// file formats a single SQL file and either writes to stdout or back to the file.
func (r *fmtRunner) file(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read file: %s", path)
	}

	src := string(content)
	formatted, ok := r.format(path, src)
	if !ok {
		return nil
	}

	switch {
	case r.check:
		return r.report(path, src, formatted)
	case r.write:
		if formatted == src {
			return nil
		}

		if err := os.WriteFile(path, []byte(formatted), consts.ModeFile); err != nil {
			return errors.Wrapf(err, "failed to write formatted content to file: %s", path)
		}

		return nil
	default:
		return r.emit(formatted)
	}
}

// stream formats everything read from in.
func (r *fmtRunner) stream(in io.Reader) error {
	content, err := io.ReadAll(in)
	if err != nil {
		return errors.Wrap(err, "failed to read from stdin")
	}

	src := string(content)
	formatted, ok := r.format(stdinName, src)
	if !ok {
		return nil
	}

	if r.check {
		return r.report(stdinName, src, formatted)
	}

	return r.emit(formatted)
}

// format returns the formatted text of src. When src cannot be tokenized the
// failure is recorded, src is echoed in stdout mode, and ok is false.
func (r *fmtRunner) format(name, src string) (string, bool) {
	formatted, warnings, err := r.formatter.Source(src)
	for _, w := range warnings {
		slog.Warn("Statement left unformatted", "path", name, "err", w)
	}

	if err != nil {
		slog.Error("Failed to tokenize SQL", "path", name, "err", err)
		r.failed++

		if !r.write && !r.check {
			_ = r.emit(src)
		}

		return "", false
	}

	return formatted, true
}

func (r *fmtRunner) report(name, src, formatted string) error {
	if formatted == src {
		return nil
	}

	r.unformatted++
	if _, err := fmt.Fprintln(r.out, name); err != nil {
		return errors.Wrap(err, "failed to write output")
	}

	return nil
}

func (r *fmtRunner) emit(s string) error {
	if _, err := fmt.Fprint(r.out, s); err != nil {
		return errors.Wrap(err, "failed to write formatted content to output")
	}

	return nil
}

func (r *fmtRunner) result() error {
	switch {
	case r.failed > 0:
		return errors.Errorf("failed to tokenize %d input(s)", r.failed)
	case r.unformatted > 0:
		return errors.Errorf("%d input(s) need formatting", r.unformatted)
	}

	return nil
}

func writer(cmd *cli.Command) io.Writer {
	if cmd.Writer != nil {
		return cmd.Writer
	}

	if root := cmd.Root(); root.Writer != nil {
		return root.Writer
	}

	return os.Stdout
}

func reader(cmd *cli.Command) io.Reader {
	if cmd.Reader != nil {
		return cmd.Reader
	}

	if root := cmd.Root(); root.Reader != nil {
		return root.Reader
	}

	return os.Stdin
}
