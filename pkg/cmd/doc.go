// Package cmd provides CLI commands for the sqlriver tool.
//
// # Available Commands
//
//   - fmt: Format SQL from stdin, files, or directory trees
//
// # Command Structure
//
// Each command is implemented as a function that returns a *cli.Command,
// following the urfave/cli/v3 pattern. Commands are provided to the fx
// application through the "commands" value group and mounted by Run.
//
// # Global Options
//
//   - --config, -c: Load settings from the given file instead of .sqlriver.yaml
//   - --help, -h: Display command help
//   - --version: Display version information
//
// # Exit Status
//
// The process exits with status 1 when a command fails, including when input
// cannot be tokenized or when fmt --check finds files that need formatting.
package cmd
