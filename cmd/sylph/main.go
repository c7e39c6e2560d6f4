package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"github.com/sylph-lang/sylph/sylph"
)

var diagnosticStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#EF4444")).
	Bold(true)

func main() {
	app := newApp()
	app.Run(os.Args)
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "sylph",
		Usage: "the sylph language interpreter",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log phase timings to stderr",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "project config file",
				Value: "sylph.yaml",
			},
		},
		ExitErrHandler: exitWithError,
		Commands: []*cli.Command{
			runCommand(),
			replCommand(),
			checkCommand(),
			dumpCommand(),
		},
	}
}

// exitWithError prints program diagnostics with their own renderers and
// wraps everything else (I/O failures, bad invocations) with a source trace.
func exitWithError(c *cli.Context, err error) {
	if err == nil {
		return
	}
	if coder, ok := err.(cli.ExitCoder); ok {
		if coder.Error() != "" {
			fmt.Fprintln(os.Stderr, coder.Error())
		}
		os.Exit(coder.ExitCode())
	}
	if isLanguageError(err) {
		fmt.Fprintln(os.Stderr, renderDiagnostic(err))
		os.Exit(1)
	}
	tracerr.PrintSourceColor(tracerr.Wrap(err))
	os.Exit(1)
}

func isLanguageError(err error) bool {
	var lexErr *sylph.LexError
	var synErr *sylph.SyntaxError
	var runErr *sylph.RuntimeError
	return errors.As(err, &lexErr) || errors.As(err, &synErr) || errors.As(err, &runErr)
}

// renderDiagnostic colors the head line of a program diagnostic and leaves
// the code frame and stack as the error rendered them.
func renderDiagnostic(err error) string {
	lines := strings.Split(err.Error(), "\n")
	lines[0] = diagnosticStyle.Render(lines[0])
	return strings.Join(lines, "\n")
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func readProgram(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return string(data), nil
}
