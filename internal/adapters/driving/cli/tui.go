package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/tally/internal/adapters/driving/tui"
	"github.com/custodia-labs/tally/internal/core/domain"
)

var (
	tuiTaxonomy string
	tuiWorkers  int
	tuiCleanup  string
)

// stdoutIsTerminal reports whether stdout is interactive. Replaced in tests.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// runProgram runs the TUI. Replaced in tests.
var runProgram = func(app *tui.App) error {
	return app.Run()
}

var tuiCmd = &cobra.Command{
	Use:   "tui [file]",
	Short: "Browse a document's counts interactively",
	Long: `Count a document and browse the result rows in the terminal.

Controls:
  ↑/k, ↓/j  Move between terms
  g, G      First / last term
  z         Hide or show terms with no matches
  r         Re-read the file and count again
  ?         Toggle help
  q         Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiTaxonomy, "taxonomy", "t", "",
		"taxonomy file or stored name (default from settings, then built-in)")
	tuiCmd.Flags().IntVarP(&tuiWorkers, "workers", "w", 0, "concurrent term workers")
	tuiCmd.Flags().StringVar(&tuiCleanup, "cleanup", "", "comma-separated cleanup steps")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) (err error) {
	if tallyService == nil || taxonomyService == nil {
		return errors.New("tally service not configured")
	}
	if !stdoutIsTerminal() {
		return errors.New("tui needs a terminal; use 'tally count' for piped output")
	}

	// Print a stack trace if rendering panics.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("tui panic: %v", r)
		}
	}()

	path := args[0]
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", path, domain.ErrNotFound)
		}
		return err
	}

	tax, err := taxonomyService.Resolve(cmd.Context(), tuiTaxonomy)
	if err != nil {
		return fmt.Errorf("resolving taxonomy: %w", err)
	}

	opts := domain.CountOptions{}
	if cmd.Flags().Changed("workers") {
		opts.Workers = tuiWorkers
	}
	if cmd.Flags().Changed("cleanup") {
		opts.Cleanup = splitCleanup(tuiCleanup)
	}

	app, err := tui.NewApp(&tui.Ports{
		Tally: tallyService,
		Document: func(context.Context) (*domain.RawDocument, error) {
			return readRawDocument(nil, path)
		},
		Taxonomy: *tax,
		Options:  opts,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := runProgram(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
