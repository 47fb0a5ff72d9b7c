package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/tally/internal/core/domain"
	"github.com/custodia-labs/tally/internal/normalisers"
	"github.com/custodia-labs/tally/internal/normalisers/docmeta"
	"github.com/custodia-labs/tally/internal/postprocessors"
)

var (
	countTaxonomy string
	countFormat   string
	countWorkers  int
	countCleanup  string
	countWatch    bool
	countMatched  bool
)

// watchDebounce groups the bursts of events editors produce on save.
const watchDebounce = 200 * time.Millisecond

// stdinIsTerminal reports whether stdin is interactive. Replaced in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var countCmd = &cobra.Command{
	Use:   "count [file|-]",
	Short: "Count taxonomy keywords in a document",
	Long: `Extract the text of a document and count whole-word occurrences of each
taxonomy alias, rolled up to its search term.

Every search term gets a row, in taxonomy order, including terms with no
matches. Rows are indexed A, B, ..., Z, AA, AB, ...

Reads stdin when the file is "-" or omitted with piped input.

Examples:
  tally count report.pdf
  tally count report.html --taxonomy finance --format csv
  cat notes.txt | tally count --taxonomy ./esg.yaml
  tally count draft.md --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCount,
}

func init() {
	countCmd.Flags().StringVarP(&countTaxonomy, "taxonomy", "t", "",
		"taxonomy file or stored name (default from settings, then built-in)")
	countCmd.Flags().StringVarP(&countFormat, "format", "f", "", "output format: table, json or csv")
	countCmd.Flags().IntVarP(&countWorkers, "workers", "w", 0, "concurrent term workers")
	countCmd.Flags().StringVar(&countCleanup, "cleanup", "",
		`comma-separated cleanup steps (dehyphenate, whitespace); "" disables`)
	countCmd.Flags().BoolVar(&countWatch, "watch", false, "re-count whenever the file changes")
	countCmd.Flags().BoolVar(&countMatched, "matched", false, "only show terms with matches (table output)")
	rootCmd.AddCommand(countCmd)
}

func runCount(cmd *cobra.Command, args []string) error {
	if tallyService == nil || taxonomyService == nil {
		return errors.New("tally service not configured")
	}

	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	if path == "-" && len(args) == 0 && stdinIsTerminal() {
		return errors.New("no input: pass a file or pipe text on stdin")
	}
	if countWatch && path == "-" {
		return errors.New("--watch needs a file")
	}

	format, err := countOutputFormat(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") && countWorkers < 1 {
		return fmt.Errorf("%w: --workers must be at least 1", domain.ErrInvalidInput)
	}
	opts := countOptions(cmd)

	ctx := cmd.Context()
	tax, err := taxonomyService.Resolve(ctx, countTaxonomy)
	if err != nil {
		return fmt.Errorf("resolving taxonomy: %w", err)
	}

	run := func() error {
		raw, err := readRawDocument(cmd.InOrStdin(), path)
		if err != nil {
			return err
		}
		report, err := tallyService.CountDocumentWith(ctx, raw, *tax, opts)
		if err != nil {
			return err
		}
		return writeReport(cmd.OutOrStdout(), report, format, countMatched)
	}

	if err := run(); err != nil {
		return err
	}
	if !countWatch {
		return nil
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", path)
	return watchFile(ctx, path, watchDebounce, func() error {
		fmt.Fprintf(cmd.OutOrStdout(), "\n--- %s ---\n", time.Now().Format(time.TimeOnly))
		return run()
	}, cmd.ErrOrStderr())
}

// countOutputFormat returns the --format flag or the configured default.
func countOutputFormat(cmd *cobra.Command) (domain.OutputFormat, error) {
	if cmd.Flags().Changed("format") {
		return domain.ParseOutputFormat(countFormat)
	}
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return "", fmt.Errorf("failed to get settings: %w", err)
		}
		return settings.Format, nil
	}
	return domain.OutputTable, nil
}

// countOptions turns explicitly set flags into per-call overrides.
func countOptions(cmd *cobra.Command) domain.CountOptions {
	var opts domain.CountOptions
	if cmd.Flags().Changed("workers") {
		opts.Workers = countWorkers
	}
	if cmd.Flags().Changed("cleanup") {
		opts.Cleanup = splitCleanup(countCleanup)
	}
	return opts
}

// splitCleanup parses a --cleanup value. An empty value yields a non-nil
// empty list, which disables cleanup for the call.
func splitCleanup(s string) []string {
	steps := postprocessors.ParseList(s)
	if steps == nil {
		return []string{}
	}
	return steps
}

// readRawDocument reads a file, or stdin for "-", and detects its MIME type.
func readRawDocument(stdin io.Reader, path string) (*domain.RawDocument, error) {
	var (
		content []byte
		err     error
		name    string
	)

	if path == "-" {
		content, err = io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		path = docmeta.StdinURI
	} else {
		content, err = os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		name = path
	}

	return &domain.RawDocument{
		URI:      path,
		MIMEType: normalisers.DetectMIMEType(name, content),
		Content:  content,
	}, nil
}
