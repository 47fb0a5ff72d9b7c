package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tally/internal/core/ports/driving"
	"github.com/custodia-labs/tally/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services bundles the driving ports used by the commands.
type Services struct {
	Tally    driving.TallyService
	Taxonomy driving.TaxonomyService
	Settings driving.SettingsService
}

// Bootstrap builds the services for a home directory ("" means the default
// ~/.tally). The returned function releases what the services hold open.
type Bootstrap func(home string) (*Services, func() error, error)

// Service instances used by the commands.
var (
	tallyService    driving.TallyService
	taxonomyService driving.TaxonomyService
	settingsService driving.SettingsService
)

var (
	bootstrap   Bootstrap
	closeFn     func() error
	verboseFlag bool
	homeFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "Count taxonomy keywords in documents",
	Long: `Tally extracts the text of a document (PDF, HTML, DOCX, Markdown, email
or plain text) and counts whole-word occurrences of a taxonomy of keyword
aliases, rolled up to canonical search terms.

Taxonomies map each search term to the aliases counted toward it. Use the
built-in taxonomy, a JSON/YAML/TOML file, or one stored with
'tally taxonomy import'.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log pipeline stages to stderr")
	rootCmd.PersistentFlags().StringVar(&homeFlag, "home", "", "config and data directory (default ~/.tally)")
}

// SetServices sets the services used by the commands.
func SetServices(s *Services) {
	if s == nil {
		tallyService, taxonomyService, settingsService = nil, nil, nil
		return
	}
	tallyService = s.Tally
	taxonomyService = s.Taxonomy
	settingsService = s.Settings
}

// SetBootstrap registers the function that builds the services once flags
// are parsed. It is not called when services were set directly.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version reported by 'tally version'.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command and releases bootstrapped services.
// An interrupt cancels the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if closeFn != nil {
		if cerr := closeFn(); cerr != nil {
			logger.Warn("closing services: %v", cerr)
		}
		closeFn = nil
	}
	return err
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	if bootstrap == nil || tallyService != nil {
		return nil
	}

	services, closer, err := bootstrap(homeFlag)
	if err != nil {
		return err
	}
	SetServices(services)
	closeFn = closer
	return nil
}
