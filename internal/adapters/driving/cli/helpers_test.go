package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tally/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tally/internal/core/services"
	"github.com/custodia-labs/tally/internal/normalisers"
	"github.com/custodia-labs/tally/internal/postprocessors"
	"github.com/custodia-labs/tally/internal/taxonomy"
)

const financeYAML = `Revenue: [revenue, sales]
Profit: [profit, net income]
Debt: [debt]
`

const sampleText = "Revenue grew. Sales and revenue rose; debt fell."

// testEnv wires the real services over in-memory stores.
type testEnv struct {
	dir      string
	settings *services.SettingsService
	taxonomy *services.TaxonomyService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cleanup := postprocessors.NewDefaultRegistry()
	settings := services.NewSettingsService(memory.NewConfigStore(), cleanup)
	tax := services.NewTaxonomyService(taxonomy.NewFileSource(), memory.NewTaxonomyStore(), settings)
	tally := services.NewTallyService(normalisers.NewDefaultRegistry(), cleanup, settings)

	SetServices(&Services{Tally: tally, Taxonomy: tax, Settings: settings})
	t.Cleanup(func() { SetServices(nil) })

	origTerminal := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdinIsTerminal = origTerminal })

	return &testEnv{dir: t.TempDir(), settings: settings, taxonomy: tax}
}

// writeFile creates a file in the env's temp dir and returns its path.
func (e *testEnv) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// run executes the root command with args and stdin, returning everything
// written to stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue) //nolint:errcheck // defaults always parse
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
