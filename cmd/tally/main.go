// Command tally counts taxonomy keywords in documents.
package main

import (
	"os"
	"path/filepath"

	"github.com/custodia-labs/tally/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tally/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/tally/internal/adapters/driving/cli"
	"github.com/custodia-labs/tally/internal/core/services"
	"github.com/custodia-labs/tally/internal/normalisers"
	"github.com/custodia-labs/tally/internal/postprocessors"
	"github.com/custodia-labs/tally/internal/taxonomy"
)

// Set via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the services over the on-disk config and taxonomy store.
func bootstrap(home string) (*cli.Services, func() error, error) {
	configStore, err := file.NewConfigStore(home)
	if err != nil {
		return nil, nil, err
	}

	dataDir := ""
	if home != "" {
		dataDir = filepath.Join(home, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, err
	}

	cleanup := postprocessors.NewDefaultRegistry()
	settings := services.NewSettingsService(configStore, cleanup)
	tax := services.NewTaxonomyService(taxonomy.NewFileSource(), store.TaxonomyStore(), settings)
	tally := services.NewTallyService(normalisers.NewDefaultRegistry(), cleanup, settings)

	return &cli.Services{Tally: tally, Taxonomy: tax, Settings: settings}, store.Close, nil
}
