// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - TallyService: extraction, optional cleanup and keyword counting
//   - TaxonomyService: resolving, importing and storing taxonomies
//   - SettingsService: typed access to the config store
//
// Services are pure Go with no CGO or external dependencies.
package services
