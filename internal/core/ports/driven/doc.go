// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Normaliser: Extracts plain text from one document format
//   - NormaliserRegistry: Selects the normaliser for a MIME type
//   - PostProcessorRegistry: Builds text cleanup pipelines by name
//   - TaxonomySource: Reads taxonomy files (JSON, YAML, TOML)
//   - TaxonomyStore: Named taxonomy persistence
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
