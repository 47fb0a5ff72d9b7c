// Package sqlite provides a SQLite-based implementation of the taxonomy store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// A taxonomy is spread over three tables (taxonomies, terms, aliases); terms
// and aliases carry a position column so their order survives a round trip.
//
// # Data Location
//
// By default, the database is stored at ~/.tally/data/tally.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
