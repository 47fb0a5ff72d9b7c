package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/tally/internal/core/domain"
	"github.com/custodia-labs/tally/internal/core/ports/driven"
)

// now is swapped in tests.
var now = time.Now

// taxonomyStore implements driven.TaxonomyStore.
type taxonomyStore struct {
	store *Store
}

var _ driven.TaxonomyStore = (*taxonomyStore)(nil)

// Save stores a taxonomy, replacing its terms if it already exists.
// The creation time of an existing taxonomy is kept.
func (s *taxonomyStore) Save(ctx context.Context, tax domain.Taxonomy) error {
	if strings.TrimSpace(tax.Name) == "" {
		return fmt.Errorf("%w: taxonomy name is required", domain.ErrInvalidInput)
	}
	if err := tax.Validate(); err != nil {
		return err
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	ts := now().UTC().Format(time.RFC3339Nano)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO taxonomies (name, created_at, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET updated_at = excluded.updated_at
	`, tax.Name, ts, ts)
	if err != nil {
		return fmt.Errorf("saving taxonomy: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM aliases WHERE taxonomy = ?", tax.Name); err != nil {
		return fmt.Errorf("clearing aliases: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM terms WHERE taxonomy = ?", tax.Name); err != nil {
		return fmt.Errorf("clearing terms: %w", err)
	}

	termStmt, err := tx.PrepareContext(ctx, "INSERT INTO terms (taxonomy, position, name) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing term insert: %w", err)
	}
	defer termStmt.Close()

	aliasStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO aliases (taxonomy, term_position, position, alias) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing alias insert: %w", err)
	}
	defer aliasStmt.Close()

	for i, term := range tax.Terms {
		if _, err := termStmt.ExecContext(ctx, tax.Name, i, term.Name); err != nil {
			return fmt.Errorf("saving term %q: %w", term.Name, err)
		}
		for j, alias := range term.Aliases {
			if _, err := aliasStmt.ExecContext(ctx, tax.Name, i, j, alias); err != nil {
				return fmt.Errorf("saving alias %q of %q: %w", alias, term.Name, err)
			}
		}
	}

	return tx.Commit()
}

// Get retrieves a taxonomy with its terms and aliases in stored order.
func (s *taxonomyStore) Get(ctx context.Context, name string) (*domain.Taxonomy, error) {
	var exists int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT 1 FROM taxonomies WHERE name = ?", name).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting taxonomy: %w", err)
	}

	tax := &domain.Taxonomy{Name: name}

	rows, err := s.store.db.QueryContext(ctx,
		"SELECT name FROM terms WHERE taxonomy = ? ORDER BY position", name)
	if err != nil {
		return nil, fmt.Errorf("getting terms: %w", err)
	}
	for rows.Next() {
		term := domain.Term{Aliases: []string{}}
		if err := rows.Scan(&term.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning term: %w", err)
		}
		tax.Terms = append(tax.Terms, term)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating terms: %w", err)
	}

	rows, err = s.store.db.QueryContext(ctx, `
		SELECT term_position, alias FROM aliases
		WHERE taxonomy = ?
		ORDER BY term_position, position
	`, name)
	if err != nil {
		return nil, fmt.Errorf("getting aliases: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			pos   int
			alias string
		)
		if err := rows.Scan(&pos, &alias); err != nil {
			return nil, fmt.Errorf("scanning alias: %w", err)
		}
		if pos < 0 || pos >= len(tax.Terms) {
			return nil, fmt.Errorf("alias %q refers to missing term %d", alias, pos)
		}
		tax.Terms[pos].Aliases = append(tax.Terms[pos].Aliases, alias)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating aliases: %w", err)
	}

	return tax, nil
}

// List returns summaries of all stored taxonomies, sorted by name.
func (s *taxonomyStore) List(ctx context.Context) ([]domain.TaxonomySummary, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT t.name,
		       (SELECT COUNT(*) FROM terms WHERE taxonomy = t.name),
		       (SELECT COUNT(*) FROM aliases WHERE taxonomy = t.name)
		FROM taxonomies t
		ORDER BY t.name
	`)
	if err != nil {
		return nil, fmt.Errorf("listing taxonomies: %w", err)
	}
	defer rows.Close()

	summaries := []domain.TaxonomySummary{}
	for rows.Next() {
		var sum domain.TaxonomySummary
		if err := rows.Scan(&sum.Name, &sum.Terms, &sum.Aliases); err != nil {
			return nil, fmt.Errorf("scanning taxonomy: %w", err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// Delete removes a taxonomy and its terms.
func (s *taxonomyStore) Delete(ctx context.Context, name string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM aliases WHERE taxonomy = ?", name); err != nil {
		return fmt.Errorf("deleting aliases: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM terms WHERE taxonomy = ?", name); err != nil {
		return fmt.Errorf("deleting terms: %w", err)
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM taxonomies WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting taxonomy: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting taxonomy: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit()
}
