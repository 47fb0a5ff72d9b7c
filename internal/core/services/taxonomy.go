package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/tally/internal/core/domain"
	"github.com/custodia-labs/tally/internal/core/ports/driven"
	"github.com/custodia-labs/tally/internal/core/ports/driving"
	"github.com/custodia-labs/tally/internal/logger"
)

// Ensure TaxonomyService implements the interface.
var _ driving.TaxonomyService = (*TaxonomyService)(nil)

// TaxonomyService resolves taxonomy references and manages stored taxonomies.
type TaxonomyService struct {
	source   driven.TaxonomySource
	store    driven.TaxonomyStore
	settings driving.SettingsService
}

// NewTaxonomyService creates a new taxonomy service.
// settings may be nil, in which case an empty reference always resolves
// to the built-in taxonomy.
func NewTaxonomyService(
	source driven.TaxonomySource,
	store driven.TaxonomyStore,
	settings driving.SettingsService,
) *TaxonomyService {
	return &TaxonomyService{
		source:   source,
		store:    store,
		settings: settings,
	}
}

// Resolve turns a reference into a taxonomy.
//
// Resolution order:
//  1. an empty reference uses the taxonomy.default setting, then the
//     built-in taxonomy
//  2. a reference naming an existing file is loaded from disk
//  3. anything else is a stored taxonomy name; "default" falls back to
//     the built-in taxonomy when nothing is stored under that name
func (s *TaxonomyService) Resolve(ctx context.Context, ref string) (*domain.Taxonomy, error) {
	ref = strings.TrimSpace(ref)

	if ref == "" {
		configured, err := s.configuredDefault()
		if err != nil {
			return nil, err
		}
		if configured == "" {
			logger.Debug("Taxonomy: built-in default")
			return s.builtin(), nil
		}
		tax, err := s.resolveRef(ctx, configured)
		if err != nil {
			return nil, fmt.Errorf("taxonomy.default: %w", err)
		}
		return tax, nil
	}

	return s.resolveRef(ctx, ref)
}

func (s *TaxonomyService) resolveRef(ctx context.Context, ref string) (*domain.Taxonomy, error) {
	if isFile(ref) {
		logger.Debug("Taxonomy: loading file %s", ref)
		tax, err := s.source.Load(ref)
		if err != nil {
			return nil, err
		}
		return &tax, nil
	}

	logger.Debug("Taxonomy: looking up %q", ref)
	return s.Get(ctx, ref)
}

// Import loads a taxonomy file and stores it under name.
// An empty name uses the name carried by the file.
func (s *TaxonomyService) Import(ctx context.Context, name, path string) (*domain.Taxonomy, error) {
	tax, err := s.source.Load(path)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		tax.Name = name
	}

	if err := s.Save(ctx, tax); err != nil {
		return nil, err
	}

	logger.Info("Imported taxonomy %q from %s (%d terms)", tax.Name, path, tax.Len())
	return &tax, nil
}

// Save validates and stores a taxonomy under tax.Name.
func (s *TaxonomyService) Save(ctx context.Context, tax domain.Taxonomy) error {
	if strings.TrimSpace(tax.Name) == "" {
		return fmt.Errorf("%w: taxonomy name is required", domain.ErrInvalidInput)
	}
	if err := tax.Validate(); err != nil {
		return err
	}
	if s.store == nil {
		return fmt.Errorf("%w: no taxonomy store configured", domain.ErrInvalidInput)
	}
	return s.store.Save(ctx, tax)
}

// Get retrieves a stored taxonomy by name. The name "default" returns the
// built-in taxonomy unless a taxonomy was stored under it.
func (s *TaxonomyService) Get(ctx context.Context, name string) (*domain.Taxonomy, error) {
	if s.store != nil {
		tax, err := s.store.Get(ctx, name)
		if err == nil {
			return tax, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	if name == domain.DefaultTaxonomyName {
		return s.builtin(), nil
	}
	return nil, fmt.Errorf("taxonomy %q: %w", name, domain.ErrNotFound)
}

// List returns summaries of stored taxonomies.
func (s *TaxonomyService) List(ctx context.Context) ([]domain.TaxonomySummary, error) {
	if s.store == nil {
		return []domain.TaxonomySummary{}, nil
	}
	return s.store.List(ctx)
}

// Remove deletes a stored taxonomy.
func (s *TaxonomyService) Remove(ctx context.Context, name string) error {
	if s.store == nil {
		return fmt.Errorf("taxonomy %q: %w", name, domain.ErrNotFound)
	}
	if err := s.store.Delete(ctx, name); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("taxonomy %q: %w", name, err)
		}
		return err
	}
	return nil
}

// Validate loads a taxonomy file without storing it.
func (s *TaxonomyService) Validate(_ context.Context, path string) (*domain.Taxonomy, error) {
	tax, err := s.source.Load(path)
	if err != nil {
		return nil, err
	}
	return &tax, nil
}

func (s *TaxonomyService) configuredDefault() (string, error) {
	if s.settings == nil {
		return "", nil
	}
	settings, err := s.settings.Get()
	if err != nil {
		return "", fmt.Errorf("loading settings: %w", err)
	}
	return strings.TrimSpace(settings.Taxonomy), nil
}

func (s *TaxonomyService) builtin() *domain.Taxonomy {
	tax := s.source.Default()
	return &tax
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
