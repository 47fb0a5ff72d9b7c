package keywords

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/custodia-labs/tally/internal/core/domain"
)

// Aggregate counts every alias of every term in text.
//
// The text is normalised once. One TermResult is returned per term, in
// taxonomy order, including terms whose total is zero. An invalid taxonomy
// or an empty alias fails the whole call and no results are returned.
func Aggregate(text string, tax domain.Taxonomy) ([]domain.TermResult, error) {
	if err := tax.Validate(); err != nil {
		return nil, err
	}

	normalized := Normalize(text)
	results := make([]domain.TermResult, len(tax.Terms))

	for i := range tax.Terms {
		res, err := countTerm(normalized, tax.Terms[i])
		if err != nil {
			return nil, err
		}
		results[i] = res
	}

	return results, nil
}

// countTerm counts the aliases of a single term.
// Total includes every alias; Matches keeps only positive counts.
func countTerm(normalized string, term domain.Term) (domain.TermResult, error) {
	res := domain.TermResult{Term: term.Name}

	for _, alias := range term.Aliases {
		n, err := CountOccurrences(normalized, alias)
		if err != nil {
			return domain.TermResult{}, fmt.Errorf("term %q: %w", term.Name, err)
		}
		res.Total += n
		if n > 0 {
			res.Matches = append(res.Matches, domain.AliasCount{Alias: alias, Count: n})
		}
	}

	return res, nil
}

// Aggregator counts terms concurrently on a worker pool.
// Each term only reads the shared normalised text, so terms are
// independent; results are written to their taxonomy slot.
type Aggregator struct {
	workers int
	pool    *ants.Pool
}

// Option configures an Aggregator.
type Option func(*Aggregator) error

// WithWorkers sets the number of concurrent term workers.
// Values below 1 are treated as 1, which disables the pool.
func WithWorkers(n int) Option {
	return func(a *Aggregator) error {
		if n < 1 {
			n = 1
		}
		a.workers = n
		return nil
	}
}

// NewAggregator creates an aggregator. The default runs inline.
func NewAggregator(opts ...Option) (*Aggregator, error) {
	a := &Aggregator{workers: 1}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if a.workers > 1 {
		pool, err := ants.NewPool(a.workers)
		if err != nil {
			return nil, fmt.Errorf("creating worker pool: %w", err)
		}
		a.pool = pool
	}

	return a, nil
}

// Workers returns the configured worker count.
func (a *Aggregator) Workers() int {
	return a.workers
}

// Aggregate behaves like the package-level Aggregate but spreads terms
// across the pool. When several terms fail, the error of the earliest
// term in taxonomy order is returned.
func (a *Aggregator) Aggregate(ctx context.Context, text string, tax domain.Taxonomy) ([]domain.TermResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if a.pool == nil || len(tax.Terms) < 2 {
		return Aggregate(text, tax)
	}
	if err := tax.Validate(); err != nil {
		return nil, err
	}

	normalized := Normalize(text)
	results := make([]domain.TermResult, len(tax.Terms))
	errs := make([]error, len(tax.Terms))

	var wg sync.WaitGroup
	for i := range tax.Terms {
		idx := i
		term := tax.Terms[i]

		wg.Add(1)
		err := a.pool.Submit(func() {
			defer wg.Done()
			results[idx], errs[idx] = countTerm(normalized, term)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submitting term %q: %w", term.Name, err)
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Release frees the worker pool. The aggregator must not be used afterwards.
func (a *Aggregator) Release() {
	if a.pool != nil {
		a.pool.Release()
		a.pool = nil
	}
}
