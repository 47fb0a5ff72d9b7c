package postprocessors

import (
	"github.com/custodia-labs/tally/internal/core/ports/driven"
	"github.com/custodia-labs/tally/internal/postprocessors/dehyphenate"
	"github.com/custodia-labs/tally/internal/postprocessors/whitespace"
)

// RegisterDefaults registers all built-in processors with the registry.
func RegisterDefaults(r *Registry) {
	r.Register("dehyphenate", func() driven.PostProcessor { return dehyphenate.New() })
	r.Register("whitespace", func() driven.PostProcessor { return whitespace.New() })
}

// NewDefaultRegistry returns a registry holding the built-in processors.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}
