package filtering

import (
	"context"

	"github.com/bnema/paneshell/internal/application/port"
)

// FilterStore is the full set of compiled-filter operations.
// Panes only need the port.ContentFilterStore subset.
type FilterStore interface {
	port.ContentFilterStore

	// Compile validates a JSON rule list and stores it under identifier.
	Compile(ctx context.Context, identifier, jsonPath string) (*CompiledFilter, error)

	// Load reads a previously compiled filter.
	Load(ctx context.Context, identifier string) (*CompiledFilter, error)

	// Remove deletes a compiled filter.
	Remove(ctx context.Context, identifier string) error

	// HasCompiledFilter checks if a compiled filter exists for the given identifier.
	HasCompiledFilter(ctx context.Context, identifier string) bool

	// FetchIdentifiers returns all stored filter identifiers, sorted.
	FetchIdentifiers(ctx context.Context) ([]string, error)

	// Path returns the storage path for compiled filters.
	Path() string
}

var (
	_ FilterStore             = (*Store)(nil)
	_ port.ContentFilterStore = DisabledStore{}
)
