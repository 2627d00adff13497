package dbtype

import (
	"fmt"
	"sort"
	"strings"

	"github.com/koustreak/dbscaffold/internal/errs"
)

// Registry resolves database-type identifiers to providers.
// Lookups are case-insensitive. A Registry is read-only after construction.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds a registry from the given providers.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.providers[strings.ToLower(p.Name())] = p
	}
	return r
}

// DefaultRegistry knows MySql, SqlServer and PostgreSql.
func DefaultRegistry() *Registry {
	return NewRegistry(MySQL(), SQLServer(), PostgreSQL())
}

// Provider returns the provider for databaseType.
func (r *Registry) Provider(databaseType string) (Provider, error) {
	p, ok := r.providers[strings.ToLower(strings.TrimSpace(databaseType))]
	if !ok {
		return nil, errs.InvalidArgument(fmt.Sprintf("unsupported database type %q (known: %s)",
			databaseType, strings.Join(r.Names(), ", ")))
	}
	return p, nil
}

// Names lists the canonical identifiers in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		names = append(names, p.Name())
	}
	sort.Strings(names)
	return names
}
