package font

import (
	"errors"
	"fmt"

	"github.com/tsawler/textscan/core"
)

// ErrMissingFont means a font resource name is not declared on the page.
var ErrMissingFont = errors.New("missing font")

// Resolver looks up a font dictionary by resource name in the current
// page's resources. It returns an error wrapping ErrMissingFont when the
// name is not declared.
type Resolver interface {
	ResolveFont(name string) (core.Dict, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(name string) (core.Dict, error)

func (f ResolverFunc) ResolveFont(name string) (core.Dict, error) {
	return f(name)
}

type entry struct {
	metrics *Metrics
	err     error
}

// Table caches loaded fonts by resource name for one page. Failed lookups
// are cached too, so each name reaches the resolver at most once.
type Table struct {
	resolver Resolver
	cache    map[string]entry
	lookups  int
}

// NewTable returns an empty table backed by r.
func NewTable(r Resolver) *Table {
	return &Table{
		resolver: r,
		cache:    make(map[string]entry),
	}
}

// Reset empties the cache and switches to the resolver of a new page.
func (t *Table) Reset(r Resolver) {
	t.resolver = r
	clear(t.cache)
	t.lookups = 0
}

// Resolve returns the metrics for a font resource name. On failure it
// returns the error together with Fallback metrics, so callers can carry
// on. The error wraps ErrMissingFont when the name is not declared.
func (t *Table) Resolve(name string) (*Metrics, error) {
	if e, ok := t.cache[name]; ok {
		return e.metrics, e.err
	}

	m, err := t.load(name)
	if err != nil {
		m = Fallback()
	}
	t.cache[name] = entry{metrics: m, err: err}
	return m, err
}

func (t *Table) load(name string) (*Metrics, error) {
	if t.resolver == nil {
		return nil, fmt.Errorf("font %q: %w", name, ErrMissingFont)
	}
	t.lookups++
	dict, err := t.resolver.ResolveFont(name)
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", name, err)
	}
	if dict == nil {
		return nil, fmt.Errorf("font %q: %w", name, ErrMissingFont)
	}
	m, err := Load(dict)
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", name, err)
	}
	return m, nil
}

// Lookups returns how many times the resolver was consulted since the last
// Reset.
func (t *Table) Lookups() int {
	return t.lookups
}

// Len returns the number of cached names, including failed ones.
func (t *Table) Len() int {
	return len(t.cache)
}
