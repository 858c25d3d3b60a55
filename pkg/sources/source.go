// Package sources defines the per-provider fetch-and-normalize adapters and
// their registry.
package sources

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/daksh3010/newsdash/internal/domain"
	"github.com/daksh3010/newsdash/pkg/httpclient"
)

// Source fetches one page worth of articles from a single provider and maps
// them into the normalized schema. Implementations classify their own
// failures as *domain.FetchError and never mutate shared state.
type Source interface {
	ID() string
	Type() domain.ArticleType
	// SupportsPagination reports whether successive pages return new data.
	// A source without pagination returns the same batch on every call, so
	// the aggregator fetches it once and excludes it afterwards.
	SupportsPagination() bool
	FetchPage(ctx context.Context, page int) ([]domain.Article, error)
}

// Registry holds sources in registration order. Order matters: the
// aggregator merges page results in this order regardless of which fetch
// settles first.
type Registry interface {
	All() []Source
	ByID(id string) (Source, bool)
}

type registry struct {
	mu      sync.RWMutex
	ordered []Source
	idx     map[string]Source
}

// NewRegistry builds a registry for the provided sources, keeping their
// order. Nil entries and duplicate ids are skipped.
func NewRegistry(srcs ...Source) Registry {
	reg := &registry{
		idx: make(map[string]Source, len(srcs)),
	}
	for _, s := range srcs {
		if s == nil {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(s.ID()))
		if key == "" {
			continue
		}
		if _, exists := reg.idx[key]; exists {
			continue
		}
		reg.idx[key] = s
		reg.ordered = append(reg.ordered, s)
	}
	return reg
}

func (r *registry) All() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Source, len(r.ordered))
	copy(out, r.ordered)
	return out
}

func (r *registry) ByID(id string) (Source, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.idx[id]
	return s, ok
}

// DefaultHTTPClient returns a tuned HTTP client for source fetchers.
func DefaultHTTPClient() httpclient.Client {
	return httpclient.NewRestyClient(15 * time.Second)
}

// DefaultRegistry wires the known sources: the Guardian news API before the
// Dev.to blog API.
func DefaultRegistry(client httpclient.Client, guardian GuardianConfig, devto DevtoConfig) Registry {
	if client == nil {
		client = DefaultHTTPClient()
	}
	return NewRegistry(
		NewGuardianSource(client, guardian),
		NewDevtoSource(client, devto),
	)
}
