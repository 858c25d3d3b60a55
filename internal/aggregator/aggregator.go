// Package aggregator drives incremental loading across the configured
// sources and owns the accumulated article set for the session.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/daksh3010/newsdash/internal/domain"
	"github.com/daksh3010/newsdash/internal/logger"
	"github.com/daksh3010/newsdash/pkg/sources"
)

// ErrLoadInFlight is returned when LoadNext is called while a previous call
// has not settled. Concurrent loads are rejected rather than queued to
// avoid duplicate-page appends.
var ErrLoadInFlight = errors.New("a page load is already in flight")

// EventSink receives a notification after each successful page append.
// pkg/publishers satisfies this; a nil sink disables notifications.
type EventSink interface {
	PageLoaded(ctx context.Context, page, articleCount int)
}

// Aggregator accumulates articles fetched page by page from all registered
// sources. The accumulated set is append-only and session-scoped; readers
// only ever see copies.
type Aggregator struct {
	registry sources.Registry
	log      logger.Logger
	sink     EventSink

	mu          sync.Mutex
	inFlight    bool
	accumulated []domain.Article
	currentPage int
	hasMore     bool
}

// New builds an Aggregator over the given source registry.
func New(registry sources.Registry, log logger.Logger) *Aggregator {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Aggregator{
		registry:    registry,
		log:         log,
		currentPage: 1,
		hasMore:     true,
	}
}

// SetEventSink attaches a sink notified on successful page loads.
func (a *Aggregator) SetEventSink(sink EventSink) {
	a.mu.Lock()
	a.sink = sink
	a.mu.Unlock()
}

// sourceResult carries one source's outcome for a page fetch.
type sourceResult struct {
	articles []domain.Article
	err      error
}

// LoadNext fetches the current page from every eligible source
// concurrently, merges the results in registration order, and appends them
// to the accumulated set.
//
// A failing source contributes zero articles but does not discard the other
// source's batch; the first recorded error is returned so the caller can
// surface it once. An empty merged batch with no errors marks the
// aggregator exhausted, after which LoadNext is a no-op. An empty batch
// with an error leaves hasMore untouched so the caller can retry.
func (a *Aggregator) LoadNext(ctx context.Context) error {
	a.mu.Lock()
	if a.inFlight {
		a.mu.Unlock()
		return ErrLoadInFlight
	}
	if !a.hasMore {
		a.mu.Unlock()
		return nil
	}
	a.inFlight = true
	page := a.currentPage
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.inFlight = false
		a.mu.Unlock()
	}()

	eligible := a.eligibleSources(page)
	results := fetchAll(ctx, eligible, page)

	var (
		merged   []domain.Article
		firstErr error
		errCount int
	)
	for i, res := range results {
		if res.err != nil {
			errCount++
			if firstErr == nil {
				firstErr = res.err
			}
			a.log.WarnObj("source fetch failed", "source_fetch_error", map[string]any{
				"source_id": eligible[i].ID(),
				"page":      page,
				"error":     res.err.Error(),
			})
			continue
		}
		merged = append(merged, res.articles...)
	}

	a.mu.Lock()
	switch {
	case len(merged) > 0:
		a.accumulated = append(a.accumulated, merged...)
		a.currentPage++
	case firstErr == nil:
		a.hasMore = false
		total := len(a.accumulated)
		a.mu.Unlock()
		a.log.InfoObj("sources exhausted", "aggregator_exhausted", map[string]any{
			"page":  page,
			"total": total,
		})
		return nil
	default:
		a.mu.Unlock()
		return fmt.Errorf("load page %d: %w", page, firstErr)
	}
	total := len(a.accumulated)
	sink := a.sink
	a.mu.Unlock()

	a.log.InfoObj("page appended", "aggregator_page_loaded", map[string]any{
		"page":     page,
		"appended": len(merged),
		"total":    total,
		"failures": errCount,
	})

	// Notify outside the lock: sinks may do network I/O.
	if sink != nil {
		sink.PageLoaded(ctx, page, len(merged))
	}

	if firstErr != nil {
		return fmt.Errorf("load page %d: %w", page, firstErr)
	}
	return nil
}

// eligibleSources returns the sources to fetch for the given page. Sources
// without pagination only participate in the first page; refetching them
// would append identical data.
func (a *Aggregator) eligibleSources(page int) []sources.Source {
	all := a.registry.All()
	if page == 1 {
		return all
	}

	eligible := make([]sources.Source, 0, len(all))
	for _, s := range all {
		if s.SupportsPagination() {
			eligible = append(eligible, s)
		}
	}
	return eligible
}

// fetchAll issues all fetches concurrently and waits for every one to
// settle. Results keep the source order of the input slice, so the merge
// is deterministic regardless of completion order.
func fetchAll(ctx context.Context, srcs []sources.Source, page int) []sourceResult {
	results := make([]sourceResult, len(srcs))

	var wg sync.WaitGroup
	for i, src := range srcs {
		wg.Add(1)
		go func(i int, src sources.Source) {
			defer wg.Done()
			articles, err := src.FetchPage(ctx, page)
			results[i] = sourceResult{articles: articles, err: err}
		}(i, src)
	}
	wg.Wait()

	return results
}

// Snapshot returns a copy of the accumulated set.
func (a *Aggregator) Snapshot() []domain.Article {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]domain.Article, len(a.accumulated))
	copy(out, a.accumulated)
	return out
}

// Len returns the number of accumulated articles.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.accumulated)
}

// HasMore reports whether another LoadNext may yield new data.
func (a *Aggregator) HasMore() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hasMore
}

// CurrentPage returns the next page number to be fetched.
func (a *Aggregator) CurrentPage() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currentPage
}

// Reset discards the accumulated set and rearms pagination.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.accumulated = nil
	a.currentPage = 1
	a.hasMore = true
}
