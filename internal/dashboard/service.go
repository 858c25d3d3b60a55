// Package dashboard exposes the caller-facing API of the aggregation
// pipeline: incremental loading, filter criteria, payout summaries, and
// exports. The UI layer talks only to this facade.
package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/daksh3010/newsdash/internal/aggregator"
	"github.com/daksh3010/newsdash/internal/domain"
	"github.com/daksh3010/newsdash/internal/export"
	"github.com/daksh3010/newsdash/internal/filter"
	"github.com/daksh3010/newsdash/internal/logger"
	"github.com/daksh3010/newsdash/internal/payout"
	"github.com/daksh3010/newsdash/internal/stats"
)

// ExportSink is notified after a successful export. *publishers.Set
// satisfies it; nil disables notifications.
type ExportSink interface {
	ExportCompleted(ctx context.Context, fileName string, rowCount int, grandTotal float64)
}

// Service wires the aggregator, filter, payout and export layers together
// behind one API. Filtered views are recomputed from a fresh snapshot on
// every read; with the volumes involved, correctness beats caching.
type Service struct {
	agg   *aggregator.Aggregator
	rates *payout.RateStore
	log   logger.Logger
	sink  ExportSink

	mu       sync.RWMutex
	criteria filter.Criteria
}

// New builds a Service. The sink may be nil.
func New(agg *aggregator.Aggregator, rates *payout.RateStore, sink ExportSink, log logger.Logger) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Service{
		agg:      agg,
		rates:    rates,
		log:      log,
		sink:     sink,
		criteria: filter.Default(),
	}
}

// LoadNext fetches and appends the next page of articles.
func (s *Service) LoadNext(ctx context.Context) error {
	return s.agg.LoadNext(ctx)
}

// HasMore reports whether further loads may yield new articles.
func (s *Service) HasMore() bool { return s.agg.HasMore() }

// SetCriteria replaces the active filter criteria.
func (s *Service) SetCriteria(c filter.Criteria) {
	s.mu.Lock()
	s.criteria = c
	s.mu.Unlock()
}

// Criteria returns the active filter criteria.
func (s *Service) Criteria() filter.Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// FilteredView derives the current view from the accumulated snapshot and
// the active criteria.
func (s *Service) FilteredView() []domain.Article {
	return filter.Apply(s.agg.Snapshot(), s.Criteria())
}

// Rate returns the persisted payout rate.
func (s *Service) Rate() (float64, error) {
	return s.rates.Rate()
}

// SetRate persists a new payout rate.
func (s *Service) SetRate(rate float64) error {
	if err := s.rates.SetRate(rate); err != nil {
		return err
	}
	s.log.InfoObj("payout rate updated", "rate_updated", map[string]any{
		"rate": rate,
	})
	return nil
}

// Summary computes the per-author payout rows for the current view at the
// persisted rate.
func (s *Service) Summary() ([]domain.AuthorSummaryRow, error) {
	rate, err := s.rates.Rate()
	if err != nil {
		return nil, fmt.Errorf("read payout rate: %w", err)
	}
	return payout.Summarize(s.FilteredView(), rate), nil
}

// GrandTotal prices the whole current view at the persisted rate.
func (s *Service) GrandTotal() (float64, error) {
	rate, err := s.rates.Rate()
	if err != nil {
		return 0, fmt.Errorf("read payout rate: %w", err)
	}
	return payout.GrandTotal(s.FilteredView(), rate), nil
}

// Authors lists the distinct authors of the accumulated set, for selector
// population.
func (s *Service) Authors() []string {
	return stats.Authors(s.agg.Snapshot())
}

// AuthorBreakdown counts current-view articles per author.
func (s *Service) AuthorBreakdown() []stats.CountRow {
	return stats.ByAuthor(s.FilteredView())
}

// SourceBreakdown counts current-view articles per source.
func (s *Service) SourceBreakdown() []stats.CountRow {
	return stats.BySource(s.FilteredView())
}

// ExportCSV serializes the current view as CSV bytes.
func (s *Service) ExportCSV(ctx context.Context) ([]byte, error) {
	view := s.FilteredView()
	rate, err := s.rates.Rate()
	if err != nil {
		return nil, fmt.Errorf("read payout rate: %w", err)
	}

	data := export.CSV(view, rate)
	s.notifyExport(ctx, export.CSVFileName, view, rate)
	return data, nil
}

// ExportPDF serializes the current view as a PDF table. On error no
// partial output is returned.
func (s *Service) ExportPDF(ctx context.Context) ([]byte, error) {
	view := s.FilteredView()
	rate, err := s.rates.Rate()
	if err != nil {
		return nil, fmt.Errorf("read payout rate: %w", err)
	}

	data, err := export.PDF(view, rate)
	if err != nil {
		return nil, err
	}
	s.notifyExport(ctx, export.PDFFileName, view, rate)
	return data, nil
}

func (s *Service) notifyExport(ctx context.Context, fileName string, view []domain.Article, rate float64) {
	s.log.InfoObj("view exported", "export_completed", map[string]any{
		"file": fileName,
		"rows": len(view),
	})
	if s.sink != nil {
		s.sink.ExportCompleted(ctx, fileName, len(view), payout.GrandTotal(view, rate))
	}
}
