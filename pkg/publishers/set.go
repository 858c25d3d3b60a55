package publishers

import "context"

// Set fans one event out to every configured publisher. Delivery is
// best-effort: a failing publisher is logged and skipped so the dashboard
// pipeline never stalls on a sink.
type Set struct {
	publishers []Publisher
	log        Logger
}

// NewSet wraps the given publishers. A nil or empty set is valid and
// publishes nothing.
func NewSet(pubs []Publisher, log Logger) *Set {
	return &Set{publishers: pubs, log: ensureLogger(log)}
}

// PageLoaded satisfies the aggregator's event sink.
func (s *Set) PageLoaded(ctx context.Context, page, articleCount int) {
	s.publish(ctx, NewPageLoadedEvent(page, articleCount))
}

// ExportCompleted announces a finished export.
func (s *Set) ExportCompleted(ctx context.Context, fileName string, rowCount int, grandTotal float64) {
	s.publish(ctx, NewExportCompletedEvent(fileName, rowCount, grandTotal))
}

func (s *Set) publish(ctx context.Context, evt Event) {
	if s == nil {
		return
	}
	for _, pub := range s.publishers {
		if err := pub.Publish(ctx, evt); err != nil {
			s.log.WarnObj("publisher delivery failed", "publisher_delivery_error", map[string]any{
				"publisher_id": pub.ID(),
				"event_kind":   evt.Kind,
				"error":        err.Error(),
			})
		}
	}
}
