// Package publishers delivers dashboard pipeline events to configured
// downstream sinks: HTTP webhooks and cloud queues.
package publishers

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event kinds emitted by the dashboard.
const (
	KindPageLoaded      = "articles.page_loaded"
	KindExportCompleted = "export.completed"
)

// Event is the payload delivered to every sink.
type Event struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Page         int       `json:"page,omitempty"`
	ArticleCount int       `json:"article_count,omitempty"`
	FileName     string    `json:"file_name,omitempty"`
	RowCount     int       `json:"row_count,omitempty"`
	GrandTotal   float64   `json:"grand_total,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// NewPageLoadedEvent builds the event emitted after a page append.
func NewPageLoadedEvent(page, articleCount int) Event {
	return Event{
		ID:           uuid.NewString(),
		Kind:         KindPageLoaded,
		Page:         page,
		ArticleCount: articleCount,
		OccurredAt:   time.Now().UTC(),
	}
}

// NewExportCompletedEvent builds the event emitted after an export.
func NewExportCompletedEvent(fileName string, rowCount int, grandTotal float64) Event {
	return Event{
		ID:         uuid.NewString(),
		Kind:       KindExportCompleted,
		FileName:   fileName,
		RowCount:   rowCount,
		GrandTotal: grandTotal,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers events to one configured sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

// Logger is the minimal logging surface the publishers need.
// internal/logger.Logger satisfies it.
type Logger interface {
	DebugObj(msg, event string, fields map[string]any)
	InfoObj(msg, event string, fields map[string]any)
	WarnObj(msg, event string, fields map[string]any)
	ErrorObj(msg, event string, fields map[string]any)
}

type nopLogger struct{}

func (nopLogger) DebugObj(string, string, map[string]any) {}
func (nopLogger) InfoObj(string, string, map[string]any)  {}
func (nopLogger) WarnObj(string, string, map[string]any)  {}
func (nopLogger) ErrorObj(string, string, map[string]any) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return nopLogger{}
	}
	return log
}
