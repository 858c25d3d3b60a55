package dashboard

import (
	"bytes"
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/daksh3010/newsdash/internal/aggregator"
	"github.com/daksh3010/newsdash/internal/domain"
	"github.com/daksh3010/newsdash/internal/filter"
	"github.com/daksh3010/newsdash/internal/payout"
	"github.com/daksh3010/newsdash/pkg/sources"
)

type stubSource struct {
	id    string
	typ   domain.ArticleType
	pages map[int][]domain.Article
}

func (s *stubSource) ID() string               { return s.id }
func (s *stubSource) Type() domain.ArticleType { return s.typ }
func (s *stubSource) SupportsPagination() bool { return true }

func (s *stubSource) FetchPage(_ context.Context, page int) ([]domain.Article, error) {
	return s.pages[page], nil
}

type recordingSink struct {
	fileName   string
	rowCount   int
	grandTotal float64
	calls      int
}

func (r *recordingSink) ExportCompleted(_ context.Context, fileName string, rowCount int, grandTotal float64) {
	r.fileName = fileName
	r.rowCount = rowCount
	r.grandTotal = grandTotal
	r.calls++
}

func newTestService(t *testing.T, sink ExportSink, pages map[int][]domain.Article) *Service {
	t.Helper()

	src := &stubSource{id: "stub", typ: domain.TypeNews, pages: pages}
	agg := aggregator.New(sources.NewRegistry(src), nil)

	rates, err := payout.OpenRateStore(filepath.Join(t.TempDir(), "rates.db"))
	if err != nil {
		t.Fatalf("open rate store: %v", err)
	}
	t.Cleanup(func() { rates.Close() })

	return New(agg, rates, sink, nil)
}

func testPages() map[int][]domain.Article {
	return map[int][]domain.Article{
		1: {
			{ID: "1", Title: "Go release notes", Author: "Alice", SourceName: "The Guardian", Type: domain.TypeNews, PublishedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "2", Title: "Rust in production", Author: "Bob", SourceName: "The Guardian", Type: domain.TypeNews, PublishedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		},
		2: {
			{ID: "3", Title: "Go profiling tips", Author: "Alice", SourceName: "The Guardian", Type: domain.TypeNews, PublishedAt: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestService_LoadAndFilter(t *testing.T) {
	svc := newTestService(t, nil, testPages())
	ctx := context.Background()

	if err := svc.LoadNext(ctx); err != nil {
		t.Fatalf("LoadNext() error = %v", err)
	}
	if got := len(svc.FilteredView()); got != 2 {
		t.Fatalf("view size after first load = %d, want 2", got)
	}

	svc.SetCriteria(filter.Criteria{Keyword: "go"})
	view := svc.FilteredView()
	if len(view) != 1 || view[0].ID != "1" {
		t.Errorf("keyword view = %v, want only article 1", view)
	}

	if err := svc.LoadNext(ctx); err != nil {
		t.Fatalf("LoadNext() error = %v", err)
	}
	// Criteria survive a load; the view grows with matching articles.
	view = svc.FilteredView()
	if len(view) != 2 {
		t.Errorf("keyword view after second load has %d articles, want 2", len(view))
	}
}

func TestService_SummaryAndGrandTotal(t *testing.T) {
	svc := newTestService(t, nil, testPages())
	ctx := context.Background()
	if err := svc.LoadNext(ctx); err != nil {
		t.Fatal(err)
	}

	if err := svc.SetRate(10); err != nil {
		t.Fatalf("SetRate() error = %v", err)
	}

	rows, err := svc.Summary()
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	want := []domain.AuthorSummaryRow{
		{Author: "Alice", ArticleCount: 1, PayoutRate: 10, TotalPayout: 10},
		{Author: "Bob", ArticleCount: 1, PayoutRate: 10, TotalPayout: 10},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Summary() = %v, want %v", rows, want)
	}

	total, err := svc.GrandTotal()
	if err != nil {
		t.Fatalf("GrandTotal() error = %v", err)
	}
	if total != 20 {
		t.Errorf("GrandTotal() = %v, want 20", total)
	}
}

func TestService_RateDefaultsToZero(t *testing.T) {
	svc := newTestService(t, nil, testPages())

	rate, err := svc.Rate()
	if err != nil {
		t.Fatalf("Rate() error = %v", err)
	}
	if rate != 0 {
		t.Errorf("Rate() = %v, want 0", rate)
	}
}

func TestService_ExportCSVNotifiesSink(t *testing.T) {
	sink := &recordingSink{}
	svc := newTestService(t, sink, testPages())
	ctx := context.Background()
	if err := svc.LoadNext(ctx); err != nil {
		t.Fatal(err)
	}
	if err := svc.SetRate(5); err != nil {
		t.Fatal(err)
	}

	data, err := svc.ExportCSV(ctx)
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "Title,Author,Published Date,Payout ($)") {
		t.Errorf("CSV output missing header: %q", data)
	}

	if sink.calls != 1 {
		t.Fatalf("sink calls = %d, want 1", sink.calls)
	}
	if sink.fileName != "articles_payout_summary.csv" {
		t.Errorf("sink fileName = %q", sink.fileName)
	}
	if sink.rowCount != 2 || sink.grandTotal != 10 {
		t.Errorf("sink got rows=%d total=%v, want 2 and 10", sink.rowCount, sink.grandTotal)
	}
}

func TestService_ExportPDF(t *testing.T) {
	sink := &recordingSink{}
	svc := newTestService(t, sink, testPages())
	ctx := context.Background()
	if err := svc.LoadNext(ctx); err != nil {
		t.Fatal(err)
	}

	data, err := svc.ExportPDF(ctx)
	if err != nil {
		t.Fatalf("ExportPDF() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("PDF output missing marker")
	}
	if sink.fileName != "articles_payout_summary.pdf" {
		t.Errorf("sink fileName = %q", sink.fileName)
	}
}

func TestService_AuthorsIgnoreCriteria(t *testing.T) {
	svc := newTestService(t, nil, testPages())
	if err := svc.LoadNext(context.Background()); err != nil {
		t.Fatal(err)
	}

	svc.SetCriteria(filter.Criteria{Author: "Alice"})
	got := svc.Authors()
	want := []string{"Alice", "Bob"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Authors() = %v, want %v (selector lists the full accumulated set)", got, want)
	}

	breakdown := svc.AuthorBreakdown()
	if len(breakdown) != 1 || breakdown[0].Label != "Alice" {
		t.Errorf("AuthorBreakdown() = %v, want only Alice", breakdown)
	}
}
