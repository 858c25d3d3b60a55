package payout

import (
	"reflect"
	"testing"

	"github.com/daksh3010/newsdash/internal/domain"
)

func byAuthors(authors ...string) []domain.Article {
	out := make([]domain.Article, 0, len(authors))
	for _, a := range authors {
		out = append(out, domain.Article{Title: "t", Author: a})
	}
	return out
}

func TestSummarize(t *testing.T) {
	rows := Summarize(byAuthors("Alice", "Alice", "Bob"), 5)

	want := []domain.AuthorSummaryRow{
		{Author: "Alice", ArticleCount: 2, PayoutRate: 5, TotalPayout: 10},
		{Author: "Bob", ArticleCount: 1, PayoutRate: 5, TotalPayout: 5},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Summarize = %+v, want %+v", rows, want)
	}
}

func TestSummarize_CountsSumToViewSize(t *testing.T) {
	views := [][]domain.Article{
		nil,
		byAuthors("Alice"),
		byAuthors("Alice", "Bob", "Alice", "Carol", "Bob"),
		byAuthors("", "", "Dave"),
	}
	for _, view := range views {
		sum := 0
		for _, row := range Summarize(view, 3) {
			sum += row.ArticleCount
		}
		if sum != len(view) {
			t.Errorf("row counts sum to %d, want %d", sum, len(view))
		}
	}
}

func TestSummarize_FirstSeenOrder(t *testing.T) {
	rows := Summarize(byAuthors("Carol", "Alice", "Carol", "Bob"), 1)

	got := make([]string, 0, len(rows))
	for _, row := range rows {
		got = append(got, row.Author)
	}
	want := []string{"Carol", "Alice", "Bob"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("author order = %v, want %v", got, want)
	}
}

func TestSummarize_EmptyAuthorGroupedAsUnknown(t *testing.T) {
	rows := Summarize(byAuthors("", ""), 2)
	if len(rows) != 1 || rows[0].Author != domain.UnknownAuthor {
		t.Errorf("empty authors should group under %q, got %+v", domain.UnknownAuthor, rows)
	}
	if rows[0].ArticleCount != 2 || rows[0].TotalPayout != 4 {
		t.Errorf("unexpected row %+v", rows[0])
	}
}

func TestGrandTotal(t *testing.T) {
	tests := []struct {
		name string
		n    int
		rate float64
		want float64
	}{
		{"empty view", 0, 5, 0},
		{"zero rate", 3, 0, 0},
		{"three at five", 3, 5, 15},
		{"fractional rate", 4, 2.5, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := make([]domain.Article, tt.n)
			if got := GrandTotal(view, tt.rate); got != tt.want {
				t.Errorf("GrandTotal(%d articles, %v) = %v, want %v", tt.n, tt.rate, got, tt.want)
			}
		})
	}
}
