package export

import (
	"strings"
	"testing"
	"time"

	"github.com/daksh3010/newsdash/internal/domain"
)

func TestCSV_HeaderAndRows(t *testing.T) {
	view := []domain.Article{
		{
			Title:       "Budget analysis",
			Author:      "Alice",
			PublishedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
		},
	}

	lines := strings.Split(string(CSV(view, 7.5)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != "Title,Author,Published Date,Payout ($)" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != `"Budget analysis",Alice,3/5/2024,7.50` {
		t.Errorf("row = %q", lines[1])
	}
}

func TestCSV_TitleWithCommaStaysQuoted(t *testing.T) {
	view := []domain.Article{
		{
			Title:       "Report, Q1",
			Author:      "Bob",
			PublishedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	out := string(CSV(view, 5))
	if !strings.Contains(out, `"Report, Q1"`) {
		t.Errorf("title with comma should be rendered quoted, got %q", out)
	}
}

func TestCSV_EmptyAuthorDefaultsToUnknown(t *testing.T) {
	view := []domain.Article{
		{Title: "Anonymous piece", PublishedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}

	out := string(CSV(view, 0))
	if !strings.Contains(out, ",Unknown,") {
		t.Errorf("empty author should render as Unknown, got %q", out)
	}
}

func TestCSV_UnparsableDateFallsBackToRaw(t *testing.T) {
	view := []domain.Article{
		{Title: "Odd date", Author: "Carol", PublishedRaw: "sometime-2024"},
	}

	out := string(CSV(view, 1))
	if !strings.Contains(out, ",sometime-2024,") {
		t.Errorf("unparsable date should fall back to the raw value, got %q", out)
	}
}

func TestCSV_EmptyView(t *testing.T) {
	out := string(CSV(nil, 5))
	if out != "Title,Author,Published Date,Payout ($)" {
		t.Errorf("empty view should render only the header, got %q", out)
	}
}

func TestCSV_RateFormattedToTwoDecimals(t *testing.T) {
	view := []domain.Article{
		{Title: "t", Author: "A", PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	out := string(CSV(view, 3))
	if !strings.HasSuffix(out, ",3.00") {
		t.Errorf("rate should render with two decimals, got %q", out)
	}
}
