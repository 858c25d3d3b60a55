package stats

import (
	"reflect"
	"testing"

	"github.com/daksh3010/newsdash/internal/domain"
)

func sample() []domain.Article {
	return []domain.Article{
		{Title: "a", Author: "Alice", SourceName: "The Guardian", Type: domain.TypeNews},
		{Title: "b", Author: "Bob", SourceName: "Dev.to", Type: domain.TypeBlog},
		{Title: "c", Author: "Alice", SourceName: "The Guardian", Type: domain.TypeNews},
		{Title: "d", SourceName: "Dev.to", Type: domain.TypeBlog},
	}
}

func TestByAuthor(t *testing.T) {
	got := ByAuthor(sample())
	want := []CountRow{
		{Label: "Alice", Count: 2},
		{Label: "Bob", Count: 1},
		{Label: domain.UnknownAuthor, Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ByAuthor() = %v, want %v", got, want)
	}
}

func TestBySource(t *testing.T) {
	got := BySource(sample())
	want := []CountRow{
		{Label: "The Guardian", Count: 2},
		{Label: "Dev.to", Count: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BySource() = %v, want %v", got, want)
	}
}

func TestCountsSumToTotal(t *testing.T) {
	in := sample()
	var sum int
	for _, row := range ByAuthor(in) {
		sum += row.Count
	}
	if sum != len(in) {
		t.Errorf("author counts sum to %d, want %d", sum, len(in))
	}
}

func TestAuthorsDistinctSorted(t *testing.T) {
	got := Authors(sample())
	want := []string{"Alice", "Bob"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Authors() = %v, want %v", got, want)
	}
}

func TestEmptyInput(t *testing.T) {
	if rows := ByAuthor(nil); len(rows) != 0 {
		t.Errorf("ByAuthor(nil) = %v, want empty", rows)
	}
	if rows := BySource(nil); len(rows) != 0 {
		t.Errorf("BySource(nil) = %v, want empty", rows)
	}
	if names := Authors(nil); len(names) != 0 {
		t.Errorf("Authors(nil) = %v, want empty", names)
	}
}
