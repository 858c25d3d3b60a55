// Package stats computes the author and source breakdowns backing the
// dashboard charts and the author selector. Counting only; rendering is
// someone else's job.
package stats

import (
	"sort"

	"github.com/daksh3010/newsdash/internal/domain"
)

// CountRow is one label with its article count.
type CountRow struct {
	Label string
	Count int
}

// ByAuthor counts articles per author in first-seen order.
func ByAuthor(articles []domain.Article) []CountRow {
	return countBy(articles, func(a domain.Article) string {
		if a.Author == "" {
			return domain.UnknownAuthor
		}
		return a.Author
	})
}

// BySource counts articles per source name in first-seen order.
func BySource(articles []domain.Article) []CountRow {
	return countBy(articles, func(a domain.Article) string {
		if a.SourceName == "" {
			return domain.UnknownAuthor
		}
		return a.SourceName
	})
}

// Authors returns the distinct authors present, sorted, for selector
// population.
func Authors(articles []domain.Article) []string {
	seen := make(map[string]struct{}, len(articles))
	out := make([]string, 0, len(articles))
	for _, a := range articles {
		if a.Author == "" {
			continue
		}
		if _, ok := seen[a.Author]; ok {
			continue
		}
		seen[a.Author] = struct{}{}
		out = append(out, a.Author)
	}
	sort.Strings(out)
	return out
}

func countBy(articles []domain.Article, key func(domain.Article) string) []CountRow {
	counts := make(map[string]int, len(articles))
	order := make([]string, 0, len(articles))

	for _, a := range articles {
		k := key(a)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	rows := make([]CountRow, 0, len(order))
	for _, k := range order {
		rows = append(rows, CountRow{Label: k, Count: counts[k]})
	}
	return rows
}
