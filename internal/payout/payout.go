// Package payout computes per-author payout summaries and persists the
// payout rate.
package payout

import "github.com/daksh3010/newsdash/internal/domain"

// Summarize groups the filtered view by author in first-seen order and
// prices each group at the given rate. Pure and deterministic; the counts
// of all rows always sum to len(filtered).
func Summarize(filtered []domain.Article, rate float64) []domain.AuthorSummaryRow {
	counts := make(map[string]int, len(filtered))
	order := make([]string, 0, len(filtered))

	for _, a := range filtered {
		author := a.Author
		if author == "" {
			author = domain.UnknownAuthor
		}
		if _, seen := counts[author]; !seen {
			order = append(order, author)
		}
		counts[author]++
	}

	rows := make([]domain.AuthorSummaryRow, 0, len(order))
	for _, author := range order {
		count := counts[author]
		rows = append(rows, domain.AuthorSummaryRow{
			Author:       author,
			ArticleCount: count,
			PayoutRate:   rate,
			TotalPayout:  rate * float64(count),
		})
	}
	return rows
}

// GrandTotal prices the whole filtered view at the given rate.
func GrandTotal(filtered []domain.Article, rate float64) float64 {
	return rate * float64(len(filtered))
}
