// Package filter derives views from the accumulated article set.
package filter

import (
	"strings"
	"time"

	"github.com/daksh3010/newsdash/internal/domain"
)

// All bypasses the author and type criteria.
const All = "all"

// Criteria is the composable predicate set narrowing the accumulated set to
// a view. The zero value with Author and Type set to All matches
// everything. Criteria is a pure value: applying it has no side effects and
// the same inputs always produce the same view.
type Criteria struct {
	Keyword string
	Author  string
	Type    string
	Start   *time.Time
	End     *time.Time
}

// Default returns criteria that match every article.
func Default() Criteria {
	return Criteria{Author: All, Type: All}
}

// Apply recomputes the filtered view from a snapshot of the accumulated
// set. All active criteria are AND-combined; an absent criterion is a
// no-op. The input is never mutated.
//
// Articles whose published timestamp could not be parsed are excluded by
// any active date bound but pass through when no bound is set.
func Apply(set []domain.Article, c Criteria) []domain.Article {
	keyword := strings.ToLower(strings.TrimSpace(c.Keyword))

	out := make([]domain.Article, 0, len(set))
	for _, a := range set {
		if keyword != "" && !strings.Contains(strings.ToLower(a.Title), keyword) {
			continue
		}
		if !bypassed(c.Author) && a.Author != c.Author {
			continue
		}
		if !bypassed(c.Type) && string(a.Type) != c.Type {
			continue
		}
		if !matchesDateRange(a, c.Start, c.End) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func bypassed(criterion string) bool {
	return criterion == "" || strings.EqualFold(criterion, All)
}

// matchesDateRange checks the inclusive date bounds. Each bound is
// independently optional.
func matchesDateRange(a domain.Article, start, end *time.Time) bool {
	if start == nil && end == nil {
		return true
	}
	if !a.HasPublishedAt() {
		return false
	}
	if start != nil && a.PublishedAt.Before(*start) {
		return false
	}
	if end != nil && a.PublishedAt.After(*end) {
		return false
	}
	return true
}
