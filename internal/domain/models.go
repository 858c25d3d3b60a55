package domain

import "time"

// Domain contains core models and interfaces.

// ArticleType distinguishes the two kinds of articles the dashboard handles.
type ArticleType string

const (
	TypeNews ArticleType = "News"
	TypeBlog ArticleType = "Blog"
)

// UnknownAuthor is substituted when a source omits the byline.
const UnknownAuthor = "Unknown"

// Article is the normalized representation of one news or blog item.
// SourceName and Type are set by the source adapter and never inferred
// downstream. An Article is immutable once created.
type Article struct {
	ID           string
	Title        string
	Author       string
	PublishedAt  time.Time
	PublishedRaw string
	SourceName   string
	URL          string
	Type         ArticleType
	Description  string
}

// HasPublishedAt reports whether the source timestamp was parseable.
// A zero PublishedAt means the raw value could not be interpreted.
func (a Article) HasPublishedAt() bool {
	return !a.PublishedAt.IsZero()
}

// AuthorSummaryRow is a derived payout line for one author. Rows are never
// stored; they are recomputed from a filtered view and a payout rate.
type AuthorSummaryRow struct {
	Author       string
	ArticleCount int
	PayoutRate   float64
	TotalPayout  float64
}
