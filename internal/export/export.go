// Package export serializes a filtered view into durable formats. Both
// serializers are pure transforms over an immutable snapshot: on error no
// partial output is returned.
package export

import "github.com/daksh3010/newsdash/internal/domain"

// Default file names for the two export formats.
const (
	CSVFileName = "articles_payout_summary.csv"
	PDFFileName = "articles_payout_summary.pdf"
)

// tableHeader is shared by both formats.
var tableHeader = [4]string{"Title", "Author", "Published Date", "Payout ($)"}

// formatDate renders the published date the way the dashboard displays it.
// Articles whose timestamp never parsed fall back to the raw source value
// so the information stays visible instead of being dropped.
func formatDate(a domain.Article) string {
	if !a.HasPublishedAt() {
		return a.PublishedRaw
	}
	return a.PublishedAt.Format("1/2/2006")
}

// authorOrUnknown guards against empty authors reaching an export row.
func authorOrUnknown(a domain.Article) string {
	if a.Author == "" {
		return domain.UnknownAuthor
	}
	return a.Author
}
