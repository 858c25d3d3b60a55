package export

import (
	"fmt"
	"strings"

	"github.com/daksh3010/newsdash/internal/domain"
)

// CSV renders the filtered view as a comma-separated table with one row per
// article. The title field is wrapped in literal double quotes so embedded
// commas survive; embedded quote characters are NOT escaped. That matches
// the format consumers of these files already parse, so it is kept as a
// documented limitation rather than silently changed.
func CSV(view []domain.Article, rate float64) []byte {
	rows := make([]string, 0, len(view)+1)
	rows = append(rows, strings.Join(tableHeader[:], ","))

	for _, a := range view {
		rows = append(rows, strings.Join([]string{
			`"` + a.Title + `"`,
			authorOrUnknown(a),
			formatDate(a),
			fmt.Sprintf("%.2f", rate),
		}, ","))
	}

	return []byte(strings.Join(rows, "\n"))
}
