package sources

import (
	"context"
	"crypto/sha1" //nolint:gosec // non-cryptographic id generation
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/daksh3010/newsdash/internal/domain"
	"github.com/daksh3010/newsdash/pkg/httpclient"
)

// hashURL generates a SHA-1 hash of the given URL string.
func hashURL(u string) string {
	sum := sha1.Sum([]byte(u))
	return hex.EncodeToString(sum[:])
}

// responseSnippet returns a truncated snippet of the response body for
// error messages and logging.
func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

// publishedAtLayouts are tried in order when normalizing source timestamps.
var publishedAtLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02",
}

// parsePublishedAt attempts to parse a source timestamp. A zero time is
// returned when no layout matches; downstream filters treat that as
// "date unknown" rather than an error.
func parsePublishedAt(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}

	for _, layout := range publishedAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// fetchBody retrieves the response body for the given URL, classifying
// transport failures and non-200 statuses as network fetch errors.
func fetchBody(ctx context.Context, client httpclient.Client, sourceID, url string) ([]byte, error) {
	resp, err := client.Get(ctx, url, nil)
	if err != nil {
		return nil, domain.NewNetworkError(sourceID, err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return nil, domain.NewNetworkError(sourceID,
			statusError{status: resp.StatusCode(), snippet: responseSnippet(body)})
	}
	return body, nil
}

type statusError struct {
	status  int
	snippet string
}

func (e statusError) Error() string {
	return fmt.Sprintf("status %d body: %s", e.status, e.snippet)
}
