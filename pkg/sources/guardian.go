package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/daksh3010/newsdash/internal/domain"
	"github.com/daksh3010/newsdash/pkg/httpclient"
)

const (
	guardianSourceID   = "guardian"
	guardianSourceName = "The Guardian"
	guardianShowFields = "byline,headline,short-url,publication"
)

// GuardianConfig holds the settings for the Guardian content API source.
type GuardianConfig struct {
	BaseURL  string
	APIKey   string
	PageSize int
}

// guardianSource is the paginated news adapter for the Guardian content API.
type guardianSource struct {
	client httpclient.Client
	cfg    GuardianConfig
}

// NewGuardianSource builds the Guardian news source.
func NewGuardianSource(client httpclient.Client, cfg GuardianConfig) Source {
	if client == nil {
		client = DefaultHTTPClient()
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	return &guardianSource{client: client, cfg: cfg}
}

func (s *guardianSource) ID() string               { return guardianSourceID }
func (s *guardianSource) Type() domain.ArticleType { return domain.TypeNews }
func (s *guardianSource) SupportsPagination() bool { return true }

// guardianResponse mirrors the envelope of the Guardian search endpoint.
type guardianResponse struct {
	Response struct {
		Results []guardianResult `json:"results"`
	} `json:"response"`
}

type guardianResult struct {
	WebTitle           string `json:"webTitle"`
	WebURL             string `json:"webUrl"`
	WebPublicationDate string `json:"webPublicationDate"`
	Fields             struct {
		Byline string `json:"byline"`
	} `json:"fields"`
}

// FetchPage requests one page from the Guardian search endpoint and maps
// the results into normalized articles. Records without a title are
// rejected rather than propagated half-formed.
func (s *guardianSource) FetchPage(ctx context.Context, page int) ([]domain.Article, error) {
	body, err := fetchBody(ctx, s.client, guardianSourceID, s.searchURL(page))
	if err != nil {
		return nil, err
	}

	var decoded guardianResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, domain.NewMalformedError(guardianSourceID,
			fmt.Errorf("decode search response: %w", err))
	}

	articles := make([]domain.Article, 0, len(decoded.Response.Results))
	for _, rec := range decoded.Response.Results {
		title := strings.TrimSpace(rec.WebTitle)
		if title == "" {
			continue
		}

		author := strings.TrimSpace(rec.Fields.Byline)
		if author == "" {
			author = domain.UnknownAuthor
		}

		articles = append(articles, domain.Article{
			ID:           hashURL(rec.WebURL),
			Title:        title,
			Author:       author,
			PublishedAt:  parsePublishedAt(rec.WebPublicationDate),
			PublishedRaw: rec.WebPublicationDate,
			SourceName:   guardianSourceName,
			URL:          rec.WebURL,
			Type:         domain.TypeNews,
		})
	}
	return articles, nil
}

func (s *guardianSource) searchURL(page int) string {
	q := url.Values{}
	q.Set("api-key", s.cfg.APIKey)
	q.Set("page", strconv.Itoa(page))
	q.Set("page-size", strconv.Itoa(s.cfg.PageSize))
	q.Set("show-fields", guardianShowFields)
	return strings.TrimRight(s.cfg.BaseURL, "/") + "/search?" + q.Encode()
}
