package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/daksh3010/newsdash/internal/domain"
	"github.com/daksh3010/newsdash/pkg/httpclient"
)

const (
	devtoSourceID   = "devto"
	devtoSourceName = "Dev.to"
)

// DevtoConfig holds the settings for the Dev.to articles API source.
type DevtoConfig struct {
	BaseURL string
	PerPage int
}

// devtoSource is the blog adapter for the Dev.to articles API. The endpoint
// has no usable page cursor: every call returns the same batch of most
// recent articles, so the source reports SupportsPagination false and the
// aggregator fetches it exactly once per session.
type devtoSource struct {
	client httpclient.Client
	cfg    DevtoConfig
}

// NewDevtoSource builds the Dev.to blog source.
func NewDevtoSource(client httpclient.Client, cfg DevtoConfig) Source {
	if client == nil {
		client = DefaultHTTPClient()
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = 10
	}
	return &devtoSource{client: client, cfg: cfg}
}

func (s *devtoSource) ID() string               { return devtoSourceID }
func (s *devtoSource) Type() domain.ArticleType { return domain.TypeBlog }
func (s *devtoSource) SupportsPagination() bool { return false }

type devtoArticle struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
	Description string `json:"description"`
	User        struct {
		Name string `json:"name"`
	} `json:"user"`
}

// FetchPage requests the fixed batch of most recent Dev.to articles. The
// page argument is ignored; see SupportsPagination.
func (s *devtoSource) FetchPage(ctx context.Context, _ int) ([]domain.Article, error) {
	url := strings.TrimRight(s.cfg.BaseURL, "/") + "/api/articles?per_page=" + strconv.Itoa(s.cfg.PerPage)

	body, err := fetchBody(ctx, s.client, devtoSourceID, url)
	if err != nil {
		return nil, err
	}

	var decoded []devtoArticle
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, domain.NewMalformedError(devtoSourceID,
			fmt.Errorf("decode articles response: %w", err))
	}

	articles := make([]domain.Article, 0, len(decoded))
	for _, rec := range decoded {
		title := strings.TrimSpace(rec.Title)
		if title == "" {
			continue
		}

		author := strings.TrimSpace(rec.User.Name)
		if author == "" {
			author = domain.UnknownAuthor
		}

		articles = append(articles, domain.Article{
			ID:           hashURL(rec.URL),
			Title:        title,
			Author:       author,
			PublishedAt:  parsePublishedAt(rec.PublishedAt),
			PublishedRaw: rec.PublishedAt,
			SourceName:   devtoSourceName,
			URL:          rec.URL,
			Type:         domain.TypeBlog,
			Description:  strings.TrimSpace(rec.Description),
		})
	}
	return articles, nil
}
