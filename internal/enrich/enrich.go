// Package enrich recovers article metadata the source APIs omit by
// scraping the article pages themselves. Its main job is byline recovery:
// payout attribution is only as good as the author field, and the news API
// frequently leaves the byline empty.
package enrich

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/daksh3010/newsdash/internal/domain"
	"github.com/daksh3010/newsdash/internal/logger"
	"github.com/daksh3010/newsdash/pkg/httpclient"
)

const (
	maxHTMLBodyBytes  = 1 << 20 // 1 MiB
	maxArticleWorkers = 10
)

// Enricher fills missing Author and Description fields by scraping
// article HTML pages.
type Enricher struct {
	client httpclient.Client
	delay  time.Duration
	log    logger.Logger
}

// New creates an Enricher. A positive delay rate-limits page fetches.
func New(client httpclient.Client, delay time.Duration, log logger.Logger) *Enricher {
	if client == nil {
		client = httpclient.NewRestyClient(15 * time.Second)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Enricher{client: client, delay: delay, log: log}
}

// Enrich returns a copy of the articles with recovered metadata where the
// scrape succeeded. Articles that already carry an author and description
// are left untouched and never fetched. Partial results are returned on
// cancel.
func (e *Enricher) Enrich(ctx context.Context, articles []domain.Article) []domain.Article {
	out := make([]domain.Article, len(articles))
	copy(out, articles)

	var candidates []int
	for i, a := range articles {
		if needsEnrichment(a) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return out
	}

	var limiter <-chan time.Time
	if e.delay > 0 {
		ticker := time.NewTicker(e.delay)
		limiter = ticker.C
		defer ticker.Stop()
	}

	workerCount := min(len(candidates), maxArticleWorkers)
	jobCh := make(chan int)
	var wg sync.WaitGroup

	for workerID := range workerCount {
		wg.Add(1)
		go e.articleWorker(ctx, limiter, jobCh, out, &wg, workerID)
	}

	for _, idx := range candidates {
		if ctx.Err() != nil {
			break
		}
		jobCh <- idx
	}
	close(jobCh)

	wg.Wait()

	return out
}

func needsEnrichment(a domain.Article) bool {
	return a.Author == domain.UnknownAuthor || a.Description == ""
}

// articleWorker processes article indices from the job channel, respecting
// the rate limiter.
func (e *Enricher) articleWorker(
	ctx context.Context,
	limiter <-chan time.Time,
	jobCh <-chan int,
	out []domain.Article,
	wg *sync.WaitGroup,
	workerID int,
) {
	defer wg.Done()

	for idx := range jobCh {
		if ctx.Err() != nil {
			return
		}

		if limiter != nil {
			select {
			case <-ctx.Done():
				return
			case <-limiter:
			}
		}

		art := out[idx]
		enriched, err := e.fetchAndParse(ctx, art, workerID)
		if err != nil {
			e.log.WarnObj("article metadata scrape failed", "metadata_error", map[string]any{
				"worker_id": workerID,
				"url":       art.URL,
				"error":     err.Error(),
			})
			continue
		}
		out[idx] = enriched
	}
}

// fetchAndParse fetches the article HTML and merges recovered metadata
// into the article.
func (e *Enricher) fetchAndParse(ctx context.Context, art domain.Article, workerID int) (domain.Article, error) {
	e.log.DebugObj("scraping article metadata", "scrape_start", map[string]any{
		"worker_id": workerID,
		"url":       art.URL,
	})

	resp, err := e.client.Get(ctx, art.URL, nil)
	if err != nil {
		return art, fmt.Errorf("http fetch: %w", err)
	}

	if resp.StatusCode() != 200 {
		snippet := strings.TrimSpace(string(resp.Body()))
		if len(snippet) > 1024 {
			snippet = snippet[:1024]
		}
		return art, fmt.Errorf("status %d body: %s", resp.StatusCode(), snippet)
	}

	body := resp.Body()
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	meta, err := parseMeta(body)
	if err != nil {
		return art, err
	}

	updated := art
	if updated.Author == domain.UnknownAuthor && meta.Author != "" {
		updated.Author = meta.Author
	}
	if updated.Description == "" && meta.Description != "" {
		updated.Description = meta.Description
	}
	return updated, nil
}

// pageMeta holds metadata extracted from an HTML page.
type pageMeta struct {
	Author      string
	Description string
}

// parseMeta extracts author and description metadata from the HTML body.
func parseMeta(body []byte) (pageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return pageMeta{}, fmt.Errorf("parse html: %w", err)
	}

	extract := func(sel string) string {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if val, ok := node.Attr("content"); ok {
				return strings.TrimSpace(val)
			}
		}
		return ""
	}

	pm := pageMeta{}
	pm.Author = firstNonEmpty(
		extract(`meta[name="author"]`),
		extract(`meta[property="article:author"]`),
	)
	pm.Description = firstNonEmpty(
		extract(`meta[property="og:description"]`),
		extract(`meta[name="description"]`),
	)
	return pm, nil
}

// firstNonEmpty returns the first non-empty string from the given values.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
