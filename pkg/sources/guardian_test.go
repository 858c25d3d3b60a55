package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/daksh3010/newsdash/internal/domain"
	"github.com/daksh3010/newsdash/pkg/httpclient"
)

const guardianPayload = `{
  "response": {
    "results": [
      {
        "webTitle": "Markets rally on rate cut hopes",
        "webUrl": "https://www.theguardian.com/business/rally",
        "webPublicationDate": "2024-03-01T09:30:00Z",
        "fields": {"byline": "Jane Smith"}
      },
      {
        "webTitle": "Science briefing",
        "webUrl": "https://www.theguardian.com/science/briefing",
        "webPublicationDate": "2024-03-02T08:00:00Z",
        "fields": {}
      },
      {
        "webTitle": "",
        "webUrl": "https://www.theguardian.com/broken",
        "webPublicationDate": "2024-03-03T08:00:00Z"
      }
    ]
  }
}`

func testClient() httpclient.Client {
	return httpclient.NewRestyClient(0)
}

func TestGuardianSource_FetchPage(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, guardianPayload)
	}))
	defer server.Close()

	src := NewGuardianSource(testClient(), GuardianConfig{
		BaseURL:  server.URL,
		APIKey:   "test-key",
		PageSize: 10,
	})

	articles, err := src.FetchPage(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := gotQuery["api-key"]; len(got) != 1 || got[0] != "test-key" {
		t.Errorf("api-key query = %v, want [test-key]", got)
	}
	if got := gotQuery["page"]; len(got) != 1 || got[0] != "3" {
		t.Errorf("page query = %v, want [3]", got)
	}
	if got := gotQuery["page-size"]; len(got) != 1 || got[0] != "10" {
		t.Errorf("page-size query = %v, want [10]", got)
	}
	if got := gotQuery["show-fields"]; len(got) != 1 || got[0] != guardianShowFields {
		t.Errorf("show-fields query = %v, want [%s]", got, guardianShowFields)
	}

	// The record without a title is rejected, not propagated half-formed.
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.Title != "Markets rally on rate cut hopes" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Author != "Jane Smith" {
		t.Errorf("author = %q, want Jane Smith", first.Author)
	}
	if first.SourceName != "The Guardian" {
		t.Errorf("source name = %q, want The Guardian", first.SourceName)
	}
	if first.Type != domain.TypeNews {
		t.Errorf("type = %q, want News", first.Type)
	}
	if !first.HasPublishedAt() {
		t.Error("published date should have parsed")
	}
	if first.ID == "" {
		t.Error("id should be derived from the URL")
	}

	if articles[1].Author != domain.UnknownAuthor {
		t.Errorf("missing byline should default to %q, got %q", domain.UnknownAuthor, articles[1].Author)
	}
}

func TestGuardianSource_SupportsPagination(t *testing.T) {
	src := NewGuardianSource(testClient(), GuardianConfig{BaseURL: "http://example.com"})
	if !src.SupportsPagination() {
		t.Error("guardian source should support pagination")
	}
	if src.Type() != domain.TypeNews {
		t.Errorf("type = %q, want News", src.Type())
	}
}

func TestGuardianSource_ServerErrorIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	src := NewGuardianSource(testClient(), GuardianConfig{BaseURL: server.URL})

	_, err := src.FetchPage(context.Background(), 1)
	var fetchErr *domain.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *domain.FetchError, got %v", err)
	}
	if fetchErr.Kind != domain.FetchErrNetwork {
		t.Errorf("kind = %q, want network", fetchErr.Kind)
	}
}

func TestGuardianSource_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	}))
	defer server.Close()

	src := NewGuardianSource(testClient(), GuardianConfig{BaseURL: server.URL})

	_, err := src.FetchPage(context.Background(), 1)
	var fetchErr *domain.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *domain.FetchError, got %v", err)
	}
	if fetchErr.Kind != domain.FetchErrMalformed {
		t.Errorf("kind = %q, want malformed", fetchErr.Kind)
	}
}

func TestGuardianSource_UnreachableHost(t *testing.T) {
	src := NewGuardianSource(testClient(), GuardianConfig{BaseURL: "http://127.0.0.1:1"})

	_, err := src.FetchPage(context.Background(), 1)
	var fetchErr *domain.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *domain.FetchError, got %v", err)
	}
	if fetchErr.Kind != domain.FetchErrNetwork {
		t.Errorf("kind = %q, want network", fetchErr.Kind)
	}
}
