package publishers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/daksh3010/newsdash/pkg/httpclient"
)

// httpPublisher posts events to a generic webhook.
type httpPublisher struct {
	id     string
	cfg    HTTPPublisherConfig
	client httpclient.Client
	log    Logger
}

// newHTTPPublisher builds a webhook publisher from config.
func newHTTPPublisher(_ context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("publisher %q missing http configuration", cfg.ID)
	}

	timeout := time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second
	return &httpPublisher{
		id:     cfg.ID,
		cfg:    *cfg.HTTP,
		client: httpclient.NewRestyClient(timeout),
		log:    ensureLogger(log),
	}, nil
}

func (p *httpPublisher) ID() string   { return p.id }
func (p *httpPublisher) Type() string { return TypeHTTP }

// Publish posts the JSON-encoded event to the configured URL. Any method
// other than POST is rejected at publish time; the sanitizer already
// defaults empty methods to POST.
func (p *httpPublisher) Publish(ctx context.Context, evt Event) error {
	if p.cfg.Method != http.MethodPost {
		return fmt.Errorf("http publisher %s supports POST only, got %s", p.id, p.cfg.Method)
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	headers := map[string]string{"Content-Type": "application/json"}
	for k, v := range p.cfg.Headers {
		headers[k] = v
	}

	resp, err := p.client.Post(ctx, p.cfg.URL, headers, payload)
	if err != nil {
		p.log.ErrorObj("http publisher send failed", "publisher_http_error", map[string]any{
			"publisher_id": p.id,
			"error":        err.Error(),
		})
		return fmt.Errorf("post event to %s: %w", p.cfg.URL, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return fmt.Errorf("http publisher %s returned status %d", p.id, resp.StatusCode())
	}

	p.log.DebugObj("http publisher delivered event", "publisher_http_delivery", map[string]any{
		"publisher_id": p.id,
		"event_kind":   evt.Kind,
	})
	return nil
}
