package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Sink delivers one submission payload.
type Sink interface {
	Submit(ctx context.Context, p Payload) error
}

// WebhookSink posts payloads as JSON to a fixed HTTP endpoint.
type WebhookSink struct {
	url    string
	client *http.Client
}

// NewWebhookSink creates a sink posting to url. An empty url yields a
// sink whose Submit always returns ErrNoEndpoint.
func NewWebhookSink(url string) *WebhookSink {
	return &WebhookSink{
		url: url,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Endpoint returns the configured webhook URL.
func (s *WebhookSink) Endpoint() string {
	return s.url
}

func (s *WebhookSink) Submit(ctx context.Context, p Payload) error {
	if s.url == "" {
		return ErrNoEndpoint
	}

	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post submission: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ErrStatus{Code: resp.StatusCode}
	}
	return nil
}
