package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/idtoken"
)

// DialPoster posts one outbound-call payload to the dial webhook.
type DialPoster interface {
	Post(ctx context.Context, payload any) error
}

// DialWebhook posts JSON payloads to the configured dial endpoint.
type DialWebhook struct {
	client *http.Client
	url    string
}

// NewDialWebhook builds a dial webhook client, auto-configuring an ID token
// client when the endpoint requires one.
func NewDialWebhook(client *http.Client, webhookURL string) *DialWebhook {
	webhookURL = strings.TrimRight(webhookURL, "/")
	if client == nil {
		idc, err := idtoken.NewClient(context.Background(), webhookURL)
		if err != nil {
			client = &http.Client{Timeout: 10 * time.Second}
		} else {
			client = idc
		}
	}
	return &DialWebhook{client: client, url: webhookURL}
}

// Post sends one payload. Any non-2xx response is an error.
func (w *DialWebhook) Post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal dial payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build dial request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("dial webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("dial webhook HTTP %d: %s", resp.StatusCode, string(msg))
	}
	return nil
}

var _ DialPoster = (*DialWebhook)(nil)
