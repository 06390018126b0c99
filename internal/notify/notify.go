// Package notify sends one-way webhook alerts when a category is added.
// Delivery is best-effort: a missing config or a failed POST is logged
// and never surfaces to the operation that triggered it.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// webhookConfig is the adjacent JSON config file shape.
type webhookConfig struct {
	WebhookURL string `json:"webhook_url"`
}

// Webhook posts a short text message to a Slack-style incoming webhook.
// A zero URL makes every call a silent no-op.
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook reads the webhook URL from the JSON config file at path.
// An absent file or empty URL disables notifications without error.
func NewWebhook(path string) *Webhook {
	w := &Webhook{client: &http.Client{Timeout: 5 * time.Second}}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Info("notifications disabled, no webhook config", "path", path)
		return w
	}
	var cfg webhookConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		slog.Warn("notifications disabled, bad webhook config", "path", path, "error", err)
		return w
	}
	w.url = cfg.WebhookURL
	return w
}

// NewWebhookURL returns a Webhook posting directly to url. Used by tests.
func NewWebhookURL(url string) *Webhook {
	return &Webhook{url: url, client: &http.Client{Timeout: 5 * time.Second}}
}

// Enabled reports whether a webhook URL is configured.
func (w *Webhook) Enabled() bool { return w.url != "" }

// CategoryAdded announces a newly added category. Failures are logged at
// warn and swallowed; the add that triggered the alert already succeeded.
func (w *Webhook) CategoryAdded(ctx context.Context, siteName, category string) error {
	if w.url == "" {
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"text": fmt.Sprintf("New sport category %q added on %s", category, siteName),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		slog.Warn("webhook delivery failed", "error", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		slog.Warn("webhook delivery rejected", "status", resp.StatusCode)
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}
	return nil
}
