package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCategoryAdded_PostsPayload(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	wh := NewWebhookURL(srv.URL)
	if err := wh.CategoryAdded(context.Background(), "Alpha Streams", "Tennis"); err != nil {
		t.Fatalf("CategoryAdded() error = %v", err)
	}

	var payload map[string]string
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("payload not JSON: %v", err)
	}
	if !strings.Contains(payload["text"], "Tennis") || !strings.Contains(payload["text"], "Alpha Streams") {
		t.Errorf("payload text = %q", payload["text"])
	}
}

func TestCategoryAdded_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	wh := NewWebhookURL(srv.URL)
	if err := wh.CategoryAdded(context.Background(), "Alpha", "Tennis"); err == nil {
		t.Error("expected error on 502 response")
	}
}

func TestDisabledWebhookIsNoop(t *testing.T) {
	wh := NewWebhook(filepath.Join(t.TempDir(), "missing.json"))
	if wh.Enabled() {
		t.Error("webhook enabled without config")
	}
	if err := wh.CategoryAdded(context.Background(), "Alpha", "Tennis"); err != nil {
		t.Errorf("disabled webhook returned error: %v", err)
	}
}

func TestNewWebhook_ReadsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slack.json")
	if err := os.WriteFile(path, []byte(`{"webhook_url":"https://hooks.example.com/T/B"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	wh := NewWebhook(path)
	if !wh.Enabled() {
		t.Error("webhook not enabled from config")
	}
}

func TestNewWebhook_BadConfigDisables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slack.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if wh := NewWebhook(path); wh.Enabled() {
		t.Error("webhook enabled from unparsable config")
	}
}
