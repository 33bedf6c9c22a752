package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// generateServer answers every generateContent call with the given
// candidate text.
func generateServer(t *testing.T, candidate string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": candidate}}}},
			},
		})
	}))
}

func TestNewClientWithoutDoerFallsBack(t *testing.T) {
	client := NewClient(nil)

	if client.HTTP != http.DefaultClient {
		t.Fatal("nil doer should fall back to http.DefaultClient")
	}
}

func TestModerateParsesVerdict(t *testing.T) {
	server := generateServer(t, `{"isSafe": false, "reason": "toxic"}`)
	defer server.Close()

	client := &Client{HTTP: server.Client(), URL: server.URL}
	verdict, err := client.Moderate(context.Background(), "some text")
	if err != nil {
		t.Fatalf("Moderate: %v", err)
	}
	if verdict.IsSafe || verdict.Reason != "toxic" {
		t.Fatalf("verdict = %+v, want unsafe/toxic", verdict)
	}
}

func TestModerateRejectsUnparseableOutput(t *testing.T) {
	server := generateServer(t, "sorry, I cannot answer that")
	defer server.Close()

	client := &Client{HTTP: server.Client(), URL: server.URL}
	if _, err := client.Moderate(context.Background(), "some text"); err == nil {
		t.Fatal("expected an error for non-JSON output")
	}
}

func TestCaption(t *testing.T) {
	server := generateServer(t, "  Stay safe out there.  ")
	defer server.Close()

	client := &Client{HTTP: server.Client(), URL: server.URL}
	if got := client.Caption(context.Background(), "safety"); got != "Stay safe out there." {
		t.Fatalf("Caption = %q, want trimmed candidate", got)
	}
}

func TestCaptionFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := &Client{HTTP: server.Client(), URL: server.URL}
	if got := client.Caption(context.Background(), "safety"); got != CaptionFallback {
		t.Fatalf("Caption = %q, want %q", got, CaptionFallback)
	}
}
