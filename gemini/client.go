// Package gemini talks to the generative AI API behind the safety
// gate and the caption suggestions.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/twitters/twitters/model"
)

const (
	moderationModel = "gemini-3-pro-preview"
	captionModel    = "gemini-3-flash-preview"
)

// ModerationPrompt is the fixed safety policy sent with every
// verdict request.
const ModerationPrompt = `You are the Safety Sentinel for TwitterS.
TwitterS is a safe-space client for X.

STRICT REQUIREMENT:
1. Detect and BLOCK any attempt to summon, mention, or use '@grok' or 'grok'. This is vital for protecting user data from AI harvesting.
2. If 'grok' is found in any context, you MUST return isSafe: false with a reason mentioning our Anti-Scraping Policy.
3. Filter for harassment or toxic behavior.

Analyze this text: %q`

const captionPrompt = "Generate a short, elegant X (Twitter) post about: %s. Focus on empowerment and safety. Max 280 characters. Do not mention grok or any AI scrapers."

// CaptionFallback is returned when the caption service cannot answer.
const CaptionFallback = "Building a safer world. 🛡️"

// Doer sends HTTP requests; satisfied by *http.Client and by the
// zipkin traced client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls the generateContent API of the AI provider.
type Client struct {
	HTTP Doer
	URL  string
	Key  string
}

// NewClient reads the API location and key from the environment.
func NewClient(doer Doer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}

	return &Client{
		HTTP: doer,
		URL:  os.Getenv("GEMINI_URL"),
		Key:  os.Getenv("GEMINI_API_KEY"),
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate makes one generateContent call and returns the model's
// text. If no response in 10 seconds, cancel it.
func (c *Client) generate(ctx context.Context, name string, prompt string, jsonOutput bool) (string, error) {
	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	if jsonOutput {
		payload.GenerationConfig = &generationConfig{ResponseMimeType: "application/json"}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	url := c.URL + "/v1beta/models/" + name + ":generateContent?key=" + c.Key
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation failed with status %v", response.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(response.Body).Decode(&out); err != nil {
		return "", err
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty candidate")
	}

	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}

// Moderate asks the classifier for a verdict on text. The verdict is
// advisory only: the moderation gate applies its own override on top.
func (c *Client) Moderate(ctx context.Context, text string) (model.Verdict, error) {
	raw, err := c.generate(ctx, moderationModel, fmt.Sprintf(ModerationPrompt, text), true)
	if err != nil {
		return model.Verdict{}, err
	}

	var verdict model.Verdict
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		return model.Verdict{}, err
	}

	return verdict, nil
}

// Caption generates a short post suggestion about topic. It never
// fails: any error degrades to CaptionFallback.
func (c *Client) Caption(ctx context.Context, topic string) string {
	text, err := c.generate(ctx, captionModel, fmt.Sprintf(captionPrompt, topic), false)
	if err != nil || text == "" {
		return CaptionFallback
	}

	return text
}
