// Package twitter posts shielded content to the remote X API.
// Remote posting is best-effort: callers never block a local commit
// on it.
package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/twitters/twitters/model"
)

const defaultEndpoint = "https://api.twitter.com"

// Doer sends HTTP requests; satisfied by *http.Client and by the
// zipkin traced client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client posts tweets on behalf of a linked account.
type Client struct {
	HTTP Doer
	URL  string
}

// NewClient reads the API location from the environment, falling
// back to the public endpoint.
func NewClient(doer Doer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}

	url := os.Getenv("TWITTER_URL")
	if url == "" {
		url = defaultEndpoint
	}

	return &Client{HTTP: doer, URL: url}
}

// Post sends text as a new tweet with the given bearer token.
// If no response in 5 seconds, cancel it.
func (c *Client) Post(ctx context.Context, text string, token string) (*model.Tweet, error) {
	payload, err := json.Marshal(struct {
		Text string `json:"text"`
	}{Text: text})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL+"/2/tweets", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	response, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusCreated && response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote post refused with status %v", response.StatusCode)
	}

	var tweet model.Tweet
	if err := json.NewDecoder(response.Body).Decode(&tweet); err != nil {
		return nil, err
	}

	return &tweet, nil
}
