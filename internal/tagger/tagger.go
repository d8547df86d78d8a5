package tagger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client calls an external part-of-speech tagging service:
// POST {url}/tag {"tokens": [...]} -> {"tags": [...]}.
type Client struct {
	url    string
	client *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:    strings.TrimRight(url, "/"),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type tagRequest struct {
	Tokens []string `json:"tokens"`
}

type tagResponse struct {
	Tags []string `json:"tags"`
}

// Tag returns one Penn Treebank tag per word.
func (c *Client) Tag(ctx context.Context, words []string) ([]string, error) {
	body, err := json.Marshal(tagRequest{Tokens: words})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/tag", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tagger call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tagger error %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out tagResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Tags) != len(words) {
		return nil, fmt.Errorf("tagger returned %d tags for %d words", len(out.Tags), len(words))
	}
	return out.Tags, nil
}
