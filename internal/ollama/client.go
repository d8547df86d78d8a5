package ollama

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

// Client talks to a local Ollama server.
type Client struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewClient(baseURL, model string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Model returns the model name requests are sent to.
func (c *Client) Model() string {
	return c.model
}

type options struct {
	Temperature float64  `json:"temperature"`
	TopP        float64  `json:"top_p"`
	NumPredict  int      `json:"num_predict"`
	Stop        []string `json:"stop"`
}

type generateRequest struct {
	Model   string  `json:"model"`
	System  string  `json:"system,omitempty"`
	Prompt  string  `json:"prompt"`
	Stream  bool    `json:"stream"`
	Options options `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// Complete runs a single non-streaming generation.
func (c *Client) Complete(ctx context.Context, system, prompt string, maxTokens int) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		System: system,
		Prompt: prompt,
		Options: options{
			Temperature: 0.3,
			TopP:        0.9,
			NumPredict:  maxTokens,
			Stop:        []string{"\n\n", "Input:", "Output:"},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var out generateResponse
	if resp.StatusCode != http.StatusOK {
		if json.Unmarshal(respBody, &out) == nil && out.Error != "" {
			return "", fmt.Errorf("ollama error %d: %s", resp.StatusCode, out.Error)
		}
		return "", fmt.Errorf("ollama error %d: %s", resp.StatusCode, string(respBody))
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	return strings.TrimSpace(out.Response), nil
}

// Models lists the models the server has pulled.
func (c *Client) Models(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama error %d", resp.StatusCode)
	}

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	names := make([]string, len(tags.Models))
	for i, m := range tags.Models {
		names[i] = m.Name
	}
	return names, nil
}

// Check verifies the server is reachable and has the configured model.
func (c *Client) Check(ctx context.Context) error {
	names, err := c.Models(ctx)
	if err != nil {
		return err
	}
	for _, n := range names {
		if n == c.model {
			return nil
		}
	}
	return fmt.Errorf("model %s not pulled (available: %s)", c.model, strings.Join(names, ", "))
}
