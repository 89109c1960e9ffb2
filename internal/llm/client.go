// Package llm calls an external language-model endpoint to parse workout
// text the deterministic engine cannot, and wraps both behind a single
// parsing front end.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/replog/internal/models"
)

// Client calls a remote parse endpoint. The endpoint accepts a JSON body
// {"text": ...} and returns {"exercises": [...]} in the same shape the
// deterministic engine produces.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Client targeting the given endpoint URL.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type parseRequest struct {
	Text string `json:"text"`
}

type parseResponse struct {
	Exercises []models.ParsedExercise `json:"exercises"`
}

// Parse sends the text to the remote endpoint and decodes the exercises.
func (c *Client) Parse(ctx context.Context, text string) ([]models.ParsedExercise, error) {
	payload, err := json.Marshal(parseRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("llm: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("llm: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("llm: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("llm: endpoint returned %d: %s", resp.StatusCode, body)
	}

	var out parseResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("llm: decode response: %w", err)
	}
	return out.Exercises, nil
}
