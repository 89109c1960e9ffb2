package journal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Client sends journaled logs to a RepLog server over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new HTTP client for the RepLog server.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: serverURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type logPayload struct {
	Text     string    `json:"text"`
	LoggedAt time.Time `json:"logged_at"`
}

// SendLog POSTs one workout log to the server's log endpoint.
// Retries up to 3 times with exponential backoff on failure.
func (c *Client) SendLog(text string, loggedAt time.Time) error {
	data, err := json.Marshal(logPayload{Text: text, LoggedAt: loggedAt})
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		req, err := http.NewRequest(http.MethodPost, c.serverURL+"/api/v1/log/", bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			return nil
		}
		lastErr = fmt.Errorf("log failed (status %d): %s", resp.StatusCode, body)
	}

	return fmt.Errorf("after 3 attempts: %w", lastErr)
}

// Push sends every pending journal entry to the server, marking each as
// pushed on success. It stops at the first failure so ordering is kept.
func Push(j *Journal, c *Client, log *slog.Logger) (int, error) {
	pending, err := j.Pending()
	if err != nil {
		return 0, err
	}

	pushed := 0
	for _, e := range pending {
		if err := c.SendLog(e.RawText, e.LoggedAt); err != nil {
			return pushed, fmt.Errorf("pushing entry %d: %w", e.ID, err)
		}
		if err := j.MarkPushed(e.ID); err != nil {
			return pushed, fmt.Errorf("marking entry %d pushed: %w", e.ID, err)
		}
		pushed++
		log.Info("pushed journal entry", "id", e.ID, "logged_at", e.LoggedAt)
	}
	return pushed, nil
}
