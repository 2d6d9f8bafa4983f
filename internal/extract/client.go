// Package extract calls the external webpage-to-text extraction service.
// The service speaks a bespoke JSON POST contract: status 0 denotes
// success, any other status is a failure whose message is surfaced to the
// user verbatim.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 60 * time.Second

// ErrEmptyContent is returned when the service reports success but
// delivers no text.
var ErrEmptyContent = errors.New("no content extracted")

// StatusError is a non-zero status reported by the extraction service.
// Its message is shown to the user as-is.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string { return e.Message }

// Extractor is the contract the orchestrator depends on.
type Extractor interface {
	Extract(ctx context.Context, url, instruction string) (string, error)
}

// Client talks to the extraction endpoint over HTTP.
type Client struct {
	endpoint   string
	appID      string
	httpClient *http.Client
}

// NewClient returns a client for the given endpoint. The app id is sent as
// a header on every request.
func NewClient(endpoint, appID string) *Client {
	return &Client{
		endpoint: endpoint,
		appID:    appID,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

type extractRequest struct {
	Parameters extractParameters `json:"parameters"`
}

type extractParameters struct {
	OriginQuery string   `json:"_sys_origin_query"`
	WebURL      []string `json:"web_url"`
}

type extractResponse struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
	Data   struct {
		WebSummary string `json:"webSummary"`
	} `json:"data"`
}

// Extract pulls transcript text from a webpage URL using the given
// extraction instruction.
func (c *Client) Extract(ctx context.Context, url, instruction string) (string, error) {
	body, err := json.Marshal(extractRequest{
		Parameters: extractParameters{
			OriginQuery: instruction,
			WebURL:      []string{url},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.appID != "" {
		req.Header.Set("X-App-Id", c.appID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("extraction endpoint returned status %d: %s", resp.StatusCode, string(respBytes))
	}

	var parsed extractResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}

	if parsed.Status != 0 {
		return "", &StatusError{Status: parsed.Status, Message: parsed.Msg}
	}
	if parsed.Data.WebSummary == "" {
		return "", ErrEmptyContent
	}
	return parsed.Data.WebSummary, nil
}
