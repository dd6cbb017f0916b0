package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/orgcat/internal/utils"
)

// Client calls the external translation backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given backend base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type translateRequest struct {
	To    string   `json:"to"`
	Texts []string `json:"texts"`
}

type translateResponse struct {
	OK           bool     `json:"ok"`
	To           string   `json:"to"`
	Translations []string `json:"translations"`
	Error        string   `json:"error"`
}

// Translate sends one batch of texts and returns the translations,
// positionally aligned with the request.
func (c *Client) Translate(ctx context.Context, to string, texts []string) ([]string, error) {
	body, err := json.Marshal(translateRequest{To: to, Texts: texts})
	if err != nil {
		return nil, fmt.Errorf("failed to encode translate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("translate request failed: %w", err)
	}
	defer utils.Close(res.Body)

	data, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read translate response: %w", err)
	}

	var parsed translateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("malformed translate response (HTTP %d): %w", res.StatusCode, err)
	}

	if res.StatusCode != http.StatusOK {
		if parsed.Error != "" {
			return nil, fmt.Errorf("translate backend error: %s", parsed.Error)
		}
		return nil, fmt.Errorf("translate backend returned HTTP %d", res.StatusCode)
	}

	if !parsed.OK || parsed.Translations == nil {
		return nil, fmt.Errorf("invalid translate response")
	}
	if len(parsed.Translations) != len(texts) {
		return nil, fmt.Errorf("translate response not aligned: got %d translations for %d texts",
			len(parsed.Translations), len(texts))
	}

	return parsed.Translations, nil
}
