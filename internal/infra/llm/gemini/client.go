package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrNoCredential is returned when no API key is configured. Callers map it
// to a displayable sentinel rather than an HTTP failure.
var ErrNoCredential = errors.New("gemini api key missing")

// NoResponseText is substituted when the provider returns an empty result.
const NoResponseText = "No response."

// GenerateContentRequest is the payload sent to the Gemini API.
type GenerateContentRequest struct {
	Contents []Content `json:"contents"`
}

// Content groups the parts of a single turn.
type Content struct {
	Parts []Part `json:"parts"`
}

// Part carries prompt or response text.
type Part struct {
	Text string `json:"text"`
}

// GenerateContentResponse captures the fields we consume from the provider.
type GenerateContentResponse struct {
	Candidates []struct {
		Content Content `json:"content"`
	} `json:"candidates"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Client performs HTTP requests to the Gemini generateContent API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient constructs a Gemini client. An empty API key is tolerated; every
// Generate call then fails with ErrNoCredential so the caller can degrade.
func NewClient(apiKey, baseURL, model string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// HasCredential reports whether an API key was configured.
func (c *Client) HasCredential() bool {
	return c.apiKey != ""
}

// Generate sends a single-turn prompt and returns the response text. An
// empty provider result is normalized to NoResponseText so the caller always
// receives displayable content on success.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoCredential
	}

	payload, err := json.Marshal(GenerateContentRequest{
		Contents: []Content{{Parts: []Part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode generate request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("gemini request error: status=%d body=%s", resp.StatusCode, truncateBody(body))
	}

	var out GenerateContentResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("gemini api error: status=%s message=%s", out.Error.Status, out.Error.Message)
	}

	return extractText(out), nil
}

func extractText(resp GenerateContentResponse) string {
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			builder.WriteString(part.Text)
		}
		break
	}
	text := strings.TrimSpace(builder.String())
	if text == "" {
		return NoResponseText
	}
	return text
}

func truncateBody(body []byte) string {
	const limit = 4 << 10
	if len(body) > limit {
		body = body[:limit]
	}
	return string(body)
}
