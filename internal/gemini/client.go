// Package gemini is a minimal client for the generative language REST API.
// It exposes exactly the request/response contract the orchestrator needs:
// text in, text out, with upstream failures classified as transient overload
// or hard errors.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrEmptyResponse marks a 2xx response that carried no usable text. It
// consumes a retry slot like any other hard error.
var ErrEmptyResponse = errors.New("model returned an empty response")

// StatusError is a non-2xx upstream response. Status mirrors the error.status
// field of the JSON error body when one was present.
type StatusError struct {
	Code    int
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("model API error %d (%s): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("model API error %d (%s)", e.Code, e.Status)
}

// Transient reports whether the error is the service-overloaded signal.
// HTTP 503 paired with status "UNAVAILABLE" is the sole transient
// classification; everything else is a hard error.
func (e *StatusError) Transient() bool {
	return e.Code == http.StatusServiceUnavailable && e.Status == "UNAVAILABLE"
}

// IsTransient reports whether err classifies as transient overload.
func IsTransient(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Transient()
}

// GenerateParams describes one generateContent call.
type GenerateParams struct {
	Model           string
	SystemPrompt    string
	UserPrompt      string
	Temperature     float64
	MaxOutputTokens int
}

// Client issues generateContent calls against a per-model endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

func NewClient(apiKey, baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateContent runs one generation attempt and returns the generated
// text. The system prompt rides as a leading user turn, matching the wire
// contract of the API.
func (c *Client) GenerateContent(ctx context.Context, p GenerateParams) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: p.SystemPrompt}}},
			{Role: "user", Parts: []part{{Text: p.UserPrompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     p.Temperature,
			MaxOutputTokens: p.MaxOutputTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, p.Model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read model response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", c.classify(p.Model, resp.StatusCode, respBody)
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decode model response: %w", err)
	}
	if len(parsed.Candidates) == 0 ||
		len(parsed.Candidates[0].Content.Parts) == 0 ||
		parsed.Candidates[0].Content.Parts[0].Text == "" {
		return "", fmt.Errorf("%w (model %s)", ErrEmptyResponse, p.Model)
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

func (c *Client) classify(model string, code int, body []byte) error {
	var parsed errorResponse
	// A non-JSON error body still classifies by status code alone.
	_ = json.Unmarshal(body, &parsed)

	se := &StatusError{
		Code:    code,
		Status:  parsed.Error.Status,
		Message: parsed.Error.Message,
	}
	if se.Transient() {
		c.logger.Warn("model overloaded",
			zap.String("model", model),
			zap.Int("status", code))
	} else {
		c.logger.Error("model request rejected",
			zap.String("model", model),
			zap.Int("status", code),
			zap.String("apiStatus", parsed.Error.Status))
	}
	return se
}
