// Package enrich turns finished audit reports into advisory text by
// calling a hosted text-generation model. Enrichment is strictly
// additive: callers treat a failure here as a missing advisory, never
// as a failed audit.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gaurav-prasanna/auditpipe/core"
)

const (
	defaultBaseURL = "https://api-inference.huggingface.co/models/"
	defaultModel   = "mistralai/Mistral-7B-Instruct-v0.2"
	defaultTimeout = 120 * time.Second
	maxNewTokens   = 1000

	// tokenEnv names the environment variable holding the API token.
	tokenEnv = "HF_API_TOKEN"
)

// Client calls a text-generation inference endpoint.
type Client struct {
	endpoint string
	model    string
	token    string
	client   *http.Client
	log      *slog.Logger
}

// New creates a Client. An empty model selects the default; an empty
// endpoint targets the hosted inference API for that model. The API
// token is read from HF_API_TOKEN.
func New(endpoint, model string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if model == "" {
		model = defaultModel
	}
	if endpoint == "" {
		endpoint = defaultBaseURL + model
	}
	return &Client{
		endpoint: endpoint,
		model:    model,
		token:    os.Getenv(tokenEnv),
		client:   &http.Client{Timeout: defaultTimeout},
		log:      logger.With("component", "enrich"),
	}
}

// generationRequest is the request body for the text-generation API.
type generationRequest struct {
	Inputs     string               `json:"inputs"`
	Parameters generationParameters `json:"parameters"`
}

type generationParameters struct {
	MaxNewTokens   int  `json:"max_new_tokens"`
	ReturnFullText bool `json:"return_full_text"`
}

// generationResponse is one candidate from the text-generation API.
type generationResponse struct {
	GeneratedText string `json:"generated_text"`
}

// Enrich sends the report (plus an optional content excerpt) to the
// model and returns its advisory text.
func (c *Client) Enrich(ctx context.Context, report *core.AuditReport, excerpt string) (string, error) {
	prompt, err := BuildPrompt(report, excerpt)
	if err != nil {
		return "", err
	}

	reqBody := generationRequest{
		Inputs: prompt,
		Parameters: generationParameters{
			MaxNewTokens:   maxNewTokens,
			ReturnFullText: false,
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.Debug("requesting advisory", "model", c.model, "url", report.URL)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling inference API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("inference API returned %d: %s", resp.StatusCode, truncate(body, 200))
	}

	return decodeAdvisory(resp.Body)
}

// decodeAdvisory accepts both response shapes the API serves: an array
// of candidates carrying generated_text, or a bare JSON string.
func decodeAdvisory(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var candidates []generationResponse
	if err := json.Unmarshal(data, &candidates); err == nil && len(candidates) > 0 {
		return strings.TrimSpace(candidates[0].GeneratedText), nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		return strings.TrimSpace(text), nil
	}

	return "", fmt.Errorf("unexpected response shape: %s", truncate(data, 200))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
