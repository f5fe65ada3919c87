// Package openaiclient calls the OpenAI Responses API to produce an
// optional narrative summary of a ranking result. The deterministic report
// never depends on it.
package openaiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/duartecruz/weekend-picker/pkg/report"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4.1-mini"

	defaultBaseURL = "https://api.openai.com/v1"
	requestTimeout = 60 * time.Second
)

const systemPrompt = "You are a planning assistant. " +
	"Summarize weekend options concisely and objectively. " +
	"Always write in European Portuguese (Portugues de Portugal, pt-PT), " +
	"using natural phrasing for Portugal."

const userPromptHeader = "Using this deterministic ranking payload, produce a short " +
	"structured summary with sections: Best Option, Why, and People " +
	"Potentially Affected. Output must be in European Portuguese (pt-PT)."

// Client is a thin client for the OpenAI Responses API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a narrative client. An empty model selects DefaultModel.
func NewClient(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}, nil
}

type requestMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responsesRequest struct {
	Model string           `json:"model"`
	Input []requestMessage `json:"input"`
}

type responsesResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Narrative generates a pt-PT narrative summary for a result payload.
func (c *Client) Narrative(ctx context.Context, payload report.ResultPayload) (string, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result payload: %w", err)
	}

	body, err := json.Marshal(responsesRequest{
		Model: c.model,
		Input: []requestMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPromptHeader + "\n\n" + string(payloadJSON)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal narrative request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build narrative request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read openai response: %w", err)
	}

	var parsed responsesResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode openai response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return "", fmt.Errorf("openai request failed with status %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("openai request failed with status %d", resp.StatusCode)
	}

	text := outputText(parsed)
	if text == "" {
		return "", fmt.Errorf("openai request succeeded but returned empty text")
	}
	return text, nil
}

// outputText concatenates all output_text fragments in the response.
func outputText(parsed responsesResponse) string {
	var fragments []string
	for _, item := range parsed.Output {
		for _, content := range item.Content {
			if content.Type == "output_text" && content.Text != "" {
				fragments = append(fragments, content.Text)
			}
		}
	}
	return strings.TrimSpace(strings.Join(fragments, "\n"))
}
