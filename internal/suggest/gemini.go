package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/fantrack/fantrack/internal/errors"
	"github.com/fantrack/fantrack/internal/tracker"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com"
	geminiMaxRetries   = 3
	geminiInitialDelay = 1 * time.Second
)

// GeminiClient calls the Gemini generateContent REST API.
type GeminiClient struct {
	model   string
	baseURL string
	client  *http.Client
}

type geminiRequest struct {
	SystemInstruction geminiContent   `json:"systemInstruction"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	ResponseMIMEType string       `json:"responseMimeType"`
	ResponseSchema   geminiSchema `json:"responseSchema"`
}

type geminiSchema struct {
	Type  string             `json:"type"`
	Items *geminiSchemaItems `json:"items,omitempty"`
}

type geminiSchemaItems struct {
	Type string `json:"type"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type geminiError struct {
	Error struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// NewGeminiClient creates a Gemini client. An empty baseURL selects the
// public endpoint; tests point it at a local server. The credential is
// supplied per call, not stored, so a key set mid-session takes effect
// on the next request.
func NewGeminiClient(model, baseURL string) *GeminiClient {
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	return &GeminiClient{
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Suggest asks the model for suggestion lines. With no credential it
// returns the localized placeholder line instead of an error, so callers
// can surface it as ordinary content.
func (c *GeminiClient) Suggest(ctx context.Context, apiKey, prompt string, kind tracker.Kind, language string) ([]string, error) {
	if apiKey == "" {
		return []string{MissingKeyPlaceholder(language)}, nil
	}

	req := geminiRequest{
		SystemInstruction: geminiContent{Parts: []geminiPart{{Text: systemInstruction(kind, language)}}},
		Contents:          []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: geminiSchema{
				Type:  "ARRAY",
				Items: &geminiSchemaItems{Type: "STRING"},
			},
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)

	// Retry with exponential backoff on rate limits and server errors
	var lastErr error
	for attempt := 0; attempt < geminiMaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt-1))) * geminiInitialDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("x-goog-api-key", apiKey)

		resp, err := c.client.Do(httpReq)
		if err != nil {
			lastErr = err
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			var apiErr geminiError
			if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
				lastErr = fmt.Errorf("gemini API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
			} else {
				lastErr = fmt.Errorf("gemini API error (%d)", resp.StatusCode)
			}

			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				continue
			}
			return nil, errors.NewSuggestion(lastErr)
		}

		return parseSuggestions(respBody)
	}

	return nil, errors.NewSuggestion(fmt.Errorf("max retries (%d) exceeded: %w", geminiMaxRetries, lastErr))
}

// parseSuggestions extracts the JSON string array from the first
// candidate's text part. A well-formed response with no array yields an
// empty list, matching the lenient upstream contract.
func parseSuggestions(respBody []byte) ([]string, error) {
	var out geminiResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, errors.NewSuggestion(fmt.Errorf("failed to decode response: %w", err))
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return []string{}, nil
	}

	text := out.Candidates[0].Content.Parts[0].Text
	var lines []string
	if err := json.Unmarshal([]byte(text), &lines); err != nil {
		return []string{}, nil
	}
	return lines, nil
}
