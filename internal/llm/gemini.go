package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// DefaultTimeout bounds the upstream call; expiry is reported as an
// overload-class error so callers may retry.
const DefaultTimeout = 8 * time.Second

// Generation parameters are pinned for determinism: the target models are
// small and prompt-literal, so sampling is restricted to the top choice.
var geminiGenerationConfig = generationConfig{
	Temperature:     0.1,
	TopK:            1,
	TopP:            1,
	MaxOutputTokens: 256,
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []Part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *geminiAPIError `json:"error"`
}

type geminiAPIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GeminiClient talks to the Google generative-language REST endpoint. The
// access credential travels as a query parameter, which is how this API
// authenticates key-based callers.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	httpc   *http.Client
}

func NewGemini(apiKey, baseURL, model string, timeout time.Duration) *GeminiClient {
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

func (c *GeminiClient) Generate(ctx context.Context, contents []Content) (Response, error) {
	payload, err := json.Marshal(geminiRequest{
		Contents:         contents,
		GenerationConfig: geminiGenerationConfig,
	})
	if err != nil {
		return Response{}, fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		if isTimeout(err) {
			return Response{}, &UpstreamError{StatusCode: http.StatusServiceUnavailable, Message: "upstream request timed out"}
		}
		return Response{}, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read upstream response: %w", err)
	}

	var apiData geminiResponse
	if err := json.Unmarshal(raw, &apiData); err != nil {
		return Response{}, fmt.Errorf("failed to decode upstream response: %w", err)
	}

	// The API can report rate-limit/overload conditions in the body even
	// when the HTTP layer looks fine, so the body code is classified first.
	if apiData.Error != nil {
		switch apiData.Error.Code {
		case http.StatusTooManyRequests, http.StatusServiceUnavailable:
			return Response{}, &UpstreamError{StatusCode: apiData.Error.Code, Message: apiData.Error.Message, Raw: raw}
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := "Unknown API Error"
		if apiData.Error != nil && apiData.Error.Message != "" {
			detail = apiData.Error.Message
		}
		return Response{}, &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Google AI Error: %s", detail),
			Raw:        raw,
		}
	}

	text := apologyFallback
	if len(apiData.Candidates) > 0 && len(apiData.Candidates[0].Content.Parts) > 0 {
		if t := apiData.Candidates[0].Content.Parts[0].Text; t != "" {
			text = t
		}
	}
	return Response{Content: text, Model: c.model}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var uerr *url.Error
	return errors.As(err, &uerr) && uerr.Timeout()
}
