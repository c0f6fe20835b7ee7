package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient serves deployments that point the relay at an
// OpenAI-compatible endpoint instead of the generative-language API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAI(apiKey, baseURL, model string) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, contents []Content) (Response, error) {
	var oaMsgs []openai.ChatCompletionMessage
	for _, block := range contents {
		role := openai.ChatMessageRoleUser
		if block.Role == "model" {
			role = openai.ChatMessageRoleAssistant
		}
		text := ""
		for _, p := range block.Parts {
			text += p.Text
		}
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: role, Content: text})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: oaMsgs,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return Response{}, &UpstreamError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		return Response{}, fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Response{Content: apologyFallback, Model: c.model}, nil
	}
	return Response{Content: resp.Choices[0].Message.Content, Model: c.model}, nil
}
