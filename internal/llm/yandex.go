package llm

import (
	"context"
	"fmt"

	"github.com/Morwran/yagpt"
)

// YandexClient serves deployments that route the relay through YandexGPT.
type YandexClient struct {
	ya       yagpt.YaGPTFace
	iamToken string
}

func NewYandex(oauthToken, folderID string) (*YandexClient, error) {
	iam, err := yagpt.NewYaIam(oauthToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init yandex iam: %w", err)
	}
	resp, err := iam.Create()
	if err != nil {
		return nil, fmt.Errorf("failed to create iam token: %w", err)
	}

	ya, err := yagpt.NewYagpt(folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to init yagpt: %w", err)
	}

	return &YandexClient{
		ya:       ya,
		iamToken: resp.IamToken,
	}, nil
}

func (c *YandexClient) Generate(ctx context.Context, contents []Content) (Response, error) {
	var messages []yagpt.Message
	for _, block := range contents {
		role := "user"
		if block.Role == "model" {
			role = "assistant"
		}
		text := ""
		for _, p := range block.Parts {
			text += p.Text
		}
		messages = append(messages, yagpt.Message{Role: role, Content: text})
	}

	resp, err := c.ya.CompletionWithCtx(ctx, c.iamToken, messages)
	if err != nil {
		return Response{}, fmt.Errorf("yagpt completion failed: %w", err)
	}
	if resp == nil || len(resp.Alternatives) == 0 {
		return Response{Content: apologyFallback, Model: yagpt.YaModelLite}, nil
	}
	return Response{Content: resp.Alternatives[0].Message.Content, Model: yagpt.YaModelLite}, nil
}
