package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// OpenAICompatible talks to any chat completions API that follows the OpenAI wire format.
type OpenAICompatible struct {
	name   string
	client openai.Client
	model  string
}

// NewOpenAICompatible creates a completer for an OpenAI-compatible endpoint.
// Extra request options (e.g. a custom HTTP client) may be appended.
func NewOpenAICompatible(name, baseURL, apiKey, model string, opts ...option.RequestOption) *OpenAICompatible {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	reqOpts = append(reqOpts, opts...)

	return &OpenAICompatible{
		name:   name,
		client: openai.NewClient(reqOpts...),
		model:  model,
	}
}

func (s *OpenAICompatible) Name() string {
	return s.name
}

func (s *OpenAICompatible) Model() string {
	return s.model
}

// Complete sends one chat completion request.
func (s *OpenAICompatible) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0.0),
	})
	if err != nil {
		return "", providerError(s.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", providerError(s.name, fmt.Errorf("response has no choices"))
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

var _ Completer = (*OpenAICompatible)(nil)
