package provider

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicMaxTokens = 2000

// Anthropic completes prompts with the Anthropic Messages API.
type Anthropic struct {
	client anthropic.Client
	model  string
}

// NewAnthropic creates an Anthropic completer. An empty baseURL uses the SDK default.
func NewAnthropic(apiKey, model, baseURL string, opts ...option.RequestOption) *Anthropic {
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

	return &Anthropic{
		client: anthropic.NewClient(reqOpts...),
		model:  model,
	}
}

func (s *Anthropic) Name() string {
	return kindAnthropic
}

func (s *Anthropic) Model() string {
	return s.model
}

// Complete sends one message request and concatenates the text blocks of the reply.
func (s *Anthropic) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:  anthropic.Model(s.model),
		System: []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					{
						OfRequestTextBlock: &anthropic.TextBlockParam{Text: prompt},
					},
				},
			},
		},
		Temperature: anthropic.Float(0.0),
		MaxTokens:   anthropicMaxTokens,
	})
	if err != nil {
		return "", providerError(s.Name(), err)
	}

	var output strings.Builder
	for _, content := range resp.Content {
		if content.Type == "text" {
			output.WriteString(content.Text)
		}
	}
	return strings.TrimSpace(output.String()), nil
}

var _ Completer = (*Anthropic)(nil)
