package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

var ErrEmptyCompletion = errors.New("empty response from OpenAI")

// TextGenerator is the generative text service: one prompt in, one text out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type AIOptions struct {
	Model   string
	BaseURL string
	// Timeout bounds each HTTP call. Zero means no client-side limit.
	Timeout time.Duration
}

type AIService struct {
	client *openai.Client
	model  string
}

func NewAIService(apiKey string, opts AIOptions) *AIService {
	cfg := openai.DefaultConfig(apiKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}

	model := opts.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &AIService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Generate sends prompt as a single user message and returns the trimmed reply.
func (s *AIService) Generate(ctx context.Context, prompt string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
