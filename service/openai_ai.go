package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/coursehub/ai-service/types"
	"github.com/sashabaranov/go-openai"
)

// OpenAIService is the OpenAI-compatible alternative to GeminiService, usable
// against the hosted API or any local server speaking the same protocol.
type OpenAIService struct {
	apiKey string
	client *openai.Client
	model  string
}

func NewOpenAIService(baseURL, apiKey, model string) *OpenAIService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIService{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (s *OpenAIService) ModelName() string { return s.model }

func (s *OpenAIService) GenerateResponse(ctx context.Context, promptTemplate string, variables map[string]string, temperature float32) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("%w: OPENAI_API_KEY is not set", types.ErrConfiguration)
	}

	prompt := renderPrompt(promptTemplate, variables)
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response generated")
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *OpenAIService) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", types.ErrConfiguration)
	}
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.SmallEmbedding3,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embedding failed: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, item := range resp.Data {
		vectors[i] = item.Embedding
	}
	return vectors, nil
}

func (s *OpenAIService) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	vectors, err := s.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}
