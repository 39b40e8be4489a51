package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/coursehub/ai-service/types"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiService implements AIProvider and database.Embedder against the
// Google AI API.
type GeminiService struct {
	apiKey     string
	client     *genai.Client
	model      string
	embedModel string
}

func NewGeminiService(ctx context.Context, apiKey, model, embedModel string) (*GeminiService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: GOOGLE_API_KEY is not set", types.ErrConfiguration)
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiService{
		apiKey:     apiKey,
		client:     client,
		model:      model,
		embedModel: embedModel,
	}, nil
}

func (s *GeminiService) ModelName() string { return s.model }

func (s *GeminiService) Close() error { return s.client.Close() }

func (s *GeminiService) GenerateResponse(ctx context.Context, promptTemplate string, variables map[string]string, temperature float32) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("%w: API key not configured", types.ErrConfiguration)
	}

	model := s.client.GenerativeModel(s.model)
	model.SetTemperature(temperature)

	prompt := renderPrompt(promptTemplate, variables)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", errors.New("no response generated")
	}

	content := ""
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content += string(text)
			}
		}
	}
	return content, nil
}

func (s *GeminiService) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("%w: API key not configured", types.ErrConfiguration)
	}
	if len(texts) == 0 {
		return nil, nil
	}

	em := s.client.EmbeddingModel(s.embedModel)
	batch := em.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}
	resp, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("gemini embedding failed: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		vectors[i] = emb.Values
	}
	return vectors, nil
}

func (s *GeminiService) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("%w: API key not configured", types.ErrConfiguration)
	}
	resp, err := s.client.EmbeddingModel(s.embedModel).EmbedContent(ctx, genai.Text(query))
	if err != nil {
		return nil, fmt.Errorf("gemini query embedding failed: %w", err)
	}
	return resp.Embedding.Values, nil
}
