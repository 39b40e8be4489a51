package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/coursehub/ai-service/database"
	"github.com/coursehub/ai-service/repository"
	"github.com/coursehub/ai-service/types"
)

const (
	ragTemperature      = 0.3
	freeChatTemperature = 0.7
	searchTopK          = 5
)

// ChatService answers questions grounded on the vector index and keeps
// a record of every exchange.
type ChatService struct {
	store    database.VectorStore
	provider AIProvider
	convRepo repository.ConversationRepo
}

func NewChatService(store database.VectorStore, provider AIProvider, convRepo repository.ConversationRepo) *ChatService {
	return &ChatService{
		store:    store,
		provider: provider,
		convRepo: convRepo,
	}
}

// EvaluateQuestion retrieves the closest chunks to the question and asks
// the model to answer using only that context.
func (s *ChatService) EvaluateQuestion(ctx context.Context, userID string, req *types.ChatRequest) (*types.ChatResponse, error) {
	if !s.store.Exists() {
		return nil, fmt.Errorf("%w: no documents have been indexed yet", types.ErrNotFound)
	}

	chunks, err := s.store.Search(ctx, req.Question, searchTopK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: no relevant documents found", types.ErrNotFound)
	}

	if req.QuestionUID == "" {
		req.QuestionUID = uuid.NewString()
	}

	template, vars := BuildRAGPrompt(BuildRAGContext(chunks), req.Question)
	raw, err := s.provider.GenerateResponse(ctx, template, vars, ragTemperature)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}
	answer := ParseTextResponse(raw)

	resp := &types.ChatResponse{
		Answer:      answer,
		QuestionUID: req.QuestionUID,
		Timestamp:   time.Now().Format(timeLayout),
		ModelName:   s.provider.ModelName(),
	}
	s.saveConversation(ctx, userID, req.Question, answer)
	return resp, nil
}

// GetLearningPath recommends courses for the requested topics, using the
// indexed course descriptions as the candidate pool.
func (s *ChatService) GetLearningPath(ctx context.Context, userID string, req *types.LearningPathRequest) (*types.LearningPathResponse, error) {
	if !s.store.Exists() {
		return nil, fmt.Errorf("%w: no courses have been indexed yet", types.ErrNotFound)
	}

	query := fmt.Sprintf("courses about %s for a %s learner", req.Topics, req.Level)
	chunks, err := s.store.Search(ctx, query, searchTopK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: no relevant courses found", types.ErrNotFound)
	}

	template, vars := BuildLearningPathPrompt(BuildContextWithMetadata(chunks), req.Topics, req.Level, req.Questions)
	raw, err := s.provider.GenerateResponse(ctx, template, vars, ragTemperature)
	if err != nil {
		return nil, fmt.Errorf("generate learning path: %w", err)
	}

	resp := ParseLearningPathResponse(raw)
	s.saveConversation(ctx, userID, fmt.Sprintf("learning path: %s (%s)", req.Topics, req.Level), resp.Advice)
	return &resp, nil
}

// ChatFree answers without retrieval, using the model's own knowledge.
func (s *ChatService) ChatFree(ctx context.Context, userID string, req *types.FreeChatRequest) (*types.ChatResponse, error) {
	template, vars := BuildFreeChatPrompt(req.Message)
	raw, err := s.provider.GenerateResponse(ctx, template, vars, freeChatTemperature)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}
	answer := ParseTextResponse(raw)

	resp := &types.ChatResponse{
		Answer:    answer,
		Timestamp: time.Now().Format(timeLayout),
		ModelName: s.provider.ModelName(),
	}
	s.saveConversation(ctx, userID, req.Message, answer)
	return resp, nil
}

func (s *ChatService) ListConversations(ctx context.Context, userID string, page, limit int) (*types.ConversationsResponse, error) {
	conversations, total, err := s.convRepo.ListConversations(ctx, userID, int64(page), int64(limit))
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return &types.ConversationsResponse{
		Conversations: conversations,
		TotalCount:    total,
	}, nil
}

// saveConversation is best effort, a failed save never fails the request.
func (s *ChatService) saveConversation(ctx context.Context, userID, question, answer string) {
	conv := &types.Conversation{
		UserID:    userID,
		Question:  question,
		Answer:    answer,
		Timestamp: time.Now().Unix(),
	}
	if err := s.convRepo.CreateConversation(ctx, conv); err != nil {
		log.Printf("warning: failed to save conversation: %v", err)
	}
}
