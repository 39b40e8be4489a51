package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursehub/ai-service/types"
)

func TestEvaluateQuestionEmptyIndex(t *testing.T) {
	store := &fakeVectorStore{}
	provider := &fakeProvider{response: "an answer"}
	svc := NewChatService(store, provider, &fakeConvRepo{})

	_, err := svc.EvaluateQuestion(context.Background(), "u1", &types.ChatRequest{Question: "what is Go?"})
	assert.ErrorIs(t, err, types.ErrNotFound)
	// the model must never be called without retrieved context
	assert.Equal(t, 0, provider.calls)
}

func TestEvaluateQuestion(t *testing.T) {
	store := &fakeVectorStore{}
	require.NoError(t, store.Add(context.Background(),
		[]string{"Go is a compiled language."},
		[]map[string]string{{types.MetaCourseID: "1"}}))
	provider := &fakeProvider{response: "  Go compiles to native code.\n"}
	convRepo := &fakeConvRepo{}
	svc := NewChatService(store, provider, convRepo)

	resp, err := svc.EvaluateQuestion(context.Background(), "u1", &types.ChatRequest{
		Question:    "what is Go?",
		QuestionUID: "q-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Go compiles to native code.", resp.Answer)
	assert.Equal(t, "q-1", resp.QuestionUID)
	assert.Equal(t, "fake-model", resp.ModelName)
	assert.EqualValues(t, float32(0.3), provider.lastTemp)
	assert.Contains(t, provider.lastRendered, "Go is a compiled language.")
	assert.Contains(t, provider.lastRendered, "Question: what is Go?")

	require.Len(t, convRepo.saved, 1)
	assert.Equal(t, "u1", convRepo.saved[0].UserID)
	assert.Equal(t, "what is Go?", convRepo.saved[0].Question)
}

func TestEvaluateQuestionGeneratesUID(t *testing.T) {
	store := &fakeVectorStore{}
	require.NoError(t, store.Add(context.Background(),
		[]string{"some context"},
		[]map[string]string{{types.MetaCourseID: "1"}}))
	svc := NewChatService(store, &fakeProvider{response: "answer"}, &fakeConvRepo{})

	resp, err := svc.EvaluateQuestion(context.Background(), "u1", &types.ChatRequest{Question: "anything"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.QuestionUID)
}

func TestGetLearningPath(t *testing.T) {
	store := &fakeVectorStore{}
	require.NoError(t, store.Add(context.Background(),
		[]string{"Course: Go 101"},
		[]map[string]string{{types.MetaCourseID: "1", types.MetaCourseUID: "go-101"}}))
	provider := &fakeProvider{
		response: `{"advice": "Start here.", "recommendedLearningPaths": [{"course_name": "Go 101", "course_uid": "go-101", "description": "Intro"}], "explanation": "Good fit."}`,
	}
	svc := NewChatService(store, provider, &fakeConvRepo{})

	resp, err := svc.GetLearningPath(context.Background(), "u1", &types.LearningPathRequest{
		Topics: "go",
		Level:  "beginner",
	})
	require.NoError(t, err)

	assert.Equal(t, "Start here.", resp.Advice)
	require.Len(t, resp.RecommendedLearningPaths, 1)
	assert.Equal(t, "go-101", resp.RecommendedLearningPaths[0].CourseUID)
	assert.EqualValues(t, float32(0.3), provider.lastTemp)
	// course UIDs must reach the prompt so the model can cite them
	assert.Contains(t, provider.lastRendered, "Course UID: go-101")
}

func TestGetLearningPathUnparsableResponse(t *testing.T) {
	store := &fakeVectorStore{}
	require.NoError(t, store.Add(context.Background(),
		[]string{"Course: Go 101"},
		[]map[string]string{{types.MetaCourseID: "1"}}))
	provider := &fakeProvider{response: "sorry, plain text only"}
	svc := NewChatService(store, provider, &fakeConvRepo{})

	resp, err := svc.GetLearningPath(context.Background(), "u1", &types.LearningPathRequest{Topics: "go"})
	require.NoError(t, err)
	assert.Equal(t, "sorry, plain text only", resp.Advice)
	assert.Empty(t, resp.RecommendedLearningPaths)
	assert.Equal(t, "Could not parse structured response", resp.Explanation)
}

func TestGetLearningPathEmptyIndex(t *testing.T) {
	provider := &fakeProvider{response: "unused"}
	svc := NewChatService(&fakeVectorStore{}, provider, &fakeConvRepo{})

	_, err := svc.GetLearningPath(context.Background(), "u1", &types.LearningPathRequest{Topics: "go"})
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, 0, provider.calls)
}

func TestChatFree(t *testing.T) {
	provider := &fakeProvider{response: "hello there"}
	convRepo := &fakeConvRepo{}
	svc := NewChatService(&fakeVectorStore{}, provider, convRepo)

	resp, err := svc.ChatFree(context.Background(), "u1", &types.FreeChatRequest{Message: "hi"})
	require.NoError(t, err)

	assert.Equal(t, "hello there", resp.Answer)
	assert.EqualValues(t, float32(0.7), provider.lastTemp)
	assert.Contains(t, provider.lastRendered, "User Message: hi")
	assert.Len(t, convRepo.saved, 1)
}

func TestListConversations(t *testing.T) {
	convRepo := &fakeConvRepo{saved: []types.Conversation{
		{UserID: "u1", Question: "q", Answer: "a"},
	}}
	svc := NewChatService(&fakeVectorStore{}, &fakeProvider{}, convRepo)

	resp, err := svc.ListConversations(context.Background(), "u1", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.TotalCount)
	assert.Len(t, resp.Conversations, 1)
}
