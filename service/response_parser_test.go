package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTextResponse(t *testing.T) {
	assert.Equal(t, "answer", ParseTextResponse("  answer\n"))
	assert.Equal(t, "", ParseTextResponse("   "))
}

func TestParseLearningPathResponseValidJSON(t *testing.T) {
	raw := `{
		"advice": "Start with the basics.",
		"recommendedLearningPaths": [
			{"course_name": "Go 101", "course_uid": "go-101", "description": "Intro course"}
		],
		"explanation": "Matches your level."
	}`

	resp := ParseLearningPathResponse(raw)
	assert.Equal(t, "Start with the basics.", resp.Advice)
	require.Len(t, resp.RecommendedLearningPaths, 1)
	assert.Equal(t, "go-101", resp.RecommendedLearningPaths[0].CourseUID)
	assert.Equal(t, "Matches your level.", resp.Explanation)
}

func TestParseLearningPathResponseFencedJSON(t *testing.T) {
	raw := "Here is my recommendation:\n```json\n{\"advice\": \"Take the course.\", \"recommendedLearningPaths\": [], \"explanation\": \"ok\"}\n```\nHope that helps!"

	resp := ParseLearningPathResponse(raw)
	assert.Equal(t, "Take the course.", resp.Advice)
	assert.Empty(t, resp.RecommendedLearningPaths)
}

func TestParseLearningPathResponseFallback(t *testing.T) {
	raw := "I cannot produce JSON right now, sorry."

	resp := ParseLearningPathResponse(raw)
	assert.Equal(t, raw, resp.Advice)
	assert.NotNil(t, resp.RecommendedLearningPaths)
	assert.Empty(t, resp.RecommendedLearningPaths)
	assert.Equal(t, "Could not parse structured response", resp.Explanation)
}

func TestParseLearningPathResponseMalformedJSON(t *testing.T) {
	raw := `{"advice": "unterminated`

	resp := ParseLearningPathResponse(raw)
	assert.Equal(t, raw, resp.Advice)
	assert.Equal(t, "Could not parse structured response", resp.Explanation)
}

func TestParseLearningPathResponseNilPathsNormalized(t *testing.T) {
	raw := `{"advice": "ok", "explanation": "no list"}`

	resp := ParseLearningPathResponse(raw)
	assert.NotNil(t, resp.RecommendedLearningPaths)
	assert.Empty(t, resp.RecommendedLearningPaths)
}
