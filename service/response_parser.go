package service

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/coursehub/ai-service/types"
)

// ParseTextResponse trims whatever the model returned.
func ParseTextResponse(response string) string {
	return strings.TrimSpace(response)
}

// parseJSONResponse extracts the outermost JSON object from a response that
// may be wrapped in prose or markdown fences.
func parseJSONResponse(response string, out interface{}) error {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end <= start {
		return fmt.Errorf("%w: no JSON object in response", types.ErrParse)
	}
	if err := json.Unmarshal([]byte(response[start:end+1]), out); err != nil {
		return fmt.Errorf("%w: %v", types.ErrParse, err)
	}
	return nil
}

// ParseLearningPathResponse parses the JSON-shaped learning path. On parse
// failure it falls back to carrying the raw text as advice with an empty
// recommendation list; the caller never sees the parse error.
func ParseLearningPathResponse(response string) types.LearningPathResponse {
	var parsed types.LearningPathResponse
	if err := parseJSONResponse(response, &parsed); err != nil {
		log.Printf("Failed to parse learning path JSON, returning fallback: %v", err)
		return types.LearningPathResponse{
			Advice:                   ParseTextResponse(response),
			RecommendedLearningPaths: []types.CourseRecommendation{},
			Explanation:              "Could not parse structured response",
		}
	}
	if parsed.RecommendedLearningPaths == nil {
		parsed.RecommendedLearningPaths = []types.CourseRecommendation{}
	}
	return parsed
}
