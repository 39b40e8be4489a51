package service

import (
	"strings"

	"github.com/coursehub/ai-service/types"
)

const ragPromptTemplate = `Based on the provided course information, answer the following question.

Course Information:
{context}

Question: {question}

Please provide a helpful answer based on the available course information.`

const learningPathPromptTemplate = `Based on the provided course catalog and learning requirements, create a comprehensive learning path.

Available courses:
{context}

Topics to learn: {topics}
Current level: {level}
Specific requirements: {questions}

Please provide:
1. General advice for this learning path
2. Recommended courses with their details and exact Course UID from the available courses
3. Explanation of why these courses are recommended

Format your response as JSON with this structure:
{
    "advice": "General learning advice",
    "recommendedLearningPaths": [
        {
            "course_name": "Course Name",
            "course_uid": "exact_uid_from_available_courses",
            "description": "Course description"
        }
    ],
    "explanation": "Why these courses are recommended"
}

IMPORTANT: The course_uid MUST be taken directly from the "Course UID:" field in the available courses above.`

const freeChatPromptTemplate = `You are a helpful AI assistant. Answer the user's question or respond to their message in a clear and helpful manner.

User Message: {message}

Please provide a helpful response.`

// BuildRAGPrompt pairs the RAG template with its variables.
func BuildRAGPrompt(context, question string) (string, map[string]string) {
	return ragPromptTemplate, map[string]string{
		"context":  context,
		"question": question,
	}
}

func BuildLearningPathPrompt(context, topics, level, questions string) (string, map[string]string) {
	return learningPathPromptTemplate, map[string]string{
		"context":   context,
		"topics":    topics,
		"level":     level,
		"questions": questions,
	}
}

func BuildFreeChatPrompt(message string) (string, map[string]string) {
	return freeChatPromptTemplate, map[string]string{
		"message": message,
	}
}

// BuildRAGContext joins retrieved chunk texts for the plain RAG prompt.
func BuildRAGContext(chunks []types.ScoredChunk) string {
	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		parts = append(parts, chunk.Content)
	}
	return strings.Join(parts, "\n\n")
}

// BuildContextWithMetadata appends each chunk's course UID so the model can
// cite exact identifiers in structured answers.
func BuildContextWithMetadata(chunks []types.ScoredChunk) string {
	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		uid := chunk.Metadata[types.MetaCourseUID]
		if uid == "" {
			uid = "unknown"
		}
		parts = append(parts, chunk.Content+"\nCourse UID: "+uid)
	}
	return strings.Join(parts, "\n\n")
}
