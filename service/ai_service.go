package service

import (
	"context"
	"strings"
)

// AIProvider generates text from a prompt template. Implementations must fail
// fast with types.ErrConfiguration when their API key is missing and return
// the raw model output otherwise; structured parsing is the caller's job.
type AIProvider interface {
	GenerateResponse(ctx context.Context, promptTemplate string, variables map[string]string, temperature float32) (string, error)
	ModelName() string
}

// renderPrompt substitutes {name} placeholders. A variable missing from the
// map leaves its placeholder in place rather than failing.
func renderPrompt(template string, variables map[string]string) string {
	rendered := template
	for name, value := range variables {
		rendered = strings.ReplaceAll(rendered, "{"+name+"}", value)
	}
	return rendered
}
