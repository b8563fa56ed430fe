package services

import (
	"encoding/json"
	"fmt"
	"math"
)

// Recognized keys of the caller-supplied chat context.
const (
	ContextKeyCurrentChapter   = "currentChapter"
	ContextKeyTotalSubmissions = "totalSubmissions"
	ContextKeyRecentProgress   = "recentProgress"
)

// contextDefaults is the fallback for every recognized context key that is
// missing or carries the wrong JSON type.
var contextDefaults = map[string]any{
	ContextKeyCurrentChapter:   "General",
	ContextKeyTotalSubmissions: 0,
	ContextKeyRecentProgress:   "Unknown",
}

// ChatContext holds the progress hints embedded into the prompt.
type ChatContext struct {
	CurrentChapter   string
	TotalSubmissions int
	RecentProgress   string
}

// DefaultChatContext is the context used when the caller sends none.
func DefaultChatContext() ChatContext {
	return ParseChatContext(nil)
}

// ParseChatContext reads the recognized keys out of a raw JSON object.
// Anything that is not an object is treated as an empty one; unknown keys are
// ignored.
func ParseChatContext(raw json.RawMessage) ChatContext {
	var fields map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &fields); err != nil {
			fields = nil
		}
	}
	return ChatContext{
		CurrentChapter:   lookupString(fields, ContextKeyCurrentChapter),
		TotalSubmissions: lookupInt(fields, ContextKeyTotalSubmissions),
		RecentProgress:   lookupString(fields, ContextKeyRecentProgress),
	}
}

func lookupString(fields map[string]any, key string) string {
	if s, ok := fields[key].(string); ok {
		return s
	}
	return contextDefaults[key].(string)
}

// maxExactInt is the largest integer a JSON number decodes to without loss.
const maxExactInt = 1 << 53

func lookupInt(fields map[string]any, key string) int {
	if f, ok := fields[key].(float64); ok && f == math.Trunc(f) && math.Abs(f) <= maxExactInt {
		return int(f)
	}
	return contextDefaults[key].(int)
}

const artPromptTemplate = `You are an expert art instructor and mentor with years of experience teaching drawing and artistic techniques. You provide encouraging, specific, and actionable advice to help artists improve their skills.

Current Context:
- Student is working on: %s
- Total artwork submissions: %d
- Recent progress: %s

Student's Question/Message: %s

Please provide helpful, encouraging, and specific artistic advice. Focus on:
1. Practical techniques they can apply immediately
2. Constructive feedback that builds confidence
3. Specific exercises or practice suggestions
4. Encouragement for their artistic journey

Keep your response conversational, supportive, and focused on actionable advice. Avoid being overly technical unless the student specifically asks for technical details.`

// BuildArtPrompt renders the mentor prompt. The message is interpolated as is.
func BuildArtPrompt(message string, ctx ChatContext) string {
	return fmt.Sprintf(artPromptTemplate,
		ctx.CurrentChapter,
		ctx.TotalSubmissions,
		ctx.RecentProgress,
		message,
	)
}
