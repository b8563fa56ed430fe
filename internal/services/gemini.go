package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrMissingAPIKey is returned when no Google AI Studio key was supplied.
var ErrMissingAPIKey = errors.New("GOOGLE_AI_API_KEY is not set")

// GeminiService sends prompts to a single Gemini model.
type GeminiService struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

func NewGeminiService(ctx context.Context, apiKey, modelName string) (*GeminiService, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiService{
		client:    client,
		model:     client.GenerativeModel(modelName),
		modelName: modelName,
	}, nil
}

func (s *GeminiService) Close() error {
	return s.client.Close()
}

func (s *GeminiService) ModelName() string {
	return s.modelName
}

// Verify asks the API for the model's metadata, which fails fast on a
// rejected key or unknown model.
func (s *GeminiService) Verify(ctx context.Context) error {
	if _, err := s.model.Info(ctx); err != nil {
		return fmt.Errorf("Gemini model %q not reachable: %w", s.modelName, err)
	}
	return nil
}

// Generate makes exactly one GenerateContent call with the prompt as the only
// part.
func (s *GeminiService) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := extractText(resp)
	if strings.TrimSpace(text) == "" {
		return "", emptyResponseError(resp)
	}
	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

// emptyResponseError describes why a response carried no text.
func emptyResponseError(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return errors.New("Gemini returned no response")
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return fmt.Errorf("Gemini blocked the prompt: %s", resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return errors.New("Gemini returned no candidates")
	}
	reasons := make([]string, 0, len(resp.Candidates))
	for _, cand := range resp.Candidates {
		reasons = append(reasons, cand.FinishReason.String())
	}
	return fmt.Errorf("Gemini returned empty text (finish reasons: %s)", strings.Join(reasons, ", "))
}
