package services

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
)

// SetupURL is where operators obtain a Google AI Studio key.
const SetupURL = "https://makersuite.google.com/app/apikey"

// Caller-facing failure messages.
const (
	MsgInvalidBody        = "Invalid request body"
	MsgMessageRequired    = "Message is required"
	MsgServiceUnavailable = "AI service not available. Please check your Google AI Studio API key."
	MsgGenerationFailed   = "Failed to generate response. Please try again."
)

// Generator produces text for a fully built prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ResultKind classifies the outcome of one chat turn.
type ResultKind int

const (
	ResultOK ResultKind = iota
	ErrKindValidation
	ErrKindUnavailable
	ErrKindUpstream
)

func (k ResultKind) String() string {
	switch k {
	case ResultOK:
		return "ok"
	case ErrKindValidation:
		return "validation"
	case ErrKindUnavailable:
		return "unavailable"
	case ErrKindUpstream:
		return "upstream"
	default:
		return "unknown"
	}
}

// ChatResult is either generated text or a failure kind with a message that
// is safe to show the caller. Err carries server-side detail only.
type ChatResult struct {
	Kind    ResultKind
	Text    string
	Message string
	Err     error
}

func (r ChatResult) OK() bool { return r.Kind == ResultOK }

func ValidationFailure(message string, err error) ChatResult {
	return ChatResult{Kind: ErrKindValidation, Message: message, Err: err}
}

// Assistant owns the upstream generator for the process lifetime. A nil
// generator means setup failed and the service runs degraded.
type Assistant struct {
	generator Generator
	model     string
}

func NewAssistant(generator Generator, model string) *Assistant {
	if generator == nil {
		return UnavailableAssistant()
	}
	return &Assistant{generator: generator, model: model}
}

// UnavailableAssistant is the degraded state: health checks report it and
// every chat turn is rejected.
func UnavailableAssistant() *Assistant {
	return &Assistant{}
}

func (a *Assistant) Ready() bool {
	return a != nil && a.generator != nil
}

// Model is the configured model name, empty when degraded.
func (a *Assistant) Model() string {
	if !a.Ready() {
		return ""
	}
	return a.model
}

// Chat runs one independent turn: validate, check availability, build the
// prompt and call the generator once.
func (a *Assistant) Chat(ctx context.Context, message string, rawContext json.RawMessage) ChatResult {
	if message == "" {
		return ValidationFailure(MsgMessageRequired, nil)
	}
	if !a.Ready() {
		return ChatResult{Kind: ErrKindUnavailable, Message: MsgServiceUnavailable}
	}

	prompt := BuildArtPrompt(message, ParseChatContext(rawContext))

	text, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return ChatResult{Kind: ErrKindUpstream, Message: MsgGenerationFailed, Err: err}
	}
	return ChatResult{Kind: ResultOK, Text: text}
}

// SetupOptions configures the one-time upstream setup.
type SetupOptions struct {
	APIKey    string
	Model     string
	VerifyKey bool
}

// ConfigureAssistant attempts upstream setup once. Any failure is logged and
// yields a degraded Assistant rather than an error. The returned func
// releases the upstream client and is always safe to call.
func ConfigureAssistant(ctx context.Context, opts SetupOptions, log *zap.Logger) (*Assistant, func()) {
	noop := func() {}

	gemini, err := NewGeminiService(ctx, opts.APIKey, opts.Model)
	if err != nil {
		if errors.Is(err, ErrMissingAPIKey) {
			log.Error("GOOGLE_AI_API_KEY not found in environment variables")
			log.Error("Please set your Google AI Studio API key in the .env file")
			log.Error("Get your API key from: " + SetupURL)
		} else {
			log.Error("Failed to initialize AI model", zap.Error(err))
		}
		return UnavailableAssistant(), noop
	}

	if opts.VerifyKey {
		if err := gemini.Verify(ctx); err != nil {
			log.Error("Failed to initialize AI model", zap.Error(err))
			gemini.Close()
			return UnavailableAssistant(), noop
		}
	}

	log.Info("Google AI Studio configured successfully", zap.String("model", gemini.ModelName()))
	return NewAssistant(gemini, gemini.ModelName()), func() {
		if err := gemini.Close(); err != nil {
			log.Warn("Failed to close Gemini client", zap.Error(err))
		}
	}
}
