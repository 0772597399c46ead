package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiBackend streams replies from Google's Gemini API
type GeminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiBackend creates a new Gemini backend
func NewGeminiBackend(ctx context.Context, apiKey, model string) (*GeminiBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if model == "" {
		model = "gemini-1.5-flash"
	}

	return &GeminiBackend{
		client: client,
		model:  model,
	}, nil
}

// Name returns the backend identifier
func (b *GeminiBackend) Name() string {
	return "gemini"
}

// NewSession opens a conversation
func (b *GeminiBackend) NewSession(ctx context.Context, opts SessionOptions) (Session, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Model == "" {
		opts.Model = b.model
	}
	return newSession(b, opts, nil), nil
}

func (b *GeminiBackend) stream(ctx context.Context, req streamRequest, onDelta func(string)) error {
	for resp, err := range b.client.Models.GenerateContentStream(ctx, req.Model, toGeminiContents(req.Messages), geminiConfig(req)) {
		if err != nil {
			return fmt.Errorf("failed to stream content: %w", err)
		}
		for _, text := range geminiTexts(resp) {
			onDelta(text)
		}
	}
	return nil
}

func geminiConfig(req streamRequest) *genai.GenerateContentConfig {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: genai.Ptr(int32(maxTokens)),
		Temperature:     genai.Ptr(float32(req.Temperature)),
	}

	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	return config
}

func toGeminiContents(msgs []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}
	return contents
}

// geminiTexts returns the text parts of the first candidate of a streamed chunk
func geminiTexts(resp *genai.GenerateContentResponse) []string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}

	var texts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			texts = append(texts, part.Text)
		}
	}
	return texts
}
