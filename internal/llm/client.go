package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Message roles in a completion request.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request describes a single completion call.
type Request struct {
	Model    string
	Messages []Message
	// MaxTokens caps the completion length. Zero means provider default.
	MaxTokens int
	// Temperature is applied only when greater than zero.
	Temperature float32
}

// Client is an abstraction over completion providers
type Client interface {
	// Complete issues one completion request and returns the raw text content.
	Complete(ctx context.Context, req Request) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new completion client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, apiKey)
	// case ProviderOpenAI:
	//     return NewOpenAIClient(ctx, apiKey)
	default:
		return NewGeminiClient(ctx, apiKey)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client}, nil
}

// Complete issues one completion call. The message history is mapped onto a
// Gemini chat session: a leading system message becomes the system
// instruction, intermediate turns become chat history, and the final user
// message is sent as the active turn.
func (c *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	if req.Model == "" {
		return "", fmt.Errorf("model name is required")
	}
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("at least one message is required")
	}

	model := c.client.GenerativeModel(req.Model)
	if req.Temperature > 0 {
		model.SetTemperature(req.Temperature)
	}
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}

	messages := req.Messages
	if messages[0].Role == RoleSystem {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(messages[0].Content)},
		}
		messages = messages[1:]
	}
	if len(messages) == 0 {
		return "", fmt.Errorf("request contains only a system message")
	}

	last := messages[len(messages)-1]
	if last.Role != RoleUser {
		return "", fmt.Errorf("final message must have role %q, got %q", RoleUser, last.Role)
	}

	session := model.StartChat()
	for _, msg := range messages[:len(messages)-1] {
		role := "user"
		if msg.Role == RoleAssistant {
			role = "model"
		}
		session.History = append(session.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	resp, err := session.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(resp)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var out string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}

	if out == "" {
		return "", fmt.Errorf("no text parts in response")
	}

	return out, nil
}
