package suggestions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// Ordered preference list. The newest model is tried first and the stable
// one picks up when it is unavailable.
var defaultModels = []string{
	"gemini-2.0-flash-exp",
	"gemini-1.5-flash",
}

const (
	generationTemperature = 0.7
	generationMaxTokens   = 1024
)

// GeminiClient wraps the Google GenAI client with sequential model
// fallback. It satisfies the content generator contract of Generator.
type GeminiClient struct {
	client *genai.Client
	models []string

	mu     sync.RWMutex
	active string
}

// NewGeminiClient creates a client for the Gemini API backend. The
// credential format is validated before any network use. model may be empty
// to use the default preference list; a non-empty model is tried first,
// ahead of the defaults.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if err := ValidateCredential(apiKey); err != nil {
		return nil, err
	}

	cfg := &genai.ClientConfig{
		APIKey:  strings.TrimSpace(apiKey),
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	models := defaultModels
	if model = strings.TrimSpace(model); model != "" {
		models = append([]string{model}, defaultModels...)
	}

	return &GeminiClient{
		client: client,
		models: models,
		active: models[0],
	}, nil
}

// GenerateContent sends the prompt through the model list in order and
// returns the first non-empty textual response. The model that answered
// becomes the active one reported by Model.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("gemini client is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	temperature := float32(generationTemperature)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: generationMaxTokens,
	}

	var lastErr error
	for _, model := range c.models {
		output, err := c.generateWithModel(ctx, model, prompt, cfg)
		if err != nil {
			lastErr = fmt.Errorf("model %s: %w", model, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		c.mu.Lock()
		c.active = model
		c.mu.Unlock()

		return output, nil
	}

	return "", lastErr
}

func (c *GeminiClient) generateWithModel(ctx context.Context, model, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("empty response")
	}

	return output, nil
}

// Model returns the model that served the most recent successful call, or
// the first preference before any call succeeded.
func (c *GeminiClient) Model() string {
	if c == nil {
		return ""
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}
