package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"google.golang.org/genai"
)

type GeminiService interface {
	// Generate performs exactly one model call. Errors are returned as-is;
	// there is no retry.
	Generate(ctx context.Context, req *GenerationRequest) (string, error)
}

type geminiService struct {
	apiKey    string
	modelName string
	timeout   time.Duration

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiService does not contact the provider or check the key. A
// missing or wrong key surfaces as an error on the first call.
func NewGeminiService(apiKey, modelName string, timeout time.Duration) GeminiService {
	return &geminiService{
		apiKey:    apiKey,
		modelName: modelName,
		timeout:   timeout,
	}
}

func (g *geminiService) getClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	g.client = client
	return client, nil
}

// Generate implements GeminiService.
func (g *geminiService) Generate(ctx context.Context, req *GenerationRequest) (string, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return "", err
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := client.Models.GenerateContent(ctx, g.modelName, req.Contents, req.Config)
	if err != nil {
		log.Printf("❌ Gemini API error: %v", err)
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	log.Printf("📊 Gemini response received: %d characters", len(text))

	return text, nil
}
