// Package gemini provides the Gemini-backed analysis generator.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"thaivest_backend/internal/feature/analysis/usecase"
)

const (
	// DefaultModel is the Gemini model used for article generation.
	DefaultModel = "gemini-2.5-flash"
)

// GeminiAnalyzer generates Thai analysis prose through the Gemini API.
type GeminiAnalyzer struct {
	client *genai.Client
	model  string
}

var _ usecase.Analyzer = (*GeminiAnalyzer)(nil)

// NewGeminiAnalyzer creates a GeminiAnalyzer using application default
// credentials. The environment must provide GOOGLE_GENAI_USE_VERTEXAI,
// GOOGLE_CLOUD_PROJECT and GOOGLE_CLOUD_LOCATION.
func NewGeminiAnalyzer(ctx context.Context) (*GeminiAnalyzer, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiAnalyzer{client: client, model: DefaultModel}, nil
}

// Analyze generates a write-up from the prompt.
func (g *GeminiAnalyzer) Analyze(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return resp.Text(), nil
}
