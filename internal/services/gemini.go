package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/mohitcdry/automatic-recruitment-system/internal/config"
	"github.com/mohitcdry/automatic-recruitment-system/internal/logger"
	"github.com/mohitcdry/automatic-recruitment-system/internal/models"
)

// ModelTier selects which Gemini deployment serves a request. Screening runs
// many short calls and uses the fast model; the interview conversation and
// final reports use the quality model.
type ModelTier string

const (
	TierFast    ModelTier = "fast"
	TierQuality ModelTier = "quality"
)

type GeminiService interface {
	GenerateText(ctx context.Context, tier ModelTier, prompt string, temperature float32) (string, error)
	GenerateTextWithRetry(ctx context.Context, tier ModelTier, prompt string, temperature float32, maxRetries int) (string, error)
	Chat(ctx context.Context, tier ModelTier, history []models.Message, temperature float32) (string, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type geminiService struct {
	client       *genai.Client
	fastModel    string
	qualityModel string
	embedModel   string
	log          *zap.Logger
}

func NewGeminiService(cfg config.GeminiConfig, log *zap.Logger) (GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:       client,
		fastModel:    cfg.FastModel,
		qualityModel: cfg.QualityModel,
		embedModel:   cfg.EmbedModel,
		log:          log,
	}, nil
}

func (g *geminiService) modelName(tier ModelTier) string {
	if tier == TierQuality {
		return g.qualityModel
	}
	return g.fastModel
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, tier ModelTier, prompt string, temperature float32) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	model := g.modelName(tier)
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("no response generated")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	g.log.Debug("gemini response",
		zap.String("model", model),
		zap.String("text", logger.TruncateForLog(text, 200)),
	)

	return text, nil
}

// GenerateTextWithRetry implements GeminiService.
func (g *geminiService) GenerateTextWithRetry(ctx context.Context, tier ModelTier, prompt string, temperature float32, maxRetries int) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := g.GenerateText(ctx, tier, prompt, temperature)
		if err == nil {
			return result, nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if attempt < maxRetries {
			g.log.Warn("gemini call failed, retrying",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}

// Chat implements GeminiService. The history carries the whole conversation
// on every call; the hosted model keeps no state between turns.
func (g *geminiService) Chat(ctx context.Context, tier ModelTier, history []models.Message, temperature float32) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 1024,
	}

	var contents []*genai.Content
	for _, msg := range history {
		switch msg.Role {
		case "system":
			cfg.SystemInstruction = &genai.Content{
				Parts: []*genai.Part{{Text: msg.Content}},
			}
		case "model":
			contents = append(contents, &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{Text: msg.Content}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{{Text: msg.Content}},
			})
		}
	}

	// The first call carries only the system instruction; the model still
	// needs a user turn to respond to.
	if len(contents) == 0 {
		contents = genai.Text("Please begin.")
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName(tier), contents, cfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate chat response: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("no response generated")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long for the embedding model.
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}
