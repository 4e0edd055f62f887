package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"alfredoptarigan/candidate-intake/internal/logger"
)

// maxEmbeddingChars keeps embedding requests within the model's input window.
const maxEmbeddingChars = 40000

type GeminiService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	// GenerateText returns the text of the first part of the first candidate.
	// ok is false when the response carries no such text.
	GenerateText(ctx context.Context, prompt string) (text string, ok bool, err error)
}

// modelsAPI is the subset of *genai.Models used by the service.
type modelsAPI interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiService struct {
	models     modelsAPI
	modelName  string
	embedModel string
	log        *zap.Logger
}

func NewGeminiService(ctx context.Context, apiKey, modelName, embedModel string, log *zap.Logger) (GeminiService, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return newGeminiService(client.Models, modelName, embedModel, log), nil
}

func newGeminiService(models modelsAPI, modelName, embedModel string, log *zap.Logger) *geminiService {
	return &geminiService{
		models:     models,
		modelName:  modelName,
		embedModel: embedModel,
		log:        logger.WithFields(log, zap.String(logger.FieldModel, modelName)),
	}
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	text = truncateRunes(text, maxEmbeddingChars)

	result, err := g.models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 || result.Embeddings[0] == nil {
		return nil, errors.New("embedding response missing values")
	}

	values := result.Embeddings[0].Values
	if len(values) == 0 {
		return nil, errors.New("embedding response missing values")
	}

	g.log.Debug("embedding generated",
		zap.String("embedding_model", g.embedModel),
		zap.Int("dimension", len(values)),
	)

	return values, nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, prompt string) (string, bool, error) {
	resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", false, fmt.Errorf("failed to generate text: %w", err)
	}

	text, ok := FirstCandidateText(resp)
	if !ok {
		g.log.Warn("gemini response has no candidate text")
	}

	return text, ok, nil
}

// FirstCandidateText reads candidates[0].content.parts[0].text from resp.
// A nil step along the path or an empty text yields ok == false.
func FirstCandidateText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", false
	}

	part := candidate.Content.Parts[0]
	if part == nil || part.Text == "" {
		return "", false
	}

	return part.Text, true
}

func truncateRunes(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit])
}
