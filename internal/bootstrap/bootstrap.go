// Package bootstrap constructs the external-service clients once at startup.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/candidate-intake/internal/config"
	"alfredoptarigan/candidate-intake/internal/services"
)

// Dependencies holds the long-lived clients shared by every request.
type Dependencies struct {
	Intake services.IntakeService
	Qdrant services.QdrantService
}

func (d *Dependencies) Close() error {
	if d == nil || d.Qdrant == nil {
		return nil
	}
	return d.Qdrant.Close()
}

// Build creates the Gemini and Qdrant clients, makes sure the collection
// exists and returns the intake service on top of them.
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Dependencies, error) {
	geminiService, err := services.NewGeminiService(
		ctx,
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.EmbeddingModel,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini: %w", err)
	}
	log.Info("✅ Gemini AI initialized", zap.String("model", cfg.Gemini.Model))

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		cfg.Embedding.Dimension,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize qdrant: %w", err)
	}

	if err := qdrantService.EnsureCollection(ctx); err != nil {
		qdrantService.Close()
		return nil, fmt.Errorf("failed to initialize qdrant collection: %w", err)
	}
	log.Info("✅ Qdrant initialized", zap.String("collection", cfg.Qdrant.Collection))

	intake := services.NewIntakeService(
		services.NewPDFParserService(),
		geminiService,
		qdrantService,
		cfg.Embedding.Dimension,
		log,
	)

	return &Dependencies{Intake: intake, Qdrant: qdrantService}, nil
}
