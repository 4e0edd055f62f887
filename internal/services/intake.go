package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/candidate-intake/internal/logger"
	"alfredoptarigan/candidate-intake/internal/models"
)

// NoEvaluationFallback is returned as the evaluation when the model response
// carries no candidate text.
const NoEvaluationFallback = "No evaluation received."

const (
	DefaultSearchLimit = 5
	MaxSearchLimit     = 50
)

// Submission is one application form: profile fields plus the résumé bytes.
type Submission struct {
	Name       string
	Email      string
	LinkedIn   string
	Skills     string
	Experience string
	Resume     []byte
}

type IntakeService interface {
	Process(ctx context.Context, submission Submission) (*models.UploadResponse, error)
	Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error)
}

type intakeService struct {
	pdfParser     PDFParserService
	geminiService GeminiService
	qdrantService QdrantService
	promptBuilder *PromptBuilder
	dimension     int
	log           *zap.Logger
}

func NewIntakeService(
	pdfParser PDFParserService,
	geminiService GeminiService,
	qdrantService QdrantService,
	dimension int,
	log *zap.Logger,
) IntakeService {
	return &intakeService{
		pdfParser:     pdfParser,
		geminiService: geminiService,
		qdrantService: qdrantService,
		promptBuilder: NewPromptBuilder(),
		dimension:     dimension,
		log:           logger.WithFields(log),
	}
}

// Process runs extraction, embedding, upsert and evaluation in order.
// The first failing step ends the run.
func (s *intakeService) Process(ctx context.Context, submission Submission) (*models.UploadResponse, error) {
	log := s.log.With(zap.String(logger.FieldEmail, submission.Email))

	// nil means no file part at all; an empty file goes on to extraction.
	if submission.Resume == nil {
		return nil, NewIntakeError(ErrBadRequest, "No file uploaded", nil)
	}
	if strings.TrimSpace(submission.Email) == "" {
		return nil, NewIntakeError(ErrBadRequest, "Email is required", nil)
	}

	// Step 1: Extract résumé text
	log.Info("extracting resume text", zap.Int("bytes", len(submission.Resume)))
	text, err := s.pdfParser.ExtractText(submission.Resume)
	if err != nil || text == "" {
		log.Warn("text extraction failed", zap.Error(err))
		return nil, NewIntakeError(ErrExtraction, "Failed to extract text from PDF.", err)
	}

	// Step 2: Embed
	log.Info("generating embedding", zap.Int("characters", len(text)))
	embedding, err := s.embed(ctx, text)
	if err != nil {
		log.Error("embedding failed", zap.Error(err))
		return nil, err
	}

	// Step 3: Store
	log.Info("upserting candidate vector")
	err = s.qdrantService.UpsertCandidate(ctx, CandidateRecord{
		Email:      submission.Email,
		Name:       submission.Name,
		LinkedIn:   submission.LinkedIn,
		Skills:     submission.Skills,
		Experience: submission.Experience,
		Embedding:  embedding,
	})
	if err != nil {
		log.Error("vector upsert failed", zap.Error(err))
		return nil, NewIntakeError(ErrUpstream, "Failed to store candidate embedding.", err)
	}

	// Step 4: Evaluate
	log.Info("requesting evaluation")
	evaluation, ok, err := s.geminiService.GenerateText(ctx, s.promptBuilder.BuildCandidateEvaluationPrompt(text))
	if err != nil {
		log.Error("evaluation failed", zap.Error(err))
		return nil, NewIntakeError(ErrUpstream, "Failed to generate candidate evaluation.", err)
	}
	if !ok {
		evaluation = NoEvaluationFallback
	}

	log.Info("candidate processed")

	return &models.UploadResponse{
		Success: true,
		Profile: models.CandidateProfile{
			Text:       text,
			Name:       submission.Name,
			Email:      submission.Email,
			LinkedIn:   submission.LinkedIn,
			Skills:     submission.Skills,
			Experience: submission.Experience,
		},
		Evaluation: evaluation,
	}, nil
}

// Search embeds the query and returns the closest stored candidates.
func (s *intakeService) Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	query = s.promptBuilder.BuildSearchQuery(query)
	if query == "" {
		return nil, NewIntakeError(ErrBadRequest, "Query is required", nil)
	}

	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	embedding, err := s.embed(ctx, query)
	if err != nil {
		return nil, err
	}

	matches, err := s.qdrantService.SearchCandidates(ctx, embedding, limit)
	if err != nil {
		s.log.Error("candidate search failed", zap.Error(err))
		return nil, NewIntakeError(ErrUpstream, "Failed to search candidates.", err)
	}

	results := make([]models.SearchResult, 0, len(matches))
	for _, match := range matches {
		results = append(results, models.SearchResult{
			Email:    match.Email,
			Name:     match.Name,
			LinkedIn: match.LinkedIn,
			Score:    match.Score,
		})
	}

	return results, nil
}

func (s *intakeService) embed(ctx context.Context, text string) ([]float32, error) {
	embedding, err := s.geminiService.GenerateEmbedding(ctx, text)
	if err != nil {
		return nil, NewIntakeError(ErrEmbedding, "Embedding generation failed.", err)
	}

	if len(embedding) != s.dimension {
		return nil, NewIntakeError(
			ErrDimensionMismatch,
			"Generated embeddings do not match vector index dimension.",
			fmt.Errorf("got %d values, index expects %d", len(embedding), s.dimension),
		)
	}

	return embedding, nil
}
