package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"alfredoptarigan/candidate-intake/internal/logger"
)

type QdrantService interface {
	EnsureCollection(ctx context.Context) error
	UpsertCandidate(ctx context.Context, record CandidateRecord) error
	SearchCandidates(ctx context.Context, queryEmbedding []float32, limit int) ([]CandidateMatch, error)
	Close() error
}

// CandidateRecord is one point in the collection, identified by email.
type CandidateRecord struct {
	Email      string
	Name       string
	LinkedIn   string
	Skills     string
	Experience string
	Embedding  []float32
}

type CandidateMatch struct {
	Email    string
	Name     string
	LinkedIn string
	Score    float32
}

// pointsAPI is the subset of *qdrant.Client used by the service.
type pointsAPI interface {
	CollectionExists(ctx context.Context, collectionName string) (bool, error)
	CreateCollection(ctx context.Context, request *qdrant.CreateCollection) error
	Upsert(ctx context.Context, request *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
	Query(ctx context.Context, request *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
	Close() error
}

type qdrantService struct {
	client         pointsAPI
	collectionName string
	vectorSize     uint64
	log            *zap.Logger
}

func NewQdrantService(urlStr, apiKey, collectionName string, vectorSize int, log *zap.Logger) (QdrantService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port unless the URL says otherwise
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return newQdrantService(client, collectionName, vectorSize, log), nil
}

func newQdrantService(client pointsAPI, collectionName string, vectorSize int, log *zap.Logger) *qdrantService {
	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     uint64(vectorSize),
		log:            logger.WithFields(log, zap.String(logger.FieldCollection, collectionName)),
	}
}

// CandidatePointID derives a stable point ID from an email, so a resubmission
// overwrites the previous vector instead of adding a second one.
func CandidatePointID(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+normalized)).String()
}

// EnsureCollection implements QdrantService.
func (q *qdrantService) EnsureCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		q.log.Info("collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	q.log.Info("collection created", zap.Uint64("vector_size", q.vectorSize))
	return nil
}

// UpsertCandidate implements QdrantService.
func (q *qdrantService) UpsertCandidate(ctx context.Context, record CandidateRecord) error {
	if strings.TrimSpace(record.Email) == "" {
		return errors.New("candidate email is required")
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(CandidatePointID(record.Email)),
		Vectors: qdrant.NewVectors(record.Embedding...),
		Payload: qdrant.NewValueMap(map[string]any{
			"email":      record.Email,
			"name":       record.Name,
			"linkedin":   record.LinkedIn,
			"skills":     record.Skills,
			"experience": record.Experience,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Wait:           qdrant.PtrOf(true),
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	q.log.Debug("candidate upserted", zap.String(logger.FieldEmail, record.Email))
	return nil
}

// SearchCandidates implements QdrantService.
func (q *qdrantService) SearchCandidates(ctx context.Context, queryEmbedding []float32, limit int) ([]CandidateMatch, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	matches := make([]CandidateMatch, 0, len(points))
	for _, point := range points {
		payload := point.GetPayload()
		matches = append(matches, CandidateMatch{
			Email:    payload["email"].GetStringValue(),
			Name:     payload["name"].GetStringValue(),
			LinkedIn: payload["linkedin"].GetStringValue(),
			Score:    point.GetScore(),
		})
	}

	return matches, nil
}

func (q *qdrantService) Close() error {
	return q.client.Close()
}
