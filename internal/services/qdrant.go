package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

type QdrantService interface {
	InitCollection() error
	UpsertResumeChunk(ctx context.Context, point ResumePoint, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, excludeCandidateID string, limit int) ([]ResumeMatch, error)
	DeleteCandidate(ctx context.Context, candidateID string) error
}

// ResumePoint is one resume chunk stored in the vector collection.
type ResumePoint struct {
	CandidateID  string
	JobOpeningID string
	Name         string
	Chunk        int
	Text         string
}

// ResumeMatch is a similarity hit, already deduplicated per candidate.
type ResumeMatch struct {
	CandidateID string
	Name        string
	Score       float32
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantService(urlStr, apiKey, collectionName string) (QdrantService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, not the REST one.
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

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 dimension
	}, nil
}

// InitCollection implements QdrantService.
func (q *qdrantService) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
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

	return nil
}

// resumePointID derives a stable UUID from the candidate and chunk index.
// Re-indexing the same resume overwrites its own points instead of piling
// up duplicates, and a backfill run is idempotent.
func resumePointID(candidateID string, chunk int) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("resume:%s:%d", candidateID, chunk)))
}

// UpsertResumeChunk implements QdrantService.
func (q *qdrantService) UpsertResumeChunk(ctx context.Context, p ResumePoint, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(resumePointID(p.CandidateID, p.Chunk).String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"candidate_id":   p.CandidateID,
			"job_opening_id": p.JobOpeningID,
			"name":           p.Name,
			"chunk":          p.Chunk,
			"text":           p.Text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar implements QdrantService. Chunks of the same candidate can
// all match, so results collapse to the best score per candidate.
func (q *qdrantService) SearchSimilar(ctx context.Context, queryEmbedding []float32, excludeCandidateID string, limit int) ([]ResumeMatch, error) {
	var filter *qdrant.Filter
	if excludeCandidateID != "" {
		filter = &qdrant.Filter{
			MustNot: []*qdrant.Condition{
				qdrant.NewMatch("candidate_id", excludeCandidateID),
			},
		}
	}

	// Over-fetch so deduplication still fills the requested limit.
	fetch := uint64(limit * 4)
	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(fetch),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	seen := make(map[string]bool)
	var results []ResumeMatch
	for _, point := range searchResult {
		candidateID := payloadString(point.Payload, "candidate_id")
		if candidateID == "" || seen[candidateID] {
			continue
		}
		seen[candidateID] = true

		results = append(results, ResumeMatch{
			CandidateID: candidateID,
			Name:        payloadString(point.Payload, "name"),
			Score:       point.Score,
		})
		if len(results) >= limit {
			break
		}
	}

	return results, nil
}

// DeleteCandidate implements QdrantService.
func (q *qdrantService) DeleteCandidate(ctx context.Context, candidateID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("candidate_id", candidateID),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete candidate points: %w", err)
	}

	return nil
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if v, ok := payload[key]; ok {
		if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
			return s.StringValue
		}
	}
	return ""
}
