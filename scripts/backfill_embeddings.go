package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/mohitcdry/automatic-recruitment-system/internal/config"
	"github.com/mohitcdry/automatic-recruitment-system/internal/models"
	"github.com/mohitcdry/automatic-recruitment-system/internal/repositories"
	"github.com/mohitcdry/automatic-recruitment-system/internal/services"
)

// Re-embeds the stored resume text of every screened candidate. Useful after
// switching the embedding model or wiping the vector collection.
func main() {
	log.Println("Starting embedding backfill...")

	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	geminiService, err := services.NewGeminiService(cfg.Gemini, zap.NewNop())
	if err != nil {
		log.Fatalf("Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("Failed to initialize Qdrant: %v", err)
	}
	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("Failed to initialize collection: %v", err)
	}

	jobRepo := repositories.NewJobRepository(db)
	candidateRepo := repositories.NewCandidateRepository(db)
	chunker := services.NewTextChunker()

	ctx := context.Background()

	jobs, err := jobRepo.FindAll()
	if err != nil {
		log.Fatalf("Failed to list job openings: %v", err)
	}

	var indexed, skipped int
	for _, job := range jobs {
		candidates, err := candidateRepo.FindByJob(job.ID)
		if err != nil {
			log.Fatalf("Failed to list candidates for job %s: %v", job.ID, err)
		}

		for _, candidate := range candidates {
			if candidate.ResumeText == "" || candidate.Status == models.StatusQueued ||
				candidate.Status == models.StatusProcessing || candidate.Status == models.StatusFailed {
				skipped++
				continue
			}

			// Drop stale points before re-indexing.
			if err := qdrantService.DeleteCandidate(ctx, candidate.ID.String()); err != nil {
				log.Printf("Failed to delete stale points for %s: %v", candidate.ID, err)
			}

			chunks := chunker.ChunkText(candidate.ResumeText, 1000, 200)
			for i, chunk := range chunks {
				embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
				if err != nil {
					log.Printf("Failed to embed chunk %d of %s: %v", i, candidate.ID, err)
					continue
				}

				point := services.ResumePoint{
					CandidateID:  candidate.ID.String(),
					JobOpeningID: candidate.JobOpeningID.String(),
					Name:         candidate.Name,
					Chunk:        i,
					Text:         chunk,
				}
				if err := qdrantService.UpsertResumeChunk(ctx, point, embedding); err != nil {
					log.Printf("Failed to upsert chunk %d of %s: %v", i, candidate.ID, err)
				}
			}

			indexed++
			log.Printf("Re-indexed %s (%d chunks)", candidate.ID, len(chunks))
		}
	}

	log.Printf("Backfill complete: %d candidates indexed, %d skipped", indexed, skipped)
}
