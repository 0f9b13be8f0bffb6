package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mohitcdry/automatic-recruitment-system/internal/models"
	"github.com/mohitcdry/automatic-recruitment-system/internal/repositories"
)

type ScreeningService interface {
	ScreenCandidate(ctx context.Context, candidateID uuid.UUID) error
}

type screeningService struct {
	candidateRepo repositories.CandidateRepository
	jobRepo       repositories.JobRepository
	geminiService GeminiService
	qdrantService QdrantService
	resumeParser  ResumeParserService
	promptBuilder *PromptBuilder
	chunker       TextChunker
	maxRetries    int
	log           *zap.Logger
}

func NewScreeningService(
	candidateRepo repositories.CandidateRepository,
	jobRepo repositories.JobRepository,
	geminiService GeminiService,
	qdrantService QdrantService,
	resumeParser ResumeParserService,
	maxRetries int,
	log *zap.Logger,
) ScreeningService {
	return &screeningService{
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		geminiService: geminiService,
		qdrantService: qdrantService,
		resumeParser:  resumeParser,
		promptBuilder: NewPromptBuilder(),
		chunker:       NewTextChunker(),
		maxRetries:    maxRetries,
		log:           log,
	}
}

// ScreeningResult is the structured output the scoring model must return.
type ScreeningResult struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Score   int    `json:"score"`
	Domain  string `json:"domain"`
	Comment string `json:"comment"`
}

// ScreenCandidate runs the full screening pipeline for one uploaded resume:
// extract text, score it against the job description, validate the model
// output, persist the result and index the resume for similarity search.
func (s *screeningService) ScreenCandidate(ctx context.Context, candidateID uuid.UUID) error {
	if err := s.candidateRepo.UpdateStatus(candidateID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log := s.log.With(zap.String("candidate_id", candidateID.String()))
	log.Info("starting screening")

	candidate, err := s.candidateRepo.FindByID(candidateID)
	if err != nil {
		s.candidateRepo.UpdateError(candidateID, err.Error())
		return fmt.Errorf("failed to get candidate: %w", err)
	}

	job, err := s.jobRepo.FindByID(candidate.JobOpeningID)
	if err != nil {
		s.candidateRepo.UpdateError(candidateID, fmt.Sprintf("job opening not found: %v", err))
		return fmt.Errorf("failed to get job opening: %w", err)
	}

	resumeText, err := s.resumeParser.ExtractText(candidate.FilePath, candidate.FileType)
	if err != nil {
		s.candidateRepo.UpdateError(candidateID, fmt.Sprintf("failed to extract resume text: %v", err))
		return fmt.Errorf("failed to extract resume text: %w", err)
	}

	result, err := s.scoreResume(ctx, resumeText, job.Description)
	if err != nil {
		s.candidateRepo.UpdateError(candidateID, fmt.Sprintf("failed to score resume: %v", err))
		return fmt.Errorf("failed to score resume: %w", err)
	}

	update := &repositories.ScreeningUpdateData{
		Name:       result.Name,
		Email:      result.Email,
		MatchScore: result.Score,
		Category:   result.Domain,
		Comment:    result.Comment,
		ResumeText: resumeText,
	}
	if err := s.candidateRepo.UpdateScreeningResult(candidateID, update); err != nil {
		return fmt.Errorf("failed to save screening result: %w", err)
	}

	// Index for similar-candidate search. Failure here does not fail the
	// screening; the score already landed.
	if err := s.indexResume(ctx, candidate, result.Name, resumeText); err != nil {
		log.Warn("failed to index resume embedding", zap.Error(err))
	}

	log.Info("screening completed",
		zap.Int("score", result.Score),
		zap.String("category", result.Domain),
	)
	return nil
}

func (s *screeningService) scoreResume(ctx context.Context, resumeText, jobDescription string) (*ScreeningResult, error) {
	prompt := s.promptBuilder.BuildScreeningPrompt(resumeText, jobDescription)

	response, err := s.geminiService.GenerateTextWithRetry(ctx, TierFast, prompt, 0, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate screening evaluation: %w", err)
	}

	var result ScreeningResult
	if err := parseJSONResponse(response, &result); err != nil {
		return nil, fmt.Errorf("failed to parse screening response: %w", err)
	}

	if err := validateScreeningResult(&result); err != nil {
		return nil, fmt.Errorf("invalid screening result: %w", err)
	}

	return &result, nil
}

// validateScreeningResult enforces the output contract: score within 0-100
// and a category from the enumerated list. Unknown categories are normalized
// rather than rejected; an out-of-range score means the model did not follow
// the rubric and the caller retries.
func validateScreeningResult(result *ScreeningResult) error {
	if result.Score < 0 || result.Score > 100 {
		return fmt.Errorf("score %d out of range 0-100", result.Score)
	}

	if result.Name == "" {
		result.Name = "N/A"
	}
	if result.Email == "" {
		result.Email = "N/A"
	}

	result.Domain = strings.TrimSpace(result.Domain)
	if !models.ValidCategory(result.Domain) {
		result.Domain = models.CategoryUncategorized
	}

	return nil
}

func (s *screeningService) indexResume(ctx context.Context, candidate *models.Candidate, name, resumeText string) error {
	chunks := s.chunker.ChunkText(resumeText, 1000, 200)
	if len(chunks) == 0 {
		return fmt.Errorf("no chunks produced from resume text")
	}

	for i, chunk := range chunks {
		embedding, err := s.geminiService.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}

		point := ResumePoint{
			CandidateID:  candidate.ID.String(),
			JobOpeningID: candidate.JobOpeningID.String(),
			Name:         name,
			Chunk:        i,
			Text:         chunk,
		}
		if err := s.qdrantService.UpsertResumeChunk(ctx, point, embedding); err != nil {
			return fmt.Errorf("failed to upsert chunk %d: %w", i, err)
		}
	}

	return nil
}
