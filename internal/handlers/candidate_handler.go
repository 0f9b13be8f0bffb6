package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mohitcdry/automatic-recruitment-system/internal/models"
	"github.com/mohitcdry/automatic-recruitment-system/internal/repositories"
	"github.com/mohitcdry/automatic-recruitment-system/internal/services"
)

const (
	defaultSimilarLimit = 5
	maxSimilarLimit     = 20
)

type CandidateHandler struct {
	candidateRepo repositories.CandidateRepository
	geminiService services.GeminiService
	qdrantService services.QdrantService
	exportService services.ExportService
	threshold     int
}

func NewCandidateHandler(
	candidateRepo repositories.CandidateRepository,
	geminiService services.GeminiService,
	qdrantService services.QdrantService,
	exportService services.ExportService,
	threshold int,
) *CandidateHandler {
	return &CandidateHandler{
		candidateRepo: candidateRepo,
		geminiService: geminiService,
		qdrantService: qdrantService,
		exportService: exportService,
		threshold:     threshold,
	}
}

// HandleListCandidates handles GET /jobs/:id/candidates
func (h *CandidateHandler) HandleListCandidates(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	var candidates []models.Candidate
	if c.QueryBool("shortlisted") {
		candidates, err = h.candidateRepo.FindShortlisted(jobID, h.threshold)
	} else {
		candidates, err = h.candidateRepo.FindByJob(jobID)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list candidates",
		})
	}

	return c.JSON(fiber.Map{"candidates": candidates})
}

// HandleGetCandidate handles GET /candidates/:id
func (h *CandidateHandler) HandleGetCandidate(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate ID format",
		})
	}

	candidate, err := h.candidateRepo.FindByID(candidateID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate not found",
		})
	}

	return c.JSON(candidate)
}

// HandleExport handles GET /jobs/:id/export?format=csv|json. Exports the
// shortlist sorted by match score.
func (h *CandidateHandler) HandleExport(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	candidates, err := h.candidateRepo.FindShortlisted(jobID, h.threshold)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list shortlisted candidates",
		})
	}

	records := h.exportService.BuildRecords(candidates)

	format := strings.ToLower(c.Query("format", "csv"))
	switch format {
	case "json":
		return c.JSON(fiber.Map{"candidates": records})
	case "csv":
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="shortlisted_candidates.csv"`)

		var buf strings.Builder
		if err := h.exportService.WriteCSV(&buf, records); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to build CSV: %v", err),
			})
		}
		return c.SendString(buf.String())
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unsupported export format, use csv or json",
		})
	}
}

// HandleSimilar handles GET /candidates/:id/similar. Embeds the candidate's
// resume and searches the vector store for nearby resumes.
func (h *CandidateHandler) HandleSimilar(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate ID format",
		})
	}

	candidate, err := h.candidateRepo.FindByID(candidateID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate not found",
		})
	}

	if strings.TrimSpace(candidate.ResumeText) == "" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Candidate has not been screened yet",
		})
	}

	embedding, err := h.geminiService.GenerateEmbedding(c.Context(), candidate.ResumeText)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to embed resume: %v", err),
		})
	}

	limit := c.QueryInt("limit", defaultSimilarLimit)
	if limit < 1 {
		limit = defaultSimilarLimit
	}
	if limit > maxSimilarLimit {
		limit = maxSimilarLimit
	}
	matches, err := h.qdrantService.SearchSimilar(c.Context(), embedding, candidateID.String(), limit)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to search similar candidates: %v", err),
		})
	}

	similar := make([]models.SimilarCandidate, 0, len(matches))
	for _, m := range matches {
		similar = append(similar, models.SimilarCandidate{
			CandidateID: m.CandidateID,
			Name:        m.Name,
			Score:       m.Score,
		})
	}

	return c.JSON(fiber.Map{"similar": similar})
}
