package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mohitcdry/automatic-recruitment-system/internal/models"
	"github.com/mohitcdry/automatic-recruitment-system/internal/repositories"
)

// PagesHandler renders the server-side HTML pages of the HR browser UI.
type PagesHandler struct {
	jobRepo       repositories.JobRepository
	candidateRepo repositories.CandidateRepository
	threshold     int
	answerSeconds int
}

func NewPagesHandler(
	jobRepo repositories.JobRepository,
	candidateRepo repositories.CandidateRepository,
	threshold int,
	answerSeconds int,
) *PagesHandler {
	return &PagesHandler{
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		threshold:     threshold,
		answerSeconds: answerSeconds,
	}
}

// HandleIndex renders GET /
func (h *PagesHandler) HandleIndex(c *fiber.Ctx) error {
	jobs, err := h.jobRepo.FindAll()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list job openings")
	}

	return c.Render("index", fiber.Map{
		"Title": "AI-Powered Applicant Tracking System",
		"Jobs":  jobs,
	})
}

// HandleJobPage renders GET /jobs/:id/page with the ranked candidate table
// grouped by category.
func (h *PagesHandler) HandleJobPage(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid job ID")
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "job opening not found")
	}

	candidates, err := h.candidateRepo.FindByJob(jobID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list candidates")
	}

	byCategory := make(map[string][]models.Candidate)
	for _, candidate := range candidates {
		if candidate.Category == "" {
			continue
		}
		byCategory[candidate.Category] = append(byCategory[candidate.Category], candidate)
	}

	return c.Render("job", fiber.Map{
		"Title":      job.Title,
		"Job":        job,
		"Candidates": candidates,
		"ByCategory": byCategory,
		"Threshold":  h.threshold,
	})
}

// HandleInterviewPage renders GET /interview?candidate=<id>, the voice
// interview room.
func (h *PagesHandler) HandleInterviewPage(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Query("candidate"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing or invalid candidate query parameter")
	}

	candidate, err := h.candidateRepo.FindByID(candidateID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "candidate not found")
	}

	return c.Render("interview", fiber.Map{
		"Title":         "AI HR Screening Interview",
		"Candidate":     candidate,
		"AnswerSeconds": h.answerSeconds,
	})
}
