package handlers

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mohitcdry/automatic-recruitment-system/internal/models"
	"github.com/mohitcdry/automatic-recruitment-system/internal/repositories"
	"github.com/mohitcdry/automatic-recruitment-system/internal/services"
)

type InterviewHandler struct {
	interviewService services.InterviewService
	candidateRepo    repositories.CandidateRepository
}

func NewInterviewHandler(
	interviewService services.InterviewService,
	candidateRepo repositories.CandidateRepository,
) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
		candidateRepo:    candidateRepo,
	}
}

// HandleStart handles POST /interviews
func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	var req models.StartInterviewRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	candidateID, err := uuid.Parse(req.CandidateID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate_id format",
		})
	}

	result, err := h.interviewService.Start(c.Context(), candidateID)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to start interview: %v", err),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(turnResponse(result))
}

// HandleTurn handles POST /interviews/:id/turns. The answer arrives either
// as an "audio" multipart file (WAV from the browser recorder) or as an
// "answer" text field.
func (h *InterviewHandler) HandleTurn(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	input := services.TurnInput{
		AnswerText:     c.FormValue("answer"),
		ElapsedSeconds: queryFormInt(c, "elapsed_seconds"),
	}

	if file, err := c.FormFile("audio"); err == nil && file != nil {
		audio, err := readMultipartFile(file.Open())
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to read audio upload: %v", err),
			})
		}
		input.Audio = audio
		input.AudioContentType = file.Header.Get("Content-Type")
	}

	result, err := h.interviewService.SubmitTurn(c.Context(), sessionID, input)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to process turn: %v", err),
		})
	}

	return c.JSON(turnResponse(result))
}

// HandleGetSession handles GET /interviews/:id
func (h *InterviewHandler) HandleGetSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	session, err := h.interviewService.GetSession(sessionID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Interview session not found",
		})
	}

	return c.JSON(session)
}

// HandleReport handles POST /interviews/:id/report
func (h *InterviewHandler) HandleReport(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	session, err := h.interviewService.GenerateReport(c.Context(), sessionID)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to generate report: %v", err),
		})
	}

	return c.JSON(session)
}

// HandleTextReport handles GET /interviews/:id/report.txt
func (h *InterviewHandler) HandleTextReport(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	session, err := h.interviewService.GetSession(sessionID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Interview session not found",
		})
	}

	candidate, err := h.candidateRepo.FindByID(session.CandidateID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate not found",
		})
	}

	name := candidate.Name
	if name == "" || name == "N/A" {
		name = "Candidate"
	}

	report, err := h.interviewService.RenderTextReport(session, name)
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s_interview_report.txt"`, name))
	return c.SendString(report)
}

func turnResponse(result *services.TurnResult) models.InterviewTurnResponse {
	resp := models.InterviewTurnResponse{
		SessionID: result.Session.ID.String(),
		Question:  result.Question,
		Answer:    result.Answer,
		Concluded: result.Concluded,
		TurnCount: result.TurnCount,
	}
	if len(result.QuestionAudio) > 0 {
		resp.QuestionAudio = base64.StdEncoding.EncodeToString(result.QuestionAudio)
	}
	return resp
}

func readMultipartFile(f io.ReadCloser, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func queryFormInt(c *fiber.Ctx, key string) int {
	var value int
	if _, err := fmt.Sscanf(c.FormValue(key), "%d", &value); err != nil {
		return 0
	}
	return value
}
