package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mohitcdry/automatic-recruitment-system/internal/config"
	"github.com/mohitcdry/automatic-recruitment-system/internal/models"
	"github.com/mohitcdry/automatic-recruitment-system/internal/repositories"
)

const closingRemark = "Thank you for your time, that concludes our interview. " +
	"The HR team will review your session and get back to you soon."

type InterviewService interface {
	Start(ctx context.Context, candidateID uuid.UUID) (*TurnResult, error)
	SubmitTurn(ctx context.Context, sessionID uuid.UUID, input TurnInput) (*TurnResult, error)
	GenerateReport(ctx context.Context, sessionID uuid.UUID) (*models.InterviewSession, error)
	GetSession(sessionID uuid.UUID) (*models.InterviewSession, error)
	RenderTextReport(session *models.InterviewSession, candidateName string) (string, error)
}

// TurnInput carries one candidate answer: either recorded audio to be
// transcribed or already-typed text.
type TurnInput struct {
	AnswerText       string
	Audio            []byte
	AudioContentType string
	ElapsedSeconds   int
}

// TurnResult is what the UI needs after a turn: the next question, its
// synthesized audio and whether the session has concluded.
type TurnResult struct {
	Session       *models.InterviewSession
	Question      string
	QuestionAudio []byte
	Answer        string
	Concluded     bool
	TurnCount     int
}

type interviewService struct {
	interviewRepo repositories.InterviewRepository
	candidateRepo repositories.CandidateRepository
	geminiService GeminiService
	speechService SpeechService
	promptBuilder *PromptBuilder
	maxDuration   time.Duration
	maxTurns      int
	maxRetries    int
	log           *zap.Logger
}

func NewInterviewService(
	interviewRepo repositories.InterviewRepository,
	candidateRepo repositories.CandidateRepository,
	geminiService GeminiService,
	speechService SpeechService,
	cfg config.InterviewConfig,
	maxRetries int,
	log *zap.Logger,
) InterviewService {
	return &interviewService{
		interviewRepo: interviewRepo,
		candidateRepo: candidateRepo,
		geminiService: geminiService,
		speechService: speechService,
		promptBuilder: NewPromptBuilder(),
		maxDuration:   cfg.MaxDuration,
		maxTurns:      cfg.MaxTurns,
		maxRetries:    maxRetries,
		log:           log,
	}
}

// Start implements InterviewService. The candidate must have been screened
// already so the resume text is on record.
func (s *interviewService) Start(ctx context.Context, candidateID uuid.UUID) (*TurnResult, error) {
	candidate, err := s.candidateRepo.FindByID(candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	if strings.TrimSpace(candidate.ResumeText) == "" {
		return nil, fmt.Errorf("candidate has no resume text on record; screening must complete first")
	}

	name := candidate.Name
	if name == "" || name == "N/A" {
		name = "Candidate"
	}

	history := []models.Message{
		{Role: "system", Content: s.promptBuilder.BuildInterviewSystemPrompt(name, candidate.ResumeText)},
	}

	question, err := s.geminiService.Chat(ctx, TierQuality, history, 0.7)
	if err != nil {
		return nil, fmt.Errorf("failed to generate opening question: %w", err)
	}
	history = append(history, models.Message{Role: "model", Content: question})

	audio, err := s.speechService.Synthesize(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize opening question: %w", err)
	}

	session := &models.InterviewSession{
		ID:          uuid.New(),
		CandidateID: candidateID,
		Status:      models.InterviewActive,
		StartedAt:   time.Now(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := setHistory(session, history); err != nil {
		return nil, err
	}
	if err := setTurns(session, nil); err != nil {
		return nil, err
	}

	if err := s.interviewRepo.Create(session); err != nil {
		return nil, fmt.Errorf("failed to create interview session: %w", err)
	}

	s.log.Info("interview started",
		zap.String("session_id", session.ID.String()),
		zap.String("candidate_id", candidateID.String()),
	)

	return &TurnResult{
		Session:       session,
		Question:      question,
		QuestionAudio: audio,
	}, nil
}

// SubmitTurn implements InterviewService. One exchange: transcribe or accept
// the answer, record the turn, then either produce the next question or
// conclude when a session limit is hit.
func (s *interviewService) SubmitTurn(ctx context.Context, sessionID uuid.UUID, input TurnInput) (*TurnResult, error) {
	session, err := s.interviewRepo.FindByID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get interview session: %w", err)
	}

	if session.Status != models.InterviewActive {
		return nil, fmt.Errorf("interview session is already %s", session.Status)
	}

	history, err := getHistory(session)
	if err != nil {
		return nil, err
	}
	turns, err := getTurns(session)
	if err != nil {
		return nil, err
	}

	answer := strings.TrimSpace(input.AnswerText)
	if answer == "" && len(input.Audio) > 0 {
		answer, err = s.speechService.Recognize(ctx, input.Audio, input.AudioContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to recognize answer: %w", err)
		}
	}
	if answer == "" {
		return nil, fmt.Errorf("answer is empty: provide text or audio")
	}

	lastQuestion := lastModelMessage(history)
	history = append(history, models.Message{Role: "user", Content: answer})

	elapsed := input.ElapsedSeconds
	if elapsed < 0 {
		elapsed = 0
	}
	turns = append(turns, models.Turn{
		Question:       lastQuestion,
		Answer:         answer,
		ElapsedSeconds: elapsed,
	})

	concluded := time.Since(session.StartedAt) >= s.maxDuration || len(turns) >= s.maxTurns

	var question string
	if concluded {
		question = closingRemark
		now := time.Now()
		session.Status = models.InterviewConcluded
		session.ConcludedAt = &now
	} else {
		question, err = s.geminiService.Chat(ctx, TierQuality, history, 0.7)
		if err != nil {
			return nil, fmt.Errorf("failed to generate next question: %w", err)
		}
	}
	history = append(history, models.Message{Role: "model", Content: question})

	audio, err := s.speechService.Synthesize(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize question: %w", err)
	}

	if err := setHistory(session, history); err != nil {
		return nil, err
	}
	if err := setTurns(session, turns); err != nil {
		return nil, err
	}
	session.UpdatedAt = time.Now()

	if err := s.interviewRepo.Save(session); err != nil {
		return nil, fmt.Errorf("failed to save interview session: %w", err)
	}

	return &TurnResult{
		Session:       session,
		Question:      question,
		QuestionAudio: audio,
		Answer:        answer,
		Concluded:     concluded,
		TurnCount:     len(turns),
	}, nil
}

// reportResult is the structured output of the evaluation prompt.
type reportResult struct {
	Strengths      stringList `json:"strengths"`
	Weaknesses     stringList `json:"weaknesses"`
	InterviewScore int        `json:"interview_score"`
	Status         string     `json:"status"`
}

// GenerateReport implements InterviewService. Regenerating overwrites the
// previous report.
func (s *interviewService) GenerateReport(ctx context.Context, sessionID uuid.UUID) (*models.InterviewSession, error) {
	session, err := s.interviewRepo.FindByID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get interview session: %w", err)
	}

	candidate, err := s.candidateRepo.FindByID(session.CandidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	history, err := getHistory(session)
	if err != nil {
		return nil, err
	}

	transcript := FormatTranscript(history)
	if strings.TrimSpace(transcript) == "" {
		return nil, fmt.Errorf("interview transcript is empty")
	}

	name := candidate.Name
	if name == "" || name == "N/A" {
		name = "Candidate"
	}

	prompt := s.promptBuilder.BuildReportPrompt(name, transcript)
	response, err := s.geminiService.GenerateTextWithRetry(ctx, TierQuality, prompt, 0.3, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}

	var result reportResult
	if err := parseJSONResponse(response, &result); err != nil {
		return nil, fmt.Errorf("failed to parse report response: %w", err)
	}

	if result.InterviewScore < 0 || result.InterviewScore > 100 {
		return nil, fmt.Errorf("interview score %d out of range 0-100", result.InterviewScore)
	}

	decision, status := normalizeDecision(result.Status)

	strengths := strings.Join(result.Strengths, "\n")
	weaknesses := strings.Join(result.Weaknesses, "\n")

	now := time.Now()
	session.Status = models.InterviewReported
	if session.ConcludedAt == nil {
		session.ConcludedAt = &now
	}
	session.InterviewScore = &result.InterviewScore
	session.Strengths = &strengths
	session.Weaknesses = &weaknesses
	session.Decision = &decision
	session.UpdatedAt = now

	if err := s.interviewRepo.Save(session); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	review := buildReview(result.Strengths, result.Weaknesses)
	if err := s.candidateRepo.UpdateInterviewResult(session.CandidateID, result.InterviewScore, review, status); err != nil {
		return nil, fmt.Errorf("failed to update candidate with interview result: %w", err)
	}

	s.log.Info("interview report generated",
		zap.String("session_id", session.ID.String()),
		zap.Int("score", result.InterviewScore),
		zap.String("decision", decision),
	)

	return session, nil
}

// GetSession implements InterviewService.
func (s *interviewService) GetSession(sessionID uuid.UUID) (*models.InterviewSession, error) {
	return s.interviewRepo.FindByID(sessionID)
}

// RenderTextReport implements InterviewService: the downloadable plain-text
// evaluation document.
func (s *interviewService) RenderTextReport(session *models.InterviewSession, candidateName string) (string, error) {
	if session.InterviewScore == nil {
		return "", fmt.Errorf("no report generated for this session")
	}

	var b strings.Builder
	b.WriteString("Interview Evaluation Report\n")
	b.WriteString("===========================\n")
	fmt.Fprintf(&b, "Candidate Name: %s\n", candidateName)
	fmt.Fprintf(&b, "Score: %d/100\n", *session.InterviewScore)
	fmt.Fprintf(&b, "Decision: %s\n\n", deref(session.Decision))

	b.WriteString("Strengths:\n")
	writeBullets(&b, deref(session.Strengths))

	b.WriteString("\nWeaknesses:\n")
	writeBullets(&b, deref(session.Weaknesses))

	return b.String(), nil
}

func writeBullets(b *strings.Builder, block string) {
	lines := strings.Split(block, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fmt.Fprintf(b, "- %s\n", line)
	}
}

// normalizeDecision maps the free-form decision string onto a candidate
// status. Anything unexpected lands on hold for a human to look at.
func normalizeDecision(decision string) (string, models.CandidateStatus) {
	switch strings.ToLower(strings.TrimSpace(decision)) {
	case "shortlisted", "shortlist":
		return "Shortlisted", models.StatusShortlisted
	case "reject", "rejected":
		return "Reject", models.StatusRejected
	default:
		return "Hold", models.StatusHold
	}
}

func buildReview(strengths, weaknesses []string) string {
	var parts []string
	if len(strengths) > 0 {
		parts = append(parts, "Strengths: "+strings.Join(strengths, "; "))
	}
	if len(weaknesses) > 0 {
		parts = append(parts, "Weaknesses: "+strings.Join(weaknesses, "; "))
	}
	return strings.Join(parts, " ")
}

func lastModelMessage(history []models.Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == "model" {
			return history[i].Content
		}
	}
	return ""
}

func getHistory(session *models.InterviewSession) ([]models.Message, error) {
	var history []models.Message
	if session.History == "" {
		return history, nil
	}
	if err := json.Unmarshal([]byte(session.History), &history); err != nil {
		return nil, fmt.Errorf("failed to decode conversation history: %w", err)
	}
	return history, nil
}

func setHistory(session *models.InterviewSession, history []models.Message) error {
	if history == nil {
		history = []models.Message{}
	}
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode conversation history: %w", err)
	}
	session.History = string(data)
	return nil
}

func getTurns(session *models.InterviewSession) ([]models.Turn, error) {
	var turns []models.Turn
	if session.Turns == "" {
		return turns, nil
	}
	if err := json.Unmarshal([]byte(session.Turns), &turns); err != nil {
		return nil, fmt.Errorf("failed to decode turn log: %w", err)
	}
	return turns, nil
}

func setTurns(session *models.InterviewSession, turns []models.Turn) error {
	if turns == nil {
		turns = []models.Turn{}
	}
	data, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("failed to encode turn log: %w", err)
	}
	session.Turns = string(data)
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
