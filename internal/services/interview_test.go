package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mohitcdry/automatic-recruitment-system/internal/config"
	"github.com/mohitcdry/automatic-recruitment-system/internal/models"
)

func newInterviewFixture(t *testing.T, gemini *stubGemini, speech *stubSpeech, cfg config.InterviewConfig) (InterviewService, *stubInterviewRepo, *stubCandidateRepo, uuid.UUID) {
	t.Helper()

	candidateRepo := newStubCandidateRepo()
	interviewRepo := newStubInterviewRepo()

	candidateID := uuid.New()
	require.NoError(t, candidateRepo.Create(&models.Candidate{
		ID:         candidateID,
		Name:       "Jane Doe",
		ResumeText: "Backend engineer with Go and Postgres experience.",
		Status:     models.StatusInvited,
	}))

	svc := NewInterviewService(interviewRepo, candidateRepo, gemini, speech, cfg, 3, zap.NewNop())
	return svc, interviewRepo, candidateRepo, candidateID
}

func defaultInterviewConfig() config.InterviewConfig {
	return config.InterviewConfig{
		MaxDuration: 8 * time.Minute,
		MaxTurns:    10,
		AnswerTime:  45 * time.Second,
	}
}

func TestInterviewStart(t *testing.T) {
	gemini := &stubGemini{response: "Tell me about yourself."}
	speech := &stubSpeech{audio: []byte("mp3")}
	svc, interviewRepo, _, candidateID := newInterviewFixture(t, gemini, speech, defaultInterviewConfig())

	result, err := svc.Start(context.Background(), candidateID)
	require.NoError(t, err)

	assert.Equal(t, "Tell me about yourself.", result.Question)
	assert.Equal(t, []byte("mp3"), result.QuestionAudio)
	assert.False(t, result.Concluded)
	assert.Equal(t, TierQuality, gemini.lastTier)

	session := interviewRepo.sessions[result.Session.ID]
	require.NotNil(t, session)
	assert.Equal(t, models.InterviewActive, session.Status)
	assert.Equal(t, candidateID, session.CandidateID)

	history, err := getHistory(session)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "system", history[0].Role)
	assert.Contains(t, history[0].Content, "Jane Doe")
	assert.Contains(t, history[0].Content, "Go and Postgres")
	assert.Equal(t, "model", history[1].Role)
}

func TestInterviewStartRequiresResumeText(t *testing.T) {
	candidateRepo := newStubCandidateRepo()
	candidateID := uuid.New()
	require.NoError(t, candidateRepo.Create(&models.Candidate{ID: candidateID, Name: "Jane"}))

	svc := NewInterviewService(newStubInterviewRepo(), candidateRepo, &stubGemini{}, &stubSpeech{}, defaultInterviewConfig(), 3, zap.NewNop())

	_, err := svc.Start(context.Background(), candidateID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "screening must complete first")
}

func TestInterviewTurnExchange(t *testing.T) {
	gemini := &stubGemini{chatReplies: []string{"Tell me about yourself.", "What did you build with Go?"}}
	speech := &stubSpeech{audio: []byte("mp3")}
	svc, _, _, candidateID := newInterviewFixture(t, gemini, speech, defaultInterviewConfig())

	start, err := svc.Start(context.Background(), candidateID)
	require.NoError(t, err)

	result, err := svc.SubmitTurn(context.Background(), start.Session.ID, TurnInput{
		AnswerText:     "I build payment services in Go.",
		ElapsedSeconds: 30,
	})
	require.NoError(t, err)

	assert.False(t, result.Concluded)
	assert.Equal(t, "What did you build with Go?", result.Question)
	assert.Equal(t, "I build payment services in Go.", result.Answer)
	assert.Equal(t, 1, result.TurnCount)

	turns, err := getTurns(result.Session)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "Tell me about yourself.", turns[0].Question)
	assert.Equal(t, 30, turns[0].ElapsedSeconds)
}

func TestInterviewTurnTranscribesAudio(t *testing.T) {
	gemini := &stubGemini{response: "Next question."}
	speech := &stubSpeech{audio: []byte("mp3"), transcript: "I worked at a fintech startup."}
	svc, _, _, candidateID := newInterviewFixture(t, gemini, speech, defaultInterviewConfig())

	start, err := svc.Start(context.Background(), candidateID)
	require.NoError(t, err)

	result, err := svc.SubmitTurn(context.Background(), start.Session.ID, TurnInput{
		Audio:            []byte("webm-bytes"),
		AudioContentType: "audio/webm",
	})
	require.NoError(t, err)

	assert.Equal(t, "I worked at a fintech startup.", result.Answer)
	assert.Equal(t, 1, speech.recogCalls)
}

func TestInterviewTurnEmptyAnswer(t *testing.T) {
	gemini := &stubGemini{response: "Question."}
	svc, _, _, candidateID := newInterviewFixture(t, gemini, &stubSpeech{audio: []byte("mp3")}, defaultInterviewConfig())

	start, err := svc.Start(context.Background(), candidateID)
	require.NoError(t, err)

	_, err = svc.SubmitTurn(context.Background(), start.Session.ID, TurnInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "answer is empty")
}

func TestInterviewConcludesOnTurnLimit(t *testing.T) {
	cfg := defaultInterviewConfig()
	cfg.MaxTurns = 2

	gemini := &stubGemini{response: "Another question."}
	speech := &stubSpeech{audio: []byte("mp3")}
	svc, interviewRepo, _, candidateID := newInterviewFixture(t, gemini, speech, cfg)

	start, err := svc.Start(context.Background(), candidateID)
	require.NoError(t, err)

	first, err := svc.SubmitTurn(context.Background(), start.Session.ID, TurnInput{AnswerText: "Answer one."})
	require.NoError(t, err)
	assert.False(t, first.Concluded)

	second, err := svc.SubmitTurn(context.Background(), start.Session.ID, TurnInput{AnswerText: "Answer two."})
	require.NoError(t, err)
	assert.True(t, second.Concluded)
	assert.Equal(t, closingRemark, second.Question)
	assert.Equal(t, 2, second.TurnCount)

	session := interviewRepo.sessions[start.Session.ID]
	assert.Equal(t, models.InterviewConcluded, session.Status)
	require.NotNil(t, session.ConcludedAt)

	// Further turns are refused.
	_, err = svc.SubmitTurn(context.Background(), start.Session.ID, TurnInput{AnswerText: "One more?"})
	require.Error(t, err)
}

func TestInterviewConcludesOnTimeLimit(t *testing.T) {
	cfg := defaultInterviewConfig()
	cfg.MaxDuration = 8 * time.Minute

	gemini := &stubGemini{response: "Opening question."}
	speech := &stubSpeech{audio: []byte("mp3")}
	svc, interviewRepo, _, candidateID := newInterviewFixture(t, gemini, speech, cfg)

	start, err := svc.Start(context.Background(), candidateID)
	require.NoError(t, err)

	// Backdate the session past the cap.
	session := interviewRepo.sessions[start.Session.ID]
	session.StartedAt = time.Now().Add(-9 * time.Minute)

	result, err := svc.SubmitTurn(context.Background(), start.Session.ID, TurnInput{AnswerText: "A long answer."})
	require.NoError(t, err)
	assert.True(t, result.Concluded)
	assert.Equal(t, closingRemark, result.Question)
}

func TestGenerateReport(t *testing.T) {
	gemini := &stubGemini{
		chatReplies: []string{"Tell me about yourself."},
		response:    `{"strengths": ["Clear communicator", "Solid Go knowledge"], "weaknesses": "Limited cloud exposure", "interview_score": 78, "status": "Shortlisted"}`,
	}
	speech := &stubSpeech{audio: []byte("mp3")}
	svc, _, candidateRepo, candidateID := newInterviewFixture(t, gemini, speech, defaultInterviewConfig())

	start, err := svc.Start(context.Background(), candidateID)
	require.NoError(t, err)
	_, err = svc.SubmitTurn(context.Background(), start.Session.ID, TurnInput{AnswerText: "I build Go services."})
	require.NoError(t, err)

	session, err := svc.GenerateReport(context.Background(), start.Session.ID)
	require.NoError(t, err)

	assert.Equal(t, models.InterviewReported, session.Status)
	require.NotNil(t, session.InterviewScore)
	assert.Equal(t, 78, *session.InterviewScore)
	assert.Equal(t, "Shortlisted", deref(session.Decision))
	assert.Contains(t, deref(session.Strengths), "Clear communicator")
	assert.Contains(t, deref(session.Weaknesses), "Limited cloud exposure")

	// The transcript reaches the evaluation prompt.
	assert.Contains(t, gemini.lastPrompt, "candidate: I build Go services.")

	// The candidate record reflects the outcome.
	assert.Equal(t, models.StatusShortlisted, candidateRepo.interview[candidateID])
	candidate, err := candidateRepo.FindByID(candidateID)
	require.NoError(t, err)
	require.NotNil(t, candidate.InterviewScore)
	assert.Equal(t, 78, *candidate.InterviewScore)
	assert.Contains(t, deref(candidate.Review), "Clear communicator")
}

func TestGenerateReportScoreOutOfRange(t *testing.T) {
	gemini := &stubGemini{
		chatReplies: []string{"Question."},
		response:    `{"strengths": ["x"], "weaknesses": ["y"], "interview_score": 140, "status": "Hold"}`,
	}
	svc, _, _, candidateID := newInterviewFixture(t, gemini, &stubSpeech{audio: []byte("mp3")}, defaultInterviewConfig())

	start, err := svc.Start(context.Background(), candidateID)
	require.NoError(t, err)
	_, err = svc.SubmitTurn(context.Background(), start.Session.ID, TurnInput{AnswerText: "Answer."})
	require.NoError(t, err)

	_, err = svc.GenerateReport(context.Background(), start.Session.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestGenerateReportEmptyTranscript(t *testing.T) {
	gemini := &stubGemini{response: "Opening question."}
	svc, interviewRepo, _, candidateID := newInterviewFixture(t, gemini, &stubSpeech{audio: []byte("mp3")}, defaultInterviewConfig())

	start, err := svc.Start(context.Background(), candidateID)
	require.NoError(t, err)

	// Strip the history down to the system message only.
	session := interviewRepo.sessions[start.Session.ID]
	require.NoError(t, setHistory(session, []models.Message{{Role: "system", Content: "instructions"}}))

	_, err = svc.GenerateReport(context.Background(), start.Session.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transcript is empty")
}

func TestNormalizeDecision(t *testing.T) {
	cases := []struct {
		input        string
		wantDecision string
		wantStatus   models.CandidateStatus
	}{
		{"Shortlisted", "Shortlisted", models.StatusShortlisted},
		{"shortlist", "Shortlisted", models.StatusShortlisted},
		{"  REJECTED ", "Reject", models.StatusRejected},
		{"reject", "Reject", models.StatusRejected},
		{"Hold", "Hold", models.StatusHold},
		{"maybe later", "Hold", models.StatusHold},
		{"", "Hold", models.StatusHold},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			decision, status := normalizeDecision(tc.input)
			assert.Equal(t, tc.wantDecision, decision)
			assert.Equal(t, tc.wantStatus, status)
		})
	}
}

func TestRenderTextReport(t *testing.T) {
	score := 78
	decision := "Shortlisted"
	strengths := "Clear communicator\nSolid Go knowledge"
	weaknesses := "Limited cloud exposure"

	session := &models.InterviewSession{
		InterviewScore: &score,
		Decision:       &decision,
		Strengths:      &strengths,
		Weaknesses:     &weaknesses,
	}

	svc := NewInterviewService(newStubInterviewRepo(), newStubCandidateRepo(), &stubGemini{}, &stubSpeech{}, defaultInterviewConfig(), 3, zap.NewNop())

	report, err := svc.RenderTextReport(session, "Jane Doe")
	require.NoError(t, err)

	assert.Contains(t, report, "Interview Evaluation Report")
	assert.Contains(t, report, "Candidate Name: Jane Doe")
	assert.Contains(t, report, "Score: 78/100")
	assert.Contains(t, report, "Decision: Shortlisted")
	assert.Contains(t, report, "- Clear communicator")
	assert.Contains(t, report, "- Solid Go knowledge")
	assert.Contains(t, report, "- Limited cloud exposure")
}

func TestRenderTextReportWithoutReport(t *testing.T) {
	svc := NewInterviewService(newStubInterviewRepo(), newStubCandidateRepo(), &stubGemini{}, &stubSpeech{}, defaultInterviewConfig(), 3, zap.NewNop())

	_, err := svc.RenderTextReport(&models.InterviewSession{}, "Jane Doe")
	require.Error(t, err)
}

func TestBuildReview(t *testing.T) {
	review := buildReview([]string{"a", "b"}, []string{"c"})
	assert.Equal(t, "Strengths: a; b Weaknesses: c", review)

	assert.Equal(t, "Strengths: a", buildReview([]string{"a"}, nil))
	assert.Equal(t, "", buildReview(nil, nil))
}
