package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mohitcdry/automatic-recruitment-system/internal/models"
	"github.com/mohitcdry/automatic-recruitment-system/internal/repositories"
)

// stubGemini returns canned responses and records the prompts it saw.
type stubGemini struct {
	response    string
	chatReplies []string
	chatCalls   int
	err         error
	lastPrompt  string
	lastTier    ModelTier
	lastHistory []models.Message
	embedding   []float32
}

func (s *stubGemini) GenerateText(_ context.Context, tier ModelTier, prompt string, _ float32) (string, error) {
	s.lastTier = tier
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGemini) GenerateTextWithRetry(ctx context.Context, tier ModelTier, prompt string, temperature float32, _ int) (string, error) {
	return s.GenerateText(ctx, tier, prompt, temperature)
}

func (s *stubGemini) Chat(_ context.Context, tier ModelTier, history []models.Message, _ float32) (string, error) {
	s.lastTier = tier
	s.lastHistory = history
	if s.err != nil {
		return "", s.err
	}
	if len(s.chatReplies) > 0 {
		reply := s.chatReplies[s.chatCalls%len(s.chatReplies)]
		s.chatCalls++
		return reply, nil
	}
	s.chatCalls++
	return s.response, nil
}

func (s *stubGemini) GenerateEmbedding(_ context.Context, _ string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.embedding != nil {
		return s.embedding, nil
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type stubSpeech struct {
	audio      []byte
	transcript string
	err        error
	synthCalls int
	recogCalls int
	lastText   string
}

func (s *stubSpeech) Synthesize(_ context.Context, text string) ([]byte, error) {
	s.synthCalls++
	s.lastText = text
	if s.err != nil {
		return nil, s.err
	}
	return s.audio, nil
}

func (s *stubSpeech) Recognize(_ context.Context, _ []byte, _ string) (string, error) {
	s.recogCalls++
	if s.err != nil {
		return "", s.err
	}
	return s.transcript, nil
}

type stubQdrant struct {
	points  []ResumePoint
	matches []ResumeMatch
	err     error
}

func (s *stubQdrant) InitCollection() error { return s.err }

func (s *stubQdrant) UpsertResumeChunk(_ context.Context, point ResumePoint, _ []float32) error {
	if s.err != nil {
		return s.err
	}
	s.points = append(s.points, point)
	return nil
}

func (s *stubQdrant) SearchSimilar(_ context.Context, _ []float32, _ string, _ int) ([]ResumeMatch, error) {
	return s.matches, s.err
}

func (s *stubQdrant) DeleteCandidate(_ context.Context, _ string) error { return s.err }

type stubMailer struct {
	sent    []string
	bodies  map[string]string
	failFor map[string]error
}

func (s *stubMailer) Send(to, _, body string) error {
	if err, ok := s.failFor[to]; ok {
		return err
	}
	if s.bodies == nil {
		s.bodies = make(map[string]string)
	}
	s.bodies[to] = body
	s.sent = append(s.sent, to)
	return nil
}

// stubCandidateRepo keeps candidates in memory and records update calls.
type stubCandidateRepo struct {
	candidates  map[uuid.UUID]*models.Candidate
	shortlisted []models.Candidate
	statuses    map[uuid.UUID]models.CandidateStatus
	screening   map[uuid.UUID]*repositories.ScreeningUpdateData
	interview   map[uuid.UUID]models.CandidateStatus
	lastError   string
}

func newStubCandidateRepo() *stubCandidateRepo {
	return &stubCandidateRepo{
		candidates: make(map[uuid.UUID]*models.Candidate),
		statuses:   make(map[uuid.UUID]models.CandidateStatus),
		screening:  make(map[uuid.UUID]*repositories.ScreeningUpdateData),
		interview:  make(map[uuid.UUID]models.CandidateStatus),
	}
}

func (s *stubCandidateRepo) Create(c *models.Candidate) error {
	s.candidates[c.ID] = c
	return nil
}

func (s *stubCandidateRepo) FindByID(id uuid.UUID) (*models.Candidate, error) {
	c, ok := s.candidates[id]
	if !ok {
		return nil, fmt.Errorf("candidate not found")
	}
	return c, nil
}

func (s *stubCandidateRepo) FindByJob(_ uuid.UUID) ([]models.Candidate, error) {
	var out []models.Candidate
	for _, c := range s.candidates {
		out = append(out, *c)
	}
	return out, nil
}

func (s *stubCandidateRepo) FindShortlisted(_ uuid.UUID, _ int) ([]models.Candidate, error) {
	return s.shortlisted, nil
}

func (s *stubCandidateRepo) FindPending(_ int) ([]models.Candidate, error) {
	return nil, nil
}

func (s *stubCandidateRepo) UpdateStatus(id uuid.UUID, status models.CandidateStatus) error {
	s.statuses[id] = status
	return nil
}

func (s *stubCandidateRepo) UpdateScreeningResult(id uuid.UUID, data *repositories.ScreeningUpdateData) error {
	s.screening[id] = data
	return nil
}

func (s *stubCandidateRepo) UpdateInterviewResult(id uuid.UUID, score int, review string, status models.CandidateStatus) error {
	s.interview[id] = status
	if c, ok := s.candidates[id]; ok {
		c.InterviewScore = &score
		c.Review = &review
		c.Status = status
	}
	return nil
}

func (s *stubCandidateRepo) UpdateError(id uuid.UUID, errorMsg string) error {
	s.lastError = errorMsg
	s.statuses[id] = models.StatusFailed
	return nil
}

type stubJobRepo struct {
	jobs map[uuid.UUID]*models.JobOpening
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{jobs: make(map[uuid.UUID]*models.JobOpening)}
}

func (s *stubJobRepo) Create(j *models.JobOpening) error {
	s.jobs[j.ID] = j
	return nil
}

func (s *stubJobRepo) FindByID(id uuid.UUID) (*models.JobOpening, error) {
	j, ok := s.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job opening not found")
	}
	return j, nil
}

func (s *stubJobRepo) FindAll() ([]models.JobOpening, error) {
	var out []models.JobOpening
	for _, j := range s.jobs {
		out = append(out, *j)
	}
	return out, nil
}

type stubInterviewRepo struct {
	sessions map[uuid.UUID]*models.InterviewSession
	saves    int
}

func newStubInterviewRepo() *stubInterviewRepo {
	return &stubInterviewRepo{sessions: make(map[uuid.UUID]*models.InterviewSession)}
}

func (s *stubInterviewRepo) Create(session *models.InterviewSession) error {
	s.sessions[session.ID] = session
	return nil
}

func (s *stubInterviewRepo) FindByID(id uuid.UUID) (*models.InterviewSession, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("interview session not found")
	}
	return session, nil
}

func (s *stubInterviewRepo) FindByCandidate(candidateID uuid.UUID) (*models.InterviewSession, error) {
	for _, session := range s.sessions {
		if session.CandidateID == candidateID {
			return session, nil
		}
	}
	return nil, fmt.Errorf("interview session not found")
}

func (s *stubInterviewRepo) Save(session *models.InterviewSession) error {
	s.sessions[session.ID] = session
	s.saves++
	return nil
}

// stubResumeParser returns fixed text regardless of the file.
type stubResumeParser struct {
	text string
	err  error
}

func (s *stubResumeParser) ExtractText(_ string, _ string) (string, error) {
	return s.text, s.err
}
