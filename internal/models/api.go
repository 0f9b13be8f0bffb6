package models

type CreateJobRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type UploadedResume struct {
	CandidateID string `json:"candidate_id"`
	Filename    string `json:"filename"`
	Status      string `json:"status"`
}

type UploadFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

type UploadResumesResponse struct {
	Accepted []UploadedResume `json:"accepted"`
	Rejected []UploadFailure  `json:"rejected,omitempty"`
}

// ExportRecord is one row of the CSV/JSON export. Every field is always
// present; interview fields are empty until a report exists.
type ExportRecord struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	MatchScore     int    `json:"match_score"`
	Category       string `json:"category"`
	InterviewScore string `json:"interview_score"`
	Review         string `json:"review"`
	Status         string `json:"status"`
}

type StartInterviewRequest struct {
	CandidateID string `json:"candidate_id" validate:"required,uuid"`
}

type InterviewTurnResponse struct {
	SessionID     string `json:"session_id"`
	Question      string `json:"question,omitempty"`
	QuestionAudio string `json:"question_audio,omitempty"` // base64 MP3
	Answer        string `json:"answer,omitempty"`
	Concluded     bool   `json:"concluded"`
	TurnCount     int    `json:"turn_count"`
}

type InterviewReportResponse struct {
	SessionID      string   `json:"session_id"`
	CandidateName  string   `json:"candidate_name"`
	InterviewScore int      `json:"interview_score"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	Decision       string   `json:"decision"`
}

type InvitationResult struct {
	Sent    []string          `json:"sent"`
	Skipped []string          `json:"skipped,omitempty"`
	Failed  map[string]string `json:"failed,omitempty"`
}

type SimilarCandidate struct {
	CandidateID string  `json:"candidate_id"`
	Name        string  `json:"name"`
	Score       float32 `json:"score"`
}
