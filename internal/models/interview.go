package models

import (
	"time"

	"github.com/google/uuid"
)

type InterviewStatus string

const (
	InterviewActive    InterviewStatus = "active"
	InterviewConcluded InterviewStatus = "concluded"
	InterviewReported  InterviewStatus = "reported"
)

// Message is one entry of the conversation history passed back to the model
// on every turn. Role is "system", "model" or "user".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Turn is one completed question/answer exchange.
type Turn struct {
	Question       string `json:"question"`
	Answer         string `json:"answer"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
}

type InterviewSession struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID uuid.UUID       `gorm:"type:uuid;not null;index" json:"candidate_id"`
	Status      InterviewStatus `gorm:"not null;default:'active'" json:"status"`
	// History and Turns are JSON-encoded; the session row is the only
	// cross-request state the service keeps.
	History     string     `gorm:"type:jsonb;default:'[]'" json:"-"`
	Turns       string     `gorm:"type:jsonb;default:'[]'" json:"-"`
	StartedAt   time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"started_at"`
	ConcludedAt *time.Time `json:"concluded_at,omitempty"`

	// Report fields, populated once the evaluation runs.
	InterviewScore *int    `json:"interview_score,omitempty"`
	Strengths      *string `gorm:"type:text" json:"strengths,omitempty"`
	Weaknesses     *string `gorm:"type:text" json:"weaknesses,omitempty"`
	Decision       *string `gorm:"type:text" json:"decision,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Candidate Candidate `gorm:"foreignKey:CandidateID" json:"-"`
}

func (InterviewSession) TableName() string {
	return "interview_sessions"
}
