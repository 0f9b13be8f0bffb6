package models

import (
	"time"

	"github.com/google/uuid"
)

type CandidateStatus string

const (
	StatusQueued     CandidateStatus = "queued"
	StatusProcessing CandidateStatus = "processing"
	StatusScored     CandidateStatus = "scored"
	StatusFailed     CandidateStatus = "failed"
	StatusInvited    CandidateStatus = "invited"

	// Final decisions set from the interview report.
	StatusShortlisted CandidateStatus = "shortlisted"
	StatusHold        CandidateStatus = "hold"
	StatusRejected    CandidateStatus = "rejected"
)

// Categories the screening model may assign. Anything outside this list is
// normalized to CategoryUncategorized.
const CategoryUncategorized = "Uncategorized"

var Categories = []string{
	"Light Industry",
	"Hospitality",
	"Customer Service",
	"Manufacturing",
	"Finance/Accounting",
	"Information Technology",
}

// ValidCategory reports whether the screening model returned one of the
// enumerated job domains.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

type Candidate struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobOpeningID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"job_opening_id"`
	Filename       string          `gorm:"type:text" json:"filename"`
	OriginalName   string          `gorm:"type:text" json:"original_name"`
	FileType       string          `gorm:"type:text" json:"file_type"`
	FilePath       string          `gorm:"type:text" json:"-"`
	ResumeText     string          `gorm:"type:text" json:"-"`
	Name           string          `gorm:"type:text" json:"name"`
	Email          string          `gorm:"type:text" json:"email"`
	MatchScore     *int            `json:"match_score,omitempty"`
	Category       string          `gorm:"type:text" json:"category"`
	Comment        string          `gorm:"type:text" json:"comment"`
	InterviewScore *int            `json:"interview_score,omitempty"`
	Review         *string         `gorm:"type:text" json:"review,omitempty"`
	Status         CandidateStatus `gorm:"not null;default:'queued'" json:"status"`
	ErrorMessage   *string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt      time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	JobOpening JobOpening `gorm:"foreignKey:JobOpeningID" json:"-"`
}

func (Candidate) TableName() string {
	return "candidates"
}
