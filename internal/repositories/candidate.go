package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mohitcdry/automatic-recruitment-system/internal/models"
)

type CandidateRepository interface {
	Create(candidate *models.Candidate) error
	FindByID(id uuid.UUID) (*models.Candidate, error)
	FindByJob(jobID uuid.UUID) ([]models.Candidate, error)
	FindShortlisted(jobID uuid.UUID, threshold int) ([]models.Candidate, error)
	FindPending(limit int) ([]models.Candidate, error)
	UpdateStatus(id uuid.UUID, status models.CandidateStatus) error
	UpdateScreeningResult(id uuid.UUID, data *ScreeningUpdateData) error
	UpdateInterviewResult(id uuid.UUID, score int, review string, status models.CandidateStatus) error
	UpdateError(id uuid.UUID, errorMsg string) error
}

type ScreeningUpdateData struct {
	Name       string
	Email      string
	MatchScore int
	Category   string
	Comment    string
	ResumeText string
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(candidate *models.Candidate) error {
	if err := r.db.Create(candidate).Error; err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	return nil
}

func (r *candidateRepository) FindByID(id uuid.UUID) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.Where("id = ?", id).First(&candidate).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("candidate not found")
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}
	return &candidate, nil
}

func (r *candidateRepository) FindByJob(jobID uuid.UUID) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.
		Where("job_opening_id = ?", jobID).
		Order("match_score DESC NULLS LAST, created_at ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) FindShortlisted(jobID uuid.UUID, threshold int) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.
		Where("job_opening_id = ? AND match_score >= ?", jobID, threshold).
		Order("match_score DESC").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list shortlisted candidates: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) FindPending(limit int) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find pending candidates: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) UpdateStatus(id uuid.UUID, status models.CandidateStatus) error {
	result := r.db.Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("candidate not found")
	}
	return nil
}

func (r *candidateRepository) UpdateScreeningResult(id uuid.UUID, data *ScreeningUpdateData) error {
	result := r.db.Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusScored,
			"name":          data.Name,
			"email":         data.Email,
			"match_score":   data.MatchScore,
			"category":      data.Category,
			"comment":       data.Comment,
			"resume_text":   data.ResumeText,
			"error_message": nil,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update screening result: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("candidate not found")
	}
	return nil
}

func (r *candidateRepository) UpdateInterviewResult(id uuid.UUID, score int, review string, status models.CandidateStatus) error {
	result := r.db.Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"interview_score": score,
			"review":          review,
			"status":          status,
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update interview result: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("candidate not found")
	}
	return nil
}

func (r *candidateRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("candidate not found")
	}
	return nil
}
