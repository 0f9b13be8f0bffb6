package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mohitcdry/automatic-recruitment-system/internal/models"
)

type JobRepository interface {
	Create(job *models.JobOpening) error
	FindByID(id uuid.UUID) (*models.JobOpening, error)
	FindAll() ([]models.JobOpening, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Create implements JobRepository.
func (r *jobRepository) Create(job *models.JobOpening) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job opening: %w", err)
	}
	return nil
}

// FindByID implements JobRepository.
func (r *jobRepository) FindByID(id uuid.UUID) (*models.JobOpening, error) {
	var job models.JobOpening
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("job opening not found")
		}
		return nil, fmt.Errorf("failed to find job opening: %w", err)
	}
	return &job, nil
}

// FindAll implements JobRepository.
func (r *jobRepository) FindAll() ([]models.JobOpening, error) {
	var jobs []models.JobOpening
	if err := r.db.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list job openings: %w", err)
	}
	return jobs, nil
}
