package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mohitcdry/automatic-recruitment-system/internal/models"
	"github.com/mohitcdry/automatic-recruitment-system/internal/repositories"
	"github.com/mohitcdry/automatic-recruitment-system/internal/services"
)

type UploadHandler struct {
	candidateRepo  repositories.CandidateRepository
	jobRepo        repositories.JobRepository
	storageService services.StorageService
	worker         services.Worker
	maxFileSize    int64
}

func NewUploadHandler(
	candidateRepo repositories.CandidateRepository,
	jobRepo repositories.JobRepository,
	storageService services.StorageService,
	worker services.Worker,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		candidateRepo:  candidateRepo,
		jobRepo:        jobRepo,
		storageService: storageService,
		worker:         worker,
		maxFileSize:    maxFileSize,
	}
}

// HandleUploadResumes handles POST /jobs/:id/resumes. Accepts a multipart
// batch under the "resumes" field; every valid file becomes a queued
// candidate and is picked up by the screening workers.
func (h *UploadHandler) HandleUploadResumes(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job opening not found",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File["resumes"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resume files uploaded. Please upload 'resumes' as PDF, DOCX or TXT files.",
		})
	}

	var response models.UploadResumesResponse

	for _, file := range files {
		if file.Size > h.maxFileSize {
			response.Rejected = append(response.Rejected, models.UploadFailure{
				Filename: file.Filename,
				Error:    fmt.Sprintf("file too large, max size: %d bytes", h.maxFileSize),
			})
			continue
		}

		fileType, err := services.FileTypeFromName(file.Filename)
		if err != nil {
			response.Rejected = append(response.Rejected, models.UploadFailure{
				Filename: file.Filename,
				Error:    err.Error(),
			})
			continue
		}

		filename, filePath, err := h.storageService.SaveFile(file, "resume")
		if err != nil {
			response.Rejected = append(response.Rejected, models.UploadFailure{
				Filename: file.Filename,
				Error:    fmt.Sprintf("failed to save file: %v", err),
			})
			continue
		}

		candidate := models.Candidate{
			ID:           uuid.New(),
			JobOpeningID: jobID,
			Filename:     filename,
			OriginalName: file.Filename,
			FileType:     fileType,
			FilePath:     filePath,
			Status:       models.StatusQueued,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}

		if err := h.candidateRepo.Create(&candidate); err != nil {
			// Cleanup stored file if database insert fails
			h.storageService.DeleteFile(filename)
			response.Rejected = append(response.Rejected, models.UploadFailure{
				Filename: file.Filename,
				Error:    fmt.Sprintf("failed to create candidate record: %v", err),
			})
			continue
		}

		h.worker.EnqueueCandidate(candidate.ID)

		response.Accepted = append(response.Accepted, models.UploadedResume{
			CandidateID: candidate.ID.String(),
			Filename:    candidate.OriginalName,
			Status:      string(candidate.Status),
		})
	}

	if len(response.Accepted) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(response)
	}

	return c.Status(fiber.StatusAccepted).JSON(response)
}
