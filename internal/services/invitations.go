package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mohitcdry/automatic-recruitment-system/internal/models"
	"github.com/mohitcdry/automatic-recruitment-system/internal/repositories"
)

type InvitationService interface {
	SendInvitations(ctx context.Context, jobID uuid.UUID) (*models.InvitationResult, error)
}

type invitationService struct {
	candidateRepo repositories.CandidateRepository
	jobRepo       repositories.JobRepository
	geminiService GeminiService
	mailer        Mailer
	promptBuilder *PromptBuilder
	threshold     int
	interviewLink string
	log           *zap.Logger
}

func NewInvitationService(
	candidateRepo repositories.CandidateRepository,
	jobRepo repositories.JobRepository,
	geminiService GeminiService,
	mailer Mailer,
	threshold int,
	baseURL string,
	log *zap.Logger,
) InvitationService {
	return &invitationService{
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		geminiService: geminiService,
		mailer:        mailer,
		promptBuilder: NewPromptBuilder(),
		threshold:     threshold,
		interviewLink: strings.TrimRight(baseURL, "/") + "/interview",
		log:           log,
	}
}

// SendInvitations implements InvitationService. Each shortlisted candidate
// with an email gets a personalized invitation; failures are collected per
// recipient rather than aborting the batch.
func (s *invitationService) SendInvitations(ctx context.Context, jobID uuid.UUID) (*models.InvitationResult, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job opening: %w", err)
	}

	candidates, err := s.candidateRepo.FindShortlisted(jobID, s.threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to list shortlisted candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no shortlisted candidates for this job opening")
	}

	subject := fmt.Sprintf("Invitation: AI Interview for %s", job.Title)
	result := &models.InvitationResult{
		Failed: make(map[string]string),
	}

	for _, candidate := range candidates {
		email := strings.TrimSpace(candidate.Email)
		if email == "" || email == "N/A" {
			result.Skipped = append(result.Skipped, candidate.Name)
			continue
		}

		name := candidate.Name
		if name == "" || name == "N/A" {
			name = "Candidate"
		}

		body, err := s.buildBody(ctx, name, job.Title, candidate.ID)
		if err != nil {
			result.Failed[email] = err.Error()
			continue
		}

		if err := s.mailer.Send(email, subject, body); err != nil {
			result.Failed[email] = err.Error()
			continue
		}

		if err := s.candidateRepo.UpdateStatus(candidate.ID, models.StatusInvited); err != nil {
			s.log.Warn("invitation sent but status update failed",
				zap.String("candidate_id", candidate.ID.String()),
				zap.Error(err),
			)
		}

		result.Sent = append(result.Sent, email)
	}

	s.log.Info("invitations processed",
		zap.String("job_id", jobID.String()),
		zap.Int("sent", len(result.Sent)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("failed", len(result.Failed)),
	)

	return result, nil
}

func (s *invitationService) buildBody(ctx context.Context, name, jobTitle string, candidateID uuid.UUID) (string, error) {
	link := fmt.Sprintf("%s?candidate=%s", s.interviewLink, candidateID)
	prompt := s.promptBuilder.BuildInvitationPrompt(name, jobTitle, link)

	body, err := s.geminiService.GenerateText(ctx, TierFast, prompt, 0.4)
	if err != nil {
		return "", fmt.Errorf("failed to generate invitation body: %w", err)
	}

	return strings.TrimSpace(body), nil
}
