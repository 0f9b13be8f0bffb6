package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mohitcdry/automatic-recruitment-system/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueCandidate(candidateID uuid.UUID)
}

type worker struct {
	candidateRepo    repositories.CandidateRepository
	screeningService ScreeningService
	jobQueue         chan uuid.UUID
	concurrency      int
	pollInterval     time.Duration
	wg               sync.WaitGroup
	stopChan         chan struct{}
	log              *zap.Logger
}

func NewWorker(
	candidateRepo repositories.CandidateRepository,
	screeningService ScreeningService,
	concurrency int,
	pollInterval time.Duration,
	log *zap.Logger,
) Worker {
	return &worker{
		candidateRepo:    candidateRepo,
		screeningService: screeningService,
		jobQueue:         make(chan uuid.UUID, 100),
		concurrency:      concurrency,
		pollInterval:     pollInterval,
		stopChan:         make(chan struct{}),
		log:              log,
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.log.Info("starting screening workers", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	// The poller picks up candidates that were queued while the server was
	// down or whose enqueue was lost.
	w.wg.Add(1)
	go w.pollPendingCandidates(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.log.Info("stopping screening workers")
	close(w.stopChan)
	w.wg.Wait()
}

// EnqueueCandidate implements Worker.
func (w *worker) EnqueueCandidate(candidateID uuid.UUID) {
	select {
	case w.jobQueue <- candidateID:
		w.log.Debug("candidate enqueued", zap.String("candidate_id", candidateID.String()))
	case <-w.stopChan:
		w.log.Warn("worker stopped, cannot enqueue candidate",
			zap.String("candidate_id", candidateID.String()))
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log := w.log.With(zap.Int("worker", workerID))

	for {
		select {
		case <-w.stopChan:
			log.Debug("worker stopped")
			return
		case candidateID := <-w.jobQueue:
			if err := w.screeningService.ScreenCandidate(ctx, candidateID); err != nil {
				log.Error("screening failed",
					zap.String("candidate_id", candidateID.String()),
					zap.Error(err),
				)
			}
		}
	}
}

func (w *worker) pollPendingCandidates(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			pending, err := w.candidateRepo.FindPending(10)
			if err != nil {
				w.log.Warn("failed to fetch pending candidates", zap.Error(err))
				continue
			}

			if len(pending) > 0 {
				w.log.Info("found pending candidates", zap.Int("count", len(pending)))
			}

			for _, candidate := range pending {
				w.EnqueueCandidate(candidate.ID)
			}
		}
	}
}
