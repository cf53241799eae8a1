package jobs

import (
	"petreserve-backend/internal/config"
	"petreserve-backend/internal/logger"
	"petreserve-backend/internal/repository"
	"petreserve-backend/internal/service"
)

// JobRunner coordinates the scheduled hygiene jobs. Neither job is required
// for correctness (expiry is evaluated at verification time); they keep
// reporting honest and the queue free of abandoned payment windows.
type JobRunner struct {
	repo        repository.ReservationRepository
	transitions service.TransitionService
	config      *config.Config
}

func NewJobRunner(repo repository.ReservationRepository, transitions service.TransitionService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		repo:        repo,
		transitions: transitions,
		config:      cfg,
	}
}

// Config exposes the loaded configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution).
func (jr *JobRunner) RunAll() {
	jr.MarkStaleHandoverCodes()
	jr.CancelAbandonedPayments()
}
