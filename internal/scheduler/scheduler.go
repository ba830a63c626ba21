package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"rentalops-backend/internal/config"
	"rentalops-backend/internal/jobs"
	"rentalops-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
	cfg  config.SchedulerConfig
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner, cfg config.SchedulerConfig) *Scheduler {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
		cfg:  cfg,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	// The reminder cadence must stay well under one hour or the trailing
	// reminder windows get missed entirely.
	_, err := s.cron.AddFunc(s.cfg.ReturnReminders, s.jobs.SendReturnReminders)
	if err != nil {
		logger.Error("Failed to register SendReturnReminders job", "error", err)
	}

	_, err = s.cron.AddFunc(s.cfg.OverdueAlerts, s.jobs.SendOverdueAlerts)
	if err != nil {
		logger.Error("Failed to register SendOverdueAlerts job", "error", err)
	}

	_, err = s.cron.AddFunc(s.cfg.ReconcileLedger, s.jobs.ReconcileLedger)
	if err != nil {
		logger.Error("Failed to register ReconcileLedger job", "error", err)
	}

	logger.Info("All cron jobs registered successfully")
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}
