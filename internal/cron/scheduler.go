// Package cron runs the periodic maintenance jobs.
package cron

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"zenpay/internal/repository"
)

// Scheduler manages the background jobs.
type Scheduler struct {
	cron      *cron.Cron
	intents   *repository.IntentRepository
	intentTTL time.Duration
	logger    *zap.Logger
}

// New creates a scheduler. Intents pending longer than intentTTL get
// expired.
func New(intents *repository.IntentRepository, intentTTL time.Duration, logger *zap.Logger) *Scheduler {
	if intentTTL <= 0 {
		intentTTL = time.Hour
	}
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		intents:   intents,
		intentTTL: intentTTL,
		logger:    logger,
	}
}

// Start registers and starts all jobs.
func (s *Scheduler) Start() {
	// Expire stale intents - every 5 minutes
	s.cron.AddFunc("0 */5 * * * *", s.expireStaleIntents)

	s.cron.Start()
	s.logger.Info("cron scheduler started")
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("cron scheduler stopped")
}

func (s *Scheduler) expireStaleIntents() {
	n, err := s.intents.ExpireStale(s.intentTTL)
	if err != nil {
		s.logger.Error("intent expiry failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("expired stale intents", zap.Int64("count", n))
	}
}
