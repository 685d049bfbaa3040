package usecase

import (
	"context"
	"time"

	"SEOAutomation/internal/domain"
	"SEOAutomation/internal/ports"
)

// Scheduler wires the ticker driver with the publication pipeline.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	settings func() domain.Settings
	maxItems int
}

// NewScheduler returns a helper to start/stop the recurring run. settings is read on every trigger
// so each run sees the current configuration.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, settings func() domain.Settings, maxItems int) *Scheduler {
	return &Scheduler{driver: driver, pipeline: pipeline, settings: settings, maxItems: maxItems}
}

// Start registers the pipeline with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil || s.settings == nil {
		return nil
	}

	job := func(trigger time.Time) {
		result, ok := s.pipeline.TryRun(ctx, s.settings(), s.maxItems)
		if !ok {
			s.pipeline.logger.Warn("scheduled run skipped: another run is in progress", "trigger", trigger)
			return
		}
		s.pipeline.logger.Info("scheduled run complete",
			"run_id", result.RunID,
			"trigger", trigger,
			"published", result.Published,
		)
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
