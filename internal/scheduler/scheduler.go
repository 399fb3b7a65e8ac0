// Package scheduler runs the daily brief task on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/newsbrief/internal/logger"
)

// Task is the unit of scheduled work.
type Task func(ctx context.Context)

// Service schedules the daily task in a fixed timezone.
type Service struct {
	cron   *cron.Cron
	spec   string
	loc    *time.Location
	task   Task
	logger logger.Interface
}

// New creates a scheduler service. The spec is a standard 5-field cron
// expression evaluated in loc.
func New(spec string, loc *time.Location, task Task, log logger.Interface) (*Service, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("parse cron spec %q: %w", spec, err)
	}

	return &Service{
		cron:   cron.New(cron.WithLocation(loc)),
		spec:   spec,
		loc:    loc,
		task:   task,
		logger: log.WithComponent("scheduler"),
	}, nil
}

// Start runs the task once immediately, then on every scheduled tick until
// ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() {
		s.logger.Info("Scheduled run starting")
		s.task(ctx)
	}); err != nil {
		return fmt.Errorf("register scheduled task: %w", err)
	}

	// Catch up on today's brief before waiting for the next tick.
	s.logger.Info("Running initial task")
	s.task(ctx)

	s.cron.Start()
	s.logger.Info("Scheduler started", "spec", s.spec)

	<-ctx.Done()
	return s.Stop()
}

// Stop halts the schedule, waiting for a running task to finish.
func (s *Service) Stop() error {
	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
	return nil
}

// NextRun reports when the next scheduled run would fire after t.
func (s *Service) NextRun(t time.Time) (time.Time, error) {
	sched, err := cron.ParseStandard(s.spec)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(t.In(s.loc)), nil
}
