package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
)

// UsageSource is what the reporter reads on every tick.
type UsageSource interface {
	Usage() dashboard.UsageSnapshot
}

// Scheduler periodically logs how often each binding ran.
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    UsageSource
	interval  time.Duration
	logger    *logrus.Entry
	last      dashboard.UsageSnapshot
}

// New creates a new Scheduler. A zero interval disables reporting.
func New(source UsageSource, interval time.Duration, logger *logrus.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		source:    source,
		interval:  interval,
		logger:    logger.WithField("component", "scheduler"),
	}
}

// Start schedules the report job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info("usage reporting disabled; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().WaitForSchedule().Do(s.report)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// report logs the counters and their change since the previous tick. The job
// runs in singleton mode, so last is never written concurrently.
func (s *Scheduler) report() {
	now := s.source.Usage()
	s.logger.WithFields(logrus.Fields{
		"line":         now.Line,
		"scatter":      now.Scatter,
		"cross_filter": now.CrossFilter,
		"rejected":     now.Rejected,
		"since_last":   now.Total() - s.last.Total(),
	}).Info("binding usage")
	s.last = now
}
