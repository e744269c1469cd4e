package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-line-bot/internal/weather"
)

// ForecastPusher sends the scheduled forecast.
type ForecastPusher interface {
	PushScheduledForecast(ctx context.Context) error
}

// Scheduler pushes the daily forecast on a cron expression evaluated in Tokyo.
type Scheduler struct {
	scheduler *gocron.Scheduler
	pusher    ForecastPusher
	spec      string
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler. An empty spec leaves it idle.
func New(spec string, timeout time.Duration, pusher ForecastPusher, logger *slog.Logger) *Scheduler {
	s := gocron.NewScheduler(weather.Tokyo)
	s.SingletonModeAll()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Scheduler{
		scheduler: s,
		pusher:    pusher,
		spec:      spec,
		timeout:   timeout,
		logger:    logger,
	}
}

// Start registers the forecast job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.spec == "" {
		s.logger.Info("scheduler: no forecast schedule configured; nothing to schedule")
		return nil
	}

	if _, err := s.scheduler.Cron(s.spec).Do(s.Run); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler: started", "cron", s.spec)
	return nil
}

// Run performs one scheduled push. Failures are logged; the next run is unaffected.
func (s *Scheduler) Run() {
	s.logger.Info("scheduler: running forecast push")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.pusher.PushScheduledForecast(ctx); err != nil {
		s.logger.Error("scheduler: forecast push failed", "error", err)
		return
	}
	s.logger.Info("scheduler: completed forecast push")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
