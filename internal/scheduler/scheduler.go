package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/jewarner57/weather-pages/internal/geo"
)

// Scheduler periodically prunes expired entries from the geocode cache.
type Scheduler struct {
	scheduler *gocron.Scheduler
	cache     *geo.Cache
	interval  time.Duration
	log       *zap.Logger
}

// New creates a Scheduler.
func New(cache *geo.Cache, interval time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		cache:     cache,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the prune job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	_, err := s.scheduler.Every(interval).Do(func() {
		removed := s.cache.Prune()
		if removed > 0 {
			s.log.Info("pruned geocode cache", zap.Int("removed", removed))
		}
	})
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
