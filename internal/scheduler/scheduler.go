package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/stormwind/internal/config"
	"github.com/i474232898/stormwind/internal/weather"
)

// DefaultInterval is used when no positive interval is configured.
const DefaultInterval = 10 * time.Minute

// runTimeout bounds a single refresh.
const runTimeout = 30 * time.Second

// Scheduler periodically renders the weather output for the configured location.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	cfg       config.Config
	interval  time.Duration
}

// New creates a new Scheduler.
func New(cfg config.Config, interval time.Duration, service *weather.Service) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		cfg:       cfg,
		interval:  interval,
	}
}

// Start schedules the refresh job and starts the underlying scheduler. The
// first run happens immediately.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run() {
	log.Println("INFO: scheduler: refreshing weather output")

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if _, err := s.service.Render(ctx, s.cfg); err != nil {
		log.Printf("WARN: scheduler: refresh failed for %s: %v", weather.LocationOf(s.cfg).Key(), err)
		return
	}
	log.Println("INFO: scheduler: refresh completed")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
