package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"forecast-aggregation/internal/forecast"
	"forecast-aggregation/internal/geo"
)

// Scheduler periodically refreshes the forecast cache for configured
// positions so the first request of the day hits a warm entry.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *forecast.Service
	positions []geo.Position
	interval  time.Duration
}

// New creates a new Scheduler.
func New(positions []geo.Position, interval time.Duration, service *forecast.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		positions: positions,
		interval:  interval,
	}
}

// Start schedules the periodic warm-up job and starts the underlying
// scheduler. Warm-up failures are logged and skipped; the next tick retries.
func (s *Scheduler) Start() error {
	if len(s.positions) == 0 {
		log.Println("scheduler: no warm locations configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 360
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running forecast warm-up job")

		var wg sync.WaitGroup
		for _, pos := range s.positions {
			pos := pos
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if _, err := s.service.Forecast(ctx, pos); err != nil {
					log.Printf("scheduler: warm-up failed for (%g, %g): %v", pos.Lat(), pos.Lon(), err)
				}
			}()
		}
		wg.Wait()
		log.Println("scheduler: completed forecast warm-up job")
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
