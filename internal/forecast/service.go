package forecast

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"forecast-aggregation/internal/geo"
)

// ErrNoProviders is returned when a Service is constructed without providers.
var ErrNoProviders = errors.New("no weather providers configured")

// Service computes averaged forecasts across all configured providers and
// caches the result per position for the rest of the calendar day.
type Service struct {
	providers []Provider
	cache     *Cache
	now       func() time.Time
}

// NewService creates a Service over a non-empty provider list. An empty list
// is a configuration error surfaced at construction, never per request.
func NewService(providers []Provider) (*Service, error) {
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}
	return &Service{
		providers: providers,
		cache:     NewCache(),
		now:       time.Now,
	}, nil
}

// Forecast returns the five-day forecast for pos. A fresh cache entry is
// returned without contacting any provider; otherwise every provider is
// queried concurrently, the results are averaged per day, and the answer is
// written through to the cache.
//
// Two requests racing through a miss for the same position will both fan out
// and both store; there is deliberately no single-flight coalescing, and the
// cache read lock is released before the slow path begins.
func (s *Service) Forecast(ctx context.Context, pos geo.Position) (Forecast, error) {
	today := s.now().Format(dayFormat)

	if cached, ok := s.cache.Lookup(pos, today); ok {
		return cached, nil
	}

	result, err := s.fetchAll(ctx, pos)
	if err != nil {
		return Forecast{}, &AggregationError{Err: err}
	}

	s.cache.Store(pos, today, result)
	return result, nil
}

// fetchAll fans the request out to every provider, waits for all of them and
// averages the results element-wise. Any single failure fails the whole
// fetch; nothing is retried here.
func (s *Service) fetchAll(ctx context.Context, pos geo.Position) (Forecast, error) {
	results := make([]Forecast, len(s.providers))

	var g errgroup.Group
	for i, p := range s.providers {
		i, p := i, p
		g.Go(func() error {
			f, err := p.Fetch(ctx, pos)
			if err != nil {
				return err
			}
			results[i] = f
			return nil
		})
	}

	// Wait waits for every fetch to finish and keeps the first error.
	if err := g.Wait(); err != nil {
		return Forecast{}, err
	}

	var avg Forecast
	for _, r := range results {
		for d, t := range r {
			avg[d] += t
		}
	}

	n := Temperature(len(s.providers))
	for d := range avg {
		avg[d] /= n
	}

	return avg, nil
}
