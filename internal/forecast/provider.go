package forecast

import (
	"context"

	"forecast-aggregation/internal/geo"
)

// Provider abstracts an upstream weather source (e.g. OpenWeatherMap,
// AccuWeather). Implementations may make any number of network round trips
// per fetch and own their timeout and retry policy, but must return a fully
// populated five-day forecast or an error. Implementations must be safe for
// concurrent use.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, pos geo.Position) (Forecast, error)
}
