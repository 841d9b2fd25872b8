package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"forecast-aggregation/internal/forecast"
	"forecast-aggregation/internal/geo"
)

// AccuWeatherProvider fetches a five-day forecast from AccuWeather. The API
// has no direct coordinate endpoint, so each fetch resolves a location key
// via geoposition search first. The daily temperature is the mean of the
// reported minimum and maximum.
type AccuWeatherProvider struct {
	name        string
	token       string
	searchURL   string
	forecastURL string
	httpCfg     HTTPClientConfig
	circuit     *gobreaker.CircuitBreaker
}

func NewAccuWeatherProvider(client *http.Client, token string) *AccuWeatherProvider {
	return &AccuWeatherProvider{
		name:        "accuweather",
		token:       token,
		searchURL:   "https://dataservice.accuweather.com/locations/v1/cities/geoposition/search",
		forecastURL: "https://dataservice.accuweather.com/forecasts/v1/daily/5day",
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(),
		},
		circuit: newCircuit("accuweather"),
	}
}

func (p *AccuWeatherProvider) Name() string {
	return p.name
}

func (p *AccuWeatherProvider) Fetch(ctx context.Context, pos geo.Position) (forecast.Forecast, error) {
	key, err := p.search(ctx, pos)
	if err != nil {
		return forecast.Forecast{}, err
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("metric", "true")
		values.Set("apikey", p.token)

		u := fmt.Sprintf("%s/%s?%s", p.forecastURL, key, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return forecast.Forecast{}, &forecast.ProviderError{Msg: "error requesting provider", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return forecast.Forecast{}, &forecast.ProviderError{
			Msg: fmt.Sprintf("external provider error: unexpected status %d", resp.StatusCode),
		}
	}

	var payload struct {
		DailyForecasts []struct {
			Temperature struct {
				Minimum struct {
					Value float32 `json:"Value"`
				} `json:"Minimum"`
				Maximum struct {
					Value float32 `json:"Value"`
				} `json:"Maximum"`
			} `json:"Temperature"`
		} `json:"DailyForecasts"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return forecast.Forecast{}, &forecast.ProviderError{Msg: "error parsing response", Err: err}
	}
	if len(payload.DailyForecasts) < forecast.Days {
		return forecast.Forecast{}, &forecast.ProviderError{
			Msg: fmt.Sprintf("error parsing response: expected %d daily forecasts, got %d", forecast.Days, len(payload.DailyForecasts)),
		}
	}

	var result forecast.Forecast
	for i := 0; i < forecast.Days; i++ {
		t := payload.DailyForecasts[i].Temperature
		result[i] = forecast.Temperature((t.Minimum.Value + t.Maximum.Value) / 2)
	}

	return result, nil
}

// search resolves the AccuWeather location key for a coordinate pair.
func (p *AccuWeatherProvider) search(ctx context.Context, pos geo.Position) (string, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("apikey", p.token)
		values.Set("q", fmt.Sprintf("%g,%g", pos.Lat(), pos.Lon()))

		return http.NewRequest(http.MethodGet, p.searchURL+"?"+values.Encode(), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return "", &forecast.ProviderError{Msg: "error requesting provider", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &forecast.ProviderError{
			Msg: fmt.Sprintf("external provider error: unexpected status %d", resp.StatusCode),
		}
	}

	var payload struct {
		Key string `json:"Key"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", &forecast.ProviderError{Msg: "error parsing response", Err: err}
	}
	if payload.Key == "" {
		return "", &forecast.ProviderError{Msg: "error parsing response: empty location key"}
	}

	return payload.Key, nil
}
