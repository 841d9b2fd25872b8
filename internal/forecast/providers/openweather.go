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

// OpenWeatherProvider fetches a five-day forecast from the OpenWeatherMap
// one-call API. The daily temperature is the mean of the reported day and
// night values.
type OpenWeatherProvider struct {
	name    string
	token   string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, token string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		token:   token,
		baseURL: "https://api.openweathermap.org/data/2.5/onecall",
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(),
		},
		circuit: newCircuit("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, pos geo.Position) (forecast.Forecast, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", fmt.Sprintf("%g", pos.Lat()))
		values.Set("lon", fmt.Sprintf("%g", pos.Lon()))
		values.Set("exclude", "current,minutely,hourly,alerts")
		values.Set("units", "metric")
		values.Set("appid", p.token)

		return http.NewRequest(http.MethodGet, p.baseURL+"?"+values.Encode(), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return forecast.Forecast{}, &forecast.ProviderError{Msg: "error requesting provider", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return forecast.Forecast{}, &forecast.ProviderError{Msg: "error parsing response", Err: err}
		}
		return forecast.Forecast{}, &forecast.ProviderError{
			Msg: "external provider error: " + payload.Message,
		}
	}

	var payload struct {
		Daily []struct {
			Temp struct {
				Day   float32 `json:"day"`
				Night float32 `json:"night"`
			} `json:"temp"`
		} `json:"daily"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return forecast.Forecast{}, &forecast.ProviderError{Msg: "error parsing response", Err: err}
	}
	if len(payload.Daily) < forecast.Days {
		return forecast.Forecast{}, &forecast.ProviderError{
			Msg: fmt.Sprintf("error parsing response: expected %d daily entries, got %d", forecast.Days, len(payload.Daily)),
		}
	}

	var result forecast.Forecast
	for i := 0; i < forecast.Days; i++ {
		day := payload.Daily[i].Temp
		result[i] = forecast.Temperature((day.Day + day.Night) / 2)
	}

	return result, nil
}
