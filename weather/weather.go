package weather

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"roamio/faults"
)

// Conditions is the normalized current-weather payload. Temperature and
// WeatherCode are pointers because the upstream omits them at times and
// "unknown" must stay distinguishable from zero.
type Conditions struct {
	Temperature   *float64 `json:"temperature"`
	WindSpeed     float64  `json:"windspeed"`
	Precipitation float64  `json:"precipitation"`
	WeatherCode   *int     `json:"weather_code"`
	IsDay         bool     `json:"is_day"`
	Location      string   `json:"location,omitempty"`
}

// Engine fetches current conditions and derives the description and
// advisory insights. Derivation is pure; only Current touches the network.
type Engine struct {
	client  *http.Client
	baseURL string
}

func NewEngine(baseURL string) *Engine {
	return &Engine{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
}

func (e *Engine) Current(ctx context.Context, lat, lng float64) (*Conditions, error) {
	body, _ := json.Marshal(map[string]float64{"lat": lat, "lng": lng})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/weather", bytes.NewReader(body))
	if err != nil {
		return nil, faults.Wrap(faults.Network, "weather request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, faults.Wrap(faults.Network, "weather fetch failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, faults.New(faults.Network, fmt.Sprintf("weather upstream returned %d", resp.StatusCode))
	}

	var payload struct {
		Weather struct {
			Current Conditions `json:"current"`
		} `json:"weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, faults.Wrap(faults.Network, "weather decode failed", err)
	}
	return &payload.Weather.Current, nil
}
