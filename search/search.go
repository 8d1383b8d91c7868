package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"roamio/faults"
	"roamio/models"
	"roamio/store"
	"roamio/utils"
)

// ErrEmptyQuery marks the ready state: a blank query is not an error and
// not a search, and stale results must not be reused for it.
var ErrEmptyQuery = faults.New(faults.UserInput, "empty query")

const displayQueryMax = 40

// Orchestrator issues place searches against the search proxy and
// normalizes the results.
type Orchestrator struct {
	client  *http.Client
	baseURL string
}

func NewOrchestrator(baseURL string) *Orchestrator {
	return &Orchestrator{
		client:  &http.Client{Timeout: 12 * time.Second},
		baseURL: baseURL,
	}
}

type searchItem struct {
	PlaceID    string          `json:"place_id"`
	Name       string          `json:"name"`
	Address    string          `json:"address"`
	Lat        float64         `json:"lat"`
	Lng        float64         `json:"lng"`
	Rating     *float64        `json:"rating"`
	PriceLevel json.RawMessage `json:"price_level"`
}

// Search runs a place search and bumps the tenant's places-visited
// counter by the result count. Failures carry the attempted query,
// truncated for safe display.
func (o *Orchestrator) Search(ctx context.Context, st *store.Store, query string, filters map[string]string) ([]models.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	body, _ := json.Marshal(map[string]any{"query": query, "filters": filters})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/places/search", bytes.NewReader(body))
	if err != nil {
		return nil, o.fail(query, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, o.fail(query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, o.fail(query, fmt.Errorf("upstream returned %d", resp.StatusCode))
	}

	var payload struct {
		OK    bool         `json:"ok"`
		Items []searchItem `json:"items"`
		Error string       `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, o.fail(query, err)
	}
	if !payload.OK {
		return nil, o.fail(query, fmt.Errorf("upstream rejected search: %s", payload.Error))
	}

	places := make([]models.Place, 0, len(payload.Items))
	for _, item := range payload.Items {
		places = append(places, models.Place{
			PlaceID: item.PlaceID,
			Name:    item.Name,
			Address: item.Address,
			Lat:     item.Lat,
			Lng:     item.Lng,
			Rating:  item.Rating,
			Price:   FormatPriceLevel(item.PriceLevel),
		})
	}

	if len(places) > 0 {
		st.Incr(ctx, store.KeyPlacesVisited, len(places))
	}
	return places, nil
}

func (o *Orchestrator) fail(query string, err error) *faults.Fault {
	return &faults.Fault{
		Kind:    faults.Network,
		Msg:     "search failed",
		Context: utils.Truncate(query, displayQueryMax),
		Err:     err,
	}
}
