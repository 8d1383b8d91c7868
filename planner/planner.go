package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"roamio/faults"
	"roamio/geo"
	"roamio/models"
	"roamio/store"
	"roamio/weather"
)

// Interest tokens the UI offers, mapped to provider place types. Unknown
// interests fall back to the generic token instead of being dropped, so
// the type filter is never empty.
var interestTypes = map[string]string{
	"food":      "restaurant",
	"coffee":    "cafe",
	"culture":   "museum",
	"art":       "art_gallery",
	"history":   "historical_landmark",
	"nature":    "park",
	"shopping":  "shopping_mall",
	"nightlife": "night_club",
	"temples":   "place_of_worship",
	"views":     "viewpoint",
}

const fallbackType = "tourist_attraction"

// destLabel replaces the planner's literal "dest" placeholder.
const destLabel = "Destination"

type Preferences struct {
	Interests        []string `json:"interests"`
	Mode             string   `json:"mode"`
	OptimizationMode string   `json:"optimization_mode"`
	RadiusKm         float64  `json:"radius_km"`
	MinRating        float64  `json:"min_rating"`
	Limit            int      `json:"limit"`
}

// Orchestrator maps preferences to a planning request, normalizes the
// returned timeline and enriches the plan with weather insights.
type Orchestrator struct {
	client  *http.Client
	baseURL string
	weather *weather.Engine
}

func NewOrchestrator(baseURL string, w *weather.Engine) *Orchestrator {
	return &Orchestrator{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		weather: w,
	}
}

// PlaceTypes resolves interests to provider tokens, deduplicated, with
// the tourist-attraction fallback for anything unrecognized.
func PlaceTypes(interests []string) []string {
	seen := make(map[string]bool)
	var types []string
	add := func(t string) {
		if !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}
	for _, interest := range interests {
		if t, ok := interestTypes[strings.ToLower(strings.TrimSpace(interest))]; ok {
			add(t)
		} else {
			add(fallbackType)
		}
	}
	if len(types) == 0 {
		add(fallbackType)
	}
	return types
}

// Generate runs the full pipeline: interests → types, origin resolution
// (never fails, fallback coordinates are used), the planning call, the
// timeline normalization and the non-blocking weather enrichment. The
// trips-planned counter is bumped on success. Progress goes to report,
// which may be nil.
func (o *Orchestrator) Generate(ctx context.Context, st *store.Store, resolver *geo.Resolver, prefs Preferences, report Reporter) (*models.GeneratedPlan, error) {
	t := newTracker(report)
	t.advance(StageAnalyzing, 10, "Reading your preferences")

	types := PlaceTypes(prefs.Interests)
	origin := resolver.Resolve(ctx, geo.DefaultTimeout, geo.DefaultMaxAge)
	if origin.Fallback {
		log.Println("planner: using fallback origin")
	}

	t.advance(StageSearching, 35, "Finding places nearby")
	plan, err := o.planDay(ctx, origin.Coordinates, types, prefs)
	if err != nil {
		t.advance(StageError, 100, "Plan generation failed")
		return nil, err
	}

	t.advance(StageOptimizing, 65, "Shaping your day")
	plan.Timeline, plan.Stops = normalizeTimeline(plan.Timeline)

	st.Incr(ctx, store.KeyTripsPlanned, 1)

	t.advance(StageFinalizing, 85, "Checking the weather")
	o.enrich(ctx, origin.Coordinates, plan)

	t.advance(StageComplete, 100, "Your day is ready")
	return plan, nil
}

func (o *Orchestrator) planDay(ctx context.Context, origin models.Coordinates, types []string, prefs Preferences) (*models.GeneratedPlan, error) {
	mode := prefs.Mode
	if mode == "" {
		mode = "walking"
	}
	optimization := prefs.OptimizationMode
	if optimization == "" {
		optimization = "balanced"
	}
	radius := prefs.RadiusKm
	if radius <= 0 {
		radius = 5
	}
	limit := prefs.Limit
	if limit <= 0 {
		limit = 6
	}
	minRating := prefs.MinRating
	if minRating <= 0 {
		minRating = 4.0
	}

	body, _ := json.Marshal(map[string]any{
		"origin":           map[string]float64{"lat": origin.Lat, "lng": origin.Lng},
		"mode":             mode,
		"optimizationMode": optimization,
		"near_origin": map[string]any{
			"radius_km":  radius,
			"types":      types,
			"min_rating": minRating,
			"limit":      limit,
		},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/planner/plan-day", bytes.NewReader(body))
	if err != nil {
		return nil, faults.Wrap(faults.Network, "plan request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, faults.Wrap(faults.Network, "planner unreachable", err)
	}
	defer resp.Body.Close()

	var payload struct {
		OK   bool `json:"ok"`
		Plan struct {
			Summary  string               `json:"summary"`
			Timeline []models.TimelineLeg `json:"timeline"`
		} `json:"plan"`
		Error string `json:"error"`
	}
	// decode even on error statuses: the body carries the reason
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil && resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil, faults.Wrap(faults.Network, "plan decode failed", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || !payload.OK {
		reason := payload.Error
		if reason == "" {
			reason = fmt.Sprintf("planner returned %d", resp.StatusCode)
		}
		return nil, faults.New(faults.Network, reason)
	}

	return &models.GeneratedPlan{
		Summary:  payload.Plan.Summary,
		Timeline: payload.Plan.Timeline,
	}, nil
}

// normalizeTimeline keeps only POI-bearing legs and relabels the "dest"
// placeholder. The filtered count is the user-visible stop count.
func normalizeTimeline(timeline []models.TimelineLeg) ([]models.TimelineLeg, int) {
	var stops []models.TimelineLeg
	for _, leg := range timeline {
		if leg.To.Kind != "poi" && leg.To.Name == "" {
			continue
		}
		if leg.To.Name == "dest" {
			leg.To.Name = destLabel
		}
		stops = append(stops, leg)
	}
	return stops, len(stops)
}

// enrich attaches weather insights for the origin. A failure here must
// not fail the generation; it is logged and swallowed.
func (o *Orchestrator) enrich(ctx context.Context, origin models.Coordinates, plan *models.GeneratedPlan) {
	if o.weather == nil {
		return
	}
	conditions, err := o.weather.Current(ctx, origin.Lat, origin.Lng)
	if err != nil {
		log.Println("planner: weather enrichment skipped:", err)
		return
	}
	plan.Weather = weather.Describe(*conditions)
	plan.Insights = weather.Insights(*conditions)
}
