package voice

import (
	"context"
	"log"

	"roamio/geo"
	"roamio/models"
	"roamio/search"
	"roamio/store"
	"roamio/views"
	"roamio/weather"
)

// Intent is the typed form of what the transcription service extracted.
// Adding an intent means extending the constants, ParseIntent, and the
// Dispatch switch; the compiler keeps the three in step.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentFindFood
	IntentCheckWeather
	IntentNavigate
	IntentSearch
)

var intentNames = map[string]Intent{
	"find_food":     IntentFindFood,
	"check_weather": IntentCheckWeather,
	"navigate":      IntentNavigate,
	"search":        IntentSearch,
}

func ParseIntent(name string) Intent {
	if in, ok := intentNames[name]; ok {
		return in
	}
	return IntentUnknown
}

func (i Intent) String() string {
	for name, in := range intentNames {
		if in == i {
			return name
		}
	}
	return "unknown"
}

// Outcome is what a dispatched intent produced, for the caller to render.
type Outcome struct {
	Handled  bool                    `json:"handled"`
	View     views.View              `json:"view,omitempty"`
	Places   []models.Place          `json:"places,omitempty"`
	Weather  string                  `json:"weather,omitempty"`
	Insights []models.WeatherInsight `json:"insights,omitempty"`
}

// Dispatcher routes recognized intents to the owning orchestrators.
type Dispatcher struct {
	Views    *views.Controller
	Search   *search.Orchestrator
	Weather  *weather.Engine
	Resolver *geo.Resolver
}

// Dispatch runs the action for res. An unrecognized intent is a logged
// no-op, never an error shown to the user.
func (d *Dispatcher) Dispatch(ctx context.Context, st *store.Store, res *Result) Outcome {
	switch res.Intent {
	case IntentFindFood:
		d.Views.Show(ctx, views.Search)
		places, err := d.Search.Search(ctx, st, "restaurants near me", nil)
		if err != nil {
			log.Println("voice: food search failed:", err)
		}
		return Outcome{Handled: true, View: views.Search, Places: places}

	case IntentCheckWeather:
		origin := d.Resolver.Resolve(ctx, geo.DefaultTimeout, geo.DefaultMaxAge)
		conditions, err := d.Weather.Current(ctx, origin.Lat, origin.Lng)
		if err != nil {
			log.Println("voice: weather check failed:", err)
			return Outcome{Handled: true}
		}
		return Outcome{
			Handled:  true,
			Weather:  weather.Describe(*conditions),
			Insights: weather.Insights(*conditions),
		}

	case IntentNavigate:
		d.Views.Show(ctx, views.Trip)
		return Outcome{Handled: true, View: views.Trip}

	case IntentSearch:
		d.Views.Show(ctx, views.Search)
		places, err := d.Search.Search(ctx, st, res.Query, nil)
		if err != nil {
			log.Println("voice: search failed:", err)
		}
		return Outcome{Handled: true, View: views.Search, Places: places}

	case IntentUnknown:
		log.Printf("voice: no action for intent %q", res.RawIntent)
		return Outcome{}
	}
	return Outcome{}
}
