package models

// Place is the normalized shape every search result and stop reduces to.
// Identity is PlaceID; queues and saved lists dedup by it.
type Place struct {
	PlaceID string   `json:"place_id"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Lat     float64  `json:"lat"`
	Lng     float64  `json:"lng"`
	Rating  *float64 `json:"rating,omitempty"`
	Price   *string  `json:"price,omitempty"` // display form, e.g. "$$"
}

// SavedPlace is a favorited Place; toggled by PlaceID, never duplicated.
type SavedPlace struct {
	Place
	SavedAt int64 `json:"saved_at"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LegTarget is where a timeline leg ends up. Kind "poi" marks a concrete
// place; routing-only legs carry the "dest" placeholder instead.
type LegTarget struct {
	Kind string   `json:"kind,omitempty"`
	Name string   `json:"name,omitempty"`
	Lat  *float64 `json:"lat,omitempty"`
	Lng  *float64 `json:"lng,omitempty"`
}

type TimelineLeg struct {
	Mode   string    `json:"mode,omitempty"`
	To     LegTarget `json:"to"`
	Depart string    `json:"depart,omitempty"`
	Arrive string    `json:"arrive,omitempty"`
	Note   string    `json:"note,omitempty"`
}

// GeneratedPlan is what the planner hands back after normalization.
// Stops counts POI-bearing legs only, not the raw timeline length.
type GeneratedPlan struct {
	Summary  string           `json:"summary"`
	Timeline []TimelineLeg    `json:"timeline"`
	Stops    int              `json:"stops"`
	Insights []WeatherInsight `json:"insights,omitempty"`
	Weather  string           `json:"weather,omitempty"`
}

// SavedTrip is immutable once created except for Status.
type SavedTrip struct {
	ID        string        `json:"id"`
	CreatedAt int64         `json:"created_at"`
	Summary   string        `json:"summary"`
	Timeline  []TimelineLeg `json:"timeline"`
	Status    string        `json:"status"`
}

// ActiveTrip is the itinerary currently being walked through.
// Invariant: 0 <= CurrentStopIndex <= len(Timeline); reaching the end is
// the terminal completed state, after which the record is deleted.
type ActiveTrip struct {
	Summary          string        `json:"summary"`
	Timeline         []TimelineLeg `json:"timeline"`
	CurrentStopIndex int           `json:"current_stop_index"`
	StartedAt        int64         `json:"started_at"`
}

// GenerationProgress is ephemeral UI feedback; it is pushed to clients,
// never persisted.
type GenerationProgress struct {
	Stage   string `json:"stage"`
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

type WeatherInsight struct {
	Type    string `json:"type"` // warning|info|success|alert
	Icon    string `json:"icon"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Profile is the header identity shown on the profile view.
type Profile struct {
	TenantID    string `json:"tenant_id"`
	Name        string `json:"name"`
	OnboardedAt int64  `json:"onboarded_at"`
	AvatarPath  string `json:"avatar_path,omitempty"`
}
