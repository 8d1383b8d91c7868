package session

import (
	"context"
	"log"
	"os"
	"sync"

	"roamio/geo"
	"roamio/lists"
	"roamio/live"
	"roamio/models"
	"roamio/planner"
	"roamio/search"
	"roamio/store"
	"roamio/trip"
	"roamio/views"
	"roamio/voice"
	"roamio/weather"
)

// Config carries the upstream service endpoints.
type Config struct {
	PlacesURL  string
	PlannerURL string
	WeatherURL string
	WhisperURL string
}

func ConfigFromEnv() Config {
	return Config{
		PlacesURL:  envOr("PLACES_URL", "http://localhost:8090"),
		PlannerURL: envOr("PLANNER_URL", "http://localhost:8091"),
		WeatherURL: envOr("WEATHER_URL", "http://localhost:8092"),
		WhisperURL: envOr("WHISPER_URL", "http://localhost:8093"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Session is the per-tenant wiring of every coordinator around one
// tenant-scoped store. Orchestrators never share mutable state with each
// other except through that store.
type Session struct {
	Store    *store.Store
	Location *geo.ReportedProvider
	Resolver *geo.Resolver

	Queue *lists.Queue
	Saved *lists.Saved
	Trips *lists.Trips

	Weather    *weather.Engine
	Search     *search.Orchestrator
	Planner    *planner.Orchestrator
	ActiveTrip *trip.Engine

	Views      *views.Controller
	Recorder   *voice.BufferRecorder
	Voice      *voice.Pipeline
	Dispatcher *voice.Dispatcher

	mu        sync.Mutex
	preselect string
	LastVoice *voice.Outcome
}

// PendingInterest hands out and clears the one-shot pre-selected
// interest written by the trip view's on-enter hook.
func (s *Session) PendingInterest() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	interest := s.preselect
	s.preselect = ""
	return interest
}

func (s *Session) setPendingInterest(interest string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preselect = interest
}

// Manager builds and caches one Session per tenant.
type Manager struct {
	cfg     Config
	backend store.Backend
	hub     *live.Hub

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(cfg Config, backend store.Backend, hub *live.Hub) *Manager {
	return &Manager{
		cfg:      cfg,
		backend:  backend,
		hub:      hub,
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Get(tenantID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[tenantID]; ok {
		return s
	}
	s := m.build(tenantID)
	m.sessions[tenantID] = s
	return s
}

// Drop discards a tenant's session, e.g. after a reset.
func (m *Manager) Drop(tenantID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, tenantID)
}

func (m *Manager) build(tenantID string) *Session {
	st := store.New(tenantID, m.backend)
	location := geo.NewReportedProvider()
	resolver := geo.NewResolver(location)
	weatherEng := weather.NewEngine(m.cfg.WeatherURL)

	s := &Session{
		Store:      st,
		Location:   location,
		Resolver:   resolver,
		Queue:      lists.NewQueue(st),
		Saved:      lists.NewSaved(st),
		Trips:      lists.NewTrips(st),
		Weather:    weatherEng,
		Search:     search.NewOrchestrator(m.cfg.PlacesURL),
		Planner:    planner.NewOrchestrator(m.cfg.PlannerURL, weatherEng),
		ActiveTrip: trip.NewEngine(st),
		Views:      views.NewController(),
		Recorder:   voice.NewBufferRecorder(),
	}

	s.Dispatcher = &voice.Dispatcher{
		Views:    s.Views,
		Search:   s.Search,
		Weather:  weatherEng,
		Resolver: resolver,
	}
	s.Voice = voice.NewPipeline(m.cfg.WhisperURL, s.Recorder, resolver, func(ctx context.Context, res *voice.Result) {
		out := s.Dispatcher.Dispatch(ctx, st, res)
		s.mu.Lock()
		s.LastVoice = &out
		s.mu.Unlock()
	})

	// per-view refresh hooks
	s.Views.Register(views.Trip, func(ctx context.Context, e views.Enter) {
		if e.Interest != "" {
			s.setPendingInterest(e.Interest)
		}
		log.Printf("views: trip view entered, %d queued stops", len(s.Queue.Items(ctx)))
	})
	s.Views.Register(views.Profile, func(ctx context.Context, _ views.Enter) {
		log.Printf("views: profile view entered, %d saved places, %d trips",
			len(s.Saved.Items(ctx)), len(s.Trips.All(ctx)))
	})
	s.Views.Register(views.AI, func(ctx context.Context, _ views.Enter) {
		if active, ok := s.ActiveTrip.Current(ctx); ok {
			log.Printf("views: ai view entered, active trip at stop %d/%d",
				active.CurrentStopIndex, len(active.Timeline))
		}
	})

	return s
}

// Progress returns the planner reporter that feeds the tenant's live
// websocket feed.
func (m *Manager) Progress(tenantID string) planner.Reporter {
	if m.hub == nil {
		return nil
	}
	return func(p models.GenerationProgress) {
		m.hub.Progress(tenantID, p)
	}
}
