package store

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
)

// Logical keys. Every persisted value in the system lives under one of
// these, prefixed with the tenant id; no package writes storage directly.
const (
	KeyQueue          = "trip_queue"
	KeySaved          = "saved_places"
	KeyTrips          = "saved_trips"
	KeyActiveTrip     = "active_trip"
	KeyProfile        = "profile"
	KeyPlacesVisited  = "stats:places_visited"
	KeyTripsPlanned   = "stats:trips_planned"
	KeyTripsCompleted = "stats:trips_completed"
)

// Backend is the raw key/value layer underneath the tenant scoping.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

// Store scopes all reads and writes to one tenant by key prefixing.
// Tenants sharing a backend never observe each other's values.
type Store struct {
	tenantID string
	backend  Backend
}

func New(tenantID string, b Backend) *Store {
	return &Store{tenantID: tenantID, backend: b}
}

func (s *Store) TenantID() string { return s.tenantID }

func (s *Store) storageKey(logical string) string {
	return s.tenantID + ":" + logical
}

// GetString returns the stored value for key, unwrapping a JSON string
// encoding when present and falling back to the raw value, then def.
// Backend failures are logged and absorbed; this never errors.
func (s *Store) GetString(ctx context.Context, key, def string) string {
	raw, ok, err := s.backend.Get(ctx, s.storageKey(key))
	if err != nil {
		log.Println("store get:", key, err)
		return def
	}
	if !ok {
		return def
	}
	var str string
	if json.Unmarshal([]byte(raw), &str) == nil {
		return str
	}
	return raw
}

func (s *Store) GetInt(ctx context.Context, key string, def int) int {
	raw, ok, err := s.backend.Get(ctx, s.storageKey(key))
	if err != nil {
		log.Println("store get:", key, err)
		return def
	}
	if !ok {
		return def
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	var f float64
	if json.Unmarshal([]byte(raw), &f) == nil {
		return int(f)
	}
	return def
}

// GetJSON decodes the stored value into out, reporting whether a valid
// value was present. Decode failures leave out untouched.
func (s *Store) GetJSON(ctx context.Context, key string, out any) bool {
	raw, ok, err := s.backend.Get(ctx, s.storageKey(key))
	if err != nil {
		log.Println("store get:", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Println("store decode:", key, err)
		return false
	}
	return true
}

// Set persists value immediately. Strings go in raw; everything else is
// JSON-encoded so GetJSON/GetString round-trip transparently.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case int:
		raw = strconv.Itoa(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		raw = string(b)
	}
	return s.backend.Set(ctx, s.storageKey(key), raw)
}

func (s *Store) Remove(ctx context.Context, key string) error {
	return s.backend.Del(ctx, s.storageKey(key))
}

// Incr bumps a counter by delta and returns the new value. Reads and
// writes go through the backend each call so concurrent tabs do not
// clobber each other with stale snapshots.
func (s *Store) Incr(ctx context.Context, key string, delta int) int {
	n := s.GetInt(ctx, key, 0) + delta
	if err := s.Set(ctx, key, n); err != nil {
		log.Println("store incr:", key, err)
	}
	return n
}
