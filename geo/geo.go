package geo

import (
	"context"
	"errors"
	"log"
	"time"

	"roamio/models"
)

var (
	ErrPermissionDenied = errors.New("location permission denied")
	ErrUnsupported      = errors.New("device has no location capability")
	ErrNoFix            = errors.New("no recent location fix")
)

// Fallback coordinates used when the device cannot produce a fix in time.
var DefaultFallback = models.Coordinates{Lat: 12.9716, Lng: 77.5946}

const DefaultTimeout = 8 * time.Second
const DefaultMaxAge = 5 * time.Minute

// Provider yields the device's current position, or an error describing
// why it cannot.
type Provider interface {
	Current(ctx context.Context, maxAge time.Duration) (models.Coordinates, error)
}

// Result always carries usable coordinates. Fallback is set when they are
// the fixed default rather than a real fix, so callers may show a notice.
type Result struct {
	models.Coordinates
	Fallback bool
}

// Resolver wraps a Provider with a timeout and the fallback pair. Resolve
// never fails: callers get coordinates either way.
type Resolver struct {
	provider Provider
	fallback models.Coordinates
}

func NewResolver(p Provider) *Resolver {
	return &Resolver{provider: p, fallback: DefaultFallback}
}

func (r *Resolver) Resolve(ctx context.Context, timeout, maxAge time.Duration) Result {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	if r.provider == nil {
		return Result{Coordinates: r.fallback, Fallback: true}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type fix struct {
		coords models.Coordinates
		err    error
	}
	ch := make(chan fix, 1)
	go func() {
		coords, err := r.provider.Current(ctx, maxAge)
		ch <- fix{coords, err}
	}()

	select {
	case f := <-ch:
		if f.err != nil {
			log.Println("geo: falling back:", f.err)
			return Result{Coordinates: r.fallback, Fallback: true}
		}
		return Result{Coordinates: f.coords}
	case <-ctx.Done():
		log.Println("geo: falling back: timed out")
		return Result{Coordinates: r.fallback, Fallback: true}
	}
}
