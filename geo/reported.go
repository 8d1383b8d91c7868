package geo

import (
	"context"
	"sync"
	"time"

	"roamio/models"
)

// ReportedProvider holds the position the client device last reported.
// The HTTP adapter feeds it; orchestrators only see the Provider contract.
type ReportedProvider struct {
	mu     sync.Mutex
	coords models.Coordinates
	at     time.Time
	denied bool
}

func NewReportedProvider() *ReportedProvider {
	return &ReportedProvider{}
}

func (p *ReportedProvider) Report(c models.Coordinates) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.coords = c
	p.at = time.Now()
	p.denied = false
}

// ReportDenied records that the device refused the location permission,
// so resolution fails fast instead of waiting out the timeout.
func (p *ReportedProvider) ReportDenied() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.denied = true
}

func (p *ReportedProvider) Current(_ context.Context, maxAge time.Duration) (models.Coordinates, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.denied {
		return models.Coordinates{}, ErrPermissionDenied
	}
	if p.at.IsZero() {
		return models.Coordinates{}, ErrNoFix
	}
	if maxAge > 0 && time.Since(p.at) > maxAge {
		return models.Coordinates{}, ErrNoFix
	}
	return p.coords, nil
}
