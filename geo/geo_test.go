package geo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"roamio/models"
)

type stuckProvider struct{}

func (stuckProvider) Current(ctx context.Context, _ time.Duration) (models.Coordinates, error) {
	<-ctx.Done()
	return models.Coordinates{}, ctx.Err()
}

func TestResolveTimeoutFallsBack(t *testing.T) {
	r := NewResolver(stuckProvider{})

	got := r.Resolve(context.Background(), 30*time.Millisecond, 0)

	assert.True(t, got.Fallback)
	assert.Equal(t, DefaultFallback, got.Coordinates)
}

func TestResolveUsesReportedFix(t *testing.T) {
	p := NewReportedProvider()
	p.Report(models.Coordinates{Lat: 48.8584, Lng: 2.2945})
	r := NewResolver(p)

	got := r.Resolve(context.Background(), time.Second, time.Minute)

	assert.False(t, got.Fallback)
	assert.Equal(t, 48.8584, got.Lat)
	assert.Equal(t, 2.2945, got.Lng)
}

func TestResolveStaleFixFallsBack(t *testing.T) {
	p := NewReportedProvider()
	p.Report(models.Coordinates{Lat: 1, Lng: 1})
	r := NewResolver(p)

	time.Sleep(5 * time.Millisecond)
	got := r.Resolve(context.Background(), time.Second, time.Millisecond)

	assert.True(t, got.Fallback)
}

func TestResolveDeniedFallsBack(t *testing.T) {
	p := NewReportedProvider()
	p.Report(models.Coordinates{Lat: 1, Lng: 1})
	p.ReportDenied()
	r := NewResolver(p)

	got := r.Resolve(context.Background(), time.Second, time.Minute)

	assert.True(t, got.Fallback)
}

func TestResolveNilProviderFallsBack(t *testing.T) {
	r := NewResolver(nil)
	got := r.Resolve(context.Background(), 0, 0)
	assert.True(t, got.Fallback)
}
