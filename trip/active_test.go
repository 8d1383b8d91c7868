package trip

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roamio/models"
	"roamio/store"
)

func timeline(names ...string) []models.TimelineLeg {
	legs := make([]models.TimelineLeg, len(names))
	for i, n := range names {
		legs[i] = models.TimelineLeg{To: models.LegTarget{Kind: "poi", Name: n}}
	}
	return legs
}

func TestFullWalkCompletesExactlyOnce(t *testing.T) {
	ctx := context.Background()
	st := store.New("t1", store.NewMemoryBackend())
	e := NewEngine(st)

	legs := timeline("A", "B", "C")
	e.Start(ctx, "Three stops", legs)

	status, active := e.MarkVisited(ctx)
	assert.Equal(t, StatusInProgress, status)
	assert.Equal(t, 1, active.CurrentStopIndex)

	status, _ = e.MarkVisited(ctx)
	assert.Equal(t, StatusInProgress, status)

	status, _ = e.MarkVisited(ctx)
	assert.Equal(t, StatusCompleted, status)

	_, ok := e.Current(ctx)
	assert.False(t, ok, "completed trip record must be deleted")
	assert.Equal(t, 1, st.GetInt(ctx, store.KeyTripsCompleted, 0))

	// marking again with no active trip is a no-op
	status, _ = e.MarkVisited(ctx)
	assert.Equal(t, StatusNone, status)
	assert.Equal(t, 1, st.GetInt(ctx, store.KeyTripsCompleted, 0))
}

func TestStartReplacesExistingTrip(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(store.New("t1", store.NewMemoryBackend()))

	e.Start(ctx, "First", timeline("A", "B"))
	e.MarkVisited(ctx)

	e.Start(ctx, "Second", timeline("X"))
	active, ok := e.Current(ctx)
	require.True(t, ok)
	assert.Equal(t, "Second", active.Summary)
	assert.Equal(t, 0, active.CurrentStopIndex)
}

func TestEndAbandonsRegardlessOfProgress(t *testing.T) {
	ctx := context.Background()
	st := store.New("t1", store.NewMemoryBackend())
	e := NewEngine(st)

	e.Start(ctx, "Walk", timeline("A", "B"))
	e.End(ctx)

	_, ok := e.Current(ctx)
	assert.False(t, ok)
	assert.Equal(t, 0, st.GetInt(ctx, store.KeyTripsCompleted, 0),
		"abandoning must not count as completion")
}

func TestMarkVisitedReReadsStoredRecord(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()
	st := store.New("t1", backend)
	e := NewEngine(st)

	e.Start(ctx, "Walk", timeline("A", "B", "C"))

	// another tab advanced the trip behind our back
	other := NewEngine(store.New("t1", backend))
	other.MarkVisited(ctx)

	status, active := e.MarkVisited(ctx)
	assert.Equal(t, StatusInProgress, status)
	assert.Equal(t, 2, active.CurrentStopIndex, "mutation must start from the stored index")
}

func TestStopStates(t *testing.T) {
	active := models.ActiveTrip{Timeline: timeline("A", "B", "C"), CurrentStopIndex: 1}

	assert.Equal(t, StopCompleted, StopState(active, 0))
	assert.Equal(t, StopCurrent, StopState(active, 1))
	assert.Equal(t, StopUpcoming, StopState(active, 2))
}

func TestMapLink(t *testing.T) {
	lat, lng := 12.9716, 77.5946
	withCoords := models.TimelineLeg{To: models.LegTarget{Name: "Cubbon Park", Lat: &lat, Lng: &lng}}
	assert.Contains(t, MapLink(withCoords), "destination=12.971600,77.594600")

	nameOnly := models.TimelineLeg{To: models.LegTarget{Name: "Cubbon Park"}}
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=Cubbon+Park", MapLink(nameOnly))
}
