package lists

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roamio/models"
	"roamio/store"
)

func newStore() *store.Store {
	return store.New("t1", store.NewMemoryBackend())
}

func place(id, name string) models.Place {
	return models.Place{PlaceID: id, Name: name}
}

func TestQueueAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(newStore())

	assert.True(t, q.Add(ctx, place("a", "Cafe A")))
	assert.True(t, q.Add(ctx, place("b", "Cafe B")))
	assert.False(t, q.Add(ctx, place("b", "Cafe B renamed")),
		"same place id must not be queued twice")

	items := q.Items(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].PlaceID)
	assert.Equal(t, "b", items[1].PlaceID)
}

func TestQueuePreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(newStore())

	for _, id := range []string{"c", "a", "b"} {
		q.Add(ctx, place(id, id))
	}
	items := q.Items(ctx)
	require.Len(t, items, 3)
	assert.Equal(t, "c", items[0].PlaceID)
	assert.Equal(t, "a", items[1].PlaceID)
	assert.Equal(t, "b", items[2].PlaceID)
}

func TestQueueRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(newStore())
	q.Add(ctx, place("a", "A"))
	q.Add(ctx, place("b", "B"))

	assert.True(t, q.Remove(ctx, "a"))
	assert.False(t, q.Remove(ctx, "a"))
	require.Len(t, q.Items(ctx), 1)

	q.Clear(ctx)
	assert.Empty(t, q.Items(ctx))
}

func TestQueueSurvivesReload(t *testing.T) {
	ctx := context.Background()
	st := newStore()

	NewQueue(st).Add(ctx, place("a", "A"))

	// a fresh manager over the same store sees the persisted queue
	again := NewQueue(st)
	require.Len(t, again.Items(ctx), 1)
	assert.False(t, again.Add(ctx, place("a", "A")))
}

func TestSavedToggle(t *testing.T) {
	ctx := context.Background()
	s := NewSaved(newStore())

	removed := s.Toggle(ctx, place("a", "Cafe A"))
	assert.False(t, removed, "first toggle saves")
	assert.True(t, s.IsSaved(ctx, "a"))

	items := s.Items(ctx)
	require.Len(t, items, 1)
	assert.NotZero(t, items[0].SavedAt)

	removed = s.Toggle(ctx, place("a", "Cafe A"))
	assert.True(t, removed, "second toggle removes")
	assert.False(t, s.IsSaved(ctx, "a"))
	assert.Empty(t, s.Items(ctx))
}

func TestTripsCommitAndStatus(t *testing.T) {
	ctx := context.Background()
	tr := NewTrips(newStore())

	timeline := []models.TimelineLeg{{To: models.LegTarget{Kind: "poi", Name: "Cafe X"}}}
	trip := tr.Commit(ctx, "Morning walk", timeline)

	assert.NotEmpty(t, trip.ID)
	assert.Equal(t, StatusPlanned, trip.Status)

	got, ok := tr.Get(ctx, trip.ID)
	require.True(t, ok)
	assert.Equal(t, "Morning walk", got.Summary)

	assert.True(t, tr.SetStatus(ctx, trip.ID, StatusCompleted))
	got, _ = tr.Get(ctx, trip.ID)
	assert.Equal(t, StatusCompleted, got.Status)

	assert.False(t, tr.SetStatus(ctx, "missing", StatusCompleted))
}
