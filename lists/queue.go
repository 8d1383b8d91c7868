package lists

import (
	"context"

	"roamio/models"
	"roamio/store"
)

// Queue holds the ordered stops the user lined up for the next trip.
// Insertion order is visit order; PlaceID is the dedup key.
type Queue struct {
	st *store.Store
}

func NewQueue(st *store.Store) *Queue {
	return &Queue{st: st}
}

func (q *Queue) Items(ctx context.Context) []models.Place {
	var items []models.Place
	q.st.GetJSON(ctx, store.KeyQueue, &items)
	return items
}

// Add appends place unless its PlaceID is already queued. Returns whether
// the queue changed; the write is persisted before returning.
func (q *Queue) Add(ctx context.Context, place models.Place) bool {
	items := q.Items(ctx)
	for _, it := range items {
		if it.PlaceID == place.PlaceID {
			return false
		}
	}
	items = append(items, place)
	if err := q.st.Set(ctx, store.KeyQueue, items); err != nil {
		return false
	}
	return true
}

// Remove drops the stop with the given id, reporting whether it existed.
func (q *Queue) Remove(ctx context.Context, placeID string) bool {
	items := q.Items(ctx)
	for i, it := range items {
		if it.PlaceID == placeID {
			items = append(items[:i], items[i+1:]...)
			q.st.Set(ctx, store.KeyQueue, items)
			return true
		}
	}
	return false
}

func (q *Queue) Clear(ctx context.Context) {
	q.st.Remove(ctx, store.KeyQueue)
}
