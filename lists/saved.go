package lists

import (
	"context"
	"time"

	"roamio/models"
	"roamio/store"
)

// Saved is the favorited-places list, toggled by PlaceID.
type Saved struct {
	st *store.Store
}

func NewSaved(st *store.Store) *Saved {
	return &Saved{st: st}
}

func (s *Saved) Items(ctx context.Context) []models.SavedPlace {
	var items []models.SavedPlace
	s.st.GetJSON(ctx, store.KeySaved, &items)
	return items
}

// Toggle flips presence of place and reports whether it ended up removed.
func (s *Saved) Toggle(ctx context.Context, place models.Place) bool {
	items := s.Items(ctx)
	for i, it := range items {
		if it.PlaceID == place.PlaceID {
			items = append(items[:i], items[i+1:]...)
			s.st.Set(ctx, store.KeySaved, items)
			return true
		}
	}
	items = append(items, models.SavedPlace{Place: place, SavedAt: time.Now().Unix()})
	s.st.Set(ctx, store.KeySaved, items)
	return false
}

func (s *Saved) IsSaved(ctx context.Context, placeID string) bool {
	for _, it := range s.Items(ctx) {
		if it.PlaceID == placeID {
			return true
		}
	}
	return false
}
