package lists

import (
	"context"
	"time"

	"roamio/models"
	"roamio/store"
	"roamio/utils"
)

// Trip statuses.
const (
	StatusPlanned   = "planned"
	StatusCompleted = "completed"
	StatusAbandoned = "abandoned"
)

// Trips stores committed itineraries. A trip is immutable once created
// except for its status.
type Trips struct {
	st *store.Store
}

func NewTrips(st *store.Store) *Trips {
	return &Trips{st: st}
}

func (t *Trips) All(ctx context.Context) []models.SavedTrip {
	var trips []models.SavedTrip
	t.st.GetJSON(ctx, store.KeyTrips, &trips)
	return trips
}

func (t *Trips) Get(ctx context.Context, id string) (models.SavedTrip, bool) {
	for _, trip := range t.All(ctx) {
		if trip.ID == id {
			return trip, true
		}
	}
	return models.SavedTrip{}, false
}

// Commit freezes the given plan into a SavedTrip and persists it.
func (t *Trips) Commit(ctx context.Context, summary string, timeline []models.TimelineLeg) models.SavedTrip {
	trip := models.SavedTrip{
		ID:        utils.GetUUID(),
		CreatedAt: time.Now().Unix(),
		Summary:   summary,
		Timeline:  timeline,
		Status:    StatusPlanned,
	}
	trips := append(t.All(ctx), trip)
	t.st.Set(ctx, store.KeyTrips, trips)
	return trip
}

// SetStatus updates only the status field, reporting whether id existed.
func (t *Trips) SetStatus(ctx context.Context, id, status string) bool {
	trips := t.All(ctx)
	for i := range trips {
		if trips[i].ID == id {
			trips[i].Status = status
			t.st.Set(ctx, store.KeyTrips, trips)
			return true
		}
	}
	return false
}
