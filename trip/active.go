package trip

import (
	"context"
	"time"

	"roamio/models"
	"roamio/store"
)

// Status of the progression engine. Completed is transient: the record is
// deleted the moment it is reached.
type Status string

const (
	StatusNone       Status = "none"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Engine walks a tenant through a generated or saved itinerary. At most
// one active trip exists per tenant; every mutation re-reads the stored
// record first so a stale snapshot never clobbers a concurrent write.
type Engine struct {
	st *store.Store
}

func NewEngine(st *store.Store) *Engine {
	return &Engine{st: st}
}

// Start begins walking plan from the first stop, replacing any active
// trip already underway.
func (e *Engine) Start(ctx context.Context, summary string, timeline []models.TimelineLeg) models.ActiveTrip {
	active := models.ActiveTrip{
		Summary:          summary,
		Timeline:         timeline,
		CurrentStopIndex: 0,
		StartedAt:        time.Now().Unix(),
	}
	e.st.Set(ctx, store.KeyActiveTrip, active)
	return active
}

// Current re-reads the stored record.
func (e *Engine) Current(ctx context.Context) (models.ActiveTrip, bool) {
	var active models.ActiveTrip
	ok := e.st.GetJSON(ctx, store.KeyActiveTrip, &active)
	return active, ok
}

// MarkVisited advances past the current stop. Reaching the end of the
// timeline completes the trip: the completion counter is bumped and the
// record deleted. Returns the resulting status and, while in progress,
// the updated record.
func (e *Engine) MarkVisited(ctx context.Context) (Status, models.ActiveTrip) {
	active, ok := e.Current(ctx)
	if !ok {
		return StatusNone, models.ActiveTrip{}
	}

	active.CurrentStopIndex++
	if active.CurrentStopIndex >= len(active.Timeline) {
		e.st.Incr(ctx, store.KeyTripsCompleted, 1)
		e.st.Remove(ctx, store.KeyActiveTrip)
		return StatusCompleted, models.ActiveTrip{}
	}

	e.st.Set(ctx, store.KeyActiveTrip, active)
	return StatusInProgress, active
}

// End abandons the trip regardless of progress.
func (e *Engine) End(ctx context.Context) {
	e.st.Remove(ctx, store.KeyActiveTrip)
}

// Stop render states.
const (
	StopCompleted = "completed"
	StopCurrent   = "current"
	StopUpcoming  = "upcoming"
)

// StopState reports how stop i should render relative to the pointer.
func StopState(active models.ActiveTrip, i int) string {
	switch {
	case i < active.CurrentStopIndex:
		return StopCompleted
	case i == active.CurrentStopIndex:
		return StopCurrent
	default:
		return StopUpcoming
	}
}
