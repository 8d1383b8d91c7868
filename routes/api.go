package routes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"roamio/faults"
	"roamio/middleware"
	"roamio/models"
	"roamio/planner"
	"roamio/search"
	"roamio/session"
	"roamio/trip"
	"roamio/utils"
	"roamio/views"
	"roamio/voice"
	"roamio/weather"
)

// API is the thin HTTP adapter over the orchestrators. It holds no
// domain logic: decode, delegate to the session, encode.
type API struct {
	Manager *session.Manager
}

func (a *API) sess(r *http.Request) *session.Session {
	return a.Manager.Get(middleware.TenantID(r))
}

// POST /api/search
func (a *API) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Query   string            `json:"query"`
		Filters map[string]string `json:"filters"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	s := a.sess(r)
	items, err := s.Search.Search(r.Context(), s.Store, req.Query, req.Filters)
	if errors.Is(err, search.ErrEmptyQuery) {
		// ready state, not an error: no stale results either
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "status": "ready", "items": []models.Place{}})
		return
	}
	if err != nil {
		var f *faults.Fault
		payload := utils.M{"ok": false, "error": "Search failed. Please try again."}
		if errors.As(err, &f) && f.Context != "" {
			payload["query"] = f.Context
		}
		utils.RespondWithJSON(w, faults.Status(err), payload)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "status": "results", "items": items})
}

// GET /api/queue
func (a *API) GetQueue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s := a.sess(r)
	items := s.Queue.Items(r.Context())
	if items == nil {
		items = []models.Place{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "items": items})
}

// POST /api/queue
func (a *API) AddToQueue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var place models.Place
	if err := json.NewDecoder(r.Body).Decode(&place); err != nil || place.PlaceID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid place")
		return
	}
	s := a.sess(r)
	added := s.Queue.Add(r.Context(), place)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "added": added})
}

// DELETE /api/queue/:placeid
func (a *API) RemoveFromQueue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s := a.sess(r)
	removed := s.Queue.Remove(r.Context(), ps.ByName("placeid"))
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "removed": removed})
}

// DELETE /api/queue
func (a *API) ClearQueue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	a.sess(r).Queue.Clear(r.Context())
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// GET /api/saved
func (a *API) GetSaved(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s := a.sess(r)
	items := s.Saved.Items(r.Context())
	if items == nil {
		items = []models.SavedPlace{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "items": items})
}

// POST /api/saved/toggle
func (a *API) ToggleSaved(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var place models.Place
	if err := json.NewDecoder(r.Body).Decode(&place); err != nil || place.PlaceID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid place")
		return
	}
	s := a.sess(r)
	removed := s.Saved.Toggle(r.Context(), place)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "removed": removed})
}

// GET /api/trips
func (a *API) GetTrips(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s := a.sess(r)
	trips := s.Trips.All(r.Context())
	if trips == nil {
		trips = []models.SavedTrip{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "trips": trips})
}

// POST /api/trips/commit freezes the current queue into a SavedTrip.
func (a *API) CommitTrip(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Summary  string               `json:"summary"`
		Timeline []models.TimelineLeg `json:"timeline"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	s := a.sess(r)
	timeline := req.Timeline
	if len(timeline) == 0 {
		for _, p := range s.Queue.Items(r.Context()) {
			lat, lng := p.Lat, p.Lng
			timeline = append(timeline, models.TimelineLeg{
				Mode: "walk",
				To:   models.LegTarget{Kind: "poi", Name: p.Name, Lat: &lat, Lng: &lng},
			})
		}
	}
	if len(timeline) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to commit")
		return
	}
	summary := req.Summary
	if summary == "" {
		summary = "My trip"
	}
	saved := s.Trips.Commit(r.Context(), summary, timeline)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"ok": true, "trip": saved})
}

// PUT /api/trips/:id/status
func (a *API) SetTripStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
		return
	}
	s := a.sess(r)
	if !s.Trips.SetStatus(r.Context(), ps.ByName("id"), req.Status) {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// POST /api/plan
func (a *API) GeneratePlan(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var prefs planner.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil && err != io.EOF {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	tenantID := middleware.TenantID(r)
	s := a.sess(r)

	// the trip view may have been entered with a pre-selected interest
	if len(prefs.Interests) == 0 {
		if interest := s.PendingInterest(); interest != "" {
			prefs.Interests = []string{interest}
		}
	}

	plan, err := s.Planner.Generate(r.Context(), s.Store, s.Resolver, prefs, a.Manager.Progress(tenantID))
	if err != nil {
		utils.RespondWithJSON(w, faults.Status(err), utils.M{"ok": false, "error": err.Error()})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "plan": plan})
}

// POST /api/active/start
func (a *API) StartActiveTrip(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		TripID   string               `json:"trip_id"`
		Summary  string               `json:"summary"`
		Timeline []models.TimelineLeg `json:"timeline"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	s := a.sess(r)
	summary, timeline := req.Summary, req.Timeline
	if req.TripID != "" {
		saved, ok := s.Trips.Get(r.Context(), req.TripID)
		if !ok {
			utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
			return
		}
		summary, timeline = saved.Summary, saved.Timeline
	}
	if len(timeline) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to walk")
		return
	}

	active := s.ActiveTrip.Start(r.Context(), summary, timeline)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"ok": true, "active": active})
}

// GET /api/active is the render contract: each stop with its state and,
// for the current one, a navigation deep-link.
func (a *API) GetActiveTrip(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s := a.sess(r)
	active, ok := s.ActiveTrip.Current(r.Context())
	if !ok {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "status": trip.StatusNone})
		return
	}

	type stopView struct {
		Name    string `json:"name"`
		State   string `json:"state"`
		MapLink string `json:"map_link,omitempty"`
	}
	stops := make([]stopView, len(active.Timeline))
	for i, leg := range active.Timeline {
		sv := stopView{Name: leg.To.Name, State: trip.StopState(active, i)}
		if sv.State == trip.StopCurrent {
			sv.MapLink = trip.MapLink(leg)
		}
		stops[i] = sv
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"ok":     true,
		"status": trip.StatusInProgress,
		"active": active,
		"stops":  stops,
	})
}

// POST /api/active/visited
func (a *API) MarkVisited(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s := a.sess(r)
	status, active := s.ActiveTrip.MarkVisited(r.Context())
	payload := utils.M{"ok": true, "status": status}
	if status == trip.StatusInProgress {
		payload["active"] = active
	}
	utils.RespondWithJSON(w, http.StatusOK, payload)
}

// DELETE /api/active
func (a *API) EndActiveTrip(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	a.sess(r).ActiveTrip.End(r.Context())
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "status": trip.StatusNone})
}

// POST /api/views/show
func (a *API) ShowView(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		View     string `json:"view"`
		Interest string `json:"interest"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	s := a.sess(r)
	var opts []views.Option
	if req.Interest != "" {
		opts = append(opts, views.WithInterest(req.Interest))
	}
	shown := s.Views.Show(r.Context(), views.View(req.View), opts...)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": shown, "current": s.Views.Current()})
}

// POST /api/geo/report
func (a *API) ReportLocation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Lat    float64 `json:"lat"`
		Lng    float64 `json:"lng"`
		Denied bool    `json:"denied"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	s := a.sess(r)
	if req.Denied {
		s.Location.ReportDenied()
	} else {
		s.Location.Report(models.Coordinates{Lat: req.Lat, Lng: req.Lng})
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// GET /api/weather
func (a *API) GetWeather(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s := a.sess(r)
	origin := s.Resolver.Resolve(r.Context(), 0, 0)

	conditions, err := s.Weather.Current(r.Context(), origin.Lat, origin.Lng)
	if err != nil {
		utils.RespondWithJSON(w, faults.Status(err), utils.M{"ok": false, "error": "Weather is unavailable right now."})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"ok":          true,
		"description": weather.Describe(*conditions),
		"insights":    weather.Insights(*conditions),
		"approximate": origin.Fallback,
	})
}

// POST /api/voice/start
func (a *API) VoiceStart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s := a.sess(r)
	if err := s.Voice.StartRecording(r.Context()); err != nil {
		respondFault(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "state": s.Voice.State()})
}

// POST /api/voice/chunk
func (a *API) VoiceChunk(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	chunk, err := io.ReadAll(io.LimitReader(r.Body, 4<<20))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Could not read audio chunk")
		return
	}
	a.sess(r).Recorder.Append(chunk)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// POST /api/voice/stop
func (a *API) VoiceStop(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s := a.sess(r)
	res, err := s.Voice.StopAndProcess(r.Context())
	if err != nil {
		respondFault(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"ok":      true,
		"text":    res.Text,
		"intent":  res.Intent.String(),
		"outcome": s.LastVoice,
	})
}

// POST /api/voice/error: the device could not start capture at all;
// hand back the guidance text for the reported reason.
func (a *API) VoiceCaptureError(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	respondFault(w, voice.CaptureFailure(req.Reason))
}

func respondFault(w http.ResponseWriter, err error) {
	var f *faults.Fault
	if errors.As(err, &f) {
		utils.RespondWithJSON(w, faults.Status(err), utils.M{"ok": false, "error": f.Msg})
		return
	}
	utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
}
