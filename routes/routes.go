package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"roamio/export"
	"roamio/live"
	"roamio/middleware"
	"roamio/profile"
	"roamio/ratelim"
	"roamio/session"
	"roamio/store"
	"roamio/tenants"
)

// AddTenantRoutes wires onboarding; only reset requires a token.
func AddTenantRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, backend store.Backend, manager *session.Manager) {
	h := tenants.NewHandler(backend)

	router.POST("/api/tenants", rl.Limit(h.Onboard))
	router.POST("/api/tenants/reset",
		middleware.Chain(rl.Limit, middleware.Authenticate)(
			func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
				h.Reset(w, r, ps)
				manager.Drop(middleware.TenantID(r))
			},
		),
	)
}

func AddSearchRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, api *API) {
	chain := middleware.Chain(rl.Limit, middleware.Authenticate)
	router.POST("/api/search", chain(api.Search))
}

func AddListRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, api *API) {
	chain := middleware.Chain(rl.Limit, middleware.Authenticate)

	router.GET("/api/queue", chain(api.GetQueue))
	router.POST("/api/queue", chain(api.AddToQueue))
	router.DELETE("/api/queue", chain(api.ClearQueue))
	router.DELETE("/api/queue/:placeid", chain(api.RemoveFromQueue))

	router.GET("/api/saved", chain(api.GetSaved))
	router.POST("/api/saved/toggle", chain(api.ToggleSaved))

	router.GET("/api/trips", chain(api.GetTrips))
	router.POST("/api/trips/commit", chain(api.CommitTrip))
	router.PUT("/api/trips/:id/status", chain(api.SetTripStatus))
}

func AddPlannerRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, api *API, hub *live.Hub) {
	chain := middleware.Chain(rl.Limit, middleware.Authenticate)

	router.POST("/api/plan", chain(api.GeneratePlan))
	router.GET("/ws/progress", middleware.Authenticate(hub.ServeWS()))
}

func AddTripRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, api *API, backend store.Backend) {
	chain := middleware.Chain(rl.Limit, middleware.Authenticate)

	router.POST("/api/active/start", chain(api.StartActiveTrip))
	router.GET("/api/active", chain(api.GetActiveTrip))
	router.POST("/api/active/visited", chain(api.MarkVisited))
	router.DELETE("/api/active", chain(api.EndActiveTrip))

	exp := export.NewHandler(backend)
	router.GET("/api/trips/:id/print", chain(exp.PrintTrip))
}

func AddVoiceRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, api *API) {
	chain := middleware.Chain(rl.Limit, middleware.Authenticate)

	router.POST("/api/voice/start", chain(api.VoiceStart))
	router.POST("/api/voice/chunk", chain(api.VoiceChunk))
	router.POST("/api/voice/stop", chain(api.VoiceStop))
	router.POST("/api/voice/error", chain(api.VoiceCaptureError))
}

func AddGeoRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, api *API) {
	chain := middleware.Chain(rl.Limit, middleware.Authenticate)

	router.POST("/api/geo/report", chain(api.ReportLocation))
	router.GET("/api/weather", chain(api.GetWeather))
}

func AddViewRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, api *API) {
	chain := middleware.Chain(rl.Limit, middleware.Authenticate)
	router.POST("/api/views/show", chain(api.ShowView))
}

func AddProfileRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, backend store.Backend) {
	chain := middleware.Chain(rl.Limit, middleware.Authenticate)
	h := profile.NewHandler(backend)

	router.GET("/api/profile", chain(h.Get))
	router.POST("/api/profile/avatar", chain(h.UploadAvatar))
}
