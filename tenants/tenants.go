package tenants

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"roamio/middleware"
	"roamio/models"
	"roamio/store"
	"roamio/utils"
)

// Handler owns tenant onboarding. A tenant is a self-selected identity
// namespace: pick a name once, get an id and token, no password.
type Handler struct {
	backend store.Backend
}

func NewHandler(b store.Backend) *Handler {
	return &Handler{backend: b}
}

// POST /api/tenants
func (h *Handler) Onboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name is required")
		return
	}

	tenantID := utils.GetUUID()
	token, err := middleware.CreateToken(tenantID, name)
	if err != nil {
		log.Println("tenants: token issue failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not create tenant")
		return
	}

	st := store.New(tenantID, h.backend)
	profile := models.Profile{
		TenantID:    tenantID,
		Name:        name,
		OnboardedAt: time.Now().Unix(),
	}
	if err := st.Set(r.Context(), store.KeyProfile, profile); err != nil {
		log.Println("tenants: profile persist failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not create tenant")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"ok":        true,
		"tenant_id": tenantID,
		"token":     token,
	})
}

// POST /api/tenants/reset
// The tenant id itself is immutable; starting over means wiping all data
// under the namespace and onboarding again.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tenantID := middleware.TenantID(r)
	if tenantID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	st := store.New(tenantID, h.backend)
	for _, key := range []string{
		store.KeyQueue, store.KeySaved, store.KeyTrips, store.KeyActiveTrip,
		store.KeyProfile, store.KeyPlacesVisited, store.KeyTripsPlanned, store.KeyTripsCompleted,
	} {
		if err := st.Remove(r.Context(), key); err != nil {
			log.Println("tenants: reset:", key, err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "message": "Tenant data cleared"})
}
