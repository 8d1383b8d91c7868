package profile

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"

	"roamio/middleware"
	"roamio/models"
	"roamio/store"
	"roamio/utils"
)

const avatarDir = "./static/avatars"
const avatarSize = 256

// Handler serves the header identity for the profile view: display name,
// member-since, the running stats counters, and the avatar.
type Handler struct {
	backend store.Backend
}

func NewHandler(b store.Backend) *Handler {
	return &Handler{backend: b}
}

// GET /api/profile
func (h *Handler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tenantID := middleware.TenantID(r)
	st := store.New(tenantID, h.backend)
	ctx := r.Context()

	var p models.Profile
	if !st.GetJSON(ctx, store.KeyProfile, &p) {
		utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"ok":      true,
		"profile": p,
		"stats": utils.M{
			"places_visited":  st.GetInt(ctx, store.KeyPlacesVisited, 0),
			"trips_planned":   st.GetInt(ctx, store.KeyTripsPlanned, 0),
			"trips_completed": st.GetInt(ctx, store.KeyTripsCompleted, 0),
		},
	})
}

// POST /api/profile/avatar
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tenantID := middleware.TenantID(r)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Error parsing form data")
		return
	}
	file, _, err := r.FormFile("avatar")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Avatar upload failed")
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported image")
		return
	}
	thumb := imaging.Resize(img, avatarSize, 0, imaging.Lanczos)

	if err := os.MkdirAll(avatarDir, 0755); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not store avatar")
		return
	}
	path := filepath.Join(avatarDir, fmt.Sprintf("%s.jpg", tenantID))
	if err := imaging.Save(thumb, path); err != nil {
		log.Println("profile: avatar save failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not store avatar")
		return
	}

	st := store.New(tenantID, h.backend)
	var p models.Profile
	if st.GetJSON(r.Context(), store.KeyProfile, &p) {
		p.AvatarPath = path
		st.Set(r.Context(), store.KeyProfile, p)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "avatar_path": path})
}
