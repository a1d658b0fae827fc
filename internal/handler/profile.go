package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devconnector/devconnector-go/internal/model"
	"github.com/devconnector/devconnector-go/internal/service"
)

// ProfileHandler handles profile, experience, education and account routes.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// HandleMe handles GET /api/profile/me requests.
func (h *ProfileHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	h.respond(w, r)(h.service.Me(r.Context(), userID))
}

// HandleList handles GET /api/profile requests.
func (h *ProfileHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

// HandleByUser handles GET /api/profile/user/{user_id} requests.
func (h *ProfileHandler) HandleByUser(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.service.ByUserID(r.Context(), chi.URLParam(r, "user_id")))
}

// HandleSave handles POST /api/profile requests.
func (h *ProfileHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req model.ProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.respond(w, r)(h.service.Save(r.Context(), userID, req))
}

// HandleDeleteAccount handles DELETE /api/profile requests.
func (h *ProfileHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteAccount(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}
	writeMsg(w, http.StatusOK, "user deleted")
}

// HandleAddExperience handles PUT /api/profile/experience requests.
func (h *ProfileHandler) HandleAddExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req model.ExperienceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.respond(w, r)(h.service.AddExperience(r.Context(), userID, req))
}

// HandleDeleteExperience handles DELETE /api/profile/experience/{exp_id} requests.
func (h *ProfileHandler) HandleDeleteExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	h.respond(w, r)(h.service.DeleteExperience(r.Context(), userID, chi.URLParam(r, "exp_id")))
}

// HandleAddEducation handles PUT /api/profile/education requests.
func (h *ProfileHandler) HandleAddEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req model.EducationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.respond(w, r)(h.service.AddEducation(r.Context(), userID, req))
}

// HandleDeleteEducation handles DELETE /api/profile/education/{edu_id} requests.
func (h *ProfileHandler) HandleDeleteEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	h.respond(w, r)(h.service.DeleteEducation(r.Context(), userID, chi.URLParam(r, "edu_id")))
}

// HandleGitHub handles GET /api/profile/github/{username} requests.
func (h *ProfileHandler) HandleGitHub(w http.ResponseWriter, r *http.Request) {
	repos, err := h.service.GitHubRepos(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(repos)
}

// respond writes a profile or the error returned with it.
func (h *ProfileHandler) respond(w http.ResponseWriter, r *http.Request) func(*model.Profile, error) {
	return func(p *model.Profile, err error) {
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}
