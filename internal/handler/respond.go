package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/devconnector/devconnector-go/internal/middleware"
	"github.com/devconnector/devconnector-go/internal/model"
	"github.com/devconnector/devconnector-go/internal/service"
	"github.com/devconnector/devconnector-go/internal/validate"
)

const maxBodyBytes = 1 << 20 // 1MB

// errorsBody is the {"errors":[...]} envelope used for validation and credential failures.
type errorsBody struct {
	Errors []validate.FieldError `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.MessageResponse{Msg: msg})
}

// decodeJSON reads the request body into dst. On failure it writes the response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeMsg(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// currentUser returns the authenticated user ID, writing 401 when it is missing.
func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "no token, authorization denied")
	}
	return userID, ok
}

// writeError maps a service error onto its HTTP status and body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validate.Errors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, errorsBody{Errors: verrs})
	case errors.Is(err, service.ErrUserExists), errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusBadRequest, errorsBody{Errors: []validate.FieldError{{Msg: err.Error()}}})
	case errors.Is(err, service.ErrAlreadyLiked), errors.Is(err, service.ErrNotLiked):
		writeMsg(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotAuthorized):
		writeMsg(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrGitHubNotFound):
		writeMsg(w, http.StatusNotFound, err.Error())
	default:
		hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeMsg(w, http.StatusInternalServerError, "server error")
	}
}
