package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devconnector/devconnector-go/internal/model"
	"github.com/devconnector/devconnector-go/internal/service"
)

// PostHandler handles post, like and comment routes.
type PostHandler struct {
	service *service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{service: svc}
}

// HandleCreate handles POST /api/posts requests.
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req model.TextRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// HandleList handles GET /api/posts requests.
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// HandleGet handles GET /api/posts/{id} requests.
func (h *PostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// HandleDelete handles DELETE /api/posts/{id} requests.
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeMsg(w, http.StatusOK, "post removed")
}

// HandleLike handles PUT /api/posts/like/{id} requests.
func (h *PostHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	likes, err := h.service.Like(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, likes)
}

// HandleUnlike handles PUT /api/posts/unlike/{id} requests.
func (h *PostHandler) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	likes, err := h.service.Unlike(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, likes)
}

// HandleComment handles POST /api/posts/comment/{id} requests.
func (h *PostHandler) HandleComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req model.TextRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comments, err := h.service.Comment(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// HandleDeleteComment handles DELETE /api/posts/comment/{id}/{comment_id} requests.
func (h *PostHandler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	comments, err := h.service.DeleteComment(r.Context(), userID, chi.URLParam(r, "id"), chi.URLParam(r, "comment_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}
