package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/marmalade-labs/banter/internal/blog"
	"github.com/marmalade-labs/banter/internal/log"
)

// postHandler handles post CRUD endpoints.
type postHandler struct {
	store  BlogStore
	logger log.Logger
}

func newPostHandler(store BlogStore, logger log.Logger) *postHandler {
	return &postHandler{store: store, logger: logger}
}

func (h *postHandler) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/posts", h.handleCreate)
	mux.HandleFunc("GET /api/v1/posts", h.handleList)
	mux.HandleFunc("GET /api/v1/posts/{id}", h.handleGet)
	mux.HandleFunc("PATCH /api/v1/posts/{id}", h.handleUpdate)
}

func (h *postHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var np blog.NewPost
	if err := json.NewDecoder(r.Body).Decode(&np); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}
	post, err := h.store.CreatePost(r.Context(), np)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, post)
}

func (h *postHandler) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, "validation_error", "limit must be an integer")
			return
		}
		limit = n
	}
	posts, err := h.store.ListPosts(r.Context(), limit)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]any{
		"posts": posts,
		"count": len(posts),
	})
}

func (h *postHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	post, err := h.store.GetPost(r.Context(), id)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, post)
}

func (h *postHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	var upd blog.PostUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}
	post, err := h.store.UpdatePost(r.Context(), id, upd)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, post)
}
