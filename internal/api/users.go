package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/marmalade-labs/banter/internal/blog"
	"github.com/marmalade-labs/banter/internal/log"
)

// userHandler handles user CRUD endpoints.
type userHandler struct {
	store  BlogStore
	logger log.Logger
}

func newUserHandler(store BlogStore, logger log.Logger) *userHandler {
	return &userHandler{store: store, logger: logger}
}

func (h *userHandler) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/users", h.handleCreate)
	mux.HandleFunc("GET /api/v1/users", h.handleList)
	mux.HandleFunc("GET /api/v1/users/count", h.handleCount)
	mux.HandleFunc("GET /api/v1/users/{id}", h.handleGet)
	mux.HandleFunc("PATCH /api/v1/users/{id}", h.handleUpdate)
	mux.HandleFunc("GET /api/v1/users/{id}/posts", h.handleListPosts)
}

// pathID parses the {id} path segment as a positive int64.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func (h *userHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var nu blog.NewUser
	if err := json.NewDecoder(r.Body).Decode(&nu); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}
	user, err := h.store.CreateUser(r.Context(), nu)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, user)
}

func (h *userHandler) handleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]any{
		"users": users,
		"count": len(users),
	})
}

func (h *userHandler) handleCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.CountUsers(r.Context())
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]int64{"count": count})
}

func (h *userHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	user, err := h.store.GetUser(r.Context(), id)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, user)
}

func (h *userHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	var upd blog.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}
	user, err := h.store.UpdateUser(r.Context(), id, upd)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, user)
}

func (h *userHandler) handleListPosts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	posts, err := h.store.ListPostsByUser(r.Context(), id)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]any{
		"posts": posts,
		"count": len(posts),
	})
}
