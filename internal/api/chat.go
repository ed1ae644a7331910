package api

import (
	"encoding/json"
	"net/http"

	"github.com/marmalade-labs/banter/internal/log"
	"github.com/marmalade-labs/banter/internal/message"
)

// chatHandler handles the chat exchange and transcript endpoints.
type chatHandler struct {
	chat     ChatService
	messages MessageStore
	logger   log.Logger
}

func newChatHandler(chat ChatService, messages MessageStore, logger log.Logger) *chatHandler {
	return &chatHandler{chat: chat, messages: messages, logger: logger}
}

func (h *chatHandler) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/chat", h.handleChat)
	mux.HandleFunc("GET /api/v1/messages", h.handleListMessages)
	mux.HandleFunc("DELETE /api/v1/messages", h.handleClearMessages)
}

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	Message   string `json:"message"`
	Character string `json:"character,omitempty"`
}

func (h *chatHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	result, err := h.chat.Send(r.Context(), req.Message, req.Character)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}

// MessagesResponse is the body of GET /api/v1/messages.
type MessagesResponse struct {
	Messages []*message.Message `json:"messages"`
	Count    int                `json:"count"`
}

func (h *chatHandler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.messages.All(r.Context())
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, MessagesResponse{Messages: msgs, Count: len(msgs)})
}

// ClearResponse is the body of DELETE /api/v1/messages.
type ClearResponse struct {
	Deleted int64 `json:"deleted"`
}

func (h *chatHandler) handleClearMessages(w http.ResponseWriter, r *http.Request) {
	n, err := h.messages.Clear(r.Context())
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	h.logger.Info("conversation cleared", "deleted", n)
	writeJSON(w, h.logger, http.StatusOK, ClearResponse{Deleted: n})
}
