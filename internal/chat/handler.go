package chat

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	internal "github.com/frahmantamala/chat-management/internal"
	"github.com/frahmantamala/chat-management/internal/auth"
	"github.com/frahmantamala/chat-management/internal/transport"
	"github.com/frahmantamala/chat-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListMessages(page, perPage int) (*MessagePageDTO, error)
	CreateMessage(userID int64, dto CreateMessageDTO) (*Message, error)
	DeleteMessage(messageID int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI

	defaultPerPage int
	maxPerPage     int
}

func NewHandler(service ServiceAPI, defaultPerPage, maxPerPage int) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	if defaultPerPage <= 0 {
		defaultPerPage = 20
	}
	if maxPerPage < defaultPerPage {
		maxPerPage = 100
	}
	return &Handler{
		BaseHandler:    transport.NewBaseHandler(lg),
		Service:        service,
		defaultPerPage: defaultPerPage,
		maxPerPage:     maxPerPage,
	}
}

// ListMessages handles GET /messages
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	page := 1
	perPage := h.defaultPerPage

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if perPageStr := r.URL.Query().Get("per_page"); perPageStr != "" {
		if pp, err := strconv.Atoi(perPageStr); err == nil && pp > 0 && pp <= h.maxPerPage {
			perPage = pp
		}
	}

	pageDTO, err := h.Service.ListMessages(page, perPage)
	if err != nil {
		h.Logger.Error("ListMessages: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, pageDTO)
}

// CreateMessage handles POST /messages
func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("CreateMessage: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateMessageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateMessage: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.Service.CreateMessage(user.ID, dto)
	if err != nil {
		h.Logger.Error("CreateMessage: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	message.User = &Sender{ID: user.ID, Name: user.Name, ChatColor: user.ChatColor}

	h.WriteJSON(w, http.StatusCreated, message)
}

// DeleteMessage handles DELETE /messages/{id}
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	messageID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("DeleteMessage: invalid message ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid message ID")
		return
	}

	if err := h.Service.DeleteMessage(messageID); err != nil {
		if errors.Is(err, internal.ErrMessageNotFound) {
			h.WriteError(w, http.StatusNotFound, "message not found")
			return
		}
		h.Logger.Error("DeleteMessage: service error", "error", err, "message_id", messageID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("DeleteMessage: message removed", "message_id", messageID, "deleted_by", internal.UserIDFromContext(r.Context()))

	w.WriteHeader(http.StatusNoContent)
}
