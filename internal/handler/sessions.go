package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/plateworks/storefront/internal/assistant"
	"github.com/plateworks/storefront/internal/middleware"
	"github.com/plateworks/storefront/internal/model"
	"github.com/plateworks/storefront/internal/service"
	"github.com/plateworks/storefront/pkg/logger"
)

// SessionHandler handles chat session endpoints.
type SessionHandler struct {
	sessions *service.SessionService
	chat     *service.ChatService
	logger   *logger.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessions *service.SessionService, chat *service.ChatService, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		chat:     chat,
		logger:   log,
	}
}

type createSessionRequest struct {
	PendingItemID string `json:"pending_item_id,omitempty"`
}

type sessionResponse struct {
	ID           string              `json:"id"`
	RestaurantID string              `json:"restaurant_id"`
	Messages     []model.ChatMessage `json:"messages"`
}

// Create handles POST /api/v1/restaurants/{restaurantID}/sessions.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurantID")
	if err := middleware.ValidateRestaurantID(restaurantID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req createSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	sess, err := h.sessions.Open(r.Context(), restaurantID, middleware.GetUserID(r.Context()), req.PendingItemID)
	if err != nil {
		h.logger.Error("failed to open session",
			zap.String("restaurant_id", restaurantID),
			zap.Error(err),
		)
		writeError(w, http.StatusNotFound, "restaurant not found")
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{
		ID:           sess.ID,
		RestaurantID: sess.RestaurantID,
		Messages:     h.chat.Transcript(sess),
	})
}

// resolve loads the session and refreshes its identity from the request
// token. Customers can sign in mid-conversation; the dispatcher's auth gates
// read whatever identity the current turn carries.
func (h *SessionHandler) resolve(w http.ResponseWriter, r *http.Request) *assistant.Session {
	sessionID := chi.URLParam(r, "sessionID")
	if err := middleware.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil
	}

	sess, err := h.sessions.Get(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return nil
	}

	if userID := middleware.GetUserID(r.Context()); userID != "" {
		sess.Lock()
		sess.UserID = userID
		sess.Unlock()
	}
	return sess
}

// SendMessage handles POST /api/v1/sessions/{sessionID}/messages.
func (h *SessionHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	sess := h.resolve(w, r)
	if sess == nil {
		return
	}

	var req model.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateMessageContent(req.Content); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	messages := h.chat.HandleText(r.Context(), sess, req.Content)
	writeJSON(w, http.StatusOK, model.TurnResponse{Messages: messages})
}

// ListMessages handles GET /api/v1/sessions/{sessionID}/messages.
func (h *SessionHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	sess := h.resolve(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, model.ListMessagesResponse{Messages: h.chat.Transcript(sess)})
}

// Action handles POST /api/v1/sessions/{sessionID}/actions.
func (h *SessionHandler) Action(w http.ResponseWriter, r *http.Request) {
	sess := h.resolve(w, r)
	if sess == nil {
		return
	}

	var req model.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !model.ValidActionKind(req.Action) {
		writeError(w, http.StatusBadRequest, "unknown action kind")
		return
	}

	writeJSON(w, http.StatusOK, h.chat.HandleAction(r.Context(), sess, &req))
}

// Cart handles GET /api/v1/sessions/{sessionID}/cart.
func (h *SessionHandler) Cart(w http.ResponseWriter, r *http.Request) {
	sess := h.resolve(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, h.chat.CartView(sess))
}

// Close handles DELETE /api/v1/sessions/{sessionID}.
func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := middleware.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.sessions.Close(sessionID)
	w.WriteHeader(http.StatusNoContent)
}
