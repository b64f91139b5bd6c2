package chat

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/leasematch-platform/leasematch/internal/api"
	"github.com/leasematch-platform/leasematch/internal/conversation"
	"github.com/leasematch-platform/leasematch/internal/engine"
	"github.com/leasematch-platform/leasematch/internal/session"
)

type Handler struct {
	engine   *engine.Engine
	sessions *session.Store
	validate *validator.Validate
}

func NewHandler(eng *engine.Engine, sessions *session.Store) *Handler {
	return &Handler{
		engine:   eng,
		sessions: sessions,
		validate: validator.New(),
	}
}

// Turn processes one conversation turn.
func (h *Handler) Turn(w http.ResponseWriter, r *http.Request) {
	var req TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.HandleError(w, api.ErrBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.NewValidationError(err.Error()))
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	state, err := h.restoreState(r, sessionID, req)
	if err != nil {
		api.HandleError(w, api.NewBadRequestError("invalid full_state payload"))
		return
	}

	if req.UserID != "" && state.Profile.UserID == "" {
		state.Profile.UserID = req.UserID
	}
	if req.EntityType == "brand" || req.EntityType == "owner" {
		state = state.EstablishIdentity(conversation.EntityType(req.EntityType), 0.95, "caller-specified", true)
	}

	state, result := h.engine.ProcessTurn(r.Context(), state, req.Query)

	if err := h.sessions.Save(r.Context(), state); err != nil {
		// The caller still gets full_state, so the turn is not lost.
		slog.Error("saving session", "session_id", sessionID, "error", err)
	}

	serialized, err := conversation.Serialize(state)
	if err != nil {
		slog.Error("serializing state", "session_id", sessionID, "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}

	api.JSON(w, http.StatusOK, TurnResponse{
		SessionID:             sessionID,
		Message:               result.Message,
		Phase:                 string(result.Phase),
		Matches:               result.Matches,
		Summary:               result.Summary,
		ExtractedRequirements: state.Requirements,
		ConfirmedEntityType:   string(state.Identity.Type),
		Completeness:          result.Completeness,
		FullState:             serialized,
		ReadyToRedirect:       result.ReadyToRedirect,
	})
}

// restoreState prefers the server-side session copy over caller-threaded
// state, then falls back to a fresh conversation.
func (h *Handler) restoreState(r *http.Request, sessionID string, req TurnRequest) (conversation.ConversationState, error) {
	stored, err := h.sessions.Load(r.Context(), sessionID)
	if err != nil {
		slog.Warn("loading session", "session_id", sessionID, "error", err)
	}
	if stored != nil {
		return *stored, nil
	}

	if req.Context != nil && len(req.Context.FullState) > 0 {
		threaded, err := conversation.Deserialize(req.Context.FullState)
		if err != nil {
			return conversation.ConversationState{}, err
		}
		threaded.SessionID = sessionID
		return threaded, nil
	}

	return conversation.New(sessionID), nil
}

// GetSession returns the stored state for a session.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	state, err := h.sessions.Load(r.Context(), sessionID)
	if err != nil {
		slog.Error("loading session", "session_id", sessionID, "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}
	if state == nil {
		api.HandleError(w, api.NewNotFoundError("session not found"))
		return
	}

	api.JSON(w, http.StatusOK, state)
}

// DeleteSession forgets a conversation.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.sessions.Clear(r.Context(), sessionID); err != nil {
		slog.Error("clearing session", "session_id", sessionID, "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}

	api.JSONMessage(w, http.StatusOK, "session deleted")
}
