package chat

import (
	"encoding/json"

	"github.com/leasematch-platform/leasematch/internal/conversation"
	"github.com/leasematch-platform/leasematch/internal/engine"
	"github.com/leasematch-platform/leasematch/internal/scoring"
)

// TurnRequest is one user utterance. Callers either pass a session ID for
// server-side state, or thread the full serialized state themselves.
type TurnRequest struct {
	SessionID  string       `json:"session_id,omitempty"`
	Query      string       `json:"query" validate:"required,min=1"`
	UserID     string       `json:"user_id,omitempty"`
	EntityType string       `json:"entity_type,omitempty" validate:"omitempty,oneof=brand owner auto"`
	Context    *TurnContext `json:"context,omitempty"`
}

// TurnContext carries caller-threaded conversation context. When the server
// holds state for the session, the server-side copy wins.
type TurnContext struct {
	FullState json.RawMessage `json:"full_state,omitempty"`
}

// TurnResponse is the full turn envelope, including the re-serialized state
// for callers that persist it themselves.
type TurnResponse struct {
	SessionID             string                          `json:"session_id"`
	Message               string                          `json:"message"`
	Phase                 string                          `json:"phase"`
	Matches               []scoring.ScoredMatch           `json:"matches,omitempty"`
	Summary               *engine.Summary                 `json:"summary,omitempty"`
	ExtractedRequirements conversation.Requirements       `json:"extracted_requirements"`
	ConfirmedEntityType   string                          `json:"confirmed_entity_type,omitempty"`
	Completeness          conversation.CompletenessReport `json:"completeness"`
	FullState             json.RawMessage                 `json:"full_state"`
	ReadyToRedirect       bool                            `json:"ready_to_redirect,omitempty"`
}
