package events

import "time"

// Stream name.
const StreamEvents = "LEASEMATCH_EVENTS"

// Subject constants.
const (
	SubjectTurn          = "leasematch.events.turn"
	SubjectSearch        = "leasematch.events.search"
	SubjectContradiction = "leasematch.events.contradiction"
)

// TurnEvent is published after every processed conversation turn.
type TurnEvent struct {
	SessionID    string    `json:"session_id"`
	Turn         int       `json:"turn"`
	Phase        string    `json:"phase"`
	EntityType   string    `json:"entity_type,omitempty"`
	Completeness float64   `json:"completeness"`
	Timestamp    time.Time `json:"timestamp"`
}

// SearchEvent is published when a turn triggers a listing search.
type SearchEvent struct {
	SessionID  string    `json:"session_id"`
	Turn       int       `json:"turn"`
	Candidates int       `json:"candidates"`
	Matches    int       `json:"matches"`
	TopScore   int       `json:"top_score,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// ContradictionEvent is published when a turn tries to overwrite an
// already-collected requirement.
type ContradictionEvent struct {
	SessionID string    `json:"session_id"`
	Turn      int       `json:"turn"`
	Field     string    `json:"field"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	Timestamp time.Time `json:"timestamp"`
}
