package conversation

import (
	"time"
)

// EntityType identifies which side of the marketplace the speaker represents.
type EntityType string

const (
	EntityBrand EntityType = "brand"
	EntityOwner EntityType = "owner"
)

// EntityIdentity is the locked classification of the current speaker.
// Once Type is set it never changes to a different value; only confidence
// and evidence accumulate.
type EntityIdentity struct {
	Type              EntityType `json:"type,omitempty"`
	Confidence        float64    `json:"confidence"`
	EstablishedAtTurn int        `json:"established_at_turn"`
	EvidenceLog       []string   `json:"evidence_log,omitempty"`
	UserConfirmed     bool       `json:"user_confirmed"`
}

// Established reports whether an identity has been decided.
func (e EntityIdentity) Established() bool {
	return e.Type == EntityBrand || e.Type == EntityOwner
}

// Message is a single turn in the conversation history. Append-only.
type Message struct {
	Turn       int        `json:"turn"`
	Timestamp  time.Time  `json:"timestamp"`
	Role       string     `json:"role"` // "user" or "assistant"
	Content    string     `json:"content"`
	Extracted  *Extracted `json:"extracted,omitempty"`
	Confidence float64    `json:"confidence,omitempty"`
}

// Extracted carries the structured data pulled out of a user message.
type Extracted struct {
	Brand *BrandRequirements `json:"brand,omitempty"`
	Owner *OwnerRequirements `json:"owner,omitempty"`
}

// Range is a numeric interval. Zero min and max means unset.
type Range struct {
	Min float64 `json:"min,omitempty"`
	Max float64 `json:"max,omitempty"`
}

// IsZero reports whether the range carries no information.
func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Location is a city plus an optional locality within it.
type Location struct {
	City      string   `json:"city,omitempty"`
	Area      string   `json:"area,omitempty"`
	Landmarks []string `json:"landmarks,omitempty"`
}

// Budget is a seeker's monthly rent range plus an optional deposit.
type Budget struct {
	MonthlyRent Range   `json:"monthly_rent,omitempty"`
	Deposit     float64 `json:"deposit,omitempty"`
}

// BrandRequirements are the structured leasing requirements of a seeker.
type BrandRequirements struct {
	Area           Range    `json:"area,omitempty"`
	Location       Location `json:"location,omitempty"`
	PropertyType   string   `json:"property_type,omitempty"`
	Budget         Budget   `json:"budget,omitempty"`
	Footfall       Range    `json:"footfall,omitempty"`
	Accessibility  []string `json:"accessibility,omitempty"`
	Infrastructure []string `json:"infrastructure,omitempty"`
	LeaseTerm      string   `json:"lease_term,omitempty"`
	Category       string   `json:"category,omitempty"`
}

// OwnerRequirements describe a listed space and the owner's expectations.
type OwnerRequirements struct {
	PropertyArea   float64  `json:"property_area,omitempty"`
	PropertyType   string   `json:"property_type,omitempty"`
	Location       Location `json:"location,omitempty"`
	MonthlyRent    float64  `json:"monthly_rent,omitempty"`
	Deposit        float64  `json:"deposit,omitempty"`
	Infrastructure []string `json:"infrastructure,omitempty"`
	Accessibility  []string `json:"accessibility,omitempty"`
	Footfall       float64  `json:"footfall,omitempty"`
	DesiredTenant  string   `json:"desired_tenant,omitempty"`
	LeaseTerm      string   `json:"lease_term,omitempty"`
	Availability   string   `json:"availability,omitempty"`
}

// Requirements is the accumulator for extracted facts, keyed by entity type.
// At most one side is populated per conversation.
type Requirements struct {
	Brand          *BrandRequirements `json:"brand,omitempty"`
	Owner          *OwnerRequirements `json:"owner,omitempty"`
	Confidence     map[string]float64 `json:"confidence,omitempty"`
	Contradictions []Contradiction    `json:"contradictions,omitempty"`
}

// Contradiction records an attempted overwrite of an already-set field.
// It is never silently dropped and never silently applied.
type Contradiction struct {
	Field      string  `json:"field"`
	OldValue   string  `json:"old_value"`
	NewValue   string  `json:"new_value"`
	Confidence float64 `json:"confidence"`
	Turn       int     `json:"turn"`
	Resolved   bool    `json:"resolved"`
}

// Entity is a transient extraction artifact used for within-conversation
// disambiguation. Only the last maxRecentEntities are kept.
type Entity struct {
	Type       string  `json:"type"` // "location", "area", "currency", "number"
	Value      string  `json:"value"`
	Number     float64 `json:"number,omitempty"`
	Confidence float64 `json:"confidence"`
	Turn       int     `json:"turn"`
	Context    string  `json:"context,omitempty"`
}

// Reference records a resolved referring expression ("it", "same location").
type Reference struct {
	Token      string `json:"token"`
	EntityType string `json:"entity_type"`
	Value      string `json:"value"`
	Turn       int    `json:"turn"`
}

// SemanticContext holds the rolling discourse state used by disambiguation.
type SemanticContext struct {
	Topic            string      `json:"topic,omitempty"` // "area", "budget", "location"
	RecentEntities   []Entity    `json:"recent_entities,omitempty"`
	RecentReferences []Reference `json:"recent_references,omitempty"`
}

// PendingClarification is an open question the engine still needs answered.
type PendingClarification struct {
	ID             string   `json:"id"`
	Question       string   `json:"question"`
	Priority       int      `json:"priority"`
	Field          string   `json:"field"`
	PossibleValues []string `json:"possible_values,omitempty"`
	Context        string   `json:"context,omitempty"`
}

// ResolvedClarification is a clarification the user has answered.
type ResolvedClarification struct {
	ID             string `json:"id"`
	Field          string `json:"field"`
	Answer         string `json:"answer"`
	ResolvedAtTurn int    `json:"resolved_at_turn"`
}

// LearningData accumulates resolved clarifications for later inspection.
type LearningData struct {
	ResolvedClarifications []ResolvedClarification `json:"resolved_clarifications,omitempty"`
}

// UserProfile carries caller-supplied identity hints. Optional.
type UserProfile struct {
	UserID string `json:"user_id,omitempty"`
}

// SearchState tracks how the conversation has interacted with the
// listing-search boundary.
type SearchState struct {
	Searches        int `json:"searches"`
	LastSearchTurn  int `json:"last_search_turn,omitempty"`
	LastResultCount int `json:"last_result_count,omitempty"`
}

// ConversationState is the full accumulated knowledge of one conversation.
// It is owned by exactly one session and only changed through the pure
// update functions in state.go, which return a new value.
type ConversationState struct {
	SessionID      string                 `json:"session_id"`
	StartedAt      time.Time              `json:"started_at"`
	LastActivityAt time.Time              `json:"last_activity_at"`
	Turn           int                    `json:"turn"`
	Identity       EntityIdentity         `json:"identity"`
	Messages       []Message              `json:"messages,omitempty"`
	Requirements   Requirements           `json:"requirements"`
	Semantic       SemanticContext        `json:"semantic"`
	Profile        UserProfile            `json:"profile"`
	Search         SearchState            `json:"search"`
	Clarifications []PendingClarification `json:"clarifications,omitempty"`
	Learning       LearningData           `json:"learning"`
}
