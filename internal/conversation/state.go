package conversation

import (
	"log/slog"
	"time"
)

const (
	maxRecentEntities   = 20
	maxRecentReferences = 10
)

// New creates the state for the first turn of a session.
func New(sessionID string) ConversationState {
	now := time.Now().UTC()
	return ConversationState{
		SessionID:      sessionID,
		StartedAt:      now,
		LastActivityAt: now,
	}
}

// AddMessage appends a message to the history and increments the turn
// counter for user messages. Returns a new state.
func (s ConversationState) AddMessage(role, content string, extracted *Extracted) ConversationState {
	next := s.clone()
	if role == "user" {
		next.Turn++
	}
	next.Messages = append(next.Messages, Message{
		Turn:      next.Turn,
		Timestamp: time.Now().UTC(),
		Role:      role,
		Content:   content,
		Extracted: extracted,
	})
	next.LastActivityAt = time.Now().UTC()
	return next
}

// EstablishIdentity locks the speaker's entity type. Setting a different
// type than the one already established is a no-op with a warning; setting
// the same type accumulates confidence and evidence.
func (s ConversationState) EstablishIdentity(t EntityType, confidence float64, evidence string, userConfirmed bool) ConversationState {
	if s.Identity.Established() && s.Identity.Type != t {
		slog.Warn("refusing to flip established identity",
			"session_id", s.SessionID,
			"established", s.Identity.Type,
			"attempted", t,
			"turn", s.Turn,
		)
		return s
	}

	next := s.clone()
	if !next.Identity.Established() {
		next.Identity.Type = t
		next.Identity.EstablishedAtTurn = next.Turn
	}
	if confidence > next.Identity.Confidence {
		next.Identity.Confidence = confidence
	}
	if evidence != "" {
		next.Identity.EvidenceLog = append(next.Identity.EvidenceLog, evidence)
	}
	if userConfirmed {
		next.Identity.UserConfirmed = true
	}
	return next
}

// UpdateRequirements merges newly extracted requirements into the
// accumulator. Existing non-empty fields win; attempted overwrites are
// recorded as contradictions. Returns a new state.
func (s ConversationState) UpdateRequirements(incoming *Extracted, fieldConfidence map[string]float64) ConversationState {
	if incoming == nil {
		return s
	}

	next := s.clone()
	var contradictions []Contradiction

	switch {
	case incoming.Brand != nil:
		if next.Requirements.Brand == nil {
			next.Requirements.Brand = &BrandRequirements{}
		}
		merged, found := mergeBrand(*next.Requirements.Brand, *incoming.Brand, next.Turn, fieldConfidence)
		next.Requirements.Brand = &merged
		contradictions = found
	case incoming.Owner != nil:
		if next.Requirements.Owner == nil {
			next.Requirements.Owner = &OwnerRequirements{}
		}
		merged, found := mergeOwner(*next.Requirements.Owner, *incoming.Owner, next.Turn, fieldConfidence)
		next.Requirements.Owner = &merged
		contradictions = found
	default:
		return s
	}

	next.Requirements.Contradictions = append(next.Requirements.Contradictions, contradictions...)

	if len(fieldConfidence) > 0 {
		if next.Requirements.Confidence == nil {
			next.Requirements.Confidence = make(map[string]float64, len(fieldConfidence))
		}
		for field, c := range fieldConfidence {
			if c > next.Requirements.Confidence[field] {
				next.Requirements.Confidence[field] = c
			}
		}
	}

	next.LastActivityAt = time.Now().UTC()
	return next
}

// UpdateSemanticContext replaces the current topic and appends entities and
// references, trimming both to their rolling windows. Returns a new state.
func (s ConversationState) UpdateSemanticContext(topic string, entities []Entity, references []Reference) ConversationState {
	next := s.clone()
	if topic != "" {
		next.Semantic.Topic = topic
	}
	next.Semantic.RecentEntities = append(next.Semantic.RecentEntities, entities...)
	if n := len(next.Semantic.RecentEntities); n > maxRecentEntities {
		next.Semantic.RecentEntities = next.Semantic.RecentEntities[n-maxRecentEntities:]
	}
	next.Semantic.RecentReferences = append(next.Semantic.RecentReferences, references...)
	if n := len(next.Semantic.RecentReferences); n > maxRecentReferences {
		next.Semantic.RecentReferences = next.Semantic.RecentReferences[n-maxRecentReferences:]
	}
	return next
}

// RecordSearch notes a completed listing search. Returns a new state.
func (s ConversationState) RecordSearch(resultCount int) ConversationState {
	next := s.clone()
	next.Search.Searches++
	next.Search.LastSearchTurn = next.Turn
	next.Search.LastResultCount = resultCount
	return next
}

// AddPendingClarification registers an open question. Returns a new state.
func (s ConversationState) AddPendingClarification(c PendingClarification) ConversationState {
	next := s.clone()
	next.Clarifications = append(next.Clarifications, c)
	return next
}

// ResolvePendingClarification moves a clarification into learning data.
// Unknown IDs are ignored. Returns a new state.
func (s ConversationState) ResolvePendingClarification(id, answer string) ConversationState {
	next := s.clone()
	for i, c := range next.Clarifications {
		if c.ID != id {
			continue
		}
		next.Clarifications = append(next.Clarifications[:i:i], next.Clarifications[i+1:]...)
		next.Learning.ResolvedClarifications = append(next.Learning.ResolvedClarifications, ResolvedClarification{
			ID:             c.ID,
			Field:          c.Field,
			Answer:         answer,
			ResolvedAtTurn: next.Turn,
		})
		break
	}
	return next
}

// clone returns a copy whose slices and maps are safe to mutate without
// affecting the receiver.
func (s ConversationState) clone() ConversationState {
	next := s

	next.Messages = append([]Message(nil), s.Messages...)
	next.Identity.EvidenceLog = append([]string(nil), s.Identity.EvidenceLog...)
	next.Clarifications = append([]PendingClarification(nil), s.Clarifications...)
	next.Learning.ResolvedClarifications = append([]ResolvedClarification(nil), s.Learning.ResolvedClarifications...)
	next.Semantic.RecentEntities = append([]Entity(nil), s.Semantic.RecentEntities...)
	next.Semantic.RecentReferences = append([]Reference(nil), s.Semantic.RecentReferences...)
	next.Requirements.Contradictions = append([]Contradiction(nil), s.Requirements.Contradictions...)

	if s.Requirements.Brand != nil {
		b := *s.Requirements.Brand
		b.Accessibility = append([]string(nil), s.Requirements.Brand.Accessibility...)
		b.Infrastructure = append([]string(nil), s.Requirements.Brand.Infrastructure...)
		b.Location.Landmarks = append([]string(nil), s.Requirements.Brand.Location.Landmarks...)
		next.Requirements.Brand = &b
	}
	if s.Requirements.Owner != nil {
		o := *s.Requirements.Owner
		o.Accessibility = append([]string(nil), s.Requirements.Owner.Accessibility...)
		o.Infrastructure = append([]string(nil), s.Requirements.Owner.Infrastructure...)
		o.Location.Landmarks = append([]string(nil), s.Requirements.Owner.Location.Landmarks...)
		next.Requirements.Owner = &o
	}
	if s.Requirements.Confidence != nil {
		m := make(map[string]float64, len(s.Requirements.Confidence))
		for k, v := range s.Requirements.Confidence {
			m[k] = v
		}
		next.Requirements.Confidence = m
	}

	return next
}
