package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/leasematch-platform/leasematch/internal/classify"
	"github.com/leasematch-platform/leasematch/internal/conversation"
	"github.com/leasematch-platform/leasematch/internal/events"
	"github.com/leasematch-platform/leasematch/internal/extract"
	"github.com/leasematch-platform/leasematch/internal/listings"
	"github.com/leasematch-platform/leasematch/internal/metrics"
	"github.com/leasematch-platform/leasematch/internal/nlp"
	"github.com/leasematch-platform/leasematch/internal/scoring"
)

// Phase is where the per-turn state machine ended up. Every turn terminates
// in RESPONDING; the phase names which path produced the response.
type Phase string

const (
	PhaseNeedsEntityType Phase = "NEEDS_ENTITY_TYPE"
	PhaseCollecting      Phase = "COLLECTING_REQUIREMENTS"
	PhaseReadyToSearch   Phase = "READY_TO_SEARCH"
	PhaseReadyToRedirect Phase = "READY_TO_REDIRECT"
)

// Engine orchestrates one conversation turn: classify the speaker, normalize
// ambiguous mentions, extract requirements, merge, and either ask the next
// question or search and rank.
type Engine struct {
	extractor *extract.Extractor
	repo      listings.Repository
	scorer    *scoring.Engine
	publisher *events.Publisher
}

// New creates an engine. publisher may be nil; events are then skipped.
func New(extractor *extract.Extractor, repo listings.Repository, scorer *scoring.Engine, publisher *events.Publisher) *Engine {
	return &Engine{
		extractor: extractor,
		repo:      repo,
		scorer:    scorer,
		publisher: publisher,
	}
}

// ProcessTurn runs the state machine for one user utterance and returns the
// updated state plus the response payload. The input state is never mutated.
func (e *Engine) ProcessTurn(ctx context.Context, state conversation.ConversationState, query string) (conversation.ConversationState, *TurnResult) {
	// Classification comes first; everything downstream needs the side.
	cls := classify.Classify(query, state)

	topic := nlp.DetectTopic(query)
	entities := nlp.ExtractEntities(query, state)
	references := nlp.FindReferences(query, state)

	if cls.NeedsClarification {
		state = state.AddMessage("user", query, nil)
		state = state.UpdateSemanticContext(topic, entities, references)
		return e.respond(ctx, state, PhaseNeedsEntityType, TurnResult{
			Message: classify.ClarificationPrompt,
		})
	}

	// A reply to a pending number menu resolves and merges before anything
	// else, so it cannot be re-read as a fresh ambiguous number.
	before := len(state.Requirements.Contradictions)
	state, menuAnswered := resolveNumberClarifications(state, query)

	normalized := query
	var numberClarification *conversation.PendingClarification
	if !menuAnswered {
		normalized, numberClarification = normalizeNumbers(query, entities, state)
	}

	// Extraction. Single-token confirmations and bare menu choices skip the
	// external call, and any failure degrades to an empty partial so the
	// turn continues on what is already known.
	var (
		extracted  *conversation.Extracted
		confidence map[string]float64
	)
	if !menuAnswered && !extract.Bypass(query) {
		var err error
		extracted, confidence, err = e.extractor.Extract(ctx, normalized, transcript(state), cls.Type)
		if err != nil {
			slog.Warn("extraction degraded",
				"session_id", state.SessionID,
				"turn", state.Turn+1,
				"error", err,
			)
		}
	}

	state = state.AddMessage("user", query, extracted)
	state = state.EstablishIdentity(cls.Type, cls.Confidence, cls.Evidence, cls.UserConfirmed)
	state = state.UpdateSemanticContext(topic, entities, references)

	state = state.UpdateRequirements(extracted, confidence)
	e.publishContradictions(ctx, state, before)

	if numberClarification != nil {
		state = state.AddPendingClarification(*numberClarification)
		return e.respond(ctx, state, PhaseCollecting, TurnResult{
			Message: clarificationQuestion(*numberClarification),
		})
	}

	report := conversation.Completeness(state)
	if !report.Ready {
		return e.respond(ctx, state, PhaseCollecting, TurnResult{
			Message: followUpQuestion(state, report),
		})
	}

	if state.Identity.Type == conversation.EntityOwner {
		return e.respond(ctx, state, PhaseReadyToRedirect, TurnResult{
			Message:         ownerSummary(state.Requirements.Owner),
			ReadyToRedirect: true,
		})
	}

	return e.search(ctx, state)
}

// search calls the listing boundary and ranks the candidates. A boundary
// failure is converted into an apologetic reply; the merged state survives.
func (e *Engine) search(ctx context.Context, state conversation.ConversationState) (conversation.ConversationState, *TurnResult) {
	brand := state.Requirements.Brand
	filter := searchFilter(brand)

	candidates, err := e.repo.Search(ctx, filter, searchLimit)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		slog.Error("listing search failed",
			"session_id", state.SessionID,
			"turn", state.Turn,
			"error", err,
		)
		return e.respond(ctx, state, PhaseCollecting, TurnResult{
			Message: "Sorry, I could not search listings just now. Everything you told me is saved. Please try again in a moment.",
		})
	}
	metrics.SearchesTotal.WithLabelValues("ok").Inc()

	matches := e.scorer.Rank(brand, candidates, state.Identity.Type)
	state = state.RecordSearch(len(matches))

	e.publishSearch(ctx, state, len(candidates), matches)

	return e.respond(ctx, state, PhaseReadyToSearch, TurnResult{
		Message: matchMessage(matches),
		Matches: matches,
		Summary: summarize(len(candidates), matches, conversation.Completeness(state)),
	})
}

// respond finalizes the turn: appends the assistant message, counts the
// phase, publishes the turn event and fills the shared result fields.
func (e *Engine) respond(ctx context.Context, state conversation.ConversationState, phase Phase, result TurnResult) (conversation.ConversationState, *TurnResult) {
	state = state.AddMessage("assistant", result.Message, nil)

	report := conversation.Completeness(state)
	result.Phase = phase
	result.EntityType = state.Identity.Type
	result.Completeness = report

	metrics.TurnsTotal.WithLabelValues(string(phase)).Inc()

	if err := e.publisher.PublishTurn(ctx, events.TurnEvent{
		SessionID:    state.SessionID,
		Turn:         state.Turn,
		Phase:        string(phase),
		EntityType:   string(state.Identity.Type),
		Completeness: report.Percent,
		Timestamp:    time.Now().UTC(),
	}); err != nil {
		slog.Warn("publishing turn event", "error", err)
	}

	return state, &result
}

func (e *Engine) publishContradictions(ctx context.Context, state conversation.ConversationState, before int) {
	for _, c := range state.Requirements.Contradictions[before:] {
		if err := e.publisher.PublishContradiction(ctx, events.ContradictionEvent{
			SessionID: state.SessionID,
			Turn:      c.Turn,
			Field:     c.Field,
			OldValue:  c.OldValue,
			NewValue:  c.NewValue,
			Timestamp: time.Now().UTC(),
		}); err != nil {
			slog.Warn("publishing contradiction event", "error", err)
		}
	}
}

func (e *Engine) publishSearch(ctx context.Context, state conversation.ConversationState, candidates int, matches []scoring.ScoredMatch) {
	event := events.SearchEvent{
		SessionID:  state.SessionID,
		Turn:       state.Turn,
		Candidates: candidates,
		Matches:    len(matches),
		Timestamp:  time.Now().UTC(),
	}
	if len(matches) > 0 {
		event.TopScore = matches[0].FinalScore
	}
	if err := e.publisher.PublishSearch(ctx, event); err != nil {
		slog.Warn("publishing search event", "error", err)
	}
}

// transcript renders the message history the way the extraction prompt
// expects it.
func transcript(state conversation.ConversationState) string {
	var b []byte
	for _, m := range state.Messages {
		b = append(b, m.Role...)
		b = append(b, ": "...)
		b = append(b, m.Content...)
		b = append(b, '\n')
	}
	return string(b)
}
