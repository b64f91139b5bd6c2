package classify

import (
	"strings"

	"github.com/leasematch-platform/leasematch/internal/conversation"
)

// ClarificationPrompt is the two-option question asked when the speaker's
// side cannot be determined. The engine emits it verbatim so that short
// numeric replies on the next turn can be interpreted as the answer.
const ClarificationPrompt = "Just to point you the right way, are you:\n" +
	"1. A brand looking for space to lease\n" +
	"2. A property owner wanting to list your space"

// margin a side's keyword score must exceed the other's by before we commit.
const margin = 0.3

// Result is the outcome of one classification attempt.
type Result struct {
	Type               conversation.EntityType
	Confidence         float64
	Evidence           string
	UserConfirmed      bool
	NeedsClarification bool
}

// Classify decides whether the speaker is a brand or an owner. Precedence:
// an already-established identity is returned unconditionally; then an
// unambiguous self-identification anywhere in history; then a short reply to
// our own clarification prompt; then a self-identification in the current
// utterance; then lexical keyword scoring with a strict margin. A false
// identity flip mid-conversation is worse than one extra question, so
// anything short of a clear signal asks for clarification.
func Classify(query string, state conversation.ConversationState) Result {
	// 1. Sticky identity.
	if state.Identity.Established() {
		return Result{
			Type:          state.Identity.Type,
			Confidence:    state.Identity.Confidence,
			Evidence:      "identity already established",
			UserConfirmed: state.Identity.UserConfirmed,
		}
	}

	// 2. Unambiguous prior self-identification in the history.
	if r, ok := scanHistory(state); ok {
		return r
	}

	// 3. A short reply right after our clarification prompt is the answer.
	if wasClarificationAsked(state) {
		if r, ok := interpretClarificationAnswer(query); ok {
			return r
		}
	}

	// 4. Self-identification in the current utterance, e.g. "I have a retail
	// space" or "looking for a small outlet".
	if t, marker, ok := strongMarker(query); ok {
		return Result{Type: t, Confidence: 0.9, Evidence: "self-description: " + marker}
	}

	// 5. Lexical signal scoring over the current query.
	if r, ok := scoreKeywords(query); ok {
		return r
	}

	return Result{NeedsClarification: true}
}

// strongMarker matches an utterance against the marker lists and the
// possessive space/property patterns. Owner markers win on a tie: "looking
// for a tenant" names the seeker but identifies the owner.
func strongMarker(line string) (conversation.EntityType, string, bool) {
	line = strings.ToLower(line)
	for _, marker := range strongOwnerMarkers {
		if strings.Contains(line, marker) {
			return conversation.EntityOwner, marker, true
		}
	}
	for _, marker := range strongBrandMarkers {
		if strings.Contains(line, marker) {
			return conversation.EntityBrand, marker, true
		}
	}
	if m := ownSpaceRe.FindString(line); m != "" {
		return conversation.EntityOwner, m, true
	}
	if m := seekSpaceRe.FindString(line); m != "" {
		return conversation.EntityBrand, m, true
	}
	return "", "", false
}

func scanHistory(state conversation.ConversationState) (Result, bool) {
	prevWasPrompt := false
	for _, msg := range state.Messages {
		if msg.Role == "assistant" {
			prevWasPrompt = strings.Contains(msg.Content, "1. A brand looking for space")
			continue
		}

		line := strings.ToLower(msg.Content)

		if prevWasPrompt {
			if r, ok := interpretClarificationAnswer(msg.Content); ok {
				return r, true
			}
		}
		prevWasPrompt = false

		if t, marker, ok := strongMarker(line); ok {
			return Result{Type: t, Confidence: 0.9, Evidence: "history: " + marker}, true
		}
	}
	return Result{}, false
}

func wasClarificationAsked(state conversation.ConversationState) bool {
	for i := len(state.Messages) - 1; i >= 0; i-- {
		msg := state.Messages[i]
		if msg.Role != "assistant" {
			continue
		}
		return strings.Contains(msg.Content, "1. A brand looking for space")
	}
	return false
}

// interpretClarificationAnswer reads a short reply as the answer to the
// two-option prompt: a menu number, the literal side name, or a repeated
// keyword from one of the options.
func interpretClarificationAnswer(reply string) (Result, bool) {
	answer := strings.ToLower(strings.TrimSpace(strings.Trim(reply, ".!)")))
	if len(answer) > 40 {
		return Result{}, false
	}

	switch {
	case answer == "1" || answer == "brand" || strings.Contains(answer, "looking for space"):
		return Result{Type: conversation.EntityBrand, Confidence: 0.95, Evidence: "answered clarification: " + answer, UserConfirmed: true}, true
	case answer == "2" || answer == "owner" || strings.Contains(answer, "property owner") || strings.Contains(answer, "list my space"):
		return Result{Type: conversation.EntityOwner, Confidence: 0.95, Evidence: "answered clarification: " + answer, UserConfirmed: true}, true
	}
	return Result{}, false
}

func scoreKeywords(query string) (Result, bool) {
	line := strings.ToLower(query)

	brandScore := fractionMatched(line, brandKeywords)
	ownerScore := fractionMatched(line, ownerKeywords)

	switch {
	case brandScore-ownerScore >= margin:
		return Result{Type: conversation.EntityBrand, Confidence: brandScore, Evidence: "keyword signals"}, true
	case ownerScore-brandScore >= margin:
		return Result{Type: conversation.EntityOwner, Confidence: ownerScore, Evidence: "keyword signals"}, true
	}
	return Result{}, false
}

func fractionMatched(line string, keywords []string) float64 {
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(line, kw) {
			matched++
		}
	}
	return float64(matched) / float64(len(keywords))
}
