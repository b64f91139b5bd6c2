package nlp

import (
	"regexp"
	"strings"

	"github.com/leasematch-platform/leasematch/internal/conversation"
)

var (
	sameNounRe = regexp.MustCompile(`(?i)\bsame\s+(location|place|area|city|budget|rent|price|size)\b`)
	refTokenRe = regexp.MustCompile(`(?i)\b(?:it|that|this|same\s+(?:location|place|area|city|budget|rent|price|size))\b`)
)

// FindReferences spots referring expressions in the query and resolves each
// against the semantic context. Unresolvable tokens are dropped.
func FindReferences(query string, state conversation.ConversationState) []conversation.Reference {
	turn := state.Turn + 1
	var refs []conversation.Reference
	for _, token := range refTokenRe.FindAllString(query, -1) {
		if e := ResolveReference(token, state); e != nil {
			refs = append(refs, conversation.Reference{
				Token:      token,
				EntityType: e.Type,
				Value:      e.Value,
				Turn:       turn,
			})
		}
	}
	return refs
}

// nounToEntityType maps the noun in a "same <noun>" reference to the entity
// type it refers to.
func nounToEntityType(noun string) string {
	switch strings.ToLower(noun) {
	case "location", "place", "city":
		return "location"
	case "budget", "rent", "price":
		return "currency"
	case "area", "size":
		return "area"
	}
	return ""
}

// topicToEntityType maps the current discussion topic to the entity type a
// bare pronoun would refer to.
func topicToEntityType(topic string) string {
	switch topic {
	case "budget":
		return "currency"
	case "area":
		return "area"
	case "location":
		return "location"
	}
	return ""
}

// ResolveReference maps a referring expression to the most recent matching
// entity. Bare pronouns ("it", "that", "this") resolve against the current
// topic; "same <noun>" resolves against the noun's type regardless of topic.
// Returns nil when nothing qualifies; callers must leave the original token
// untouched rather than guess.
func ResolveReference(token string, state conversation.ConversationState) *conversation.Entity {
	trimmed := strings.ToLower(strings.TrimSpace(token))

	if m := sameNounRe.FindStringSubmatch(token); m != nil {
		return mostRecentOfType(state, nounToEntityType(m[1]))
	}

	switch trimmed {
	case "it", "that", "this":
		want := topicToEntityType(state.Semantic.Topic)
		if want == "" {
			return nil
		}
		return mostRecentOfType(state, want)
	}

	return nil
}

func mostRecentOfType(state conversation.ConversationState, entityType string) *conversation.Entity {
	if entityType == "" {
		return nil
	}
	for i := len(state.Semantic.RecentEntities) - 1; i >= 0; i-- {
		if state.Semantic.RecentEntities[i].Type == entityType {
			e := state.Semantic.RecentEntities[i]
			return &e
		}
	}
	return nil
}
