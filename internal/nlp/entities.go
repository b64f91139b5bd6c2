package nlp

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/leasematch-platform/leasematch/internal/conversation"
)

var (
	numberMentionRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(sq\.? ?ft|sqft|sft|square\s+feet|lakhs?|lacs?|k\b|crores?|cr\b)?`)
	locationRe      = regexp.MustCompile(`(?:\b(?:in|at|near|around)\s+)([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)

	budgetTopicRe   = regexp.MustCompile(`(?i)\b(?:budget|rent|price|lakhs?|deposit|afford|₹|rs\.?|rupees)\b`)
	areaTopicRe     = regexp.MustCompile(`(?i)\b(?:sqft|sq\.? ?ft|square\s+feet|area|size|carpet)\b`)
	locationTopicRe = regexp.MustCompile(`(?i)\b(?:location|city|where|place|locality|neighbourhood|neighborhood)\b`)
)

// DetectTopic infers what the utterance is discussing. Empty when no signal.
func DetectTopic(utterance string) string {
	switch {
	case budgetTopicRe.MatchString(utterance):
		return "budget"
	case areaTopicRe.MatchString(utterance):
		return "area"
	case locationTopicRe.MatchString(utterance) || locationRe.MatchString(utterance):
		return "location"
	}
	return ""
}

// ExtractEntities spots location and number mentions in the query, tagging
// each with the conversation turn and its raw context. The results feed
// SemanticContext.RecentEntities.
func ExtractEntities(query string, state conversation.ConversationState) []conversation.Entity {
	turn := state.Turn + 1 // entities belong to the turn being processed
	var entities []conversation.Entity

	for _, m := range locationRe.FindAllStringSubmatch(query, -1) {
		entities = append(entities, conversation.Entity{
			Type:       "location",
			Value:      m[1],
			Confidence: 0.8,
			Turn:       turn,
			Context:    strings.TrimSpace(m[0]),
		})
	}

	for _, m := range numberMentionRe.FindAllStringSubmatch(query, -1) {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		e := conversation.Entity{
			Type:       "number",
			Value:      m[1],
			Number:     n,
			Confidence: 0.6,
			Turn:       turn,
			Context:    strings.TrimSpace(m[0]),
		}
		switch unit := strings.ToLower(strings.TrimSpace(m[2])); {
		case unit == "":
		case strings.HasPrefix(unit, "sq") || strings.HasPrefix(unit, "sft"):
			e.Type = "area"
			e.Confidence = 0.95
		default: // lakh, k, crore variants
			e.Type = "currency"
			e.Confidence = 0.95
			e.Number = n * currencyMultiplier(unit)
		}
		entities = append(entities, e)
	}

	return entities
}

func currencyMultiplier(unit string) float64 {
	switch {
	case strings.HasPrefix(unit, "lakh"), strings.HasPrefix(unit, "lac"):
		return lakh
	case strings.HasPrefix(unit, "cr"):
		return 100 * lakh
	case unit == "k":
		return 1000
	}
	return 1
}
