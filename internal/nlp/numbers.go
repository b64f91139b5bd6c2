package nlp

import (
	"regexp"
	"strconv"

	"github.com/leasematch-platform/leasematch/internal/conversation"
)

// NumberKind classifies what an ambiguous bare number means.
type NumberKind string

const (
	KindArea     NumberKind = "area"
	KindCurrency NumberKind = "currency"
	KindDeposit  NumberKind = "deposit"
	KindUnknown  NumberKind = "unknown"
)

// NumberResult is the outcome of disambiguating one number mention.
type NumberResult struct {
	Kind                 NumberKind `json:"kind"`
	Value                float64    `json:"value"`
	Confidence           float64    `json:"confidence"`
	NeedsClarification   bool       `json:"needs_clarification"`
	ClarificationOptions []string   `json:"clarification_options,omitempty"`
}

const lakh = 100000

var (
	areaUnitRe     = regexp.MustCompile(`(?i)\b(?:sq\.? ?ft|sqft|sft|square\s+feet)\b`)
	lakhUnitRe     = regexp.MustCompile(`(?i)\b(?:lakhs?|lacs?)\b`)
	currencyUnitRe = regexp.MustCompile(`(?i)(?:₹|\brs\.?\s|\brupees\b|\binr\b)`)
	thousandRe     = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*k\b`)
	depositWordRe  = regexp.MustCompile(`(?i)\b(?:deposit|advance|security)\b`)
)

func clarificationOptions(n float64) []string {
	return []string{
		formatAmount(n) + " sqft of area",
		formatAmount(n) + " lakhs per month",
		"₹" + formatAmount(n) + " per month",
	}
}

// DisambiguateNumber classifies a bare number from the given utterance as
// area, currency or deposit. Each step short-circuits on a confident match:
// explicit units, current topic, the pattern of the previous number entity,
// then pure magnitude heuristics. Deterministic for a given (n, utterance,
// state).
func DisambiguateNumber(n float64, utterance string, state conversation.ConversationState) NumberResult {
	// 1. Explicit unit tokens in the current utterance.
	if areaUnitRe.MatchString(utterance) {
		return NumberResult{Kind: KindArea, Value: n, Confidence: 0.95}
	}
	if lakhUnitRe.MatchString(utterance) {
		kind := KindCurrency
		if depositWordRe.MatchString(utterance) {
			kind = KindDeposit
		}
		return NumberResult{Kind: kind, Value: n * lakh, Confidence: 0.95}
	}
	if currencyUnitRe.MatchString(utterance) || thousandRe.MatchString(utterance) {
		value := n
		if thousandRe.MatchString(utterance) {
			value = n * 1000
		}
		kind := KindCurrency
		if depositWordRe.MatchString(utterance) {
			kind = KindDeposit
		}
		return NumberResult{Kind: kind, Value: value, Confidence: 0.95}
	}

	// 2. Current discussion topic.
	switch state.Semantic.Topic {
	case "area":
		return NumberResult{Kind: KindArea, Value: n, Confidence: 0.85}
	case "budget":
		if n < 100 {
			// Probably lakhs, but too small to commit to.
			return NumberResult{
				Kind:                 KindCurrency,
				Value:                n * lakh,
				Confidence:           0.7,
				NeedsClarification:   true,
				ClarificationOptions: clarificationOptions(n),
			}
		}
		return NumberResult{Kind: KindCurrency, Value: n, Confidence: 0.8}
	}

	// 3. Pattern of the most recent number entity.
	if prev := lastNumberEntity(state); prev != nil {
		switch prev.Type {
		case "area":
			return NumberResult{Kind: KindArea, Value: n, Confidence: 0.65}
		case "currency":
			return NumberResult{Kind: KindCurrency, Value: n, Confidence: 0.65}
		}
	}

	// 4. Magnitude heuristics.
	switch {
	case n >= 1 && n <= 50:
		return NumberResult{
			Kind:                 KindCurrency,
			Value:                n * lakh,
			Confidence:           0.5,
			NeedsClarification:   true,
			ClarificationOptions: clarificationOptions(n),
		}
	case n >= 100 && n <= 9999:
		return NumberResult{Kind: KindArea, Value: n, Confidence: 0.75}
	case n >= 10000 && n <= 999999:
		return NumberResult{
			Kind:                 KindCurrency,
			Value:                n,
			Confidence:           0.55,
			NeedsClarification:   true,
			ClarificationOptions: clarificationOptions(n),
		}
	}

	// 5. No basis for a decision.
	return NumberResult{
		Kind:                 KindUnknown,
		Value:                n,
		NeedsClarification:   true,
		ClarificationOptions: clarificationOptions(n),
	}
}

func lastNumberEntity(state conversation.ConversationState) *conversation.Entity {
	for i := len(state.Semantic.RecentEntities) - 1; i >= 0; i-- {
		e := state.Semantic.RecentEntities[i]
		if e.Type == "area" || e.Type == "currency" || e.Type == "number" {
			return &state.Semantic.RecentEntities[i]
		}
	}
	return nil
}

func formatAmount(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
