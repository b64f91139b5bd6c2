package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/leasematch-platform/leasematch/internal/conversation"
	"github.com/leasematch-platform/leasematch/internal/nlp"
)

// confidentNumber is the disambiguation confidence above which a bare number
// is rewritten in place instead of triggering a clarification.
const confidentNumber = 0.6

// normalizeNumbers rewrites bare number mentions with explicit units so the
// extractor sees unambiguous text. The first mention that cannot be resolved
// confidently produces a pending clarification instead; the query is then
// left untouched.
func normalizeNumbers(query string, entities []conversation.Entity, state conversation.ConversationState) (string, *conversation.PendingClarification) {
	// Only a lone unit-less number is ambiguous. Utterances with explicit
	// units, or several numbers, carry enough context for the extractor.
	var bare []conversation.Entity
	for _, ent := range entities {
		switch ent.Type {
		case "area", "currency":
			return query, nil
		case "number":
			bare = append(bare, ent)
		}
	}
	if len(bare) != 1 {
		return query, nil
	}

	ent := bare[0]
	res := nlp.DisambiguateNumber(ent.Number, query, state)
	if res.NeedsClarification {
		return query, &conversation.PendingClarification{
			ID:             uuid.New().String(),
			Question:       fmt.Sprintf("When you say %s, do you mean:", ent.Value),
			Priority:       1,
			Field:          string(res.Kind),
			PossibleValues: res.ClarificationOptions,
			Context:        ent.Value,
		}
	}
	if res.Confidence >= confidentNumber {
		return strings.Replace(query, ent.Value, rewriteNumber(res), 1), nil
	}
	return query, nil
}

func rewriteNumber(res nlp.NumberResult) string {
	value := strconv.FormatFloat(res.Value, 'f', -1, 64)
	switch res.Kind {
	case nlp.KindArea:
		return value + " sqft"
	case nlp.KindCurrency:
		return value + " rupees per month"
	case nlp.KindDeposit:
		return value + " rupees deposit"
	}
	return value
}

// clarificationQuestion renders a pending number clarification as the
// multiple-choice message for this turn.
func clarificationQuestion(c conversation.PendingClarification) string {
	var b strings.Builder
	b.WriteString(c.Question)
	for i, opt := range c.PossibleValues {
		fmt.Fprintf(&b, "\n%d. %s", i+1, opt)
	}
	return b.String()
}

// resolveNumberClarifications closes pending number questions the current
// utterance answers, either by picking an option off the menu ("2") or by
// restating the number with a unit ("I meant lakhs per month"). The resolved
// value merges straight into requirements so it never depends on the model
// re-extracting it. The bool reports a bare menu choice, which carries no
// further content worth extracting.
func resolveNumberClarifications(state conversation.ConversationState, query string) (conversation.ConversationState, bool) {
	menuAnswered := false
	for _, c := range state.Clarifications {
		n, err := strconv.ParseFloat(c.Context, 64)
		if err != nil {
			continue
		}
		utterance := query
		if opt, ok := menuChoice(query, c.PossibleValues); ok {
			utterance = opt
			menuAnswered = true
		}
		res := nlp.DisambiguateNumber(n, utterance, state)
		if res.NeedsClarification {
			continue
		}
		state = state.ResolvePendingClarification(c.ID, string(res.Kind))
		state = state.UpdateRequirements(
			clarifiedExtraction(state.Identity.Type, res),
			map[string]float64{clarifiedField(state.Identity.Type, res.Kind): res.Confidence},
		)
	}
	return state, menuAnswered
}

// menuChoice maps a short reply to one of the offered clarification options,
// by ordinal ("2") or by repeating the option text.
func menuChoice(reply string, options []string) (string, bool) {
	answer := strings.ToLower(strings.TrimSpace(strings.Trim(reply, ".!)")))
	if idx, err := strconv.Atoi(answer); err == nil && idx >= 1 && idx <= len(options) {
		return options[idx-1], true
	}
	for _, opt := range options {
		if answer == strings.ToLower(opt) {
			return opt, true
		}
	}
	return "", false
}

// clarifiedExtraction turns a resolved number into a partial requirements
// object for the established side.
func clarifiedExtraction(t conversation.EntityType, res nlp.NumberResult) *conversation.Extracted {
	switch t {
	case conversation.EntityBrand:
		b := &conversation.BrandRequirements{}
		switch res.Kind {
		case nlp.KindArea:
			b.Area = conversation.Range{Min: res.Value, Max: res.Value}
		case nlp.KindCurrency:
			b.Budget.MonthlyRent = conversation.Range{Min: res.Value, Max: res.Value}
		case nlp.KindDeposit:
			b.Budget.Deposit = res.Value
		default:
			return nil
		}
		return &conversation.Extracted{Brand: b}
	case conversation.EntityOwner:
		o := &conversation.OwnerRequirements{}
		switch res.Kind {
		case nlp.KindArea:
			o.PropertyArea = res.Value
		case nlp.KindCurrency:
			o.MonthlyRent = res.Value
		case nlp.KindDeposit:
			o.Deposit = res.Value
		default:
			return nil
		}
		return &conversation.Extracted{Owner: o}
	}
	return nil
}

func clarifiedField(t conversation.EntityType, kind nlp.NumberKind) string {
	if t == conversation.EntityOwner {
		switch kind {
		case nlp.KindArea:
			return "property_area"
		case nlp.KindCurrency:
			return "monthly_rent"
		case nlp.KindDeposit:
			return "deposit"
		}
		return string(kind)
	}
	switch kind {
	case nlp.KindArea:
		return "area"
	case nlp.KindCurrency:
		return "budget.monthly_rent"
	case nlp.KindDeposit:
		return "budget.deposit"
	}
	return string(kind)
}
