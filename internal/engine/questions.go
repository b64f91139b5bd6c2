package engine

import (
	"fmt"
	"strings"

	"github.com/leasematch-platform/leasematch/internal/conversation"
)

// Exactly one question per turn, critical fields first.

var brandQuestions = map[string]string{
	"area":                "How much space are you looking for, in square feet?",
	"location.city":       "Which city should I search in? A locality helps too.",
	"budget.monthly_rent": "What monthly rent range works for you, for example 1 to 2 lakhs?",
}

var ownerQuestions = map[string]string{
	"property_area": "How large is your space, in square feet?",
	"location.city": "Which city is the property in?",
	"location.area": "Which locality or area of the city is it in?",
	"monthly_rent":  "What monthly rent are you expecting?",
}

func followUpQuestion(state conversation.ConversationState, report conversation.CompletenessReport) string {
	questions := brandQuestions
	if state.Identity.Type == conversation.EntityOwner {
		questions = ownerQuestions
	}

	if len(report.MissingCritical) > 0 {
		if q, ok := questions[report.MissingCritical[0]]; ok {
			return q
		}
	}

	if state.Identity.Type == conversation.EntityBrand {
		return brandOptionalQuestion(state.Requirements.Brand)
	}
	return "Anything else I should know about the property, like parking or availability?"
}

// brandOptionalQuestion fills in non-critical detail once the critical
// fields are collected but overall completion is still below the search bar.
func brandOptionalQuestion(r *conversation.BrandRequirements) string {
	switch {
	case r == nil:
		return "Tell me a bit more about the space you need."
	case r.PropertyType == "":
		return "What kind of space do you need, for example retail, office or F&B?"
	case r.Category == "":
		return "What business category is this for?"
	case r.Footfall.IsZero():
		return "Roughly how much daily footfall are you hoping for?"
	case len(r.Infrastructure) == 0:
		return "Any must-have infrastructure, like parking or a backup generator?"
	default:
		return "Anything else that matters for the space, like lease term or accessibility?"
	}
}

// ownerSummary is the redirect-ready recap of a fully described property.
func ownerSummary(r *conversation.OwnerRequirements) string {
	var b strings.Builder
	b.WriteString("Great, I have everything I need to list your property:\n")
	fmt.Fprintf(&b, "- %s in %s, %s\n", formatArea(r.PropertyArea), r.Location.Area, r.Location.City)
	fmt.Fprintf(&b, "- Expected rent ₹%.0f per month\n", r.MonthlyRent)
	if r.Deposit > 0 {
		fmt.Fprintf(&b, "- Security deposit ₹%.0f\n", r.Deposit)
	}
	if r.PropertyType != "" {
		fmt.Fprintf(&b, "- Property type: %s\n", r.PropertyType)
	}
	b.WriteString("I'll take you to the listing form to publish it.")
	return b.String()
}

func formatArea(sqft float64) string {
	return fmt.Sprintf("%.0f sqft", sqft)
}
