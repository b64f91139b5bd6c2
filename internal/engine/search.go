package engine

import (
	"fmt"
	"strings"

	"github.com/leasematch-platform/leasematch/internal/conversation"
	"github.com/leasematch-platform/leasematch/internal/listings"
	"github.com/leasematch-platform/leasematch/internal/scoring"
)

// searchLimit bounds how many candidates the boundary returns for scoring.
const searchLimit = 50

// Filter bounds are widened so near-misses still reach the scorer; exact fit
// is the scorer's job, not the query's.
const (
	priceSlack = 1.25
	sizeSlack  = 0.75
)

func searchFilter(brand *conversation.BrandRequirements) listings.SearchFilter {
	if brand == nil {
		return listings.SearchFilter{}
	}
	filter := listings.SearchFilter{
		City:         brand.Location.City,
		PropertyType: brand.PropertyType,
	}
	if max := brand.Budget.MonthlyRent.Max; max > 0 {
		filter.MaxPrice = max * priceSlack
	}
	if min := brand.Area.Min; min > 0 {
		filter.MinSize = min * sizeSlack
	}
	return filter
}

func matchMessage(matches []scoring.ScoredMatch) string {
	if len(matches) == 0 {
		return "I could not find listings matching your requirements yet. Want to widen the budget or try a nearby locality?"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are your top %d matches:\n", len(matches))
	for i, m := range matches {
		fmt.Fprintf(&b, "%d. %s, %s (match %d%%, %s)\n", i+1, m.Title, m.Address, m.FinalScore, m.Tier)
		if len(m.Strengths) > 0 {
			fmt.Fprintf(&b, "   Strengths: %s\n", strings.Join(m.Strengths, "; "))
		}
		if len(m.Considerations) > 0 {
			fmt.Fprintf(&b, "   Worth checking: %s\n", strings.Join(m.Considerations, "; "))
		}
	}
	b.WriteString("Want more detail on any of these?")
	return b.String()
}
