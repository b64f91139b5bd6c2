package scoring

import (
	"github.com/leasematch-platform/leasematch/internal/conversation"
	"github.com/leasematch-platform/leasematch/internal/listings"
)

// PFIWeights are the factor weights for how well a seeker fits the listing
// owner's preferences.
type PFIWeights struct {
	Category      float64
	Reputation    float64
	Affordability float64
	Footfall      float64
	Demographics  float64
	Utilization   float64
}

// DefaultPFIWeights per the matching model.
func DefaultPFIWeights() PFIWeights {
	return PFIWeights{
		Category:      0.25,
		Reputation:    0.20,
		Affordability: 0.20,
		Footfall:      0.15,
		Demographics:  0.10,
		Utilization:   0.10,
	}
}

// ComputePFI scores how well the brand satisfies the listing owner's
// preferences (fit of seeker for listing).
func ComputePFI(brand *conversation.BrandRequirements, l listings.Listing, w PFIWeights) SubScore {
	factors := []Factor{
		categoryFactor(brand, l, w.Category),
		reputationFactor(brand, w.Reputation),
		affordabilityFactor(brand, l, w.Affordability),
		footfallFitFactor(brand, l, w.Footfall),
		demographicsFactor(w.Demographics),
		utilizationFactor(brand, l, w.Utilization),
	}
	return SubScore{
		Total:      weightedSum(factors),
		Confidence: dataConfidence(factors),
		Factors:    factors,
	}
}

func categoryFactor(brand *conversation.BrandRequirements, l listings.Listing, weight float64) Factor {
	if brand.Category == "" || len(l.PreferredCategories) == 0 {
		return Factor{Name: "category", Score: neutral, Weight: weight}
	}
	score := 0.3
	if contains(l.PreferredCategories, brand.Category) {
		score = 1
	}
	return Factor{Name: "category", Score: score, Weight: weight, known: true}
}

// reputationFactor has no brand-reputation source in the conversation yet;
// a stated category and lease term are treated as weak positive signals.
func reputationFactor(brand *conversation.BrandRequirements, weight float64) Factor {
	score := neutral
	known := false
	if brand.Category != "" {
		score += 0.15
		known = true
	}
	if brand.LeaseTerm != "" {
		score += 0.15
		known = true
	}
	return Factor{Name: "reputation", Score: clamp01(score), Weight: weight, known: known}
}

func affordabilityFactor(brand *conversation.BrandRequirements, l listings.Listing, weight float64) Factor {
	budget := brand.Budget.MonthlyRent
	if budget.IsZero() || l.Price <= 0 {
		return Factor{Name: "affordability", Score: neutral, Weight: weight}
	}
	max := budget.Max
	if max == 0 {
		max = budget.Min
	}
	score := 1.0
	if l.Price > max {
		score = clamp01(max / l.Price)
	}
	return Factor{Name: "affordability", Score: score, Weight: weight, known: true}
}

func footfallFitFactor(brand *conversation.BrandRequirements, l listings.Listing, weight float64) Factor {
	if brand.Footfall.IsZero() || l.Footfall <= 0 {
		return Factor{Name: "footfall_fit", Score: neutral, Weight: weight}
	}
	return Factor{Name: "footfall_fit", Score: rangeMatch(brand.Footfall, l.Footfall), Weight: weight, known: true}
}

// demographicsFactor is neutral until demographic profiles exist on either
// side of the marketplace.
func demographicsFactor(weight float64) Factor {
	return Factor{Name: "demographics", Score: neutral, Weight: weight}
}

// utilizationFactor rewards a brand whose area need uses the space well;
// renting 500 sqft of a 2000 sqft listing is a poor fit for the owner.
func utilizationFactor(brand *conversation.BrandRequirements, l listings.Listing, weight float64) Factor {
	if brand.Area.IsZero() || l.Size <= 0 {
		return Factor{Name: "utilization", Score: neutral, Weight: weight}
	}
	need := brand.Area.Max
	if need == 0 {
		need = brand.Area.Min
	}
	score := clamp01(need / l.Size)
	if need > l.Size {
		score = clamp01(l.Size / need)
	}
	return Factor{Name: "utilization", Score: score, Weight: weight, known: true}
}
