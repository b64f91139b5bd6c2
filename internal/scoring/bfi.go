package scoring

import (
	"strings"

	"github.com/leasematch-platform/leasematch/internal/conversation"
	"github.com/leasematch-platform/leasematch/internal/listings"
)

// BFIWeights are the factor weights for how well a listing fits a seeker.
type BFIWeights struct {
	Area           float64
	Location       float64
	Budget         float64
	Footfall       float64
	Competition    float64
	Infrastructure float64
}

// DefaultBFIWeights per the matching model.
func DefaultBFIWeights() BFIWeights {
	return BFIWeights{
		Area:           0.20,
		Location:       0.25,
		Budget:         0.15,
		Footfall:       0.20,
		Competition:    0.10,
		Infrastructure: 0.10,
	}
}

// SubScore is one side of the match computation.
type SubScore struct {
	Total      float64  `json:"total"`
	Confidence float64  `json:"confidence"`
	Factors    []Factor `json:"factors"`
}

// ComputeBFI scores how well the listing satisfies the brand's stated
// requirements (fit of listing for seeker).
func ComputeBFI(brand *conversation.BrandRequirements, l listings.Listing, w BFIWeights) SubScore {
	factors := []Factor{
		areaFactor(brand, l, w.Area),
		locationFactor(brand, l, w.Location),
		budgetFactor(brand, l, w.Budget),
		footfallFactor(brand, l, w.Footfall),
		competitionFactor(l, w.Competition),
		infrastructureFactor(brand, l, w.Infrastructure),
	}
	return SubScore{
		Total:      weightedSum(factors),
		Confidence: dataConfidence(factors),
		Factors:    factors,
	}
}

func areaFactor(brand *conversation.BrandRequirements, l listings.Listing, weight float64) Factor {
	score := rangeMatch(brand.Area, l.Size)
	return Factor{Name: "area", Score: score, Weight: weight, known: !brand.Area.IsZero() && l.Size > 0}
}

func locationFactor(brand *conversation.BrandRequirements, l listings.Listing, weight float64) Factor {
	score, known := locationMatch(brand.Location, l.City, l.Locality)
	return Factor{Name: "location", Score: score, Weight: weight, known: known}
}

func budgetFactor(brand *conversation.BrandRequirements, l listings.Listing, weight float64) Factor {
	score := rangeMatch(brand.Budget.MonthlyRent, l.Price)
	known := !brand.Budget.MonthlyRent.IsZero() && l.Price > 0
	return Factor{Name: "budget", Score: score, Weight: weight, known: known}
}

func footfallFactor(brand *conversation.BrandRequirements, l listings.Listing, weight float64) Factor {
	score := rangeMatch(brand.Footfall, l.Footfall)
	known := !brand.Footfall.IsZero() && l.Footfall > 0
	return Factor{Name: "footfall", Score: score, Weight: weight, known: known}
}

// competitionFactor degrades linearly up to ten nearby competitors.
func competitionFactor(l listings.Listing, weight float64) Factor {
	if l.CompetitorCount == 0 {
		return Factor{Name: "competition", Score: neutral, Weight: weight}
	}
	score := clamp01(1 - float64(l.CompetitorCount)/10)
	return Factor{Name: "competition", Score: score, Weight: weight, known: true}
}

func infrastructureFactor(brand *conversation.BrandRequirements, l listings.Listing, weight float64) Factor {
	available := l.Infrastructure
	if l.Parking && !contains(available, "parking") {
		available = append(append([]string(nil), available...), "parking")
	}
	score, known := overlapFraction(brand.Infrastructure, available)
	return Factor{Name: "infrastructure", Score: score, Weight: weight, known: known}
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}
