package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/leasematch-platform/leasematch/internal/conversation"
	"github.com/leasematch-platform/leasematch/internal/listings"
	"github.com/leasematch-platform/leasematch/internal/metrics"
)

// Config holds the tunable parts of the matching model.
type Config struct {
	BFI BFIWeights
	PFI PFIWeights

	// Role-dependent combination of the two sub-scores.
	BrandBFIWeight float64 // searching party is a brand
	OwnerBFIWeight float64 // owner-side listing flow

	TopN                int
	ExcellentThreshold  int
	GoodThreshold       int
	StrengthCutoff      float64
	ConsiderationCutoff float64
}

// DefaultConfig returns the production matching model.
func DefaultConfig() Config {
	return Config{
		BFI:                 DefaultBFIWeights(),
		PFI:                 DefaultPFIWeights(),
		BrandBFIWeight:      0.70,
		OwnerBFIWeight:      0.30,
		TopN:                5,
		ExcellentThreshold:  80,
		GoodThreshold:       60,
		StrengthCutoff:      0.8,
		ConsiderationCutoff: 0.6,
	}
}

// FinancialSummary gives the cost picture of one match.
type FinancialSummary struct {
	MonthlyRent     float64 `json:"monthly_rent"`
	SecurityDeposit float64 `json:"security_deposit"`
	AnnualCost      float64 `json:"annual_cost"`
}

// ScoredMatch is one ranked candidate with its score breakdown.
type ScoredMatch struct {
	ListingID      uuid.UUID        `json:"listing_id"`
	Title          string           `json:"title"`
	Address        string           `json:"address"`
	FinalScore     int              `json:"final_score"` // 0-100
	Tier           string           `json:"tier"`
	Confidence     float64          `json:"confidence"`
	BFI            SubScore         `json:"bfi"`
	PFI            SubScore         `json:"pfi"`
	Strengths      []string         `json:"strengths,omitempty"`
	Considerations []string         `json:"considerations,omitempty"`
	Financial      FinancialSummary `json:"financial"`
}

// Engine computes ranked matches between a seeker's requirements and
// candidate listings.
type Engine struct {
	cfg Config
}

// NewEngine creates a scoring engine.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Score computes the combined match score for one candidate. The searcher
// role decides how the two sub-scores are weighted; the final confidence is
// the minimum of the two sub-confidences; the weaker signal caps trust.
func (e *Engine) Score(brand *conversation.BrandRequirements, l listings.Listing, searcher conversation.EntityType) ScoredMatch {
	bfi := ComputeBFI(brand, l, e.cfg.BFI)
	pfi := ComputePFI(brand, l, e.cfg.PFI)

	bfiWeight := e.cfg.BrandBFIWeight
	if searcher == conversation.EntityOwner {
		bfiWeight = e.cfg.OwnerBFIWeight
	}
	combined := bfiWeight*bfi.Total + (1-bfiWeight)*pfi.Total

	final := int(math.Round(clamp01(combined) * 100))

	match := ScoredMatch{
		ListingID:  l.ID,
		Title:      l.Title,
		Address:    l.Address,
		FinalScore: final,
		Tier:       e.tier(final),
		Confidence: math.Min(bfi.Confidence, pfi.Confidence),
		BFI:        bfi,
		PFI:        pfi,
		Financial: FinancialSummary{
			MonthlyRent:     l.Price,
			SecurityDeposit: l.SecurityDeposit,
			AnnualCost:      l.Price * 12,
		},
	}
	match.Strengths, match.Considerations = e.explain(bfi, pfi)
	return match
}

// Rank scores every candidate, sorts descending and truncates to the top N.
func (e *Engine) Rank(brand *conversation.BrandRequirements, candidates []listings.Listing, searcher conversation.EntityType) []ScoredMatch {
	matches := make([]ScoredMatch, 0, len(candidates))
	for _, l := range candidates {
		m := e.Score(brand, l, searcher)
		metrics.MatchScore.Observe(float64(m.FinalScore))
		matches = append(matches, m)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].FinalScore > matches[j].FinalScore
	})

	if len(matches) > e.cfg.TopN {
		matches = matches[:e.cfg.TopN]
	}
	return matches
}

func (e *Engine) tier(score int) string {
	switch {
	case score >= e.cfg.ExcellentThreshold:
		return "excellent"
	case score >= e.cfg.GoodThreshold:
		return "good"
	default:
		return "fair"
	}
}

// explain turns high and low factors into human-readable strengths and
// considerations for transparency.
func (e *Engine) explain(bfi, pfi SubScore) (strengths, considerations []string) {
	for _, f := range append(append([]Factor(nil), bfi.Factors...), pfi.Factors...) {
		switch {
		case f.known && f.Score > e.cfg.StrengthCutoff:
			strengths = append(strengths, fmt.Sprintf("strong %s match (%.0f%%)", f.Name, f.Score*100))
		case f.known && f.Score < e.cfg.ConsiderationCutoff:
			considerations = append(considerations, fmt.Sprintf("weak %s match (%.0f%%)", f.Name, f.Score*100))
		}
	}
	return strengths, considerations
}
