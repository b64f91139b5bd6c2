package scoring

import (
	"strings"

	"github.com/leasematch-platform/leasematch/internal/conversation"
)

// Factor is one normalized [0,1] component of a sub-score.
type Factor struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
	known  bool    // had real data, not a neutral default
}

// neutral is used when neither side stated anything for a factor.
const neutral = 0.5

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// rangeMatch is 1 minus the normalized distance of value from the requested
// range, clamped to [0,1]. A value inside the range scores 1.
func rangeMatch(r conversation.Range, value float64) float64 {
	if r.IsZero() || value <= 0 {
		return neutral
	}
	min, max := r.Min, r.Max
	if min == 0 {
		min = max
	}
	if max == 0 {
		max = min
	}
	if value >= min && value <= max {
		return 1
	}
	span := max - min
	if span <= 0 {
		span = min
	}
	var distance float64
	if value < min {
		distance = min - value
	} else {
		distance = value - max
	}
	return clamp01(1 - distance/span)
}

// locationMatch compares requested and listed city/locality.
func locationMatch(want conversation.Location, city, locality string) (float64, bool) {
	if want.City == "" && want.Area == "" {
		return neutral, false
	}
	cityHit := want.City != "" && strings.EqualFold(want.City, city)
	localityHit := want.Area != "" && strings.EqualFold(want.Area, locality)
	switch {
	case cityHit && localityHit:
		return 1, true
	case localityHit:
		return 0.9, true
	case cityHit:
		return 0.7, true
	default:
		return 0.2, true
	}
}

// overlapFraction is the share of wanted items present in available.
func overlapFraction(wanted, available []string) (float64, bool) {
	if len(wanted) == 0 {
		return neutral, false
	}
	hits := 0
	for _, w := range wanted {
		for _, a := range available {
			if strings.EqualFold(w, a) {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(wanted)), true
}

// weightedSum computes Σ(weight × score) over the factors, normalized by the
// total weight so a misconfigured weight table cannot push past 1.
func weightedSum(factors []Factor) float64 {
	var sum, total float64
	for _, f := range factors {
		sum += f.Weight * f.Score
		total += f.Weight
	}
	if total == 0 {
		return 0
	}
	return clamp01(sum / total)
}

// dataConfidence is the fraction of factors backed by real data.
func dataConfidence(factors []Factor) float64 {
	if len(factors) == 0 {
		return 0
	}
	known := 0
	for _, f := range factors {
		if f.known {
			known++
		}
	}
	return float64(known) / float64(len(factors))
}
