package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leasematch-platform/leasematch/internal/conversation"
)

func TestRangeMatch(t *testing.T) {
	r := conversation.Range{Min: 400, Max: 600}

	assert.Equal(t, 1.0, rangeMatch(r, 500))
	assert.Equal(t, 1.0, rangeMatch(r, 400))
	assert.Equal(t, 1.0, rangeMatch(r, 600))

	// Distance is normalized by the span (200 here).
	assert.InDelta(t, 0.5, rangeMatch(r, 700), 1e-9)
	assert.InDelta(t, 0.5, rangeMatch(r, 300), 1e-9)
	assert.Equal(t, 0.0, rangeMatch(r, 1000))

	assert.Equal(t, neutral, rangeMatch(conversation.Range{}, 500))
	assert.Equal(t, neutral, rangeMatch(r, 0))
}

func TestRangeMatchOpenEnded(t *testing.T) {
	// Min-only and max-only ranges still behave as point targets.
	assert.Equal(t, 1.0, rangeMatch(conversation.Range{Min: 500}, 500))
	assert.Equal(t, 1.0, rangeMatch(conversation.Range{Max: 500}, 500))
	assert.Less(t, rangeMatch(conversation.Range{Min: 500}, 900), 1.0)
}

func TestLocationMatch(t *testing.T) {
	want := conversation.Location{City: "Bangalore", Area: "Koramangala"}

	score, known := locationMatch(want, "Bangalore", "Koramangala")
	assert.True(t, known)
	assert.Equal(t, 1.0, score)

	score, _ = locationMatch(want, "Bangalore", "Indiranagar")
	assert.Equal(t, 0.7, score)

	score, _ = locationMatch(want, "Mysore", "Koramangala")
	assert.Equal(t, 0.9, score)

	score, _ = locationMatch(want, "Mysore", "Jayanagar")
	assert.Equal(t, 0.2, score)

	score, known = locationMatch(conversation.Location{}, "Bangalore", "Koramangala")
	assert.False(t, known)
	assert.Equal(t, neutral, score)
}

func TestLocationMatchCaseInsensitive(t *testing.T) {
	want := conversation.Location{City: "bangalore"}

	score, known := locationMatch(want, "Bangalore", "")
	assert.True(t, known)
	assert.Equal(t, 0.7, score)
}

func TestOverlapFraction(t *testing.T) {
	score, known := overlapFraction([]string{"parking", "lift"}, []string{"Parking"})
	assert.True(t, known)
	assert.Equal(t, 0.5, score)

	score, _ = overlapFraction([]string{"parking"}, []string{"parking", "lift"})
	assert.Equal(t, 1.0, score)

	score, known = overlapFraction(nil, []string{"parking"})
	assert.False(t, known)
	assert.Equal(t, neutral, score)
}

func TestWeightedSumNormalizes(t *testing.T) {
	factors := []Factor{
		{Score: 1, Weight: 3},
		{Score: 0, Weight: 1},
	}
	assert.InDelta(t, 0.75, weightedSum(factors), 1e-9)
	assert.Equal(t, 0.0, weightedSum(nil))
}

func TestDataConfidence(t *testing.T) {
	factors := []Factor{
		{known: true},
		{known: true},
		{known: false},
		{known: false},
	}
	assert.Equal(t, 0.5, dataConfidence(factors))
	assert.Equal(t, 0.0, dataConfidence(nil))
}
