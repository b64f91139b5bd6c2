package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeRoundTrip(t *testing.T) {
	s := New("sess-rt")
	s = s.AddMessage("user", "I need 500 sqft in Koramangala", nil)
	s = s.EstablishIdentity(EntityBrand, 0.85, "looking for space", false)
	s = s.UpdateRequirements(&Extracted{Brand: &BrandRequirements{
		Area:     Range{Min: 450, Max: 550},
		Location: Location{City: "Koramangala", Area: "Koramangala"},
		Budget:   Budget{MonthlyRent: Range{Min: 100000, Max: 200000}},
	}}, map[string]float64{"area": 0.9, "location": 0.95})
	s = s.UpdateSemanticContext("area",
		[]Entity{{Type: "area", Value: "500", Number: 500, Confidence: 0.9, Turn: 1}},
		nil,
	)
	s = s.AddPendingClarification(PendingClarification{ID: "c1", Question: "q", Field: "f", Priority: 1})

	data, err := Serialize(s)
	require.NoError(t, err)

	got, err := Deserialize(data)
	require.NoError(t, err)

	assert.Equal(t, s.SessionID, got.SessionID)
	assert.Equal(t, s.Turn, got.Turn)
	assert.Equal(t, s.Identity, got.Identity)
	assert.Equal(t, s.Requirements, got.Requirements)
	assert.Equal(t, s.Semantic, got.Semantic)
	assert.Equal(t, s.Clarifications, got.Clarifications)

	// Timestamps must survive to at least millisecond precision.
	assert.WithinDuration(t, s.StartedAt, got.StartedAt, time.Millisecond)
	assert.WithinDuration(t, s.LastActivityAt, got.LastActivityAt, time.Millisecond)
	require.Len(t, got.Messages, 1)
	assert.WithinDuration(t, s.Messages[0].Timestamp, got.Messages[0].Timestamp, time.Millisecond)
}

func TestDeserialize_RejectsGarbage(t *testing.T) {
	_, err := Deserialize([]byte("not json"))
	assert.Error(t, err)
}

func TestDeserialize_RejectsMissingSessionID(t *testing.T) {
	_, err := Deserialize([]byte(`{"turn": 3}`))
	assert.Error(t, err)
}
