package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leasematch-platform/leasematch/internal/conversation"
)

func TestParseRequirements_Brand(t *testing.T) {
	raw := `{
		"area": {"min": 450, "max": 550},
		"location": {"city": "Koramangala", "area": "Koramangala"},
		"budget": {"monthly_rent": {"min": 100000, "max": 200000}},
		"confidence": {"area": 0.9, "location": 0.95}
	}`

	extracted, conf, err := ParseRequirements(raw, conversation.EntityBrand)
	require.NoError(t, err)
	require.NotNil(t, extracted.Brand)
	assert.Nil(t, extracted.Owner)
	assert.Equal(t, float64(450), extracted.Brand.Area.Min)
	assert.Equal(t, "Koramangala", extracted.Brand.Location.City)
	assert.Equal(t, float64(200000), extracted.Brand.Budget.MonthlyRent.Max)
	assert.Equal(t, 0.9, conf["area"])
}

func TestParseRequirements_Owner(t *testing.T) {
	raw := `{"property_area": 500, "monthly_rent": 50000, "property_type": "retail"}`

	extracted, _, err := ParseRequirements(raw, conversation.EntityOwner)
	require.NoError(t, err)
	require.NotNil(t, extracted.Owner)
	assert.Equal(t, float64(500), extracted.Owner.PropertyArea)
	assert.Equal(t, float64(50000), extracted.Owner.MonthlyRent)
}

func TestParseRequirements_EmptyOutput(t *testing.T) {
	for _, raw := range []string{"", "   ", "{}"} {
		extracted, conf, err := ParseRequirements(raw, conversation.EntityBrand)
		require.NoError(t, err, "raw=%q", raw)
		require.NotNil(t, extracted.Brand)
		assert.Empty(t, conf)
		assert.True(t, extracted.Brand.Area.IsZero())
	}
}

func TestParseRequirements_SalvagesEmbeddedObject(t *testing.T) {
	raw := "Here is the extraction:\n```json\n{\"property_area\": 500}\n```\nLet me know!"

	extracted, _, err := ParseRequirements(raw, conversation.EntityOwner)
	require.NoError(t, err)
	assert.Equal(t, float64(500), extracted.Owner.PropertyArea)
}

func TestParseRequirements_MalformedIsParseError(t *testing.T) {
	_, _, err := ParseRequirements("definitely not json", conversation.EntityBrand)
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "definitely not json", parseErr.Raw)
}

func TestParseRequirements_UnknownFieldsRejected(t *testing.T) {
	_, _, err := ParseRequirements(`{"property_area": 500, "vibe": "good"}`, conversation.EntityOwner)
	assert.Error(t, err)
}

func TestParseRequirements_NegativeValuesRejected(t *testing.T) {
	_, _, err := ParseRequirements(`{"monthly_rent": -1}`, conversation.EntityOwner)
	assert.Error(t, err)

	_, _, err = ParseRequirements(`{"area": {"min": -5, "max": 100}}`, conversation.EntityBrand)
	assert.Error(t, err)
}

func TestParseRequirements_SwapsInvertedRange(t *testing.T) {
	extracted, _, err := ParseRequirements(`{"area": {"min": 600, "max": 400}}`, conversation.EntityBrand)
	require.NoError(t, err)
	assert.Equal(t, float64(400), extracted.Brand.Area.Min)
	assert.Equal(t, float64(600), extracted.Brand.Area.Max)
}
