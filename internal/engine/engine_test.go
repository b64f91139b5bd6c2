package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leasematch-platform/leasematch/internal/classify"
	"github.com/leasematch-platform/leasematch/internal/conversation"
	"github.com/leasematch-platform/leasematch/internal/extract"
	"github.com/leasematch-platform/leasematch/internal/listings"
	"github.com/leasematch-platform/leasematch/internal/scoring"
)

// scriptedClient returns canned completions in order. With err set every
// call fails.
type scriptedClient struct {
	responses []string
	err       error
	calls     int
}

func (c *scriptedClient) Complete(_ context.Context, _, _ string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	if c.calls <= len(c.responses) {
		return c.responses[c.calls-1], nil
	}
	return "{}", nil
}

func newTestEngine(t *testing.T, client extract.Client) (*Engine, listings.Repository) {
	t.Helper()
	repo := listings.NewMemoryRepository()
	seedBangaloreListings(t, repo)
	return New(extract.NewExtractor(client), repo, scoring.NewEngine(scoring.DefaultConfig()), nil), repo
}

func seedBangaloreListings(t *testing.T, repo listings.Repository) {
	t.Helper()
	for _, l := range []listings.Listing{
		{
			ID: uuid.New(), Title: "Retail unit, 5th Block", Address: "5th Block, Koramangala",
			City: "Bangalore", Locality: "Koramangala", Size: 550, Price: 150000,
			PropertyType: "retail", Parking: true, SecurityDeposit: 900000, CreatedAt: time.Now(),
		},
		{
			ID: uuid.New(), Title: "Corner shop, 100ft Road", Address: "100ft Road, Indiranagar",
			City: "Bangalore", Locality: "Indiranagar", Size: 700, Price: 180000,
			PropertyType: "retail", SecurityDeposit: 1000000, CreatedAt: time.Now(),
		},
	} {
		l := l
		require.NoError(t, repo.Create(context.Background(), &l))
	}
}

func completeBrandState() conversation.ConversationState {
	state := conversation.New("sess-brand")
	state = state.EstablishIdentity(conversation.EntityBrand, 0.9, "test setup", true)
	return state.UpdateRequirements(&conversation.Extracted{
		Brand: &conversation.BrandRequirements{
			Area:         conversation.Range{Min: 400, Max: 600},
			Location:     conversation.Location{City: "Bangalore", Area: "Koramangala"},
			PropertyType: "retail",
			Budget: conversation.Budget{
				MonthlyRent: conversation.Range{Min: 100000, Max: 200000},
			},
			Category: "retail",
		},
	}, nil)
}

func TestProcessTurnBrandOneShot(t *testing.T) {
	client := &scriptedClient{responses: []string{`{
		"area": {"min": 400, "max": 600},
		"location": {"city": "Bangalore", "area": "Koramangala"},
		"property_type": "retail",
		"budget": {"monthly_rent": {"min": 100000, "max": 200000}},
		"category": "retail",
		"confidence": {"area": 0.9, "location.city": 0.9, "budget.monthly_rent": 0.85}
	}`}}
	eng, _ := newTestEngine(t, client)

	query := "I'm looking for a 500 sqft space in Koramangala, Bangalore to expand my brand with a new outlet, budget 1 to 2 lakhs per month"
	state, result := eng.ProcessTurn(context.Background(), conversation.New("sess-1"), query)

	assert.Equal(t, PhaseReadyToSearch, result.Phase)
	assert.Equal(t, conversation.EntityBrand, result.EntityType)
	require.NotEmpty(t, result.Matches)
	require.NotNil(t, result.Summary)
	assert.Equal(t, len(result.Matches), result.Summary.ShowingTop)
	assert.True(t, result.Completeness.Ready)

	assert.Equal(t, conversation.EntityBrand, state.Identity.Type)
	assert.Equal(t, 1, state.Search.Searches)
	require.NotNil(t, state.Requirements.Brand)
	assert.Equal(t, "Bangalore", state.Requirements.Brand.Location.City)
}

func TestProcessTurnAmbiguousSpeakerAsksForSide(t *testing.T) {
	client := &scriptedClient{}
	eng, _ := newTestEngine(t, client)

	state, result := eng.ProcessTurn(context.Background(), conversation.New("sess-2"), "hello there")

	assert.Equal(t, PhaseNeedsEntityType, result.Phase)
	assert.Equal(t, classify.ClarificationPrompt, result.Message)
	assert.False(t, state.Identity.Established())
	assert.Zero(t, client.calls, "no extraction call before the side is known")
}

func TestProcessTurnBareNumberAsksClarification(t *testing.T) {
	client := &scriptedClient{}
	eng, _ := newTestEngine(t, client)

	state := conversation.New("sess-3")
	state = state.EstablishIdentity(conversation.EntityBrand, 0.9, "test setup", true)
	state = state.UpdateSemanticContext("budget", nil, nil)

	next, result := eng.ProcessTurn(context.Background(), state, "5")

	assert.Equal(t, PhaseCollecting, result.Phase)
	assert.Contains(t, result.Message, "5 sqft of area")
	assert.Contains(t, result.Message, "5 lakhs per month")
	require.Len(t, next.Clarifications, 1)
	assert.Equal(t, "5", next.Clarifications[0].Context)

	// Deterministic for the same state and utterance.
	_, again := eng.ProcessTurn(context.Background(), state, "5")
	assert.Equal(t, result.Message, again.Message)
}

func TestProcessTurnOwnerFourTurnFlow(t *testing.T) {
	client := &scriptedClient{responses: []string{
		`{"location": {"area": "Indiranagar"}, "availability": "immediate"}`,
		`{"property_area": 2000}`,
		`{"location": {"city": "Bangalore", "area": "Indiranagar"}}`,
		`{"monthly_rent": 150000, "deposit": 900000}`,
	}}
	eng, _ := newTestEngine(t, client)
	ctx := context.Background()

	state := conversation.New("sess-4")

	state, result := eng.ProcessTurn(ctx, state,
		"I am a property owner. My property in Indiranagar is vacant and available for rent, I would like to lease out the space.")
	assert.Equal(t, PhaseCollecting, result.Phase)
	assert.Equal(t, conversation.EntityOwner, state.Identity.Type)
	assert.Contains(t, result.Message, "square feet")

	state, result = eng.ProcessTurn(ctx, state, "It's 2000 sqft")
	assert.Equal(t, PhaseCollecting, result.Phase)
	assert.Contains(t, result.Message, "city")

	state, result = eng.ProcessTurn(ctx, state, "It's in Indiranagar, Bangalore")
	assert.Equal(t, PhaseCollecting, result.Phase)
	assert.Contains(t, result.Message, "rent")

	state, result = eng.ProcessTurn(ctx, state, "Expecting 1.5 lakhs per month with 900000 deposit")
	assert.Equal(t, PhaseReadyToRedirect, result.Phase)
	assert.True(t, result.ReadyToRedirect)
	assert.Contains(t, result.Message, "2000 sqft")
	assert.Contains(t, result.Message, "Indiranagar")

	assert.Equal(t, 4, state.Turn)
	assert.Equal(t, conversation.EntityOwner, state.Identity.Type)
}

func TestProcessTurnOwnerPlainDescriptionFlow(t *testing.T) {
	client := &scriptedClient{responses: []string{
		`{"property_type": "retail"}`,
		`{"location": {"city": "Bangalore", "area": "Koramangala"}}`,
		`{"property_area": 500}`,
		`{"monthly_rent": 50000}`,
	}}
	eng, _ := newTestEngine(t, client)
	ctx := context.Background()

	state := conversation.New("sess-5")

	// No listing keyword anywhere; the possessive self-description alone
	// must settle the side on turn one.
	state, result := eng.ProcessTurn(ctx, state, "I have a retail space")
	assert.Equal(t, PhaseCollecting, result.Phase)
	assert.Equal(t, conversation.EntityOwner, state.Identity.Type)
	assert.Contains(t, result.Message, "square feet")

	state, result = eng.ProcessTurn(ctx, state, "it's in Koramangala")
	assert.Equal(t, PhaseCollecting, result.Phase)

	state, result = eng.ProcessTurn(ctx, state, "500 sqft")
	assert.Equal(t, PhaseCollecting, result.Phase)
	assert.Contains(t, result.Message, "rent")

	state, result = eng.ProcessTurn(ctx, state, "rent 50k")
	assert.Equal(t, PhaseReadyToRedirect, result.Phase)
	assert.True(t, result.ReadyToRedirect)
	assert.Contains(t, result.Message, "500 sqft")
	assert.Contains(t, result.Message, "Koramangala")
	assert.Equal(t, conversation.EntityOwner, state.Identity.Type)
}

func TestProcessTurnMenuReplyResolvesNumber(t *testing.T) {
	client := &scriptedClient{}
	eng, _ := newTestEngine(t, client)
	ctx := context.Background()

	state := conversation.New("sess-6")
	state = state.EstablishIdentity(conversation.EntityBrand, 0.9, "test setup", true)
	state = state.UpdateSemanticContext("budget", nil, nil)

	state, result := eng.ProcessTurn(ctx, state, "5")
	require.Len(t, state.Clarifications, 1)
	assert.Contains(t, result.Message, "do you mean")

	state, result = eng.ProcessTurn(ctx, state, "2")
	assert.Empty(t, state.Clarifications, "menu reply closes the open question")
	require.Len(t, state.Learning.ResolvedClarifications, 1)
	assert.Equal(t, "currency", state.Learning.ResolvedClarifications[0].Answer)

	require.NotNil(t, state.Requirements.Brand)
	assert.Equal(t, conversation.Range{Min: 500000, Max: 500000},
		state.Requirements.Brand.Budget.MonthlyRent, "chosen option lands in requirements")
	assert.Equal(t, 0.95, state.Requirements.Confidence["budget.monthly_rent"])

	assert.Equal(t, PhaseCollecting, result.Phase)
	assert.NotContains(t, result.Message, "do you mean", "the reply is not re-read as a new bare number")
	assert.Equal(t, 1, client.calls, "menu replies never reach the model")
}

func TestProcessTurnUnitRestatementResolvesNumber(t *testing.T) {
	client := &scriptedClient{}
	eng, _ := newTestEngine(t, client)
	ctx := context.Background()

	state := conversation.New("sess-7")
	state = state.EstablishIdentity(conversation.EntityBrand, 0.9, "test setup", true)
	state = state.UpdateSemanticContext("budget", nil, nil)

	state, _ = eng.ProcessTurn(ctx, state, "5")
	require.Len(t, state.Clarifications, 1)

	state, _ = eng.ProcessTurn(ctx, state, "I meant lakhs per month")
	assert.Empty(t, state.Clarifications)
	require.NotNil(t, state.Requirements.Brand)
	assert.Equal(t, float64(500000), state.Requirements.Brand.Budget.MonthlyRent.Min)
}

func TestProcessTurnExtractionFailureStillRanks(t *testing.T) {
	client := &scriptedClient{err: errors.New("model unavailable")}
	eng, _ := newTestEngine(t, client)

	state, result := eng.ProcessTurn(context.Background(), completeBrandState(), "anything promising out there?")

	assert.Equal(t, PhaseReadyToSearch, result.Phase)
	assert.NotEmpty(t, result.Matches)
	assert.Equal(t, 2, client.calls, "one retry before degrading")
	require.NotNil(t, state.Requirements.Brand)
	assert.Equal(t, "Bangalore", state.Requirements.Brand.Location.City, "prior requirements survive the failure")
}

type failingRepo struct{}

func (failingRepo) Create(context.Context, *listings.Listing) error { return errors.New("down") }
func (failingRepo) GetByID(context.Context, uuid.UUID) (*listings.Listing, error) {
	return nil, errors.New("down")
}
func (failingRepo) Search(context.Context, listings.SearchFilter, int) ([]listings.Listing, error) {
	return nil, errors.New("down")
}
func (failingRepo) Delete(context.Context, uuid.UUID) error { return errors.New("down") }

func TestProcessTurnSearchFailureKeepsState(t *testing.T) {
	client := &scriptedClient{}
	eng := New(extract.NewExtractor(client), failingRepo{}, scoring.NewEngine(scoring.DefaultConfig()), nil)

	state, result := eng.ProcessTurn(context.Background(), completeBrandState(), "show me what you have")

	assert.Equal(t, PhaseCollecting, result.Phase)
	assert.Contains(t, result.Message, "saved")
	assert.Empty(t, result.Matches)
	require.NotNil(t, state.Requirements.Brand, "no conversational progress is lost")
	assert.True(t, conversation.Completeness(state).Ready)
}
