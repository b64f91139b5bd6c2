package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leasematch-platform/leasematch/internal/conversation"
)

type fakeClient struct {
	responses []string
	errs      []error
	calls     int
}

func (f *fakeClient) Complete(ctx context.Context, system, user string) (string, error) {
	i := f.calls
	f.calls++
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var resp string
	if i < len(f.responses) {
		resp = f.responses[i]
	}
	return resp, err
}

func newTestExtractor(c Client) *Extractor {
	e := NewExtractor(c)
	e.retryBackoff = time.Millisecond
	return e
}

func TestExtract_Success(t *testing.T) {
	client := &fakeClient{responses: []string{`{"property_area": 500}`}}
	e := newTestExtractor(client)

	extracted, _, err := e.Extract(context.Background(), "500 sqft", "", conversation.EntityOwner)
	require.NoError(t, err)
	assert.Equal(t, float64(500), extracted.Owner.PropertyArea)
	assert.Equal(t, 1, client.calls)
}

func TestExtract_RetriesOnceThenSucceeds(t *testing.T) {
	client := &fakeClient{
		errs:      []error{errors.New("boom"), nil},
		responses: []string{"", `{"property_area": 500}`},
	}
	e := newTestExtractor(client)

	extracted, _, err := e.Extract(context.Background(), "500 sqft", "", conversation.EntityOwner)
	require.NoError(t, err)
	assert.Equal(t, float64(500), extracted.Owner.PropertyArea)
	assert.Equal(t, 2, client.calls)
}

func TestExtract_SecondFailureReturnsEmptyPartial(t *testing.T) {
	client := &fakeClient{errs: []error{errors.New("boom"), errors.New("boom again")}}
	e := newTestExtractor(client)

	extracted, conf, err := e.Extract(context.Background(), "500 sqft", "", conversation.EntityOwner)
	require.Error(t, err)
	require.NotNil(t, extracted, "failure still yields a partial the caller can merge")
	require.NotNil(t, extracted.Owner)
	assert.Zero(t, extracted.Owner.PropertyArea)
	assert.Empty(t, conf)
	assert.Equal(t, 2, client.calls, "exactly one retry")
}

func TestExtract_MalformedOutputReturnsEmptyPartial(t *testing.T) {
	client := &fakeClient{responses: []string{"not json at all"}}
	e := newTestExtractor(client)

	extracted, _, err := e.Extract(context.Background(), "hi", "", conversation.EntityBrand)
	require.Error(t, err)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	require.NotNil(t, extracted.Brand)
}

func TestBypass(t *testing.T) {
	assert.True(t, Bypass("1"))
	assert.True(t, Bypass(" 2 "))
	assert.True(t, Bypass("Owner"))
	assert.True(t, Bypass("brand"))
	assert.False(t, Bypass("I am an owner"))
	assert.False(t, Bypass("500 sqft"))
}
