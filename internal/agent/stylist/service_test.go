package stylist

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aura-storefront/server/internal/agent/model"
)

type fakeRunner struct {
	got model.QueryInput
	out model.QueryOutput
	err error
}

func (f *fakeRunner) Invoke(ctx context.Context, in model.QueryInput) (model.QueryOutput, error) {
	f.got = in
	return f.out, f.err
}

func TestAskEscapesAndTruncates(t *testing.T) {
	r := &fakeRunner{out: model.QueryOutput{Content: "Try the coat.", CostUSD: 0.001}}
	s := NewService(r, model.PersonaConfig{MaxQueryRunes: 5})

	reply, err := s.Ask(context.Background(), Request{
		ConversationID: "c1",
		Query:          "  <b>hello there",
		ProductContext: `Coat "Wool"`,
	})
	require.NoError(t, err)
	assert.Equal(t, "c1", reply.ConversationID)
	assert.Equal(t, "Try the coat.", reply.Message)
	assert.Equal(t, 0.001, reply.CostUSD)
	assert.Equal(t, "&lt;b&gt;he", r.got.Query)
	assert.Equal(t, "Coat &quot;Wool&quot;", r.got.ProductContext)
}

func TestAskFallbacks(t *testing.T) {
	ctx := context.Background()

	reply, err := NewService(nil, model.PersonaConfig{}).Ask(ctx, Request{Query: "hi"})
	require.NoError(t, err)
	assert.Equal(t, OfflineMessage, reply.Message)
	assert.True(t, reply.Offline)
	assert.NotEmpty(t, reply.ConversationID)

	reply, err = NewService(&fakeRunner{err: errors.New("boom")}, model.PersonaConfig{}).Ask(ctx, Request{Query: "hi"})
	require.NoError(t, err)
	assert.Equal(t, TroubleMessage, reply.Message)

	reply, err = NewService(&fakeRunner{}, model.PersonaConfig{}).Ask(ctx, Request{Query: "hi"})
	require.NoError(t, err)
	assert.Equal(t, ReflectionMessage, reply.Message)

	_, err = NewService(&fakeRunner{}, model.PersonaConfig{}).Ask(ctx, Request{Query: "   "})
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestWelcome(t *testing.T) {
	s := NewService(nil, model.PersonaConfig{})
	assert.True(t, strings.HasPrefix(s.Welcome(""), "Hello! I'm Aura"))
	assert.Contains(t, s.Welcome("Wool Coat"), "admiring the Wool Coat")
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héll", truncateRunes("héllo", 4))
	assert.Equal(t, "abc", truncateRunes("abc", 0))
}
