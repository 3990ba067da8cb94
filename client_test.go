package outbound_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/outbound"
	"github.com/bjaus/outbound/outboundtest"
)

func passThrough(ctx context.Context, env *outbound.Env, next outbound.Next) (*outbound.Env, error) {
	return next(ctx, env)
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	auth := outboundtest.Trace("Auth")
	logger := outboundtest.Trace("Logger")

	c, err := outbound.NewClient(
		[]any{outbound.With(auth, outbound.Opt("token", "t"))},
		[]any{logger, outbound.MiddlewareFunc(passThrough), passThrough},
	)
	require.NoError(t, err)

	assert.Equal(t, []outbound.Step{
		{Kind: outbound.ModuleCall, Module: auth, Options: outbound.Options{outbound.Opt("token", "t")}},
	}, c.Pre())

	post := c.Post()
	require.Len(t, post, 3)
	assert.Equal(t, outbound.Step{Kind: outbound.ModuleCall, Module: logger, Options: outbound.Options{}}, post[0])
	assert.Equal(t, outbound.InlineCall, post[1].Kind)
	assert.Equal(t, outbound.InlineCall, post[2].Kind)
	assert.Nil(t, post[2].Options)
	assert.False(t, c.IsEmpty())
}

func TestNewClient_deterministic(t *testing.T) {
	t.Parallel()

	build := func() outbound.Client {
		return outbound.MustNewClient(
			[]any{outbound.With(outboundtest.Trace("A"), outbound.Opt("k", 1))},
			[]any{outboundtest.Trace("B")},
		)
	}
	assert.Equal(t, build(), build())
}

func TestNewClient_empty(t *testing.T) {
	t.Parallel()

	c, err := outbound.NewClient(nil, nil)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Pre())
	assert.Empty(t, c.Post())
	assert.True(t, outbound.Client{}.IsEmpty())
}

func TestNewClient_malformed(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		pre, post []any
		list      string
		index     int
	}{
		"string in pre": {
			pre:  []any{"my_middleware"},
			list: "pre", index: 0,
		},
		"adapter in post": {
			post: []any{outboundtest.Trace("A"), &outboundtest.Static{ModuleName: "X"}},
			list: "post", index: 1,
		},
		"module spec without module": {
			pre:  []any{outbound.ModuleSpec{}},
			list: "pre", index: 0,
		},
		"wrong func signature": {
			post: []any{func() {}},
			list: "post", index: 0,
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := outbound.NewClient(tc.pre, tc.post)
			require.ErrorIs(t, err, outbound.ErrMalformedStep)

			var stepErr *outbound.MalformedStepError
			require.ErrorAs(t, err, &stepErr)
			assert.Equal(t, tc.list, stepErr.List)
			assert.Equal(t, tc.index, stepErr.Index)
		})
	}
}

func TestMustNewClient_panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { outbound.MustNewClient([]any{42}, nil) })
}

func TestClient_copies(t *testing.T) {
	t.Parallel()

	c := outbound.MustNewClient([]any{outbound.With(outboundtest.Trace("A"), outbound.Opt("k", 1))}, nil)

	pre := c.Pre()
	pre[0].Options[0].Value = 2
	pre[0].Module = outboundtest.Trace("B")

	again := c.Pre()
	assert.Equal(t, "A", again[0].Module.Name())
	assert.Equal(t, 1, again[0].Options[0].Value)
}
