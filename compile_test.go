package outbound_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/outbound"
	"github.com/bjaus/outbound/outboundtest"
)

func TestCompile_declaration_order(t *testing.T) {
	t.Parallel()

	a := outboundtest.Trace("A")
	b := outboundtest.Trace("B")
	x := &outboundtest.Static{ModuleName: "X", Status: 200}

	svc, err := outbound.Define("scenario", func(bld *outbound.Builder) {
		bld.Plug(outbound.Use(a))
		bld.Plug(outbound.Use(b), outbound.Opt("timeout", 1000))
		bld.Adapter(outbound.Use(x))
	})
	require.NoError(t, err)

	assert.Equal(t, []outbound.Step{
		{Kind: outbound.ModuleCall, Module: a, Options: outbound.Options{}},
		{Kind: outbound.ModuleCall, Module: b, Options: outbound.Options{outbound.Opt("timeout", 1000)}},
	}, svc.Middleware())

	adapter, ok := svc.AdapterStep()
	require.True(t, ok)
	assert.Equal(t, outbound.Step{Kind: outbound.ModuleCall, Module: x, Options: outbound.Options{}}, adapter)
}

func TestCompile_many_preserves_order(t *testing.T) {
	t.Parallel()

	names := []string{"m0", "m1", "m2", "m3", "m4", "m5", "m6", "m7", "m8", "m9"}
	decls := make([]outbound.Declaration, len(names))
	for i, n := range names {
		decls[i] = outbound.Declaration{Target: outbound.Use(outboundtest.Trace(n))}
	}

	steps, err := outbound.Compile(decls)
	require.NoError(t, err)
	require.Len(t, steps, len(names))
	for i, s := range steps {
		assert.Equal(t, names[i], s.Module.Name())
	}
}

func TestCompile_empty(t *testing.T) {
	t.Parallel()

	steps, err := outbound.Compile(nil)
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestCompile_inline(t *testing.T) {
	t.Parallel()

	fn := outbound.MiddlewareFunc(func(ctx context.Context, env *outbound.Env, next outbound.Next) (*outbound.Env, error) {
		return next(ctx, env)
	})

	steps, err := outbound.Compile([]outbound.Declaration{{Target: outbound.Inline(fn)}})
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, outbound.InlineCall, steps[0].Kind)
	assert.Nil(t, steps[0].Module)
	assert.Nil(t, steps[0].Options)
	assert.IsType(t, outbound.MiddlewareFunc(nil), steps[0].Func)
}

func TestCompile_symbolic_name_rejected(t *testing.T) {
	t.Parallel()

	tests := map[string]outbound.Declaration{
		"bare": {
			Target: outbound.Symbol("my_middleware"),
			Origin: outbound.Origin{Kind: outbound.KindMiddleware, File: "client.go", Line: 12},
		},
		"with options": {
			Target:  outbound.Symbol("my_middleware"),
			Options: outbound.Options{outbound.Opt("timeout", 1000)},
			Origin:  outbound.Origin{Kind: outbound.KindMiddleware, File: "client.go", Line: 12},
		},
	}

	for name, decl := range tests {
		decl := decl
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := outbound.Compile([]outbound.Declaration{decl})
			require.Error(t, err)
			assert.ErrorIs(t, err, outbound.ErrSymbolicName)

			var cfgErr *outbound.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, outbound.KindMiddleware, cfgErr.Kind)
			assert.Equal(t, "my_middleware", cfgErr.Name)
			assert.Equal(t, "client.go:12", cfgErr.Origin.String())

			assert.Contains(t, err.Error(), "middleware")
			assert.Contains(t, err.Error(), ":my_middleware")
			assert.Contains(t, err.Error(), "client.go:12")
		})
	}
}

func TestCompile_symbolic_name_fails_after_valid_entries(t *testing.T) {
	t.Parallel()

	_, err := outbound.Compile([]outbound.Declaration{
		{Target: outbound.Use(outboundtest.Trace("A"))},
		{Target: outbound.Symbol("local")},
		{Target: outbound.Use(outboundtest.Trace("B"))},
	})
	assert.ErrorIs(t, err, outbound.ErrSymbolicName)
}

func TestCompileOne(t *testing.T) {
	t.Parallel()

	t.Run("nil passes through", func(t *testing.T) {
		t.Parallel()

		s, err := outbound.CompileOne(nil)
		require.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("adapter module", func(t *testing.T) {
		t.Parallel()

		x := &outboundtest.Static{ModuleName: "X"}
		s, err := outbound.CompileOne(&outbound.Declaration{
			Target:  outbound.Use(x),
			Options: outbound.Options{outbound.Opt("recv_timeout", 30)},
			Origin:  outbound.Origin{Kind: outbound.KindAdapter},
		})
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, outbound.Step{
			Kind:    outbound.ModuleCall,
			Module:  x,
			Options: outbound.Options{outbound.Opt("recv_timeout", 30)},
		}, *s)
	})

	t.Run("inline adapter", func(t *testing.T) {
		t.Parallel()

		fn := outbound.AdapterFunc(func(_ context.Context, env *outbound.Env) (*outbound.Env, error) {
			return env, nil
		})
		s, err := outbound.CompileOne(&outbound.Declaration{
			Target: outbound.InlineAdapter(fn),
			Origin: outbound.Origin{Kind: outbound.KindAdapter},
		})
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, outbound.InlineCall, s.Kind)
	})

	t.Run("symbolic adapter", func(t *testing.T) {
		t.Parallel()

		_, err := outbound.CompileOne(&outbound.Declaration{
			Target: outbound.Symbol("local_adapter"),
			Origin: outbound.Origin{Kind: outbound.KindAdapter, File: "api.go", Line: 3},
		})
		var cfgErr *outbound.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, outbound.KindAdapter, cfgErr.Kind)
		assert.Contains(t, err.Error(), "adapter :local_adapter declared at api.go:3")
	})
}

func TestCompile_shape_errors(t *testing.T) {
	t.Parallel()

	inlineMW := outbound.MiddlewareFunc(func(ctx context.Context, env *outbound.Env, next outbound.Next) (*outbound.Env, error) {
		return next(ctx, env)
	})

	tests := map[string]struct {
		decl outbound.Declaration
		want error
	}{
		"empty target": {
			decl: outbound.Declaration{},
			want: outbound.ErrEmptyTarget,
		},
		"adapter module as middleware": {
			decl: outbound.Declaration{Target: outbound.Use(&outboundtest.Static{ModuleName: "X"})},
			want: outbound.ErrTargetMismatch,
		},
		"middleware module as adapter": {
			decl: outbound.Declaration{
				Target: outbound.Use(outboundtest.Trace("A")),
				Origin: outbound.Origin{Kind: outbound.KindAdapter},
			},
			want: outbound.ErrTargetMismatch,
		},
		"inline middleware as adapter": {
			decl: outbound.Declaration{
				Target: outbound.Inline(inlineMW),
				Origin: outbound.Origin{Kind: outbound.KindAdapter},
			},
			want: outbound.ErrTargetMismatch,
		},
		"inline with options": {
			decl: outbound.Declaration{
				Target:  outbound.Inline(inlineMW),
				Options: outbound.Options{outbound.Opt("a", 1)},
			},
			want: outbound.ErrInlineOptions,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := outbound.Compile([]outbound.Declaration{tt.decl})
			assert.ErrorIs(t, err, tt.want)

			var cfgErr *outbound.ConfigurationError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}

func TestCompile_does_not_alias_declaration_options(t *testing.T) {
	t.Parallel()

	opts := outbound.Options{outbound.Opt("timeout", 1000)}
	steps, err := outbound.Compile([]outbound.Declaration{
		{Target: outbound.Use(outboundtest.Trace("A")), Options: opts},
	})
	require.NoError(t, err)

	opts[0].Value = 1
	assert.Equal(t, 1000, steps[0].Options[0].Value)
}
