package outbound_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/outbound"
	"github.com/bjaus/outbound/outboundtest"
)

func describedService(t *testing.T) *outbound.Service {
	t.Helper()

	return newService(t, outboundtest.NewRecorder(), func(b *outbound.Builder) {
		b.Plug(outbound.Use(outboundtest.Trace("Auth")), outbound.Opt("token", "t"))
		b.Plug(outbound.Inline(passThrough))
		b.Adapter(outbound.Use(&outboundtest.Static{ModuleName: "HTTP"}), outbound.Opt("timeout", 30))
		b.Only("get")
		b.Docs(false)
	})
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	d := describedService(t).Describe()

	assert.Equal(t, "users", d.Service)
	require.Len(t, d.Middleware, 2)
	assert.Equal(t, outbound.StepDesc{
		Kind:    "module",
		Module:  "Auth",
		Options: outbound.Options{outbound.Opt("token", "t")},
	}, d.Middleware[0])
	assert.Equal(t, "inline", d.Middleware[1].Kind)
	assert.Equal(t, "outbound.MiddlewareFunc", d.Middleware[1].Func)
	require.NotNil(t, d.Adapter)
	assert.Equal(t, "HTTP", d.Adapter.Module)

	require.Len(t, d.EntryPoints, 8)
	assert.Equal(t, "get", d.EntryPoints[0].Name)
	assert.Equal(t, "Get", d.EntryPoints[0].Func)
	assert.Empty(t, d.EntryPoints[0].Doc)
	assert.Equal(t, "get!", d.EntryPoints[7].Name)
}

func TestWriteDescription_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, describedService(t).WriteDescription(&buf))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "users", got["service"])
	assert.Len(t, got["middleware"], 2)
	assert.Len(t, got["entry_points"], 8)
	assert.Equal(t, map[string]any{"only": []any{"get"}, "docs": false}, got["generation"])
}

func TestWriteDescription_YAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, describedService(t).WriteDescriptionYAML(&buf))
	assert.Contains(t, buf.String(), "service: users\n")
	assert.Contains(t, buf.String(), "contract: func(ctx context.Context, url string) (*outbound.Env, error)")

	var got outbound.Description
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "users", got.Service)
	require.NotNil(t, got.Adapter)
	assert.Equal(t, "HTTP", got.Adapter.Module)
	assert.Len(t, got.EntryPoints, 8)
}
