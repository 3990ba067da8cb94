package outbound_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bjaus/outbound"
)

func TestOptions_first_match_wins(t *testing.T) {
	t.Parallel()

	o := outbound.Options{
		outbound.Opt("timeout", 1),
		outbound.Opt("retries", 3),
		outbound.Opt("timeout", 2),
	}

	v, ok := o.Get("timeout")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.True(t, o.Has("retries"))
	assert.False(t, o.Has("missing"))
	assert.Equal(t, []string{"timeout", "retries", "timeout"}, o.Keys())
}

func TestPrepend(t *testing.T) {
	t.Parallel()

	tail := outbound.Options{outbound.Opt("url", "/override"), outbound.Opt("query", outbound.Options{})}
	out := outbound.Prepend(tail, outbound.Opt("method", "GET"), outbound.Opt("url", "/users"))

	assert.Equal(t, []string{"method", "url", "url", "query"}, out.Keys())
	v, _ := out.Get("url")
	assert.Equal(t, "/users", v)
	assert.Len(t, tail, 2)
}

func TestPrepend_nil(t *testing.T) {
	t.Parallel()

	out := outbound.Prepend(nil, outbound.Opt("method", "GET"))
	assert.Equal(t, outbound.Options{outbound.Opt("method", "GET")}, out)
}
