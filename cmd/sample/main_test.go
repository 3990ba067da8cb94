package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/outbound"
	"github.com/bjaus/outbound/outboundtest"
	"github.com/bjaus/outbound/verbgen"
)

func TestGeneratedWrapperIsCurrent(t *testing.T) {
	t.Parallel()

	want, err := verbgen.Render(verbgen.Config{
		Package:    "main",
		Type:       "HTTPBin",
		Generation: outbound.GenerationOptions{Only: []string{"get", "post"}},
		Command:    "outbound-gen --type HTTPBin --only get,post --docs=false -o httpbin_gen.go",
	})
	require.NoError(t, err)

	got, err := os.ReadFile("httpbin_gen.go")
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

type seen struct {
	method, path, query, auth, requestID, contentType string
	body                                              []byte
}

func TestDemo(t *testing.T) {
	t.Parallel()

	var (
		mu   sync.Mutex
		reqs []seen
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, seen{
			method:      r.Method,
			path:        r.URL.Path,
			query:       r.URL.RawQuery,
			auth:        r.Header.Get("Authorization"),
			requestID:   r.Header.Get("X-Request-ID"),
			contentType: r.Header.Get("Content-Type"),
			body:        body,
		})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := newService(logger, srv.URL, "")
	require.NoError(t, err)

	require.NoError(t, demo(context.Background(), &HTTPBin{Service: svc}))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, reqs, 3)

	assert.Equal(t, "GET", reqs[0].method)
	assert.Equal(t, "/get", reqs[0].path)
	assert.NotEmpty(t, reqs[0].requestID)

	assert.Equal(t, "page=2", reqs[1].query)

	assert.Equal(t, "POST", reqs[2].method)
	assert.Equal(t, "Bearer sample-token", reqs[2].auth)
	assert.Equal(t, "application/json", reqs[2].contentType)
	var body map[string]string
	require.NoError(t, json.Unmarshal(reqs[2].body, &body))
	assert.Equal(t, map[string]string{"hello": "world"}, body)
}

func TestNewService_manifest(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := newService(logger, "", "httpbin.hcl")
	require.NoError(t, err)

	assert.Equal(t, "httpbin", svc.Name())
	assert.Equal(t, outbound.GenerationOptions{Only: []string{"get", "post"}}, svc.Generation())

	var buf bytes.Buffer
	require.NoError(t, svc.WriteDescriptionYAML(&buf))
	assert.Contains(t, buf.String(), "module: RequestID")
	assert.Contains(t, buf.String(), "module: HTTP")
}

func TestWrapper_docs_do_not_change_behaviour(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	define := func(docs bool) (*HTTPBin, *outboundtest.Recorder) {
		rec := outboundtest.NewRecorder()
		svc, err := outbound.Define("httpbin", func(b *outbound.Builder) {
			b.Plug(outbound.Use(bearer{}), outbound.Opt("token", "t"))
			b.Only("get", "post")
			b.Docs(docs)
		}, outbound.WithExecutor(rec), outbound.WithLogger(logger))
		require.NoError(t, err)
		return &HTTPBin{Service: svc}, rec
	}

	documented, recA := define(true)
	bare, recB := define(false)
	client := outbound.MustNewClient(nil, []any{requestID{}})
	opts := outbound.Options{outbound.Opt("query", outbound.Options{outbound.Opt("page", 2)})}

	for _, bin := range []*HTTPBin{documented, bare} {
		_, err := bin.Get(context.Background(), "/get")
		require.NoError(t, err)
		_, err = bin.PostWithOpts(context.Background(), client, "/post", map[string]int{"n": 1}, opts)
		require.NoError(t, err)
		bin.MustGetWith(context.Background(), client, "/get")
	}

	require.Len(t, recA.Calls(), 3)
	assert.Equal(t, recA.Calls(), recB.Calls())
}
