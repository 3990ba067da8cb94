// Package outboundtest provides test helpers for the outbound package: a
// recording executor, a chaining executor and stub modules.
package outboundtest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bjaus/outbound"
)

// Call is one request seen by a Recorder.
type Call struct {
	Pipeline outbound.Pipeline
	Env      outbound.Env
}

// Recorder is an executor that records every request and answers with a
// fixed status, or with Err when set.
type Recorder struct {
	Status int
	Err    error

	mu    sync.Mutex
	calls []Call
}

// NewRecorder returns a Recorder answering 200.
func NewRecorder() *Recorder {
	return &Recorder{Status: 200}
}

// Execute implements outbound.Executor.
func (r *Recorder) Execute(_ context.Context, p outbound.Pipeline, env *outbound.Env) (*outbound.Env, error) {
	r.mu.Lock()
	r.calls = append(r.calls, Call{Pipeline: p, Env: *env})
	r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	out := *env
	out.Status = r.Status
	return &out, nil
}

// Calls returns the recorded requests in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Last returns the most recent request, failing the test if there is none.
func (r *Recorder) Last(t testing.TB) Call {
	t.Helper()
	calls := r.Calls()
	if len(calls) == 0 {
		t.Fatalf("outboundtest: no request recorded")
	}
	return calls[len(calls)-1]
}

// ErrNoAdapter is returned by Chain when the pipeline has no adapter and no
// default was given.
var ErrNoAdapter = errors.New("outboundtest: no adapter")

// Chain is an executor that runs Pipeline.Steps in order and then the
// adapter, falling back to Default when the module declared none.
type Chain struct {
	Default outbound.Adapter
}

// Execute implements outbound.Executor.
func (c Chain) Execute(ctx context.Context, p outbound.Pipeline, env *outbound.Env) (*outbound.Env, error) {
	steps := p.Steps()

	var at func(i int) outbound.Next
	at = func(i int) outbound.Next {
		return func(ctx context.Context, env *outbound.Env) (*outbound.Env, error) {
			if i == len(steps) {
				return c.adapt(ctx, p.Adapter, env)
			}
			s := steps[i]
			if s.Kind == outbound.ModuleCall {
				return s.Module.(outbound.Middleware).Call(ctx, env, at(i+1), s.Options)
			}
			return s.Func.(outbound.MiddlewareFunc)(ctx, env, at(i+1))
		}
	}
	return at(0)(ctx, env)
}

func (c Chain) adapt(ctx context.Context, a *outbound.Step, env *outbound.Env) (*outbound.Env, error) {
	if a == nil {
		if c.Default == nil {
			return nil, ErrNoAdapter
		}
		return c.Default.Run(ctx, env, nil)
	}
	if a.Kind == outbound.ModuleCall {
		return a.Module.(outbound.Adapter).Run(ctx, env, a.Options)
	}
	return a.Func.(outbound.AdapterFunc)(ctx, env)
}

// Trace is a middleware module that appends its name to the "x-trace"
// request header and then calls the rest of the pipeline.
type Trace string

// Name implements outbound.Module.
func (m Trace) Name() string { return string(m) }

// Call implements outbound.Middleware.
func (m Trace) Call(ctx context.Context, env *outbound.Env, next outbound.Next, _ outbound.Options) (*outbound.Env, error) {
	env.Headers = append(env.Headers, outbound.Header{Name: "x-trace", Value: string(m)})
	return next(ctx, env)
}

// Static is an adapter module answering every request with its status.
type Static struct {
	ModuleName string
	Status     int
}

// Name implements outbound.Module.
func (a *Static) Name() string { return a.ModuleName }

// Run implements outbound.Adapter.
func (a *Static) Run(_ context.Context, env *outbound.Env, _ outbound.Options) (*outbound.Env, error) {
	env.Status = a.Status
	return env, nil
}

// TraceOf returns the values of the "x-trace" headers in order.
func TraceOf(env *outbound.Env) []string {
	var out []string
	for _, h := range env.Headers {
		if h.Name == "x-trace" {
			out = append(out, h.Value)
		}
	}
	return out
}
