package outbound

import (
	"context"
	"strings"
)

// Module is a reusable, named pipeline component. Middleware and adapter
// implementations are modules.
type Module interface {
	Name() string
}

// Next invokes the remainder of the pipeline.
type Next func(ctx context.Context, env *Env) (*Env, error)

// Middleware is a module that wraps the rest of the pipeline. The options
// are the ones given where the middleware was declared.
type Middleware interface {
	Module
	Call(ctx context.Context, env *Env, next Next, opts Options) (*Env, error)
}

// Adapter is a module that terminates the pipeline and performs the request.
type Adapter interface {
	Module
	Run(ctx context.Context, env *Env, opts Options) (*Env, error)
}

// MiddlewareFunc is an inline middleware.
type MiddlewareFunc func(ctx context.Context, env *Env, next Next) (*Env, error)

// AdapterFunc is an inline adapter.
type AdapterFunc func(ctx context.Context, env *Env) (*Env, error)

// Header is a single request or response header. Order and duplicates are
// preserved.
type Header struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Env is the value threaded through the pipeline by the executor.
type Env struct {
	Method  string
	URL     string
	Query   Options
	Headers []Header
	Body    any
	Opts    Options

	// Set by the adapter.
	Status          int
	ResponseHeaders []Header
	ResponseBody    []byte

	// Service is the name of the client module the request went through.
	Service string
}

// Header returns the first request header with the given name.
func (e *Env) Header(name string) (string, bool) {
	for _, h := range e.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}
