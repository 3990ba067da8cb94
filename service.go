package outbound

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// Executor runs a request through a compiled pipeline. It is provided by
// the application; this package only assembles what it consumes.
type Executor interface {
	Execute(ctx context.Context, p Pipeline, env *Env) (*Env, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, p Pipeline, env *Env) (*Env, error)

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, p Pipeline, env *Env) (*Env, error) {
	return f(ctx, p, env)
}

// Pipeline is everything the executor needs for one request.
type Pipeline struct {
	Service    string
	Client     Client
	Middleware []Step
	Adapter    *Step
}

// Steps returns the middleware in execution order: client pre steps, the
// module's middleware, then client post steps. The adapter is not included.
func (p Pipeline) Steps() []Step {
	steps := make([]Step, 0, len(p.Client.pre)+len(p.Middleware)+len(p.Client.post))
	steps = append(steps, p.Client.pre...)
	steps = append(steps, p.Middleware...)
	return append(steps, p.Client.post...)
}

// Service is a compiled client module. It is immutable after Define returns
// and safe for concurrent use.
type Service struct {
	name        string
	config      PipelineConfig
	generation  GenerationOptions
	entryPoints []EntryPoint

	executor Executor
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithExecutor sets the executor that runs requests.
func WithExecutor(e Executor) ServiceOption {
	return func(s *Service) {
		s.executor = e
	}
}

// WithLogger sets the logger used for build and request diagnostics.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

// Define builds a client module. configure runs once with a fresh Builder;
// the declarations it records are compiled and the entry points generated
// before Define returns. Any failure means the module does not exist.
func Define(name string, configure func(b *Builder), opts ...ServiceOption) (*Service, error) {
	s := &Service{name: name}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	b := newBuilder()
	if configure != nil {
		configure(b)
	}
	defer b.seal()

	cfg, err := b.compile()
	if err != nil {
		s.logger.Error("client module rejected", "service", name, "err", err)
		return nil, fmt.Errorf("define %s: %w", name, err)
	}

	eps, err := Generate(b.generation)
	if err != nil {
		s.logger.Error("client module rejected", "service", name, "err", err)
		return nil, fmt.Errorf("define %s: %w", name, err)
	}

	s.config = cfg
	s.generation = b.generation
	s.entryPoints = eps

	s.logger.Debug("client module compiled",
		"service", name,
		"middleware", len(cfg.Middleware),
		"adapter", cfg.Adapter != nil,
		"entry_points", len(eps),
	)
	return s, nil
}

// MustDefine is like Define but panics on error.
func MustDefine(name string, configure func(b *Builder), opts ...ServiceOption) *Service {
	s, err := Define(name, configure, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the module name.
func (s *Service) Name() string { return s.name }

// Middleware returns a copy of the compiled middleware steps in declaration
// order.
func (s *Service) Middleware() []Step { return cloneSteps(s.config.Middleware) }

// AdapterStep returns the compiled adapter, if one was declared.
func (s *Service) AdapterStep() (Step, bool) {
	if s.config.Adapter == nil {
		return Step{}, false
	}
	return cloneSteps([]Step{*s.config.Adapter})[0], true
}

// Config returns a copy of the compiled pipeline.
func (s *Service) Config() PipelineConfig {
	cfg := PipelineConfig{Middleware: s.Middleware()}
	if a, ok := s.AdapterStep(); ok {
		cfg.Adapter = &a
	}
	return cfg
}

// Generation returns the generation options the module was built with.
func (s *Service) Generation() GenerationOptions { return s.generation }

// EntryPoints returns the generated verb entry points.
func (s *Service) EntryPoints() []EntryPoint {
	out := make([]EntryPoint, len(s.entryPoints))
	copy(out, s.entryPoints)
	return out
}

// Request is a request descriptor.
type Request struct {
	Method  string
	URL     string
	Query   Options
	Headers []Header
	Body    any
	HasBody bool
	Opts    Options
}

// NewRequest reads a descriptor from a request options list. Recognized keys
// are method, url, query, headers, body and opts; the first occurrence of a
// key wins and unknown keys are ignored. The method defaults to GET.
func NewRequest(opts Options) (Request, error) {
	req := Request{Method: "GET"}

	if v, ok := opts.Get("method"); ok {
		m, ok := v.(string)
		if !ok || m == "" {
			return Request{}, fmt.Errorf("method has type %T: %w", v, ErrInvalidRequest)
		}
		req.Method = strings.ToUpper(m)
	}
	if v, ok := opts.Get("url"); ok {
		u, ok := v.(string)
		if !ok {
			return Request{}, fmt.Errorf("url has type %T: %w", v, ErrInvalidRequest)
		}
		req.URL = u
	}
	if v, ok := opts.Get("query"); ok {
		q, ok := v.(Options)
		if !ok {
			return Request{}, fmt.Errorf("query has type %T: %w", v, ErrInvalidRequest)
		}
		req.Query = q.clone()
	}
	if v, ok := opts.Get("headers"); ok {
		h, err := headerList(v)
		if err != nil {
			return Request{}, err
		}
		req.Headers = h
	}
	if v, ok := opts.Get("body"); ok {
		req.Body = v
		req.HasBody = true
	}
	if v, ok := opts.Get("opts"); ok {
		o, ok := v.(Options)
		if !ok {
			return Request{}, fmt.Errorf("opts has type %T: %w", v, ErrInvalidRequest)
		}
		req.Opts = o.clone()
	}
	return req, nil
}

func headerList(v any) ([]Header, error) {
	switch h := v.(type) {
	case []Header:
		return append([]Header{}, h...), nil
	case Options:
		out := make([]Header, len(h))
		for i, o := range h {
			out[i] = Header{Name: o.Key, Value: fmt.Sprint(o.Value)}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("headers has type %T: %w", v, ErrInvalidRequest)
	}
}

// Request is the generic safe entry point. opts is read with NewRequest.
func (s *Service) Request(ctx context.Context, c Client, opts Options) (*Env, error) {
	req, err := NewRequest(opts)
	if err != nil {
		return nil, err
	}
	return s.Do(ctx, c, req)
}

// MustRequest is the generic raising entry point. It panics with a
// *RequestError if the request cannot be built or fails.
func (s *Service) MustRequest(ctx context.Context, c Client, opts Options) *Env {
	req, err := NewRequest(opts)
	if err != nil {
		panic(&RequestError{Err: err})
	}
	return s.MustDo(ctx, c, req)
}

// Do runs a request descriptor through the executor.
func (s *Service) Do(ctx context.Context, c Client, req Request) (*Env, error) {
	if s.executor == nil {
		return nil, ErrNoExecutor
	}

	env := &Env{
		Method:  requestMethod(req.Method),
		URL:     req.URL,
		Query:   req.Query,
		Headers: req.Headers,
		Body:    req.Body,
		Opts:    req.Opts,
		Service: s.name,
	}
	cfg := s.Config()
	p := Pipeline{
		Service:    s.name,
		Client:     c,
		Middleware: cfg.Middleware,
		Adapter:    cfg.Adapter,
	}

	s.logger.DebugContext(ctx, "request", "service", s.name, "method", env.Method, "url", env.URL)
	return s.executor.Execute(ctx, p, env)
}

// MustDo is like Do but panics with a *RequestError on failure.
func (s *Service) MustDo(ctx context.Context, c Client, req Request) *Env {
	env, err := s.Do(ctx, c, req)
	if err != nil {
		panic(&RequestError{Method: requestMethod(req.Method), URL: req.URL, Err: err})
	}
	return env
}

// requestMethod upper-cases m, defaulting to GET like NewRequest.
func requestMethod(m string) string {
	if m == "" {
		return http.MethodGet
	}
	return strings.ToUpper(m)
}
