package main

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/bjaus/outbound"
)

// requestID sets a request ID header unless the request already has one.
// Options: header (default "X-Request-ID").
type requestID struct{}

func (requestID) Name() string { return "RequestID" }

func (requestID) Call(ctx context.Context, env *outbound.Env, next outbound.Next, opts outbound.Options) (*outbound.Env, error) {
	header := stringOpt(opts, "header", "X-Request-ID")
	if _, ok := env.Header(header); !ok {
		env.Headers = append(env.Headers, outbound.Header{Name: header, Value: uuid.NewString()})
	}
	return next(ctx, env)
}

// rateLimit throttles requests per host. Options: rate (requests per
// second), burst.
type rateLimit struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newRateLimit() *rateLimit {
	return &rateLimit{limiters: make(map[string]*rate.Limiter)}
}

func (m *rateLimit) Name() string { return "RateLimit" }

func (m *rateLimit) Call(ctx context.Context, env *outbound.Env, next outbound.Next, opts outbound.Options) (*outbound.Env, error) {
	key := env.URL
	if u, err := url.Parse(env.URL); err == nil && u.Host != "" {
		key = u.Host
	}

	m.mu.Lock()
	l, ok := m.limiters[key]
	if !ok {
		l = rate.NewLimiter(rate.Limit(floatOpt(opts, "rate", 10)), int(floatOpt(opts, "burst", 1)))
		m.limiters[key] = l
	}
	m.mu.Unlock()

	if err := l.Wait(ctx); err != nil {
		return nil, err
	}
	return next(ctx, env)
}

// requestLogger logs each request once the rest of the pipeline returns.
type requestLogger struct {
	logger *slog.Logger
}

func (m *requestLogger) Name() string { return "Logger" }

func (m *requestLogger) Call(ctx context.Context, env *outbound.Env, next outbound.Next, _ outbound.Options) (*outbound.Env, error) {
	start := time.Now()
	out, err := next(ctx, env)

	attrs := []slog.Attr{
		slog.String("service", env.Service),
		slog.String("method", env.Method),
		slog.String("url", env.URL),
		slog.Duration("latency", time.Since(start)),
	}
	if id, ok := env.Header("X-Request-ID"); ok {
		attrs = append(attrs, slog.String("request_id", id))
	}
	if err != nil {
		attrs = append(attrs, slog.String("err", err.Error()))
		m.logger.LogAttrs(ctx, slog.LevelError, "request failed", attrs...)
		return out, err
	}
	attrs = append(attrs, slog.Int("status", out.Status))
	m.logger.LogAttrs(ctx, slog.LevelInfo, "request", attrs...)
	return out, nil
}

// bearer adds an Authorization header. Options: token.
type bearer struct{}

func (bearer) Name() string { return "Bearer" }

func (bearer) Call(ctx context.Context, env *outbound.Env, next outbound.Next, opts outbound.Options) (*outbound.Env, error) {
	if tok := stringOpt(opts, "token", ""); tok != "" {
		env.Headers = append(env.Headers, outbound.Header{Name: "Authorization", Value: "Bearer " + tok})
	}
	return next(ctx, env)
}

func stringOpt(opts outbound.Options, key, def string) string {
	if v, ok := opts.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

func floatOpt(opts outbound.Options, key string, def float64) float64 {
	v, ok := opts.Get(key)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	default:
		return def
	}
}
