package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bjaus/outbound"
)

// httpAdapter performs requests with net/http. Options: base_url, timeout
// (a time.Duration, or milliseconds as a number).
type httpAdapter struct {
	client *http.Client
}

func (a *httpAdapter) Name() string { return "HTTP" }

func (a *httpAdapter) Run(ctx context.Context, env *outbound.Env, opts outbound.Options) (*outbound.Env, error) {
	if d := timeoutOpt(opts); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	target := env.URL
	if base := stringOpt(opts, "base_url", ""); base != "" && !strings.Contains(target, "://") {
		target = strings.TrimRight(base, "/") + "/" + strings.TrimLeft(target, "/")
	}
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if len(env.Query) > 0 {
		q := u.Query()
		for _, o := range env.Query {
			q.Add(o.Key, fmt.Sprint(o.Value))
		}
		u.RawQuery = q.Encode()
	}

	body, contentType, err := encodeBody(env.Body)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, env.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for _, h := range env.Headers {
		req.Header.Add(h.Name, h.Value)
	}
	if contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	env.Status = resp.StatusCode
	env.ResponseBody = data
	for name, values := range resp.Header {
		for _, v := range values {
			env.ResponseHeaders = append(env.ResponseHeaders, outbound.Header{Name: name, Value: v})
		}
	}
	return env, nil
}

func encodeBody(body any) (io.Reader, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

func timeoutOpt(opts outbound.Options) time.Duration {
	v, ok := opts.Get("timeout")
	if !ok {
		return 0
	}
	switch d := v.(type) {
	case time.Duration:
		return d
	case int:
		return time.Duration(d) * time.Millisecond
	case float64:
		return time.Duration(d * float64(time.Millisecond))
	default:
		return 0
	}
}

var errNoAdapter = errors.New("no adapter declared")

// chain executes client pre steps, module middleware, client post steps and
// finally the adapter.
type chain struct{}

func (chain) Execute(ctx context.Context, p outbound.Pipeline, env *outbound.Env) (*outbound.Env, error) {
	steps := p.Steps()

	var at func(i int) outbound.Next
	at = func(i int) outbound.Next {
		return func(ctx context.Context, env *outbound.Env) (*outbound.Env, error) {
			if i < len(steps) {
				return callStep(ctx, steps[i], env, at(i+1))
			}
			if p.Adapter == nil {
				return nil, errNoAdapter
			}
			if p.Adapter.Kind == outbound.InlineCall {
				return p.Adapter.Func.(outbound.AdapterFunc)(ctx, env)
			}
			return p.Adapter.Module.(outbound.Adapter).Run(ctx, env, p.Adapter.Options)
		}
	}
	return at(0)(ctx, env)
}

func callStep(ctx context.Context, s outbound.Step, env *outbound.Env, next outbound.Next) (*outbound.Env, error) {
	if s.Kind == outbound.InlineCall {
		return s.Func.(outbound.MiddlewareFunc)(ctx, env, next)
	}
	return s.Module.(outbound.Middleware).Call(ctx, env, next, s.Options)
}
