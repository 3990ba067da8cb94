package outbound

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// Call invokes an entry point by its canonical name ("get", "post!",
// "request", ...) with positional arguments, choosing the variant whose
// parameter shapes match. It is the dynamic counterpart of the generated
// wrappers and applies the same contracts:
//
//   - opts must be an Options value, otherwise no variant applies and the
//     returned error wraps ErrNoEntryPoint;
//   - a function in the client position of a verb variant fails with a
//     *LegacyUsageError instead of running the request.
//
// Raising variants panic with a *RequestError, like MustRequest. That
// includes the legacy client case, where the RequestError wraps the
// *LegacyUsageError. Argument shape mismatches are returned as errors for
// every variant.
func (s *Service) Call(ctx context.Context, name string, args ...any) (*Env, error) {
	switch name {
	case "request", "request!":
		return s.callRequest(ctx, name, args)
	}

	matched := false
	for _, ep := range s.entryPoints {
		if ep.Name() != name {
			continue
		}
		matched = true
		if ep.Arity() != len(args) {
			continue
		}
		if ep.Client == Explicit && isFunc(args[0]) {
			legacy := &LegacyUsageError{EntryPoint: name, Value: args[0]}
			if ep.Error == Raising {
				panic(&RequestError{Err: legacy})
			}
			return nil, legacy
		}
		opts, c, ok := bind(ep.EntryPointVariant, args)
		if !ok {
			continue
		}
		if ep.Error == Raising {
			return s.MustRequest(ctx, c, opts), nil
		}
		return s.Request(ctx, c, opts)
	}

	if !matched {
		return nil, fmt.Errorf("%s is not generated for service %s: %w", name, s.name, ErrNoEntryPoint)
	}
	return nil, fmt.Errorf("%s(%s): %w", name, shapes(args), ErrNoEntryPoint)
}

func (s *Service) callRequest(ctx context.Context, name string, args []any) (*Env, error) {
	var (
		c    Client
		opts Options
		ok   bool
	)
	switch len(args) {
	case 1:
		opts, ok = args[0].(Options)
	case 2:
		if c, ok = args[0].(Client); ok {
			opts, ok = args[1].(Options)
		}
	}
	if !ok {
		return nil, fmt.Errorf("%s(%s): %w", name, shapes(args), ErrNoEntryPoint)
	}
	if name == "request!" {
		return s.MustRequest(ctx, c, opts), nil
	}
	return s.Request(ctx, c, opts)
}

// bind checks args against the variant's parameters and assembles the
// request options list: method, url and body first, then the caller's opts.
func bind(v EntryPointVariant, args []any) (Options, Client, bool) {
	var c Client
	i := 0

	if v.Client == Explicit {
		cv, ok := args[i].(Client)
		if !ok {
			return nil, Client{}, false
		}
		c = cv
		i++
	}

	url, ok := args[i].(string)
	if !ok {
		return nil, Client{}, false
	}
	i++

	head := Options{Opt("method", v.Verb.Method), Opt("url", url)}
	if v.Verb.AcceptsBody {
		head = append(head, Opt("body", args[i]))
		i++
	}

	var tail Options
	if v.Opts == WithOpts {
		o, ok := args[i].(Options)
		if !ok {
			return nil, Client{}, false
		}
		tail = o
	}

	return Prepend(tail, head...), c, true
}

func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}

func shapes(args []any) string {
	types := make([]string, len(args))
	for i, a := range args {
		types[i] = fmt.Sprintf("%T", a)
	}
	return strings.Join(types, ", ")
}
