package outbound

import "context"

// Client is a runtime client value: extra middleware the executor runs
// around a module's own pipeline. The zero Client is the empty client.
// A Client is immutable and safe to share between goroutines.
type Client struct {
	pre  []Step
	post []Step
}

// ModuleSpec pairs a middleware module with options for use in NewClient.
type ModuleSpec struct {
	Module  Middleware
	Options Options
}

// With returns a ModuleSpec for m.
func With(m Middleware, opts ...Option) ModuleSpec {
	return ModuleSpec{Module: m, Options: append(Options{}, opts...)}
}

// NewClient builds a Client from pre and post middleware values. Each element
// must be a Middleware, a ModuleSpec, a MiddlewareFunc, or a function with
// the MiddlewareFunc signature.
func NewClient(pre, post []any) (Client, error) {
	p, err := runtimeSteps("pre", pre)
	if err != nil {
		return Client{}, err
	}
	q, err := runtimeSteps("post", post)
	if err != nil {
		return Client{}, err
	}
	return Client{pre: p, post: q}, nil
}

// MustNewClient is like NewClient but panics on error.
func MustNewClient(pre, post []any) Client {
	c, err := NewClient(pre, post)
	if err != nil {
		panic(err)
	}
	return c
}

// Pre returns a copy of the steps run before the module's middleware.
func (c Client) Pre() []Step { return cloneSteps(c.pre) }

// Post returns a copy of the steps run after the module's middleware.
func (c Client) Post() []Step { return cloneSteps(c.post) }

// IsEmpty reports whether the client adds no steps.
func (c Client) IsEmpty() bool { return len(c.pre) == 0 && len(c.post) == 0 }

func runtimeSteps(list string, values []any) ([]Step, error) {
	steps := make([]Step, 0, len(values))
	for i, v := range values {
		s, ok := runtimeStep(v)
		if !ok {
			return nil, &MalformedStepError{List: list, Index: i, Value: v}
		}
		steps = append(steps, s)
	}
	return steps, nil
}

func runtimeStep(v any) (Step, bool) {
	switch v := v.(type) {
	case ModuleSpec:
		if v.Module == nil {
			return Step{}, false
		}
		return Step{Kind: ModuleCall, Module: v.Module, Options: v.Options.clone()}, true
	case Middleware:
		return Step{Kind: ModuleCall, Module: v, Options: Options{}}, true
	case MiddlewareFunc:
		if v == nil {
			return Step{}, false
		}
		return Step{Kind: InlineCall, Func: v}, true
	case func(context.Context, *Env, Next) (*Env, error):
		if v == nil {
			return Step{}, false
		}
		return Step{Kind: InlineCall, Func: MiddlewareFunc(v)}, true
	default:
		return Step{}, false
	}
}

func cloneSteps(steps []Step) []Step {
	out := make([]Step, len(steps))
	for i, s := range steps {
		s.Options = s.Options.clone()
		if s.Kind == InlineCall {
			s.Options = nil
		}
		out[i] = s
	}
	return out
}
