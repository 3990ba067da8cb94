package outbound

import (
	"fmt"
	"net/http"
	"strings"
)

// VerbSpec describes one HTTP verb of the generated API.
type VerbSpec struct {
	Name        string
	Method      string
	AcceptsBody bool
}

// Verbs is the fixed verb table, in generation order.
var Verbs = []VerbSpec{
	{Name: "head", Method: http.MethodHead},
	{Name: "get", Method: http.MethodGet},
	{Name: "delete", Method: http.MethodDelete},
	{Name: "trace", Method: http.MethodTrace},
	{Name: "options", Method: http.MethodOptions},
	{Name: "post", Method: http.MethodPost, AcceptsBody: true},
	{Name: "put", Method: http.MethodPut, AcceptsBody: true},
	{Name: "patch", Method: http.MethodPatch, AcceptsBody: true},
}

// LookupVerb finds a verb by name, ignoring case.
func LookupVerb(name string) (VerbSpec, bool) {
	name = strings.ToLower(name)
	for _, v := range Verbs {
		if v.Name == name {
			return v, true
		}
	}
	return VerbSpec{}, false
}

// GenerationOptions controls which verbs get entry points and whether they
// carry descriptive metadata. A nil Only means every verb.
type GenerationOptions struct {
	Only   []string `json:"only,omitempty" yaml:"only,omitempty"`
	Except []string `json:"except,omitempty" yaml:"except,omitempty"`
	Docs   bool     `json:"docs" yaml:"docs"`
}

// DefaultGenerationOptions includes all verbs with documentation.
func DefaultGenerationOptions() GenerationOptions {
	return GenerationOptions{Docs: true}
}

// ErrorMode selects how an entry point reports failure.
type ErrorMode uint8

// Error modes.
const (
	Safe ErrorMode = iota
	Raising
)

// ClientMode selects whether an entry point takes a Client.
type ClientMode uint8

// Client modes.
const (
	Implicit ClientMode = iota
	Explicit
)

// OptsMode selects whether an entry point takes request options.
type OptsMode uint8

// Options modes.
const (
	WithoutOpts OptsMode = iota
	WithOpts
)

// EntryPointVariant is one combination of verb, error mode, client mode and
// options mode.
type EntryPointVariant struct {
	Verb   VerbSpec
	Error  ErrorMode
	Client ClientMode
	Opts   OptsMode
}

// Name returns the canonical name: the verb, with a trailing "!" for the
// raising variants.
func (v EntryPointVariant) Name() string {
	if v.Error == Raising {
		return v.Verb.Name + "!"
	}
	return v.Verb.Name
}

// FuncName returns the Go identifier used for the variant in generated code,
// e.g. Get, GetOpts, GetWith, MustGetWithOpts.
func (v EntryPointVariant) FuncName() string {
	var b strings.Builder
	if v.Error == Raising {
		b.WriteString("Must")
	}
	b.WriteString(strings.ToUpper(v.Verb.Name[:1]) + v.Verb.Name[1:])
	if v.Client == Explicit {
		b.WriteString("With")
	}
	if v.Opts == WithOpts {
		b.WriteString("Opts")
	}
	return b.String()
}

// Param is one parameter of an entry point.
type Param struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Params returns the parameters in their fixed order: ctx, client, url,
// body, opts. Absent ones are skipped.
func (v EntryPointVariant) Params() []Param {
	params := []Param{{Name: "ctx", Type: "context.Context"}}
	if v.Client == Explicit {
		params = append(params, Param{Name: "client", Type: "outbound.Client"})
	}
	params = append(params, Param{Name: "url", Type: "string"})
	if v.Verb.AcceptsBody {
		params = append(params, Param{Name: "body", Type: "any"})
	}
	if v.Opts == WithOpts {
		params = append(params, Param{Name: "opts", Type: "outbound.Options"})
	}
	return params
}

// Results returns the result types.
func (v EntryPointVariant) Results() []string {
	if v.Error == Raising {
		return []string{"*outbound.Env"}
	}
	return []string{"*outbound.Env", "error"}
}

// Arity is the number of arguments after ctx.
func (v EntryPointVariant) Arity() int {
	return len(v.Params()) - 1
}

// Contract returns the Go function type of the variant.
func (v EntryPointVariant) Contract() string {
	params := v.Params()
	ps := make([]string, len(params))
	for i, p := range params {
		ps[i] = p.Name + " " + p.Type
	}
	results := v.Results()
	res := results[0]
	if len(results) > 1 {
		res = "(" + strings.Join(results, ", ") + ")"
	}
	return fmt.Sprintf("func(%s) %s", strings.Join(ps, ", "), res)
}

// EntryPoint is a generated variant with its documentation. Doc is empty when
// documentation is disabled.
type EntryPoint struct {
	EntryPointVariant
	Doc string
}

// Generate enumerates the entry points for the given options. The result is
// deterministic: verb table order, then safe before raising, implicit before
// explicit client, and without before with options.
func Generate(opts GenerationOptions) ([]EntryPoint, error) {
	verbs, err := opts.verbs()
	if err != nil {
		return nil, err
	}

	eps := make([]EntryPoint, 0, len(verbs)*8)
	for _, verb := range verbs {
		for _, em := range []ErrorMode{Safe, Raising} {
			for _, cm := range []ClientMode{Implicit, Explicit} {
				for _, om := range []OptsMode{WithoutOpts, WithOpts} {
					v := EntryPointVariant{Verb: verb, Error: em, Client: cm, Opts: om}
					ep := EntryPoint{EntryPointVariant: v}
					if opts.Docs {
						ep.Doc = usage(v)
					}
					eps = append(eps, ep)
				}
			}
		}
	}
	return eps, nil
}

// verbs resolves Only minus Except against the verb table.
func (o GenerationOptions) verbs() ([]VerbSpec, error) {
	only := make(map[string]bool, len(o.Only))
	for _, name := range o.Only {
		v, ok := LookupVerb(name)
		if !ok {
			return nil, fmt.Errorf("only %q: %w", name, ErrUnknownVerb)
		}
		only[v.Name] = true
	}
	except := make(map[string]bool, len(o.Except))
	for _, name := range o.Except {
		v, ok := LookupVerb(name)
		if !ok {
			return nil, fmt.Errorf("except %q: %w", name, ErrUnknownVerb)
		}
		except[v.Name] = true
	}

	var verbs []VerbSpec
	for _, v := range Verbs {
		if o.Only != nil && !only[v.Name] {
			continue
		}
		if except[v.Name] {
			continue
		}
		verbs = append(verbs, v)
	}
	return verbs, nil
}

func usage(v EntryPointVariant) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s performs a %s request", v.FuncName(), v.Verb.Method)
	if v.Verb.AcceptsBody {
		b.WriteString(" with body")
	}
	if v.Client == Explicit {
		b.WriteString(" to url through client.")
	} else {
		b.WriteString(" to url with the empty client.")
	}
	if v.Opts == WithOpts {
		b.WriteString(" Entries in opts (query, headers, opts) are added to the request.")
	} else {
		fmt.Fprintf(&b, " It is equivalent to %s with empty options.", withOpts(v).FuncName())
	}
	if v.Error == Raising {
		b.WriteString(" It panics with a *outbound.RequestError if the request fails.")
	}

	b.WriteString("\n\nExample:\n\n\t")
	args := []string{"ctx"}
	if v.Client == Explicit {
		args = append(args, "client")
	}
	args = append(args, `"/users"`)
	if v.Verb.AcceptsBody {
		args = append(args, "body")
	}
	if v.Opts == WithOpts {
		args = append(args, `outbound.Options{outbound.Opt("query", outbound.Options{outbound.Opt("page", 1)})}`)
	}
	lhs := "env, err"
	if v.Error == Raising {
		lhs = "env"
	}
	fmt.Fprintf(&b, "%s := c.%s(%s)", lhs, v.FuncName(), strings.Join(args, ", "))
	return b.String()
}

func withOpts(v EntryPointVariant) EntryPointVariant {
	v.Opts = WithOpts
	return v
}
