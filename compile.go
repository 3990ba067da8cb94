package outbound

import "fmt"

// StepKind discriminates the two canonical step forms.
type StepKind uint8

// Step kinds.
const (
	ModuleCall StepKind = iota + 1
	InlineCall
)

func (k StepKind) String() string {
	switch k {
	case ModuleCall:
		return "module"
	case InlineCall:
		return "inline"
	default:
		return "invalid"
	}
}

// Step is the canonical form of a declaration or runtime value: either a
// module called with options, or an inline function.
type Step struct {
	Kind    StepKind
	Module  Module
	Options Options
	// Func is a MiddlewareFunc or an AdapterFunc.
	Func any
}

// String renders the step for logs and diagnostics.
func (s Step) String() string {
	switch s.Kind {
	case ModuleCall:
		return fmt.Sprintf("%s%v", s.Module.Name(), s.Options.Keys())
	case InlineCall:
		return fmt.Sprintf("inline %T", s.Func)
	default:
		return "invalid step"
	}
}

// PipelineConfig is the compiled pipeline of a client module. A nil Adapter
// means none was declared and the executor supplies its default.
type PipelineConfig struct {
	Middleware []Step
	Adapter    *Step
}

// Compile normalizes middleware declarations in order. The first declaration
// that cannot be compiled aborts with a *ConfigurationError.
func Compile(decls []Declaration) ([]Step, error) {
	steps := make([]Step, 0, len(decls))
	for i := range decls {
		d := decls[i]
		if d.Origin.Kind == 0 {
			d.Origin.Kind = KindMiddleware
		}
		s, err := compile(d)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, nil
}

// CompileOne normalizes an optional declaration. A nil declaration compiles
// to a nil step.
func CompileOne(d *Declaration) (*Step, error) {
	if d == nil {
		return nil, nil
	}
	s, err := compile(*d)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func compile(d Declaration) (Step, error) {
	t := d.Target
	switch t.kind {
	case TargetModule:
		if !fitsRole(d.Origin.Kind, t.module) {
			return Step{}, configError(d, t.module.Name(), ErrTargetMismatch)
		}
		return Step{Kind: ModuleCall, Module: t.module, Options: d.Options.clone()}, nil

	case TargetInline:
		if !fitsRole(d.Origin.Kind, t.fn) {
			return Step{}, configError(d, t.String(), ErrTargetMismatch)
		}
		if len(d.Options) > 0 {
			return Step{}, configError(d, t.String(), ErrInlineOptions)
		}
		return Step{Kind: InlineCall, Func: t.fn}, nil

	case TargetSymbol:
		// The removed addressing mode resolved this name to a local
		// function. It must never be resolved again.
		return Step{}, configError(d, t.symbol, ErrSymbolicName)

	default:
		return Step{}, configError(d, t.String(), ErrEmptyTarget)
	}
}

// fitsRole checks that a module or inline function can play the declared
// role. Only the shape is checked.
func fitsRole(kind DeclKind, v any) bool {
	switch kind {
	case KindAdapter:
		switch v.(type) {
		case Adapter, AdapterFunc:
			return true
		}
	default:
		switch v.(type) {
		case Middleware, MiddlewareFunc:
			return true
		}
	}
	return false
}

func configError(d Declaration, name string, err error) *ConfigurationError {
	return &ConfigurationError{Kind: d.Origin.Kind, Name: name, Origin: d.Origin, Err: err}
}
