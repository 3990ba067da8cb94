package outbound

import "fmt"

// TargetKind discriminates the variants of a Target.
type TargetKind uint8

// Target kinds.
const (
	TargetModule TargetKind = iota + 1
	TargetInline
	TargetSymbol
)

func (k TargetKind) String() string {
	switch k {
	case TargetModule:
		return "module"
	case TargetInline:
		return "inline"
	case TargetSymbol:
		return "symbol"
	default:
		return "none"
	}
}

// Target is what a declaration points at: a module reference, an inline
// function, or a symbolic name. Symbolic names address local functions in a
// removed calling convention and never compile.
type Target struct {
	kind   TargetKind
	module Module
	fn     any
	symbol string
}

// Use targets a module.
func Use(m Module) Target {
	if m == nil {
		return Target{}
	}
	return Target{kind: TargetModule, module: m}
}

// Inline targets an inline middleware function.
func Inline(fn MiddlewareFunc) Target {
	if fn == nil {
		return Target{}
	}
	return Target{kind: TargetInline, fn: fn}
}

// InlineAdapter targets an inline adapter function.
func InlineAdapter(fn AdapterFunc) Target {
	if fn == nil {
		return Target{}
	}
	return Target{kind: TargetInline, fn: fn}
}

// Symbol targets a bare name. It exists so that declarations written for the
// removed addressing mode can be represented and rejected with a precise
// diagnostic.
func Symbol(name string) Target {
	return Target{kind: TargetSymbol, symbol: name}
}

// Kind returns the target variant. The zero Target has no kind.
func (t Target) Kind() TargetKind { return t.kind }

// Module returns the referenced module, if any.
func (t Target) Module() Module { return t.module }

// Func returns the inline function (a MiddlewareFunc or AdapterFunc), if any.
func (t Target) Func() any { return t.fn }

// SymbolName returns the symbolic name, if any.
func (t Target) SymbolName() string { return t.symbol }

// IsZero reports whether the target is unset.
func (t Target) IsZero() bool { return t.kind == 0 }

// String renders the target for diagnostics.
func (t Target) String() string {
	switch t.kind {
	case TargetModule:
		return t.module.Name()
	case TargetInline:
		return fmt.Sprintf("inline %T", t.fn)
	case TargetSymbol:
		return ":" + t.symbol
	default:
		return "<none>"
	}
}
