package outbound

import (
	"errors"
	"fmt"
)

// Sentinel errors. The typed errors below unwrap to one of these so callers
// can match with errors.Is.
var (
	ErrSymbolicName   = errors.New("symbolic name targets are no longer supported")
	ErrEmptyTarget    = errors.New("declaration has no target")
	ErrTargetMismatch = errors.New("target does not fit declaration kind")
	ErrInlineOptions  = errors.New("inline functions take no options")

	ErrMalformedStep = errors.New("malformed step")
	ErrLegacyClient  = errors.New("function passed as client")

	ErrNoEntryPoint   = errors.New("no applicable entry point")
	ErrUnknownVerb    = errors.New("unknown verb")
	ErrInvalidRequest = errors.New("invalid request options")
	ErrNoExecutor     = errors.New("no executor configured")
)

// ConfigurationError reports a declaration that cannot be compiled. It is
// returned by Define and aborts the build of the client module.
type ConfigurationError struct {
	Kind   DeclKind
	Name   string
	Origin Origin
	Err    error
}

// Error returns a message naming the declaration kind, the offending target
// and where it was declared.
func (e *ConfigurationError) Error() string {
	if errors.Is(e.Err, ErrSymbolicName) {
		return fmt.Sprintf("%s :%s declared at %s: %v; declare a module with Use or an inline function with Inline instead",
			e.Kind, e.Name, e.Origin, e.Err)
	}
	return fmt.Sprintf("%s %s declared at %s: %v", e.Kind, e.Name, e.Origin, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *ConfigurationError) Unwrap() error { return e.Err }

// MalformedStepError reports a client value element that is neither a
// middleware module, a module with options, nor a middleware function.
type MalformedStepError struct {
	List  string
	Index int
	Value any
}

// Error returns the error message.
func (e *MalformedStepError) Error() string {
	return fmt.Sprintf("%v: %s[%d] has type %T; want Middleware, ModuleSpec or MiddlewareFunc",
		ErrMalformedStep, e.List, e.Index, e.Value)
}

// Unwrap returns ErrMalformedStep.
func (e *MalformedStepError) Unwrap() error { return ErrMalformedStep }

// LegacyUsageError reports an explicit-client entry point called with a
// function in the client position, the calling convention that predates
// client values.
type LegacyUsageError struct {
	EntryPoint string
	Value      any
}

// Error returns a message describing the required migration.
func (e *LegacyUsageError) Error() string {
	return fmt.Sprintf("%s: %v (%T); build a client with outbound.NewClient(nil, []any{fn}) and pass that instead",
		e.EntryPoint, ErrLegacyClient, e.Value)
}

// Unwrap returns ErrLegacyClient.
func (e *LegacyUsageError) Unwrap() error { return ErrLegacyClient }

// RequestError is the panic value of the raising entry points.
type RequestError struct {
	Method string
	URL    string
	Err    error
}

// Error returns the error message.
func (e *RequestError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("request: %v", e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the cause.
func (e *RequestError) Unwrap() error { return e.Err }
