package outbound

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// DeclKind says whether a declaration registers middleware or the adapter.
type DeclKind uint8

// Declaration kinds.
const (
	KindMiddleware DeclKind = iota + 1
	KindAdapter
)

func (k DeclKind) String() string {
	switch k {
	case KindMiddleware:
		return "middleware"
	case KindAdapter:
		return "adapter"
	default:
		return "declaration"
	}
}

// Origin locates a declaration in source.
type Origin struct {
	Kind DeclKind
	File string
	Line int
}

func (o Origin) String() string {
	if o.File == "" {
		return "unknown location"
	}
	if o.Line == 0 {
		return o.File
	}
	return fmt.Sprintf("%s:%d", o.File, o.Line)
}

// Declaration is one recorded plug or adapter statement. A nil Options means
// none were given.
type Declaration struct {
	Target  Target
	Options Options
	Origin  Origin
}

// Builder collects declarations for a client module. It is handed to the
// configure function of Define and must not be retained.
type Builder struct {
	middleware []Declaration
	adapter    *Declaration
	generation GenerationOptions
	sealed     bool
}

func newBuilder() *Builder {
	return &Builder{generation: DefaultGenerationOptions()}
}

// Plug records a middleware declaration. Declarations keep their order.
func (b *Builder) Plug(target Target, opts ...Option) {
	b.Record(Declaration{
		Target:  target,
		Options: optionList(opts),
		Origin:  callerOrigin(KindMiddleware),
	})
}

// Adapter records the adapter declaration, replacing any earlier one.
func (b *Builder) Adapter(target Target, opts ...Option) {
	b.Record(Declaration{
		Target:  target,
		Options: optionList(opts),
		Origin:  callerOrigin(KindAdapter),
	})
}

// Record stores a declaration with an explicit origin. The origin's Kind
// selects between middleware and adapter. No validation happens here.
func (b *Builder) Record(d Declaration) {
	b.mustOpen()
	switch d.Origin.Kind {
	case KindAdapter:
		b.adapter = &d
	default:
		d.Origin.Kind = KindMiddleware
		b.middleware = append(b.middleware, d)
	}
}

// Only limits the generated verbs to the given names.
func (b *Builder) Only(verbs ...string) {
	b.mustOpen()
	b.generation.Only = append([]string{}, verbs...)
}

// Except removes the given verbs from the generated API.
func (b *Builder) Except(verbs ...string) {
	b.mustOpen()
	b.generation.Except = append(b.generation.Except, verbs...)
}

// Docs toggles descriptive metadata on the generated entry points.
func (b *Builder) Docs(enabled bool) {
	b.mustOpen()
	b.generation.Docs = enabled
}

// Generate replaces the generation options wholesale.
func (b *Builder) Generate(opts GenerationOptions) {
	b.mustOpen()
	b.generation = opts
}

// compile turns the collected declarations into a PipelineConfig.
func (b *Builder) compile() (PipelineConfig, error) {
	mw, err := Compile(b.middleware)
	if err != nil {
		return PipelineConfig{}, err
	}
	adapter, err := CompileOne(b.adapter)
	if err != nil {
		return PipelineConfig{}, err
	}
	return PipelineConfig{Middleware: mw, Adapter: adapter}, nil
}

func (b *Builder) seal() {
	b.sealed = true
	b.middleware = nil
	b.adapter = nil
}

func (b *Builder) mustOpen() {
	if b.sealed {
		panic("outbound: Builder used after Define returned")
	}
}

func optionList(opts []Option) Options {
	if len(opts) == 0 {
		return nil
	}
	return append(Options{}, opts...)
}

// callerOrigin records the file and line of the Plug or Adapter call site.
func callerOrigin(kind DeclKind) Origin {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return Origin{Kind: kind}
	}
	return Origin{Kind: kind, File: filepath.Base(file), Line: line}
}
