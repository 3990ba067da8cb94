package outbound

// Test-only exports for internal functions.
var (
	IsFunc = isFunc
	Shapes = shapes
)

// NewBuilder returns an unsealed Builder outside of Define.
func NewBuilder() *Builder { return newBuilder() }

// Compiled exposes the compile step of a Builder.
func (b *Builder) Compiled() (PipelineConfig, error) { return b.compile() }

// Generation exposes the collected generation options.
func (b *Builder) Generation() GenerationOptions { return b.generation }

// Seal seals the Builder as Define does.
func (b *Builder) Seal() { b.seal() }
