package outbound

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Description is a serializable view of a compiled client module: the
// ordered pipeline and the generated API surface.
type Description struct {
	Service     string            `json:"service" yaml:"service"`
	Middleware  []StepDesc        `json:"middleware" yaml:"middleware"`
	Adapter     *StepDesc         `json:"adapter,omitempty" yaml:"adapter,omitempty"`
	Generation  GenerationOptions `json:"generation" yaml:"generation"`
	EntryPoints []EntryPointDesc  `json:"entry_points" yaml:"entry_points"`
}

// StepDesc describes one compiled step.
type StepDesc struct {
	Kind    string  `json:"kind" yaml:"kind"`
	Module  string  `json:"module,omitempty" yaml:"module,omitempty"`
	Func    string  `json:"func,omitempty" yaml:"func,omitempty"`
	Options Options `json:"options,omitempty" yaml:"options,omitempty"`
}

// EntryPointDesc describes one generated entry point.
type EntryPointDesc struct {
	Name     string  `json:"name" yaml:"name"`
	Func     string  `json:"func" yaml:"func"`
	Params   []Param `json:"params" yaml:"params"`
	Contract string  `json:"contract" yaml:"contract"`
	Doc      string  `json:"doc,omitempty" yaml:"doc,omitempty"`
}

// Describe returns the description of the module.
func (s *Service) Describe() Description {
	d := Description{
		Service:     s.name,
		Middleware:  make([]StepDesc, 0, len(s.config.Middleware)),
		Generation:  s.generation,
		EntryPoints: make([]EntryPointDesc, 0, len(s.entryPoints)),
	}
	for _, st := range s.config.Middleware {
		d.Middleware = append(d.Middleware, describeStep(st))
	}
	if s.config.Adapter != nil {
		a := describeStep(*s.config.Adapter)
		d.Adapter = &a
	}
	for _, ep := range s.entryPoints {
		d.EntryPoints = append(d.EntryPoints, EntryPointDesc{
			Name:     ep.Name(),
			Func:     ep.FuncName(),
			Params:   ep.Params(),
			Contract: ep.Contract(),
			Doc:      ep.Doc,
		})
	}
	return d
}

func describeStep(s Step) StepDesc {
	d := StepDesc{Kind: s.Kind.String()}
	switch s.Kind {
	case ModuleCall:
		d.Module = s.Module.Name()
		d.Options = s.Options
	case InlineCall:
		d.Func = fmt.Sprintf("%T", s.Func)
	}
	return d
}

// WriteDescription writes the description as indented JSON to w.
func (s *Service) WriteDescription(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.Describe())
}

// WriteDescriptionYAML writes the description as YAML to w.
func (s *Service) WriteDescriptionYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s.Describe()); err != nil {
		return err
	}
	return enc.Close()
}
