package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/outbound"
)

type yamlManifest struct {
	Name       string       `yaml:"name"`
	Middleware []yamlDecl   `yaml:"middleware"`
	Adapter    *yamlDecl    `yaml:"adapter"`
	Generate   yamlGenerate `yaml:"generate"`
}

type yamlGenerate struct {
	Only   []string `yaml:"only"`
	Except []string `yaml:"except"`
	Docs   *bool    `yaml:"docs"`
}

type yamlDecl struct {
	Module  string    `yaml:"module"`
	Symbol  string    `yaml:"symbol"`
	Options yaml.Node `yaml:"options"`

	line int
}

// UnmarshalYAML records the line of the declaration.
func (d *yamlDecl) UnmarshalYAML(value *yaml.Node) error {
	type plain yamlDecl
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*d = yamlDecl(p)
	d.line = value.Line
	return nil
}

// ParseYAML parses a YAML manifest. filename is used in diagnostics and
// declaration origins.
func ParseYAML(src []byte, filename string, reg Registry) (*Manifest, error) {
	raw, err := parseYAML(src, filename)
	if err != nil {
		return nil, err
	}
	return raw.resolve(filename, reg)
}

func parseYAML(src []byte, filename string) (*rawManifest, error) {
	var ym yamlManifest
	if err := yaml.Unmarshal(src, &ym); err != nil {
		return nil, fmt.Errorf("failed to parse YAML manifest %s: %w", filename, err)
	}

	raw := rawManifest{
		Name:     ym.Name,
		Generate: rawGenerate(ym.Generate),
	}
	for _, d := range ym.Middleware {
		rd, err := d.raw()
		if err != nil {
			return nil, fmt.Errorf("failed to decode YAML manifest %s: %w", filename, err)
		}
		raw.Middleware = append(raw.Middleware, rd)
	}
	if ym.Adapter != nil {
		rd, err := ym.Adapter.raw()
		if err != nil {
			return nil, fmt.Errorf("failed to decode YAML manifest %s: %w", filename, err)
		}
		raw.Adapter = &rd
	}

	return &raw, nil
}

func (d yamlDecl) raw() (rawDecl, error) {
	rd := rawDecl{Module: d.Module, Symbol: d.Symbol, Line: d.line}
	if d.Options.Kind == 0 || d.Options.ShortTag() == "!!null" {
		return rd, nil
	}
	if d.Options.Kind != yaml.MappingNode {
		return rawDecl{}, fmt.Errorf("line %d: options must be a mapping", d.Options.Line)
	}
	v, err := nodeToNative(&d.Options)
	if err != nil {
		return rawDecl{}, err
	}
	rd.Options = v.(outbound.Options)
	return rd, nil
}

// nodeToNative decodes a YAML node, turning mappings into Options so that key
// order survives.
func nodeToNative(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		out := make(outbound.Options, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeToNative(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out = append(out, outbound.Opt(n.Content[i].Value, v))
		}
		return out, nil

	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeToNative(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.AliasNode:
		return nodeToNative(n.Alias)

	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
}
