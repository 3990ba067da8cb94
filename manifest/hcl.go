package manifest

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/bjaus/outbound"
)

var rootSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "name"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "plug", LabelNames: []string{"module"}},
		{Type: "adapter", LabelNames: []string{"module"}},
		{Type: "generate"},
	},
}

type hclGenerate struct {
	Only   []string `hcl:"only,optional"`
	Except []string `hcl:"except,optional"`
	Docs   *bool    `hcl:"docs,optional"`
}

// ParseHCL parses an HCL manifest. filename is used in diagnostics and
// declaration origins.
func ParseHCL(src []byte, filename string, reg Registry) (*Manifest, error) {
	raw, err := parseHCL(src, filename)
	if err != nil {
		return nil, err
	}
	return raw.resolve(filename, reg)
}

func parseHCL(src []byte, filename string) (*rawManifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL manifest %s: %s", filename, diags.Error())
	}

	content, diags := file.Body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL manifest %s: %s", filename, diags.Error())
	}

	var raw rawManifest
	if attr, ok := content.Attributes["name"]; ok {
		var name string
		if diags := gohcl.DecodeExpression(attr.Expr, nil, &name); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL manifest %s: %s", filename, diags.Error())
		}
		raw.Name = name
	}

	// Blocks come back in source order.
	for _, blk := range content.Blocks {
		switch blk.Type {
		case "plug", "adapter":
			d, err := hclDecl(blk)
			if err != nil {
				return nil, fmt.Errorf("failed to decode HCL manifest %s: %w", filename, err)
			}
			if blk.Type == "plug" {
				raw.Middleware = append(raw.Middleware, d)
			} else {
				raw.Adapter = &d
			}

		case "generate":
			var g hclGenerate
			if diags := gohcl.DecodeBody(blk.Body, nil, &g); diags.HasErrors() {
				return nil, fmt.Errorf("failed to decode HCL manifest %s: %s", filename, diags.Error())
			}
			raw.Generate = rawGenerate(g)
		}
	}

	return &raw, nil
}

// hclDecl reads a plug or adapter block. Every attribute of the block body
// is an option; options keep their source order.
func hclDecl(blk *hcl.Block) (rawDecl, error) {
	d := rawDecl{Module: blk.Labels[0], Line: blk.DefRange.Start.Line}

	attrs, diags := blk.Body.JustAttributes()
	if diags.HasErrors() {
		return rawDecl{}, diags
	}
	if len(attrs) == 0 {
		return d, nil
	}

	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, a := range attrs {
		ordered = append(ordered, a)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})

	d.Options = make(outbound.Options, 0, len(ordered))
	for _, a := range ordered {
		val, diags := a.Expr.Value(nil)
		if diags.HasErrors() {
			return rawDecl{}, diags
		}
		native, err := ctyToNative(val)
		if err != nil {
			return rawDecl{}, fmt.Errorf("%s: option %q: %w", a.Range, a.Name, err)
		}
		d.Options = append(d.Options, outbound.Opt(a.Name, native))
	}
	return d, nil
}

// ctyToNative converts a cty value to a plain Go value. Whole numbers become
// int, objects and maps become Options sorted by key.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return int(i), nil
			}
		}
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert number: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := []any{}
		it := v.ElementIterator()
		for it.Next() {
			_, ev := it.Element()
			n, err := ctyToNative(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil

	case ty.IsObjectType() || ty.IsMapType():
		out := outbound.Options{}
		it := v.ElementIterator()
		for it.Next() {
			k, ev := it.Element()
			n, err := ctyToNative(ev)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", k.AsString(), err)
			}
			out = append(out, outbound.Opt(k.AsString(), n))
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported type %s", ty.FriendlyName())
	}
}
