// Package verbgen renders the verb entry points of a client module as Go
// source. The output declares a wrapper type embedding *outbound.Service and
// one method per generated entry point, each delegating to Request or
// MustRequest.
package verbgen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"strings"
	"text/template"

	"github.com/bjaus/outbound"
)

// ErrInvalidConfig is returned for an unusable Config.
var ErrInvalidConfig = errors.New("verbgen: invalid config")

// Config describes one generated file.
type Config struct {
	// Package is the package clause of the generated file.
	Package string
	// Type is the wrapper type name.
	Type string
	// Generation selects the verbs and documentation.
	Generation outbound.GenerationOptions
	// Command is recorded in the file header. Optional.
	Command string
}

// Render returns the gofmt'd source for cfg.
func Render(cfg Config) ([]byte, error) {
	if !token.IsIdentifier(cfg.Package) {
		return nil, fmt.Errorf("%w: package %q", ErrInvalidConfig, cfg.Package)
	}
	if !token.IsIdentifier(cfg.Type) || !token.IsExported(cfg.Type) {
		return nil, fmt.Errorf("%w: type %q must be an exported identifier", ErrInvalidConfig, cfg.Type)
	}

	eps, err := outbound.Generate(cfg.Generation)
	if err != nil {
		return nil, err
	}

	data := fileData{
		Package: cfg.Package,
		Type:    cfg.Type,
		Command: cfg.Command,
		Docs:    cfg.Generation.Docs,
		Methods: make([]method, 0, len(eps)),
	}
	for _, ep := range eps {
		data.Methods = append(data.Methods, newMethod(ep))
	}

	var buf bytes.Buffer
	if err := fileTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("verbgen: render: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("verbgen: format: %w", err)
	}
	return src, nil
}

type fileData struct {
	Package string
	Type    string
	Command string
	Docs    bool
	Methods []method
}

type method struct {
	Doc     []string
	Name    string
	Params  string
	Results string
	Target  string
	Client  string
	Opts    string
}

func newMethod(ep outbound.EntryPoint) method {
	params := ep.Params()
	ps := make([]string, len(params))
	for i, p := range params {
		ps[i] = p.Name + " " + p.Type
	}

	results := ep.Results()
	res := results[0]
	if len(results) > 1 {
		res = "(" + strings.Join(results, ", ") + ")"
	}

	m := method{
		Doc:     docLines(ep.Doc),
		Name:    ep.FuncName(),
		Params:  strings.Join(ps, ", "),
		Results: res,
		Target:  "Request",
		Client:  "outbound.Client{}",
	}
	if ep.Error == outbound.Raising {
		m.Target = "MustRequest"
	}
	if ep.Client == outbound.Explicit {
		m.Client = "client"
	}

	head := []string{
		fmt.Sprintf("outbound.Opt(%q, %q)", "method", ep.Verb.Method),
		`outbound.Opt("url", url)`,
	}
	if ep.Verb.AcceptsBody {
		head = append(head, `outbound.Opt("body", body)`)
	}
	if ep.Opts == outbound.WithOpts {
		m.Opts = "outbound.Prepend(opts, " + strings.Join(head, ", ") + ")"
	} else {
		m.Opts = "outbound.Options{" + strings.Join(head, ", ") + "}"
	}
	return m
}

func docLines(doc string) []string {
	if doc == "" {
		return nil
	}
	lines := strings.Split(doc, "\n")
	out := make([]string, len(lines))
	for i, l := range lines {
		switch {
		case l == "":
			out[i] = "//"
		case strings.HasPrefix(l, "\t"):
			out[i] = "//" + l
		default:
			out[i] = "// " + l
		}
	}
	return out
}

var fileTmpl = template.Must(template.New("file").Parse(`// Code generated by outbound-gen. DO NOT EDIT.
{{- if .Command}}
// Command: {{.Command}}
{{- end}}

package {{.Package}}

import (
{{- if .Methods}}
	"context"
{{end}}
	"github.com/bjaus/outbound"
)

{{if .Docs}}// {{.Type}} exposes the verb entry points of a client module.
{{end -}}
type {{.Type}} struct {
	*outbound.Service
}
{{range .Methods}}
{{range .Doc}}{{.}}
{{end -}}
func (c *{{$.Type}}) {{.Name}}({{.Params}}) {{.Results}} {
	return c.Service.{{.Target}}(ctx, {{.Client}}, {{.Opts}})
}
{{end}}`))
