// Package manifest loads client module declarations from HCL or YAML files.
//
// An HCL manifest:
//
//	name = "github"
//
//	plug "Headers" {
//	  user_agent = "outbound"
//	}
//	plug "Retry" {
//	  max_retries = 3
//	}
//	adapter "HTTP" {
//	  timeout = 1000
//	}
//	generate {
//	  except = ["trace", "options"]
//	  docs   = false
//	}
//
// The same manifest in YAML:
//
//	name: github
//	middleware:
//	  - module: Headers
//	    options: {user_agent: outbound}
//	  - module: Retry
//	    options: {max_retries: 3}
//	adapter:
//	  module: HTTP
//	  options: {timeout: 1000}
//	generate:
//	  except: [trace, options]
//	  docs: false
//
// Module names are resolved through a Registry. A name written with a
// leading colon (":trace", or "symbol: trace" in YAML) is a legacy symbolic
// name; it loads, and is then rejected by outbound.Define with a
// *outbound.ConfigurationError pointing at the manifest line.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bjaus/outbound"
)

// Errors returned by the loaders.
var (
	ErrUnknownModule     = errors.New("manifest: unknown module")
	ErrUnsupportedFormat = errors.New("manifest: unsupported format")
	ErrInvalid           = errors.New("manifest: invalid")
)

// Registry maps the module names used in manifests to targets.
type Registry map[string]outbound.Target

// Manifest is a loaded set of declarations for one client module.
type Manifest struct {
	Name       string
	Middleware []outbound.Declaration
	Adapter    *outbound.Declaration
	Generation outbound.GenerationOptions
}

// Configure replays the manifest onto b. It matches the configure parameter
// of outbound.Define.
func (m *Manifest) Configure(b *outbound.Builder) {
	for _, d := range m.Middleware {
		b.Record(d)
	}
	if m.Adapter != nil {
		b.Record(*m.Adapter)
	}
	b.Generate(m.Generation)
}

// Define builds the client module described by the manifest.
func (m *Manifest) Define(opts ...outbound.ServiceOption) (*outbound.Service, error) {
	return outbound.Define(m.Name, m.Configure, opts...)
}

// LoadFile reads a manifest, choosing the format by extension.
func LoadFile(path string, reg Registry) (*Manifest, error) {
	raw, err := loadRaw(path)
	if err != nil {
		return nil, err
	}
	return raw.resolve(path, reg)
}

// ReadGeneration reads only the module name and generation options of a
// manifest. Module names are not resolved, so no Registry is needed.
func ReadGeneration(path string) (string, outbound.GenerationOptions, error) {
	raw, err := loadRaw(path)
	if err != nil {
		return "", outbound.GenerationOptions{}, err
	}
	if err := validate(raw); err != nil {
		return "", outbound.GenerationOptions{}, fmt.Errorf("%s: %w", path, err)
	}
	return raw.name(path), raw.generation(), nil
}

func loadRaw(path string) (*rawManifest, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return parseHCL(src, path)
	case ".yaml", ".yml":
		return parseYAML(src, path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// rawManifest is the format-independent shape both parsers produce.
type rawManifest struct {
	Name       string
	Middleware []rawDecl `validate:"dive"`
	Adapter    *rawDecl  `validate:"omitempty"`
	Generate   rawGenerate
}

type rawDecl struct {
	Module  string `validate:"required_without=Symbol,excluded_with=Symbol"`
	Symbol  string
	Options outbound.Options
	Line    int
}

type rawGenerate struct {
	Only   []string `validate:"dive,verb"`
	Except []string `validate:"dive,verb"`
	Docs   *bool
}

func (r *rawManifest) resolve(file string, reg Registry) (*Manifest, error) {
	if err := validate(r); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	m := &Manifest{Name: r.name(file), Generation: r.generation()}

	for _, d := range r.Middleware {
		decl, err := d.declaration(outbound.KindMiddleware, file, reg)
		if err != nil {
			return nil, err
		}
		m.Middleware = append(m.Middleware, decl)
	}
	if r.Adapter != nil {
		decl, err := r.Adapter.declaration(outbound.KindAdapter, file, reg)
		if err != nil {
			return nil, err
		}
		m.Adapter = &decl
	}
	return m, nil
}

// name defaults to the file name without extension.
func (r *rawManifest) name(file string) string {
	if r.Name != "" {
		return r.Name
	}
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}

func (r *rawManifest) generation() outbound.GenerationOptions {
	g := outbound.GenerationOptions{
		Only:   r.Generate.Only,
		Except: r.Generate.Except,
		Docs:   true,
	}
	if r.Generate.Docs != nil {
		g.Docs = *r.Generate.Docs
	}
	return g
}

func (d rawDecl) declaration(kind outbound.DeclKind, file string, reg Registry) (outbound.Declaration, error) {
	origin := outbound.Origin{Kind: kind, File: file, Line: d.Line}

	var target outbound.Target
	switch {
	case d.Symbol != "":
		target = outbound.Symbol(strings.TrimPrefix(d.Symbol, ":"))
	case strings.HasPrefix(d.Module, ":"):
		target = outbound.Symbol(d.Module[1:])
	default:
		t, ok := reg[d.Module]
		if !ok {
			return outbound.Declaration{}, fmt.Errorf("%s: %s %q: %w", origin, kind, d.Module, ErrUnknownModule)
		}
		target = t
	}

	return outbound.Declaration{Target: target, Options: d.Options, Origin: origin}, nil
}
