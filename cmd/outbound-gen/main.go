// Command outbound-gen writes the verb entry points of a client module as Go
// source. It is meant to run from a go:generate directive:
//
//	//go:generate go run github.com/bjaus/outbound/cmd/outbound-gen --type GitHub --only get,post -o github_gen.go
//
// Generation options come from flags, from OUTBOUND_GEN_* environment
// variables, from an optional config file (-config), or from the generate
// block of a manifest (-manifest). Flags win over the environment, which
// wins over the config file. A manifest replaces only, except and docs.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/bjaus/outbound"
	"github.com/bjaus/outbound/manifest"
	"github.com/bjaus/outbound/verbgen"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		slog.Error("outbound-gen failed", "err", err)
		os.Exit(1)
	}
}

// settings is the resolved configuration of one run.
type settings struct {
	Type     string   `mapstructure:"type"`
	Package  string   `mapstructure:"package"`
	Only     []string `mapstructure:"only"`
	Except   []string `mapstructure:"except"`
	Docs     bool     `mapstructure:"docs"`
	Manifest string   `mapstructure:"manifest"`
	Output   string   `mapstructure:"output"`
}

func run(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("outbound-gen", pflag.ContinueOnError)
	fs.String("type", "", "Name of the generated wrapper type (required)")
	fs.String("package", os.Getenv("GOPACKAGE"), "Package clause of the generated file (default $GOPACKAGE)")
	fs.StringSlice("only", nil, "Verbs to generate (default all)")
	fs.StringSlice("except", nil, "Verbs to leave out")
	fs.Bool("docs", true, "Attach doc comments to generated methods")
	fs.String("manifest", "", "HCL or YAML manifest to read generation options from")
	fs.StringP("output", "o", "", "Output file (default stdout)")
	config := fs.String("config", "", "Optional config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v := viper.New()
	v.SetEnvPrefix("OUTBOUND_GEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	if *config != "" {
		v.SetConfigFile(*config)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", *config, err)
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}

	gen := outbound.GenerationOptions{Docs: s.Docs}
	if len(s.Only) > 0 {
		gen.Only = s.Only
	}
	gen.Except = s.Except

	if s.Manifest != "" {
		name, mg, err := manifest.ReadGeneration(s.Manifest)
		if err != nil {
			return err
		}
		gen = mg
		if s.Type == "" {
			s.Type = exported(name)
		}
	}

	src, err := verbgen.Render(verbgen.Config{
		Package:    s.Package,
		Type:       s.Type,
		Generation: gen,
		Command:    "outbound-gen " + strings.Join(args, " "),
	})
	if err != nil {
		return err
	}

	if s.Output == "" {
		_, err := stdout.Write(src)
		return err
	}
	//nolint:gosec // generated source is meant to be world-readable
	return os.WriteFile(s.Output, src, 0o644)
}

// exported turns a manifest name such as "git-hub" into "GitHub".
func exported(name string) string {
	var b strings.Builder
	for _, part := range strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '.'
	}) {
		b.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	return b.String()
}
