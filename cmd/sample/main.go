// Command sample demonstrates the github.com/bjaus/outbound package with a
// small client for an httpbin-style echo service.
//
// Run against a public httpbin:
//
//	go run ./cmd/sample -base https://httpbin.org
//
// Print the compiled pipeline and entry points:
//
//	go run ./cmd/sample -describe          # YAML to stdout
//	go run ./cmd/sample -describe -json    # JSON to stdout
//	go run ./cmd/sample -describe -manifest cmd/sample/httpbin.hcl
//
// The typed wrapper in httpbin_gen.go is produced by outbound-gen.
package main

//go:generate go run ../outbound-gen --type HTTPBin --only get,post --docs=false -o httpbin_gen.go

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/bjaus/outbound"
	"github.com/bjaus/outbound/manifest"
)

func main() {
	describeFlag := flag.Bool("describe", false, "Print the compiled client module and exit")
	jsonFlag := flag.Bool("json", false, "Describe as JSON instead of YAML")
	manifestFlag := flag.String("manifest", "", "Load declarations from an HCL or YAML manifest")
	baseFlag := flag.String("base", "https://httpbin.org", "Base URL of the echo service")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	svc, err := newService(logger, *baseFlag, *manifestFlag)
	if err != nil {
		slog.Error("client module definition failed", "err", err)
		os.Exit(1)
	}

	if *describeFlag {
		if *jsonFlag {
			err = svc.WriteDescription(os.Stdout)
		} else {
			err = svc.WriteDescriptionYAML(os.Stdout)
		}
		if err != nil {
			slog.Error("describe failed", "err", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := demo(ctx, &HTTPBin{Service: svc}); err != nil {
		slog.Error("demo failed", "err", err)
		os.Exit(1)
	}
}

func newService(logger *slog.Logger, base, manifestPath string) (*outbound.Service, error) {
	opts := []outbound.ServiceOption{
		outbound.WithExecutor(chain{}),
		outbound.WithLogger(logger),
	}

	if manifestPath != "" {
		m, err := manifest.LoadFile(manifestPath, registry(logger))
		if err != nil {
			return nil, err
		}
		return m.Define(opts...)
	}

	return outbound.Define("httpbin", func(b *outbound.Builder) {
		b.Plug(outbound.Use(requestID{}))
		b.Plug(outbound.Use(newRateLimit()), outbound.Opt("rate", 5), outbound.Opt("burst", 1))
		b.Plug(outbound.Use(&requestLogger{logger: logger}))
		b.Adapter(outbound.Use(&httpAdapter{client: http.DefaultClient}),
			outbound.Opt("base_url", base),
			outbound.Opt("timeout", 10*time.Second),
		)
		b.Only("get", "post")
	}, opts...)
}

// registry names the modules a manifest may refer to.
func registry(logger *slog.Logger) manifest.Registry {
	return manifest.Registry{
		"RequestID": outbound.Use(requestID{}),
		"RateLimit": outbound.Use(newRateLimit()),
		"Logger":    outbound.Use(&requestLogger{logger: logger}),
		"Bearer":    outbound.Use(bearer{}),
		"HTTP":      outbound.Use(&httpAdapter{client: http.DefaultClient}),
	}
}

func demo(ctx context.Context, bin *HTTPBin) error {
	env, err := bin.Get(ctx, "/get")
	if err != nil {
		return err
	}
	fmt.Printf("GET /get -> %d (%d bytes)\n", env.Status, len(env.ResponseBody))

	env, err = bin.GetOpts(ctx, "/get", outbound.Options{
		outbound.Opt("query", outbound.Options{outbound.Opt("page", 2)}),
	})
	if err != nil {
		return err
	}
	fmt.Printf("GET /get?page=2 -> %d\n", env.Status)

	authed, err := outbound.NewClient(
		[]any{outbound.With(bearer{}, outbound.Opt("token", "sample-token"))},
		nil,
	)
	if err != nil {
		return err
	}
	env, err = bin.PostWith(ctx, authed, "/post", map[string]string{"hello": "world"})
	if err != nil {
		return err
	}
	fmt.Printf("POST /post -> %d\n", env.Status)

	// The pre-client calling convention passed a function as the client.
	_, err = bin.Call(ctx, "post", func() {}, "/post", nil)
	var legacy *outbound.LegacyUsageError
	if errors.As(err, &legacy) {
		fmt.Printf("legacy call rejected: %v\n", legacy)
	}
	return nil
}
