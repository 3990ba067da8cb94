// Package outbound builds the request-handling surface of an HTTP client.
// A client author declares middleware and an adapter once, and the package
// compiles that declaration into a canonical ordered pipeline plus the full
// set of verb entry points.
//
// Client modules are declared with Define. The configure function receives a
// Builder that is only valid for the duration of the call:
//
//	var GitHub = outbound.MustDefine("github", func(b *outbound.Builder) {
//	    b.Plug(outbound.Use(headers), outbound.Opt("user-agent", "outbound"))
//	    b.Plug(outbound.Use(retry), outbound.Opt("max_retries", 3))
//	    b.Adapter(outbound.Use(transport), outbound.Opt("timeout", 1000))
//	    b.Except("trace", "options")
//	}, outbound.WithExecutor(exec))
//
// Middleware declared with a bare symbolic name is a removed addressing mode
// and always fails with a *ConfigurationError:
//
//	b.Plug(outbound.Symbol("my_middleware")) // Define returns an error
//
// Runtime client values carry extra steps that the executor merges with the
// module's own pipeline:
//
//	c, err := outbound.NewClient(
//	    []any{outbound.With(auth, outbound.Opt("token", tok))},
//	    []any{logging},
//	)
//
// Every Service exposes the generic entry points Request and MustRequest.
// Typed verb wrappers (Get, GetOpts, GetWith, GetWithOpts and their Must
// forms) are emitted ahead of time by cmd/outbound-gen, which renders the
// entry points of a GenerationOptions value as Go source:
//
//	//go:generate outbound-gen --type GitHub --only get,post -o github_gen.go
//
// The same entry points can be reached dynamically through Service.Call,
// which applies the argument guards and rejects the legacy calling
// convention of passing a function where a Client is expected.
//
// Executing a request is delegated to an Executor. The package never
// performs I/O itself.
package outbound
