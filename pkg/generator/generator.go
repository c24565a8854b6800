// Package generator sequences a full run: load the specification and extra
// units, snapshot the exports registry, apply CLI override bindings, and
// render the named template. Any stage failure aborts the run with an error
// naming the stage; no output is produced on failure.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goliatone/go-irgen/pkg/exports"
	"github.com/goliatone/go-irgen/pkg/filters"
	"github.com/goliatone/go-irgen/pkg/render"
	"github.com/goliatone/go-irgen/pkg/spec"
)

// Option customises the generator configuration.
type Option func(*Generator)

// WithExports injects a pre-populated exports builder. The generator clones
// it per run, so callers can reuse one builder across runs.
func WithExports(builder *exports.Builder) Option {
	return func(g *Generator) {
		g.exports = builder
	}
}

// WithLoader injects a custom unit loader.
func WithLoader(loader *spec.Loader) Option {
	return func(g *Generator) {
		g.loader = loader
	}
}

// WithStderr routes stage diagnostics to w. Diagnostics are discarded by
// default; stdout stays reserved for rendered output either way.
func WithStderr(w io.Writer) Option {
	return func(g *Generator) {
		g.stderr = w
	}
}

// Generator coordinates the unit-loading and rendering pipeline. Missing
// dependencies are initialised with the built-in implementations, including
// the stock filter set.
type Generator struct {
	exports *exports.Builder
	loader  *spec.Loader
	stderr  io.Writer
}

// New constructs a Generator applying any provided options.
func New(options ...Option) *Generator {
	g := &Generator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if g.exports == nil {
		g.exports = exports.NewBuilder()
		filters.Register(g.exports)
	}
	if g.loader == nil {
		g.loader = spec.NewLoader()
	}
	if g.stderr == nil {
		g.stderr = io.Discard
	}
	return g
}

// Generate executes one run and returns the rendered output as a single
// blob. Callers write it out only after Generate succeeds, which keeps
// stdout free of partial results.
func (g *Generator) Generate(ctx context.Context, cfg Config) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("generator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cfg.SpecFile == "" {
		return nil, errors.New("generator: specification unit path is required")
	}
	if cfg.Template == "" {
		return nil, errors.New("generator: template name is required")
	}

	searchPath := render.NewSearchPath(".")
	searchPath.Append(cfg.IncludeDirs...)

	namespace := spec.NewNamespace()

	specPath, err := spec.ResolvePath(cfg.SpecFile, cfg.IncludeDirs)
	if err != nil {
		return nil, fmt.Errorf("generator: load specification unit %q: %w", cfg.SpecFile, err)
	}
	unit, err := g.loader.Load(ctx, "spec", specPath)
	if err != nil {
		return nil, fmt.Errorf("generator: load specification unit %q: %w", cfg.SpecFile, err)
	}
	fmt.Fprintf(g.stderr, "loaded unit %q from %s\n", unit.Name, specPath)
	namespace.Apply(unit)

	for i, extra := range cfg.Extras {
		name := fmt.Sprintf("extra%d", i)
		extraPath, err := spec.ResolvePath(extra, cfg.IncludeDirs)
		if err != nil {
			return nil, fmt.Errorf("generator: load extra unit %q: %w", extra, err)
		}
		unit, err := g.loader.Load(ctx, name, extraPath)
		if err != nil {
			return nil, fmt.Errorf("generator: load extra unit %q: %w", extra, err)
		}
		fmt.Fprintf(g.stderr, "loaded unit %q from %s\n", unit.Name, extraPath)
		namespace.Apply(unit)
	}

	builder := g.exports.Clone()
	for _, alias := range namespace.Aliases() {
		fn, ok := builder.Filter(alias.Filter)
		if !ok {
			return nil, fmt.Errorf("generator: alias %q: unknown filter %q", alias.Name, alias.Filter)
		}
		builder.RegisterFilter(alias.Name, fn)
	}

	environment, err := render.NewEnvironment(searchPath, builder.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("generator: build environment: %w", err)
	}

	unitLayer := toRenderBindings(namespace.Bindings())
	overrideLayer := make([]render.Binding, 0, len(cfg.Definitions))
	for _, def := range cfg.Definitions {
		overrideLayer = append(overrideLayer, render.Binding{Name: def.Name, Value: def.Value})
	}

	fmt.Fprintf(g.stderr, "rendering %s\n", cfg.Template)
	out, err := environment.Render(cfg.Template, unitLayer, overrideLayer)
	if err != nil {
		return nil, fmt.Errorf("generator: render template %q: %w", cfg.Template, err)
	}
	return out, nil
}

func toRenderBindings(bindings []spec.Binding) []render.Binding {
	out := make([]render.Binding, 0, len(bindings))
	for _, binding := range bindings {
		out = append(out, render.Binding{Name: binding.Name, Value: binding.Value})
	}
	return out
}
