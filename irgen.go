// Package irgen generates code and documentation from declarative IR node
// specifications. A run loads one specification unit plus optional extra
// units, merges their bindings with registered globals, filters, and CLI
// override definitions, and renders a single template from a
// multi-directory search path.
package irgen

import (
	"context"
	"io"

	"github.com/goliatone/go-irgen/pkg/exports"
	"github.com/goliatone/go-irgen/pkg/generator"
	"github.com/goliatone/go-irgen/pkg/spec"
)

// Config aliases the generator configuration for convenience.
type Config = generator.Config

// Definition is one NAME=VALUE override binding.
type Definition = generator.Definition

// Option customises the generator.
type Option = generator.Option

// Node re-exports the IR node definition model for callers building
// tooling on top of loaded specifications.
type Node = spec.Node

// ParseDefinition splits a NAME=VALUE argument into a Definition.
func ParseDefinition(raw string) Definition {
	return generator.ParseDefinition(raw)
}

// WithExports injects a pre-populated exports builder.
func WithExports(builder *exports.Builder) Option {
	return generator.WithExports(builder)
}

// WithLoader injects a custom unit loader.
func WithLoader(loader *spec.Loader) Option {
	return generator.WithLoader(loader)
}

// WithStderr routes stage diagnostics to w.
func WithStderr(w io.Writer) Option {
	return generator.WithStderr(w)
}

// Generate runs the full pipeline with the built-in defaults and returns
// the rendered output. It is the simplest entry point for callers that
// just want the generated text.
func Generate(ctx context.Context, cfg Config, options ...Option) ([]byte, error) {
	return generator.New(options...).Generate(ctx, cfg)
}
