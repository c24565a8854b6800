package generator

import "strings"

// Definition is one CLI override binding. Value is the raw string from the
// command line; no type coercion is applied.
type Definition struct {
	Name  string
	Value string
}

// ParseDefinition splits a NAME=VALUE argument at the first "=". A missing
// "=" binds the name to the empty string.
func ParseDefinition(raw string) Definition {
	name, value, _ := strings.Cut(raw, "=")
	return Definition{Name: name, Value: value}
}

// Config is the finalized configuration for one generator run, assembled by
// the CLI layer. The core never reads flags or the environment itself.
type Config struct {
	// SpecFile is the path of the primary specification unit.
	SpecFile string

	// Template is the logical name of the template to render, resolved
	// against the search path.
	Template string

	// IncludeDirs are appended, in order, to both the template search path
	// and the unit search path.
	IncludeDirs []string

	// Definitions are CLI override bindings, applied after all unit
	// bindings so they shadow spec-defined names.
	Definitions []Definition

	// Extras are additional units loaded after the specification unit, in
	// the order given.
	Extras []string
}
