package spec

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LoaderOption mutates a Loader prior to first use.
type LoaderOption func(*Loader)

// WithLogger injects the logger used for load diagnostics. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loader reads specification units from disk and decodes them into Unit
// values. The format is selected by file extension: ".hcl" for HCL units,
// ".yaml"/".yml" for YAML units.
type Loader struct {
	logger *slog.Logger
}

// NewLoader constructs a Loader applying any provided options.
func NewLoader(options ...LoaderOption) *Loader {
	l := &Loader{logger: slog.Default()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	return l
}

// ResolvePath locates a unit path the way the CLI contract promises:
// absolute and working-directory-relative paths are used as-is when they
// exist, otherwise each include directory is tried in order. A miss
// everywhere yields a *LoadError.
func ResolvePath(path string, includeDirs []string) (string, error) {
	if path == "" {
		return "", &LoadError{Path: path, Err: errors.New("empty unit path")}
	}

	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if filepath.IsAbs(path) {
		return "", &LoadError{Path: path, Err: err}
	}

	for _, dir := range includeDirs {
		candidate := filepath.Join(dir, path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", &LoadError{Path: path, Err: fmt.Errorf("not found in search path %v", includeDirs)}
}

// Load reads and decodes the unit at path under the given synthetic unit
// name. Loading happens exactly once, synchronously; the returned Unit is
// immutable. Unreadable paths produce a *LoadError, parse/decode/validation
// failures a *ExecutionError.
func (l *Loader) Load(ctx context.Context, name, path string) (*Unit, error) {
	if ctx == nil {
		return nil, errors.New("spec: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	unit := &Unit{Name: name, Path: path}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		err = decodeHCL(data, path, unit)
	case ".yaml", ".yml":
		err = decodeYAML(data, unit)
	default:
		err = fmt.Errorf("unsupported unit format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, &ExecutionError{Unit: name, Path: path, Err: err}
	}

	if err := validateUnit(unit); err != nil {
		return nil, &ExecutionError{Unit: name, Path: path, Err: err}
	}

	l.logger.Debug("loaded specification unit",
		"unit", name,
		"path", path,
		"globals", len(unit.Globals),
		"nodes", len(unit.Nodes),
		"aliases", len(unit.Aliases),
	)
	return unit, nil
}

func validateUnit(u *Unit) error {
	seen := make(map[string]struct{}, len(u.Nodes))
	for _, node := range u.Nodes {
		if node.Name == "" {
			return errors.New("node name is required")
		}
		if _, dup := seen[node.Name]; dup {
			return fmt.Errorf("node %q declared twice in one unit", node.Name)
		}
		seen[node.Name] = struct{}{}

		if err := validateNode(node); err != nil {
			return fmt.Errorf("node %q: %w", node.Name, err)
		}
	}

	for _, alias := range u.Aliases {
		if alias.Name == "" || alias.Filter == "" {
			return errors.New("alias requires a name and a filter")
		}
	}
	return nil
}

func validateNode(node *Node) error {
	if node.Arity == "" {
		node.Arity = ArityFixed
	}
	switch node.Arity {
	case ArityFixed, ArityVariable, ArityDynamic:
	default:
		return fmt.Errorf("invalid arity %q", node.Arity)
	}

	if node.Pinned == "" {
		node.Pinned = PinnedNo
	}
	switch node.Pinned {
	case PinnedNo, PinnedYes, PinnedException:
	default:
		return fmt.Errorf("invalid pinned mode %q", node.Pinned)
	}

	for _, port := range node.Ins {
		if port.Name == "" {
			return errors.New("input name is required")
		}
	}
	for _, port := range node.Outs {
		if port.Name == "" {
			return errors.New("output name is required")
		}
	}
	for _, attr := range node.Attrs {
		if attr.Name == "" {
			return errors.New("attribute name is required")
		}
		if attr.Type == "" {
			return fmt.Errorf("attribute %q requires a type", attr.Name)
		}
	}
	return nil
}
