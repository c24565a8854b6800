package render

import (
	"errors"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-irgen/pkg/exports"
)

// Binding is one name/value pair of a context layer.
type Binding struct {
	Name  string
	Value any
}

// Environment owns a template set wired to a search path and a frozen
// exports snapshot. Registry globals sit at the bottom of the precedence
// order; the context layers passed to Render stack on top of them.
type Environment struct {
	set  *pongo2.TemplateSet
	path *SearchPath
}

// NewEnvironment builds a rendering environment over the given search path
// and exports snapshot. Snapshot filters are installed before any template
// compiles; a filter name seen in an earlier environment of the same
// process is replaced so the snapshot always wins.
func NewEnvironment(path *SearchPath, snapshot exports.Snapshot) (*Environment, error) {
	if path == nil {
		return nil, errors.New("render: search path is required")
	}

	for name, fn := range snapshot.Filters() {
		wrapped := wrapFilter(name, fn)
		var err error
		if pongo2.FilterExists(name) {
			err = pongo2.ReplaceFilter(name, wrapped)
		} else {
			err = pongo2.RegisterFilter(name, wrapped)
		}
		if err != nil {
			return nil, err
		}
	}

	set := pongo2.NewSet("irgen", path)
	set.Globals = pongo2.Context{}
	for name, value := range snapshot.Globals() {
		set.Globals[name] = value
	}

	return &Environment{set: set, path: path}, nil
}

// Render resolves name through the search path, compiles it, and evaluates
// it against the context layers in increasing precedence order. The result
// is returned as one blob; nothing is emitted on failure, so callers can
// treat rendering as atomic.
//
// A missing template yields a *NotFoundError; compile and evaluation
// failures yield a *RenderError. Undefined bare names render empty, which
// templates rely on for optional per-node fields.
func (e *Environment) Render(name string, layers ...[]Binding) ([]byte, error) {
	if _, _, err := e.path.Resolve(name); err != nil {
		return nil, err
	}

	tpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, &RenderError{Template: name, Err: err}
	}

	ctx := pongo2.Context{}
	for _, layer := range layers {
		for _, binding := range layer {
			if binding.Name == "" {
				continue
			}
			ctx[binding.Name] = binding.Value
		}
	}

	out, err := tpl.ExecuteBytes(ctx)
	if err != nil {
		return nil, &RenderError{Template: name, Err: err}
	}
	return out, nil
}

func wrapFilter(name string, fn exports.Filter) pongo2.FilterFunction {
	return func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}
}
