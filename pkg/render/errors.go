package render

import (
	"fmt"
	"strings"
)

// NotFoundError reports a template name that no search-path directory
// contains.
type NotFoundError struct {
	Name     string
	Searched []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("render: template %q not found in search path [%s]",
		e.Name, strings.Join(e.Searched, ", "))
}

// RenderError reports a failure while compiling or evaluating a template:
// syntax errors, unknown filters, or a filter returning an error. The
// underlying engine error is preserved.
type RenderError struct {
	Template string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render: template %q: %v", e.Template, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
