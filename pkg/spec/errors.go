package spec

import "fmt"

// LoadError reports a unit path that could not be read or resolved against
// the unit search path.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("spec: unit %q unreadable", e.Path)
	}
	return fmt.Sprintf("spec: unit %q unreadable: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ExecutionError reports a unit that was read but failed to parse, decode or
// validate. The underlying cause (HCL diagnostics, YAML errors, validation
// failures) is preserved for errors.Is/As inspection.
type ExecutionError struct {
	Unit string
	Path string
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("spec: unit %s (%s) failed to load: %v", e.Unit, e.Path, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
