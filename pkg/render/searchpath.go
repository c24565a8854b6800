package render

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// SearchPath resolves logical template names against an ordered list of
// directories. The first directory containing the name wins; directories
// are never merged. It doubles as the pongo2 template loader, so includes
// triggered during rendering run through the same resolution.
//
// The driver appends include directories before the environment is built;
// the path must not be mutated mid-render.
type SearchPath struct {
	dirs []string
}

// NewSearchPath builds a search path over the given directories, in order.
func NewSearchPath(dirs ...string) *SearchPath {
	sp := &SearchPath{}
	sp.Append(dirs...)
	return sp
}

// Append adds directories to the end of the search path, preserving order.
func (sp *SearchPath) Append(dirs ...string) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		sp.dirs = append(sp.dirs, dir)
	}
}

// Dirs returns a copy of the directories in search order.
func (sp *SearchPath) Dirs() []string {
	out := make([]string, len(sp.dirs))
	copy(out, sp.dirs)
	return out
}

// Resolve returns the path and contents of the first match for name.
// Absolute names bypass the search. A miss everywhere yields a
// *NotFoundError listing the searched directories.
func (sp *SearchPath) Resolve(name string) (string, []byte, error) {
	if filepath.IsAbs(name) {
		if data, err := os.ReadFile(name); err == nil {
			return name, data, nil
		}
		return "", nil, &NotFoundError{Name: name, Searched: sp.Dirs()}
	}

	for _, dir := range sp.dirs {
		candidate := filepath.Join(dir, name)
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		return candidate, data, nil
	}
	return "", nil, &NotFoundError{Name: name, Searched: sp.Dirs()}
}

// Abs implements pongo2.TemplateLoader. Names stay logical so nested
// includes re-resolve against the full search path rather than the
// including template's directory.
func (sp *SearchPath) Abs(_, name string) string { return name }

// Get implements pongo2.TemplateLoader.
func (sp *SearchPath) Get(path string) (io.Reader, error) {
	_, data, err := sp.Resolve(path)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
