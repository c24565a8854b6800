// Package render assembles the template rendering environment: a
// multi-directory search path for template resolution and a pongo2 template
// set seeded from an exports snapshot. Rendering is atomic; no partial
// output ever reaches the caller.
package render
