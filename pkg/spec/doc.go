// Package spec loads IR node specification units and merges them into the
// namespace the template environment renders against. Units are declarative
// HCL or YAML documents; a run loads one primary specification unit followed
// by any number of extra units that extend or override it.
package spec
