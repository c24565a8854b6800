package spec

// Arity values accepted for a node definition.
const (
	ArityFixed    = "fixed"
	ArityVariable = "variable"
	ArityDynamic  = "dynamic"
)

// Pinned values accepted for a node definition.
const (
	PinnedNo        = "no"
	PinnedYes       = "yes"
	PinnedException = "exception"
)

// Node describes one IR node kind as declared by a specification unit.
// Templates iterate the merged node list through the reserved "nodes"
// binding and read these fields directly.
type Node struct {
	Name    string
	Comment string

	// Mode names the result mode of the node, e.g. "mode_ref". Empty when
	// the mode is derived from an operand.
	Mode string

	// Arity is one of ArityFixed, ArityVariable or ArityDynamic. Fixed-arity
	// nodes take exactly the declared inputs.
	Arity string

	// Flags carries free-form markers such as "commutative" or "cfopcode"
	// that templates translate into opcode flag expressions.
	Flags []string

	// Pinned is one of PinnedNo, PinnedYes or PinnedException.
	Pinned string

	// Block reports whether constructors take an explicit block argument.
	Block bool

	Ins   []Port
	Outs  []Port
	Attrs []Attr
}

// Port is a named input or output of a node.
type Port struct {
	Name    string
	Comment string
}

// Attr is an additional attribute stored in a node, rendered into the
// generated attribute struct and accessors.
type Attr struct {
	Name    string
	Type    string
	Comment string
	Init    string
}

// Alias exposes an already-registered filter under another name. It is the
// declarative counterpart of a unit registering a filter while loading.
type Alias struct {
	Name   string
	Filter string
}

// Binding is one exported name of a unit or namespace, in declaration order.
type Binding struct {
	Name  string
	Value any
}

// Meta carries the optional spec block of a unit.
type Meta struct {
	Name    string
	Comment string
}

// Unit is the result of loading a single specification or extra unit. It is
// never mutated after Load returns.
type Unit struct {
	// Name is the synthetic unit name assigned by the caller: "spec" for the
	// primary unit, "extra0", "extra1", ... for the rest.
	Name string

	// Path is the resolved filesystem path the unit was read from.
	Path string

	Meta    Meta
	Globals []Binding
	Nodes   []*Node
	Aliases []Alias
}
