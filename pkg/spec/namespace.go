package spec

import "log/slog"

// NodesBinding is the reserved name under which the merged node list is
// exposed to templates.
const NodesBinding = "nodes"

// Namespace accumulates the bindings of the specification unit and every
// extra unit, in load order. Scalar bindings are last-load-wins; node
// definitions merge by node name, so an extra unit can redefine a node in
// place or append new ones. Collisions are resolved silently but logged at
// debug level.
type Namespace struct {
	order  []string
	values map[string]any

	nodes     []*Node
	nodeIndex map[string]int

	aliasOrder []string
	aliases    map[string]string

	logger *slog.Logger
}

// NewNamespace returns an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{
		values:    make(map[string]any),
		nodeIndex: make(map[string]int),
		aliases:   make(map[string]string),
		logger:    slog.Default(),
	}
}

// Apply merges a loaded unit into the namespace. Units must be applied in
// load order: the specification unit first, extras afterwards.
func (ns *Namespace) Apply(unit *Unit) {
	if unit == nil {
		return
	}

	for _, binding := range unit.Globals {
		if _, exists := ns.values[binding.Name]; exists {
			ns.logger.Debug("unit overrides binding", "unit", unit.Name, "name", binding.Name)
		} else {
			ns.order = append(ns.order, binding.Name)
		}
		ns.values[binding.Name] = binding.Value
	}

	for _, node := range unit.Nodes {
		if at, exists := ns.nodeIndex[node.Name]; exists {
			ns.logger.Debug("unit overrides node", "unit", unit.Name, "node", node.Name)
			ns.nodes[at] = node
			continue
		}
		ns.nodeIndex[node.Name] = len(ns.nodes)
		ns.nodes = append(ns.nodes, node)
	}

	for _, alias := range unit.Aliases {
		if _, exists := ns.aliases[alias.Name]; !exists {
			ns.aliasOrder = append(ns.aliasOrder, alias.Name)
		}
		ns.aliases[alias.Name] = alias.Filter
	}
}

// Bindings returns the merged bindings in first-declaration order, with the
// reserved "nodes" binding appended last. The caller owns the slice.
func (ns *Namespace) Bindings() []Binding {
	out := make([]Binding, 0, len(ns.order)+1)
	for _, name := range ns.order {
		if name == NodesBinding {
			// Reserved; the merged node list wins below.
			continue
		}
		out = append(out, Binding{Name: name, Value: ns.values[name]})
	}
	out = append(out, Binding{Name: NodesBinding, Value: ns.Nodes()})
	return out
}

// Nodes returns the merged node list in declaration order.
func (ns *Namespace) Nodes() []*Node {
	out := make([]*Node, len(ns.nodes))
	copy(out, ns.nodes)
	return out
}

// Aliases returns the accumulated filter aliases in declaration order.
func (ns *Namespace) Aliases() []Alias {
	out := make([]Alias, 0, len(ns.aliasOrder))
	for _, name := range ns.aliasOrder {
		out = append(out, Alias{Name: name, Filter: ns.aliases[name]})
	}
	return out
}
