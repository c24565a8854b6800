package spec

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// HCL unit schema. Blocks decode in file order, which preserves the
// declaration order the namespace relies on.
type hclUnit struct {
	Meta    *hclMeta    `hcl:"spec,block"`
	Globals []hclGlobal `hcl:"global,block"`
	Aliases []hclAlias  `hcl:"alias,block"`
	Nodes   []hclNode   `hcl:"node,block"`
}

type hclMeta struct {
	Name    string `hcl:"name,optional"`
	Comment string `hcl:"comment,optional"`
}

type hclGlobal struct {
	Name  string    `hcl:"name,label"`
	Value cty.Value `hcl:"value"`
}

type hclAlias struct {
	Name   string `hcl:"name,label"`
	Filter string `hcl:"filter"`
}

type hclNode struct {
	Name    string    `hcl:"name,label"`
	Comment string    `hcl:"comment,optional"`
	Mode    string    `hcl:"mode,optional"`
	Arity   string    `hcl:"arity,optional"`
	Flags   []string  `hcl:"flags,optional"`
	Pinned  string    `hcl:"pinned,optional"`
	Block   bool      `hcl:"block,optional"`
	Ins     []hclPort `hcl:"in,block"`
	Outs    []hclPort `hcl:"out,block"`
	Attrs   []hclAttr `hcl:"attr,block"`
}

type hclPort struct {
	Name    string `hcl:"name,label"`
	Comment string `hcl:"comment,optional"`
}

type hclAttr struct {
	Name    string `hcl:"name,label"`
	Type    string `hcl:"type"`
	Comment string `hcl:"comment,optional"`
	Init    string `hcl:"init,optional"`
}

func decodeHCL(data []byte, filename string, unit *Unit) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return diags
	}

	var raw hclUnit
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return diags
	}

	if raw.Meta != nil {
		unit.Meta = Meta{Name: raw.Meta.Name, Comment: raw.Meta.Comment}
	}

	for _, global := range raw.Globals {
		value, err := ctyToGo(global.Value)
		if err != nil {
			return fmt.Errorf("global %q: %w", global.Name, err)
		}
		unit.Globals = append(unit.Globals, Binding{Name: global.Name, Value: value})
	}

	for _, alias := range raw.Aliases {
		unit.Aliases = append(unit.Aliases, Alias{Name: alias.Name, Filter: alias.Filter})
	}

	for _, node := range raw.Nodes {
		unit.Nodes = append(unit.Nodes, node.toNode())
	}
	return nil
}

func (n hclNode) toNode() *Node {
	node := &Node{
		Name:    n.Name,
		Comment: n.Comment,
		Mode:    n.Mode,
		Arity:   n.Arity,
		Flags:   n.Flags,
		Pinned:  n.Pinned,
		Block:   n.Block,
	}
	for _, port := range n.Ins {
		node.Ins = append(node.Ins, Port{Name: port.Name, Comment: port.Comment})
	}
	for _, port := range n.Outs {
		node.Outs = append(node.Outs, Port{Name: port.Name, Comment: port.Comment})
	}
	for _, attr := range n.Attrs {
		node.Attrs = append(node.Attrs, Attr{
			Name:    attr.Name,
			Type:    attr.Type,
			Comment: attr.Comment,
			Init:    attr.Init,
		})
	}
	return node
}

// ctyToGo lowers an evaluated HCL value into the plain Go shapes the
// template context understands. Whole numbers become int64 so templates can
// compare and format them without float noise.
func ctyToGo(value cty.Value) (any, error) {
	if value.IsNull() {
		return nil, nil
	}
	if !value.IsKnown() {
		return nil, fmt.Errorf("value is not known")
	}

	ty := value.Type()
	switch {
	case ty == cty.String:
		return value.AsString(), nil
	case ty == cty.Bool:
		return value.True(), nil
	case ty == cty.Number:
		bf := value.AsBigFloat()
		if bf.IsInt() {
			i, _ := bf.Int64()
			return i, nil
		}
		f, _ := bf.Float64()
		return f, nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, value.LengthInt())
		for it := value.ElementIterator(); it.Next(); {
			_, element := it.Element()
			converted, err := ctyToGo(element)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		}
		return out, nil
	case ty.IsMapType() || ty.IsObjectType():
		out := make(map[string]any, value.LengthInt())
		for it := value.ElementIterator(); it.Next(); {
			key, element := it.Element()
			converted, err := ctyToGo(element)
			if err != nil {
				return nil, err
			}
			out[key.AsString()] = converted
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
