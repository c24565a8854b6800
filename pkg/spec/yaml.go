package spec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAML unit schema, mirroring the HCL one. Mapping sections decode through
// yaml.Node so declaration order survives into the binding list.
type yamlUnit struct {
	Meta    yamlMeta   `yaml:"spec"`
	Globals yaml.Node  `yaml:"globals"`
	Aliases yaml.Node  `yaml:"aliases"`
	Nodes   []yamlNode `yaml:"nodes"`
}

type yamlMeta struct {
	Name    string `yaml:"name"`
	Comment string `yaml:"comment"`
}

type yamlNode struct {
	Name    string     `yaml:"name"`
	Comment string     `yaml:"comment"`
	Mode    string     `yaml:"mode"`
	Arity   string     `yaml:"arity"`
	Flags   []string   `yaml:"flags"`
	Pinned  string     `yaml:"pinned"`
	Block   bool       `yaml:"block"`
	Ins     []yamlPort `yaml:"ins"`
	Outs    []yamlPort `yaml:"outs"`
	Attrs   []yamlAttr `yaml:"attrs"`
}

type yamlPort struct {
	Name    string `yaml:"name"`
	Comment string `yaml:"comment"`
}

// UnmarshalYAML accepts either a bare string ("left") or the full mapping
// form ({name: left, comment: ...}).
func (p *yamlPort) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		p.Name = node.Value
		return nil
	}

	type plain yamlPort
	var decoded plain
	if err := node.Decode(&decoded); err != nil {
		return err
	}
	*p = yamlPort(decoded)
	return nil
}

type yamlAttr struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Comment string `yaml:"comment"`
	Init    string `yaml:"init"`
}

func decodeYAML(data []byte, unit *Unit) error {
	var raw yamlUnit
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}

	unit.Meta = Meta{Name: raw.Meta.Name, Comment: raw.Meta.Comment}

	if err := eachMappingEntry(&raw.Globals, "globals", func(key string, value *yaml.Node) error {
		var decoded any
		if err := value.Decode(&decoded); err != nil {
			return fmt.Errorf("global %q: %w", key, err)
		}
		unit.Globals = append(unit.Globals, Binding{Name: key, Value: normalizeYAMLValue(decoded)})
		return nil
	}); err != nil {
		return err
	}

	if err := eachMappingEntry(&raw.Aliases, "aliases", func(key string, value *yaml.Node) error {
		var filter string
		if err := value.Decode(&filter); err != nil {
			return fmt.Errorf("alias %q: %w", key, err)
		}
		unit.Aliases = append(unit.Aliases, Alias{Name: key, Filter: filter})
		return nil
	}); err != nil {
		return err
	}

	for _, node := range raw.Nodes {
		unit.Nodes = append(unit.Nodes, node.toNode())
	}
	return nil
}

func (n yamlNode) toNode() *Node {
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

func eachMappingEntry(node *yaml.Node, section string, fn func(key string, value *yaml.Node) error) error {
	if node == nil || node.Kind == 0 || node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%s must be a mapping", section)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		value := node.Content[i+1]
		if err := fn(key.Value, value); err != nil {
			return err
		}
	}
	return nil
}

// normalizeYAMLValue lines YAML scalars up with the HCL conversion: whole
// numbers are int64, everything else keeps its decoded shape.
func normalizeYAMLValue(value any) any {
	switch v := value.(type) {
	case int:
		return int64(v)
	case []any:
		out := make([]any, len(v))
		for i, element := range v {
			out[i] = normalizeYAMLValue(element)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, element := range v {
			out[key] = normalizeYAMLValue(element)
		}
		return out
	default:
		return value
	}
}
