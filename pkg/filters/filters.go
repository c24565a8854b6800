// Package filters provides the stock filter and global set registered into
// every generator run. All filters are pure string/value transforms aimed at
// emitting C sources and documentation from IR node definitions.
package filters

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-irgen/pkg/exports"
	"github.com/goliatone/go-irgen/pkg/spec"
)

// Warning is the banner exported to templates under the "warning" global.
const Warning = "/* Warning: automatically generated code */"

// Register installs the built-in filters and globals into the builder.
// Callers can overwrite any of them afterwards; registration is
// last-writer-wins.
func Register(b *exports.Builder) {
	if b == nil {
		return
	}

	b.RegisterGlobal("warning", Warning)
	b.RegisterGlobal("generator", "irgen")
	b.RegisterGlobal("isset", IsSet)

	b.RegisterFilter("trim", Trim)
	b.RegisterFilter("lowerfirst", LowerFirst)
	b.RegisterFilter("upperfirst", UpperFirst)
	b.RegisterFilter("snake_case", SnakeCase)
	b.RegisterFilter("camel_case", CamelCase)
	b.RegisterFilter("hex", Hex)
	b.RegisterFilter("a_an", AAn)
	b.RegisterFilter("indent", Indent)
	b.RegisterFilter("arguments", Arguments)
	b.RegisterFilter("block_comment", BlockComment)
}

// IsSet reports whether a value resolved to something non-nil. Exposed to
// templates as the "isset" callable so optional node fields can be tested
// before use, e.g. {% if isset(n.Block) %}.
func IsSet(values ...*pongo2.Value) *pongo2.Value {
	if len(values) == 0 {
		return pongo2.AsValue(false)
	}
	return pongo2.AsValue(!values[0].IsNil())
}

// Trim strips surrounding whitespace.
func Trim(input any, _ any) (any, error) {
	return strings.TrimSpace(asString(input)), nil
}

// LowerFirst lowercases the first non-whitespace rune.
func LowerFirst(input any, _ any) (any, error) {
	return mapFirst(asString(input), unicode.ToLower), nil
}

// UpperFirst uppercases the first non-whitespace rune.
func UpperFirst(input any, _ any) (any, error) {
	return mapFirst(asString(input), unicode.ToUpper), nil
}

// SnakeCase converts CamelCase and mixedCase identifiers to snake_case.
func SnakeCase(input any, _ any) (any, error) {
	s := asString(input)
	var out strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				out.WriteByte('_')
			}
			out.WriteRune(unicode.ToLower(r))
			continue
		}
		out.WriteRune(r)
	}
	return out.String(), nil
}

// CamelCase converts snake_case identifiers to CamelCase.
func CamelCase(input any, _ any) (any, error) {
	parts := strings.Split(asString(input), "_")
	var out strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		out.WriteString(strings.ToUpper(part[:1]))
		out.WriteString(part[1:])
	}
	return out.String(), nil
}

// Hex formats an integer as a 0x-prefixed literal.
func Hex(input any, _ any) (any, error) {
	switch v := input.(type) {
	case int:
		return fmt.Sprintf("0x%X", v), nil
	case int64:
		return fmt.Sprintf("0x%X", v), nil
	case uint64:
		return fmt.Sprintf("0x%X", v), nil
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("0x%X", int64(v)), nil
		}
		return nil, fmt.Errorf("hex: %v is not an integer", v)
	default:
		return nil, fmt.Errorf("hex: unsupported value %T", input)
	}
}

// AAn prefixes a word with the matching English article, used when
// generating doc comments ("an Add node", "a Load node").
func AAn(input any, _ any) (any, error) {
	s := asString(input)
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s, nil
	}
	if strings.ContainsRune("aeiouAEIOU", rune(trimmed[0])) {
		return "an " + s, nil
	}
	return "a " + s, nil
}

// Indent prefixes every line after the first with param spaces, matching
// the indentation of the surrounding generated code.
func Indent(input any, param any) (any, error) {
	width, err := asInt(param)
	if err != nil {
		return nil, fmt.Errorf("indent: %w", err)
	}
	if width < 0 {
		return nil, fmt.Errorf("indent: negative width %d", width)
	}

	lines := strings.Split(asString(input), "\n")
	prefix := strings.Repeat(" ", width)
	for i := 1; i < len(lines); i++ {
		if lines[i] == "" {
			continue
		}
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n"), nil
}

// Arguments joins the names of a node's ports into a C argument list. The
// optional param is prefixed to every name, e.g. ins|arguments:"irn_" for
// "irn_left, irn_right".
func Arguments(input any, param any) (any, error) {
	prefix := ""
	if param != nil {
		prefix = asString(param)
	}

	names, err := portNames(input)
	if err != nil {
		return nil, err
	}
	for i, name := range names {
		names[i] = prefix + name
	}
	return strings.Join(names, ", "), nil
}

// BlockComment wraps text into a C block comment, one " * " line per input
// line.
func BlockComment(input any, _ any) (any, error) {
	text := strings.TrimSpace(asString(input))
	if text == "" {
		return "", nil
	}

	var out strings.Builder
	out.WriteString("/**\n")
	for _, line := range strings.Split(text, "\n") {
		out.WriteString(" * ")
		out.WriteString(strings.TrimRight(line, " \t"))
		out.WriteByte('\n')
	}
	out.WriteString(" */")
	return out.String(), nil
}

func portNames(input any) ([]string, error) {
	switch ports := input.(type) {
	case []spec.Port:
		names := make([]string, len(ports))
		for i, port := range ports {
			names[i] = port.Name
		}
		return names, nil
	case []string:
		names := make([]string, len(ports))
		copy(names, ports)
		return names, nil
	case []any:
		names := make([]string, 0, len(ports))
		for _, element := range ports {
			switch v := element.(type) {
			case string:
				names = append(names, v)
			case spec.Port:
				names = append(names, v.Name)
			case map[string]any:
				name, _ := v["name"].(string)
				names = append(names, name)
			default:
				return nil, fmt.Errorf("arguments: unsupported element %T", element)
			}
		}
		return names, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("arguments: unsupported value %T", input)
	}
}

func mapFirst(s string, fn func(rune) rune) string {
	for i, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		return s[:i] + string(fn(r)) + s[i+len(string(r)):]
	}
	return s
}

func asString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func asInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case nil:
		return 0, fmt.Errorf("missing integer parameter")
	default:
		return 0, fmt.Errorf("expected integer parameter, got %T", value)
	}
}
