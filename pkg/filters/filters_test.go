package filters_test

import (
	"testing"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-irgen/pkg/exports"
	"github.com/goliatone/go-irgen/pkg/filters"
	"github.com/goliatone/go-irgen/pkg/spec"
)

func TestRegister_InstallsStockSet(t *testing.T) {
	t.Parallel()

	builder := exports.NewBuilder()
	filters.Register(builder)

	snap := builder.Snapshot()
	for _, name := range []string{
		"trim", "lowerfirst", "upperfirst", "snake_case", "camel_case",
		"hex", "a_an", "indent", "arguments", "block_comment",
	} {
		if _, ok := snap.Filters()[name]; !ok {
			t.Errorf("missing stock filter %q", name)
		}
	}
	if snap.Globals()["warning"] != filters.Warning {
		t.Error("warning global not registered")
	}
	if snap.Globals()["generator"] != "irgen" {
		t.Error("generator global not registered")
	}
	if _, ok := snap.Globals()["isset"]; !ok {
		t.Error("isset global not registered")
	}
}

func TestIsSet(t *testing.T) {
	t.Parallel()

	if filters.IsSet(pongo2.AsValue(nil)).Bool() {
		t.Error("nil must not count as set")
	}
	if !filters.IsSet(pongo2.AsValue("mode_ref")).Bool() {
		t.Error("non-nil value must count as set")
	}
	if filters.IsSet().Bool() {
		t.Error("missing argument must not count as set")
	}
}

func TestStringFilters(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		filter exports.Filter
		input  any
		param  any
		want   any
	}{
		{name: "Trim", filter: filters.Trim, input: "  x  ", want: "x"},
		{name: "LowerFirst", filter: filters.LowerFirst, input: "Add", want: "add"},
		{name: "LowerFirstKeepsIndent", filter: filters.LowerFirst, input: "  Add", want: "  add"},
		{name: "UpperFirst", filter: filters.UpperFirst, input: "add", want: "Add"},
		{name: "SnakeCase", filter: filters.SnakeCase, input: "IsVolatile", want: "is_volatile"},
		{name: "SnakeCaseSingleWord", filter: filters.SnakeCase, input: "load", want: "load"},
		{name: "CamelCase", filter: filters.CamelCase, input: "is_volatile", want: "IsVolatile"},
		{name: "HexInt", filter: filters.Hex, input: int64(255), want: "0xFF"},
		{name: "HexWholeFloat", filter: filters.Hex, input: float64(16), want: "0x10"},
		{name: "AAnConsonant", filter: filters.AAn, input: "Load node", want: "a Load node"},
		{name: "AAnVowel", filter: filters.AAn, input: "Add node", want: "an Add node"},
		{name: "Indent", filter: filters.Indent, input: "a\nb\nc", param: int64(2), want: "a\n  b\n  c"},
		{name: "IndentSkipsBlankLines", filter: filters.Indent, input: "a\n\nb", param: int64(4), want: "a\n\n    b"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := tc.filter(tc.input, tc.param)
			if err != nil {
				t.Fatalf("filter: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestArguments(t *testing.T) {
	t.Parallel()

	ins := []spec.Port{{Name: "left"}, {Name: "right"}}

	got, err := filters.Arguments(ins, nil)
	if err != nil {
		t.Fatalf("arguments: %v", err)
	}
	if got != "left, right" {
		t.Fatalf("got %q", got)
	}

	got, err = filters.Arguments(ins, "irn_")
	if err != nil {
		t.Fatalf("arguments with prefix: %v", err)
	}
	if got != "irn_left, irn_right" {
		t.Fatalf("got %q", got)
	}

	got, err = filters.Arguments(nil, nil)
	if err != nil {
		t.Fatalf("arguments on nil: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty list, got %q", got)
	}
}

func TestBlockComment(t *testing.T) {
	t.Parallel()

	got, err := filters.BlockComment("adds two operands\nresult mode is mode_ref", nil)
	if err != nil {
		t.Fatalf("block_comment: %v", err)
	}
	want := "/**\n * adds two operands\n * result mode is mode_ref\n */"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHex_RejectsNonIntegers(t *testing.T) {
	t.Parallel()

	if _, err := filters.Hex(1.5, nil); err == nil {
		t.Fatal("expected error for fractional input")
	}
	if _, err := filters.Hex("nope", nil); err == nil {
		t.Fatal("expected error for string input")
	}
}

func TestIndent_RejectsBadParam(t *testing.T) {
	t.Parallel()

	if _, err := filters.Indent("x", nil); err == nil {
		t.Fatal("expected error for missing width")
	}
	if _, err := filters.Indent("x", int64(-1)); err == nil {
		t.Fatal("expected error for negative width")
	}
}
