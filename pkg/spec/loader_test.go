package spec_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-irgen/pkg/spec"
	"github.com/goliatone/go-irgen/pkg/testsupport"
)

const basicHCL = `
spec {
  name = "testir"
}

global "package" {
  value = "ir"
}

global "version" {
  value = 3
}

alias "args" {
  filter = "arguments"
}

node "Add" {
  comment = "adds two operands"
  mode    = "mode_ref"
  flags   = ["commutative"]

  in "left" {
    comment = "first operand"
  }
  in "right" {
    comment = "second operand"
  }
  out "res" {}
}

node "Load" {
  pinned = "exception"
  arity  = "variable"
  block  = true

  attr "volatility" {
    type = "ir_volatility"
    init = "volatility_non_volatile"
  }
}
`

func TestLoader_Load_HCL(t *testing.T) {
	t.Parallel()

	dir := testsupport.WriteTree(t, map[string]string{
		"spec.hcl": basicHCL,
	})

	loader := spec.NewLoader()
	unit, err := loader.Load(context.Background(), "spec", filepath.Join(dir, "spec.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "spec", unit.Name)
	assert.Equal(t, "testir", unit.Meta.Name)

	require.Len(t, unit.Globals, 2)
	assert.Equal(t, spec.Binding{Name: "package", Value: "ir"}, unit.Globals[0])
	assert.Equal(t, spec.Binding{Name: "version", Value: int64(3)}, unit.Globals[1])

	require.Len(t, unit.Aliases, 1)
	assert.Equal(t, spec.Alias{Name: "args", Filter: "arguments"}, unit.Aliases[0])

	require.Len(t, unit.Nodes, 2)

	add := unit.Nodes[0]
	assert.Equal(t, "Add", add.Name)
	assert.Equal(t, "mode_ref", add.Mode)
	assert.Equal(t, []string{"commutative"}, add.Flags)
	assert.Equal(t, spec.ArityFixed, add.Arity, "arity defaults to fixed")
	assert.Equal(t, spec.PinnedNo, add.Pinned, "pinned defaults to no")
	require.Len(t, add.Ins, 2)
	assert.Equal(t, spec.Port{Name: "left", Comment: "first operand"}, add.Ins[0])
	assert.Equal(t, spec.Port{Name: "right", Comment: "second operand"}, add.Ins[1])
	require.Len(t, add.Outs, 1)
	assert.Equal(t, "res", add.Outs[0].Name)

	load := unit.Nodes[1]
	assert.Equal(t, spec.PinnedException, load.Pinned)
	assert.Equal(t, spec.ArityVariable, load.Arity)
	assert.True(t, load.Block)
	require.Len(t, load.Attrs, 1)
	assert.Equal(t, spec.Attr{
		Name: "volatility",
		Type: "ir_volatility",
		Init: "volatility_non_volatile",
	}, load.Attrs[0])
}

func TestLoader_Load_YAMLMatchesHCL(t *testing.T) {
	t.Parallel()

	yamlUnit := `
spec:
  name: testir
globals:
  package: ir
  version: 3
aliases:
  args: arguments
nodes:
  - name: Add
    comment: adds two operands
    mode: mode_ref
    flags: [commutative]
    ins:
      - {name: left, comment: first operand}
      - {name: right, comment: second operand}
    outs: [res]
  - name: Load
    pinned: exception
    arity: variable
    block: true
    attrs:
      - {name: volatility, type: ir_volatility, init: volatility_non_volatile}
`
	dir := testsupport.WriteTree(t, map[string]string{
		"spec.hcl":  basicHCL,
		"spec.yaml": yamlUnit,
	})

	loader := spec.NewLoader()
	fromHCL, err := loader.Load(context.Background(), "spec", filepath.Join(dir, "spec.hcl"))
	require.NoError(t, err)
	fromYAML, err := loader.Load(context.Background(), "spec", filepath.Join(dir, "spec.yaml"))
	require.NoError(t, err)

	fromHCL.Path = ""
	fromYAML.Path = ""
	assert.Equal(t, fromHCL, fromYAML)
}

func TestLoader_Load_UnreadablePath(t *testing.T) {
	t.Parallel()

	loader := spec.NewLoader()
	_, err := loader.Load(context.Background(), "spec", filepath.Join(t.TempDir(), "missing.hcl"))

	var loadErr *spec.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Path, "missing.hcl")
}

func TestLoader_Load_InvalidHCL(t *testing.T) {
	t.Parallel()

	dir := testsupport.WriteTree(t, map[string]string{
		"broken.hcl": `node "Add" {`,
	})

	loader := spec.NewLoader()
	_, err := loader.Load(context.Background(), "extra0", filepath.Join(dir, "broken.hcl"))

	var execErr *spec.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "extra0", execErr.Unit)
}

func TestLoader_Load_ValidationFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		unit string
	}{
		{
			name: "BadArity",
			unit: `node "Add" {` + "\n" + `  arity = "sometimes"` + "\n" + `}`,
		},
		{
			name: "BadPinned",
			unit: `node "Add" {` + "\n" + `  pinned = "maybe"` + "\n" + `}`,
		},
		{
			name: "AttrWithoutType",
			unit: `node "Add" {` + "\n" + `  attr "x" {}` + "\n" + `}`,
		},
		{
			name: "DuplicateNode",
			unit: `node "Add" {}` + "\n" + `node "Add" {}`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := testsupport.WriteTree(t, map[string]string{"unit.hcl": tc.unit})
			_, err := spec.NewLoader().Load(context.Background(), "spec", filepath.Join(dir, "unit.hcl"))

			var execErr *spec.ExecutionError
			require.ErrorAs(t, err, &execErr)
		})
	}
}

func TestLoader_Load_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	dir := testsupport.WriteTree(t, map[string]string{"spec.py": "nodes = []"})
	_, err := spec.NewLoader().Load(context.Background(), "spec", filepath.Join(dir, "spec.py"))

	var execErr *spec.ExecutionError
	require.ErrorAs(t, err, &execErr)
}

func TestResolvePath(t *testing.T) {
	t.Parallel()

	dir := testsupport.WriteTree(t, map[string]string{
		"units/extra.hcl": `global "x" { value = 1 }`,
	})

	resolved, err := spec.ResolvePath("extra.hcl", []string{filepath.Join(dir, "units")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "units", "extra.hcl"), resolved)

	_, err = spec.ResolvePath("nowhere.hcl", []string{filepath.Join(dir, "units")})
	var loadErr *spec.LoadError
	require.ErrorAs(t, err, &loadErr)

	abs := filepath.Join(dir, "units", "extra.hcl")
	resolved, err = spec.ResolvePath(abs, nil)
	require.NoError(t, err)
	assert.Equal(t, abs, resolved)
}

func TestLoader_Load_NilContext(t *testing.T) {
	t.Parallel()

	//nolint:staticcheck // passing nil on purpose
	_, err := spec.NewLoader().Load(nil, "spec", "spec.hcl")
	require.Error(t, err)
	assert.False(t, errors.As(err, new(*spec.LoadError)))
}
