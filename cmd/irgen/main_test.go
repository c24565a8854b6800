package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-irgen/pkg/testsupport"
)

// CLI tests drive the real command tree; they build rendering environments,
// which share the engine's process-global filter table, so they do not run
// in parallel.

func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestCommand_SuccessWritesOnlyRenderedText(t *testing.T) {
	dir := testsupport.WriteTree(t, map[string]string{
		"spec.hcl": `global "name" { value = "Add" }`,
		"out.tmpl": "node {{ name }}\n",
	})

	stdout, stderr, err := runCommand(t,
		"-I", dir, filepath.Join(dir, "spec.hcl"), "out.tmpl")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stdout != "node Add\n" {
		t.Fatalf("stdout must carry exactly the rendered text, got %q", stdout)
	}
	if stderr != "" {
		t.Fatalf("stderr must stay silent without --verbose, got %q", stderr)
	}
}

func TestCommand_VerboseKeepsStdoutPure(t *testing.T) {
	dir := testsupport.WriteTree(t, map[string]string{
		"spec.hcl": `global "name" { value = "Add" }`,
		"out.tmpl": "node {{ name }}\n",
	})

	stdout, stderr, err := runCommand(t,
		"--verbose", "-I", dir, filepath.Join(dir, "spec.hcl"), "out.tmpl")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stdout != "node Add\n" {
		t.Fatalf("stdout must carry exactly the rendered text, got %q", stdout)
	}
	if !strings.Contains(stderr, "rendering out.tmpl") {
		t.Fatalf("expected stage diagnostics on stderr, got %q", stderr)
	}
}

func TestCommand_FailuresLeaveStdoutEmpty(t *testing.T) {
	dir := testsupport.WriteTree(t, map[string]string{
		"spec.hcl":   `global "x" { value = 1 }`,
		"broken.hcl": `node "Add" {`,
		"out.tmpl":   "{{ x }}",
		"bad.tmpl":   `{{ x|no_such_filter_anywhere }}`,
	})
	specPath := filepath.Join(dir, "spec.hcl")

	cases := []struct {
		name string
		args []string
	}{
		{name: "UnreadableSpec", args: []string{"-I", dir, filepath.Join(dir, "missing.hcl"), "out.tmpl"}},
		{name: "BrokenExtraUnit", args: []string{"-I", dir, "-e", "broken.hcl", specPath, "out.tmpl"}},
		{name: "MissingTemplate", args: []string{"-I", dir, specPath, "missing.tmpl"}},
		{name: "RenderFailure", args: []string{"-I", dir, specPath, "bad.tmpl"}},
		{name: "WrongArgCount", args: []string{specPath}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stdout, _, err := runCommand(t, tc.args...)
			if err == nil {
				t.Fatal("expected a non-nil error so main exits non-zero")
			}
			if stdout != "" {
				t.Fatalf("stdout must stay empty on failure, got %q", stdout)
			}
		})
	}
}
