package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/artistgraph/pkg/graph"
)

// newTestCLI returns a CLI whose commands see testGraph instead of fetching.
func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	isolateEnv(t)
	c := New(io.Discard, log.InfoLevel)
	c.source = func(context.Context) (*graph.Graph, error) { return testGraph(), nil }
	return c
}

func execute(c *CLI, args ...string) (string, error) {
	var out bytes.Buffer
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"shell", "fetch", "neighbors", "path", "top", "render", "browse", "serve", "cache", "auth", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing subcommand %q in %v", want, names)
		}
	}
	for _, flag := range []string{"verbose", "config", "seeds-file", "graph", "no-cache", "refresh"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag --%s", flag)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	out, err := execute(New(io.Discard, log.InfoLevel), "--version")
	if err != nil {
		t.Fatalf("--version error: %v", err)
	}
	if !strings.Contains(out, appName+" version") {
		t.Errorf("version output = %q", out)
	}
}

func TestRootCommand_VerboseSetsDebug(t *testing.T) {
	c := newTestCLI(t)
	if _, err := execute(c, "-v", "fetch"); err != nil {
		t.Fatalf("fetch error: %v", err)
	}
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}

func TestQueryCommands(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"neighbors", []string{"neighbors", "Lamp"}, false},
		{"neighbors unknown", []string{"neighbors", "Nobody"}, true},
		{"neighbors empty name", []string{"neighbors", " "}, true},
		{"path", []string{"path", "Lamp", "Fishmans"}, false},
		{"path same artist", []string{"path", "Lamp", "Lamp"}, false},
		{"path no path", []string{"path", "Lamp", "Loner"}, true},
		{"path arity", []string{"path", "Lamp"}, true},
		{"top", []string{"top", "-n", "2"}, false},
		{"top invalid", []string{"top", "-n", "0"}, true},
		{"fetch", []string{"fetch"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(newTestCLI(t), tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("%v error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
		})
	}
}

func TestShellCommand(t *testing.T) {
	c := newTestCLI(t)
	var out bytes.Buffer
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetIn(strings.NewReader("3\n5\n"))
	root.SetArgs([]string{"shell"})
	if err := root.Execute(); err != nil {
		t.Fatalf("shell error: %v", err)
	}
	if !strings.Contains(out.String(), "KIRINJI: 2 connections") {
		t.Errorf("shell output = %q", out.String())
	}
}

func TestRenderCommand(t *testing.T) {
	c := newTestCLI(t)
	path := filepath.Join(t.TempDir(), "graph.json")
	if _, err := execute(c, "render", "-o", path); err != nil {
		t.Fatalf("render error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `"collaboration"`) {
		t.Errorf("json output = %s", data)
	}

	if _, err := execute(newTestCLI(t), "render", "-f", "pdf"); err == nil {
		t.Error("render -f pdf should fail")
	}
	if _, err := execute(newTestCLI(t), "render", "--layout", "spring"); err == nil {
		t.Error("render --layout spring should fail")
	}
}

func TestGraphFlagLoadsSavedDocument(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	saved := filepath.Join(dir, "saved.json")
	if err := graph.WriteDocumentFile(testGraph(), saved); err != nil {
		t.Fatalf("WriteDocumentFile() error: %v", err)
	}

	out := filepath.Join(dir, "out.json")
	c := New(io.Discard, log.InfoLevel)
	if _, err := execute(c, "--graph", saved, "render", "-o", out); err != nil {
		t.Fatalf("render --graph error: %v", err)
	}
	g, err := graph.ImportDocument(out)
	if err != nil {
		t.Fatalf("ImportDocument() error: %v", err)
	}
	if g.Stats() != testGraph().Stats() {
		t.Errorf("stats = %+v, want %+v", g.Stats(), testGraph().Stats())
	}

	if _, err := execute(New(io.Discard, log.InfoLevel), "--graph", filepath.Join(dir, "missing.json"), "top"); err == nil {
		t.Error("--graph with a missing file should fail")
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(New(io.Discard, log.InfoLevel), "completion", "bash")
	if err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion should mention the binary")
	}
}
