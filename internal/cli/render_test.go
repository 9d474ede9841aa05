package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	apperrors "github.com/matzehuels/artistgraph/pkg/errors"
	"github.com/matzehuels/artistgraph/pkg/graph"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty infers from output", "", nil},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,png,dot", []string{"svg", "png", "dot"}},
		{"spaces and case", " SVG , json ", []string{"svg", "json"}},
		{"trailing comma", "png,", []string{"png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid svg", []string{"svg"}, false},
		{"valid all", []string{"svg", "png", "dot", "json"}, false},
		{"pdf unsupported", []string{"pdf"}, true},
		{"mixed valid invalid", []string{"svg", "invalid"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
			if err != nil && !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
				t.Errorf("error code = %q, want INVALID_FORMAT", apperrors.GetCode(err))
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"assets/combined_graph.png": "png",
		"out.SVG":                   "svg",
		"graph.dot":                 "dot",
		"graph.json":                "json",
		"graph":                     "png",
		"graph.pdf":                 "png",
	}
	for path, want := range tests {
		if got := formatFromPath(path); got != want {
			t.Errorf("formatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := map[string]string{
		"out/graph.png": "out/graph",
		"graph.json":    "graph",
		"graph":         "graph",
		"graph.v2":      "graph.v2",
	}
	for in, want := range tests {
		if got := basePath(in); got != want {
			t.Errorf("basePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderOptsApplyDefaults(t *testing.T) {
	opts := renderOpts{}
	opts.applyDefaults(defaultConfig())

	if opts.output != defaultOutputPath {
		t.Errorf("output = %q, want %q", opts.output, defaultOutputPath)
	}
	if !slices.Equal(opts.formats, []string{"png"}) {
		t.Errorf("formats = %v, want [png]", opts.formats)
	}
	if opts.title == "" || opts.layout == "" {
		t.Errorf("title/layout not defaulted: %+v", opts.renderSettings)
	}
}

func TestRunRender_MultipleFormats(t *testing.T) {
	dir := t.TempDir()
	opts := &renderOpts{
		output:  filepath.Join(dir, "nested", "graph.png"),
		formats: []string{"dot", "json"},
	}

	if err := runRender(context.Background(), testGraph(), opts, &bytes.Buffer{}); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}

	dot, err := os.ReadFile(filepath.Join(dir, "nested", "graph.dot"))
	if err != nil {
		t.Fatalf("read dot: %v", err)
	}
	if !strings.HasPrefix(string(dot), "graph G {") {
		t.Errorf("dot output = %q", dot)
	}

	data, err := os.ReadFile(filepath.Join(dir, "nested", "graph.json"))
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var doc graph.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(doc.Nodes) != 4 || len(doc.Edges) != 2 {
		t.Errorf("document = %d nodes, %d edges; want 4, 2", len(doc.Nodes), len(doc.Edges))
	}
}

func TestRunRender_Stdout(t *testing.T) {
	var buf bytes.Buffer
	opts := &renderOpts{output: "-", formats: []string{"dot"}}

	if err := runRender(context.Background(), testGraph(), opts, &buf); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}
	if !strings.Contains(buf.String(), `"Fishmans" -- "KIRINJI"`) && !strings.Contains(buf.String(), `"KIRINJI" -- "Fishmans"`) {
		t.Errorf("stdout missing collaboration edge:\n%s", buf.String())
	}

	opts.formats = []string{"dot", "json"}
	if err := runRender(context.Background(), testGraph(), opts, &buf); err == nil {
		t.Error("stdout with two formats should fail")
	}
}
