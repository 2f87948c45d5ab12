package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/textblock/pkg/errors"
	"github.com/matzehuels/textblock/pkg/pipeline"
)

func TestReadSource(t *testing.T) {
	toml := writeFile(t, "doc.toml", besideDoc)
	syntax, src, err := readSource(toml)
	if err != nil {
		t.Fatalf("readSource() error: %v", err)
	}
	if syntax != "toml" || string(src) != besideDoc {
		t.Errorf("readSource() = %q, %q", syntax, src)
	}

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"empty path", "", errors.ErrCodeInvalidPath},
		{"unknown extension", writeFile(t, "doc.yaml", "root: {}"), errors.ErrCodeUnsupported},
		{"missing file", filepath.Join(t.TempDir(), "gone.json"), errors.ErrCodeFileNotFound},
		{"blank file", writeFile(t, "blank.toml", "  \n"), errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := readSource(tt.path); !errors.Is(err, tt.code) {
				t.Errorf("readSource(%q) error = %v, want code %s", tt.path, err, tt.code)
			}
		})
	}
}

func TestRunRenderStdout(t *testing.T) {
	c, out := newTestCLI(t)
	path := writeFile(t, "doc.toml", besideDoc)

	if err := c.runRender(context.Background(), path, renderOpts{format: pipeline.FormatJSON, noCache: true}); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}

	var got struct {
		Width  int      `json:"width"`
		Height int      `json:"height"`
		Lines  []string `json:"lines"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Width != 2 || got.Height != 2 || strings.Join(got.Lines, "|") != "XY| Z" {
		t.Errorf("json output = %+v", got)
	}
}

func TestRunRenderToFile(t *testing.T) {
	c, out := newTestCLI(t)
	path := writeFile(t, "doc.toml", besideDoc)
	dest := filepath.Join(t.TempDir(), "out.dot")

	if err := c.runRender(context.Background(), path, renderOpts{format: pipeline.FormatDOT, output: dest}); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should go to the output writer, got %q", out)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "digraph G {") {
		t.Errorf("output file = %q", data)
	}
}

func TestRunRenderLayoutError(t *testing.T) {
	c, _ := newTestCLI(t)
	path := writeFile(t, "bad.json", `{"root": {"kind": "pad", "left": 1}}`)

	err := c.runRender(context.Background(), path, renderOpts{format: pipeline.FormatText, noCache: true})
	if !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("runRender() error = %v, want INVALID_LAYOUT", err)
	}
}

func TestRenderCommandRejectsFormat(t *testing.T) {
	c, _ := newTestCLI(t)
	root := c.RootCommand()
	root.SetArgs([]string{"render", "-f", "png", writeFile(t, "doc.toml", besideDoc)})
	root.SetErr(io.Discard)
	if err := root.Execute(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("render -f png error = %v, want INVALID_FORMAT", err)
	}
}

func TestStatsLine(t *testing.T) {
	res := &pipeline.Result{Width: 12, Height: 4, Stats: pipeline.Stats{NodeCount: 3}}
	line := statsLine(res)
	for _, want := range []string{"3 nodes", "12x4", "fresh"} {
		if !strings.Contains(line, want) {
			t.Errorf("statsLine() = %q, missing %q", line, want)
		}
	}

	res.Cached = true
	if !strings.Contains(statsLine(res), "cached") {
		t.Error("cached results should say so")
	}
}
