package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/textblock/pkg/cache"
	tberrors "github.com/matzehuels/textblock/pkg/errors"
	"github.com/matzehuels/textblock/pkg/observability"
)

const scenarioB = `
[root]
kind = "beside"
  [[root.children]]
  kind = "text"
  text = "X"
  [[root.children]]
  kind = "text"
  text = "Y\nZ"
`

// memCache is an in-memory Cache that counts operations.
type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	gets    int
	sets    int
	failGet bool
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failGet {
		return nil, false, &cache.BackendError{Backend: "mem", Op: "get", Err: errors.New("down")}
	}
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		code tberrors.Code
	}{
		{name: "defaults format", req: Request{Source: []byte("x"), Syntax: "toml"}},
		{name: "all formats", req: Request{Source: []byte("x"), Format: FormatSVG}},
		{name: "bad format", req: Request{Source: []byte("x"), Format: "png"}, code: tberrors.ErrCodeInvalidFormat},
		{name: "empty source", req: Request{Format: FormatText}, code: tberrors.ErrCodeInvalidInput},
		{name: "too large", req: Request{Source: make([]byte, MaxSourceSize+1)}, code: tberrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() error: %v", err)
				}
				if tt.req.Format == "" {
					t.Error("Validate() should default the format")
				}
				return
			}
			if !tberrors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestRunnerRenderText(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())

	res, err := r.Render(context.Background(), Request{Source: []byte(scenarioB), Syntax: "toml"})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if got := string(res.Output); got != "XY\n Z\n" {
		t.Errorf("Output = %q", got)
	}
	if res.Width != 2 || res.Height != 2 {
		t.Errorf("size = %dx%d, want 2x2", res.Width, res.Height)
	}
	if res.Cached {
		t.Error("first render should not be cached")
	}
	if res.Stats.NodeCount != 3 {
		t.Errorf("NodeCount = %d, want 3", res.Stats.NodeCount)
	}
}

func TestRunnerRenderFormats(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()

	res, err := r.Render(ctx, Request{Source: []byte(scenarioB), Syntax: "toml", Format: FormatJSON})
	if err != nil {
		t.Fatalf("Render(json) error: %v", err)
	}
	var got blockJSON
	if err := json.Unmarshal(res.Output, &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Width != 2 || got.Height != 2 || len(got.Lines) != 2 || got.Lines[1] != " Z" {
		t.Errorf("json output = %+v", got)
	}

	res, err = r.Render(ctx, Request{Source: []byte(scenarioB), Syntax: "toml", Format: FormatDOT})
	if err != nil {
		t.Fatalf("Render(dot) error: %v", err)
	}
	if !strings.HasPrefix(string(res.Output), "digraph G {") {
		t.Errorf("dot output = %q", res.Output)
	}
}

func TestRunnerCaches(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, quietLogger())
	ctx := context.Background()
	req := Request{Source: []byte(scenarioB), Syntax: "toml"}

	first, err := r.Render(ctx, req)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	second, err := r.Render(ctx, req)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if !second.Cached {
		t.Error("second render should come from the cache")
	}
	if string(second.Output) != string(first.Output) || second.Width != first.Width || second.Height != first.Height {
		t.Errorf("cached result %+v differs from %+v", second, first)
	}
	if c.sets != 1 {
		t.Errorf("cache sets = %d, want 1", c.sets)
	}

	// A different format is a different entry.
	if res, _ := r.Render(ctx, Request{Source: []byte(scenarioB), Syntax: "toml", Format: FormatDOT}); res.Cached {
		t.Error("dot render should not reuse the text entry")
	}

	// Refresh bypasses the lookup but stores the fresh result.
	gets := c.gets
	refreshed, err := r.Render(ctx, Request{Source: []byte(scenarioB), Syntax: "toml", Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.Cached || c.gets != gets {
		t.Error("refresh should not read the cache")
	}
}

func TestRunnerCacheFailureIsNotFatal(t *testing.T) {
	c := newMemCache()
	c.failGet = true
	r := NewRunner(c, nil, quietLogger())

	res, err := r.Render(context.Background(), Request{Source: []byte(scenarioB), Syntax: "toml"})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if res.Cached || string(res.Output) != "XY\n Z\n" {
		t.Errorf("Render() = %+v", res)
	}
}

func TestRunnerErrors(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()

	tests := []struct {
		name string
		req  Request
		code tberrors.Code
	}{
		{name: "syntax error", req: Request{Source: []byte("[root"), Syntax: "toml"}, code: tberrors.ErrCodeInvalidFormat},
		{name: "unknown syntax", req: Request{Source: []byte("root: {}"), Syntax: "yaml"}, code: tberrors.ErrCodeUnsupported},
		{name: "layout error", req: Request{Source: []byte(`{"root": {"kind": "blob"}}`), Syntax: "json"}, code: tberrors.ErrCodeInvalidLayout},
		{name: "negative size", req: Request{Source: []byte(`{"root": {"kind": "empty", "width": -3}}`), Syntax: "json"}, code: tberrors.ErrCodeInvalidDimension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Render(ctx, tt.req)
			if !tberrors.Is(err, tt.code) {
				t.Errorf("Render() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

// recordingHooks captures the sequence of pipeline and cache events.
type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) add(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnParseStart(context.Context, string, int) { h.add("parse") }
func (h *recordingHooks) OnBuildStart(context.Context, int)         { h.add("layout") }
func (h *recordingHooks) OnRenderStart(context.Context, string)     { h.add("render") }
func (h *recordingHooks) OnCacheHit(context.Context, string)        { h.add("hit") }
func (h *recordingHooks) OnCacheMiss(context.Context, string)       { h.add("miss") }
func (h *recordingHooks) OnCacheSet(context.Context, string, int)   { h.add("set") }

func TestRunnerHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	defer observability.Reset()

	r := NewRunner(newMemCache(), nil, quietLogger())
	req := Request{Source: []byte(scenarioB), Syntax: "toml"}
	for i := 0; i < 2; i++ {
		if _, err := r.Render(context.Background(), req); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{"miss", "parse", "layout", "render", "set", "hit"}
	if strings.Join(h.events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", h.events, want)
	}
}
