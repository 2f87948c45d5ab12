package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/textblock/pkg/cache"
	"github.com/matzehuels/textblock/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and HTTP service use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL is the lifetime of stored results. Zero means cache.TTLRender.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Render runs parse → layout → render for req, serving the result from the
// cache when possible. A failing cache backend is logged and otherwise
// ignored.
func (r *Runner) Render(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := r.Keyer.RenderKey(cache.Hash(req.Source), cache.RenderKeyOpts{
		Syntax: req.Syntax,
		Format: req.Format,
	})

	if !req.Refresh {
		if res, ok := r.lookup(ctx, key); ok {
			r.Logger.Debug("render cache hit", "format", req.Format, "width", res.Width, "height", res.Height)
			return res, nil
		}
	}

	res := &Result{}

	parseStart := time.Now()
	doc, err := Parse(ctx, req.Source, req.Syntax)
	if err != nil {
		return nil, err
	}
	res.Stats.ParseTime = time.Since(parseStart)
	res.Stats.NodeCount = doc.Root.Count()

	layoutStart := time.Now()
	b, err := Layout(ctx, doc)
	if err != nil {
		return nil, err
	}
	res.Width, res.Height = b.Width(), b.Height()
	res.Stats.LayoutTime = time.Since(layoutStart)

	r.Logger.Debug("composed layout",
		"nodes", res.Stats.NodeCount,
		"width", res.Width,
		"height", res.Height,
		"duration", res.Stats.LayoutTime)

	renderStart := time.Now()
	if res.Output, err = Render(ctx, doc, b, req.Format); err != nil {
		return nil, err
	}
	res.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered layout",
		"format", req.Format,
		"width", res.Width,
		"height", res.Height,
		"bytes", len(res.Output),
		"duration", res.Stats.ParseTime+res.Stats.LayoutTime+res.Stats.RenderTime)

	r.store(ctx, key, res)
	return res, nil
}

// lookup reads a cached result. Backend failures and undecodable entries
// count as misses.
func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	hooks := observability.Cache()

	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		hooks.OnCacheError(ctx, "render", err)
		r.Logger.Warn("cache lookup failed", "err", err)
		return nil, false
	}
	if !hit {
		hooks.OnCacheMiss(ctx, "render")
		return nil, false
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		hooks.OnCacheMiss(ctx, "render")
		return nil, false
	}
	hooks.OnCacheHit(ctx, "render")
	res.Cached = true
	return &res, true
}

func (r *Runner) store(ctx context.Context, key string, res *Result) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	ttl := r.TTL
	if ttl == 0 {
		ttl = cache.TTLRender
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		observability.Cache().OnCacheError(ctx, "render", err)
		r.Logger.Warn("cache store failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "render", len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
