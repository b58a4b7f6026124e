package pipeline

import (
	"cmp"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kinship/pkg/cache"
	"github.com/matzehuels/kinship/pkg/graph"
	kio "github.com/matzehuels/kinship/pkg/io"
	"github.com/matzehuels/kinship/pkg/layout"
	"github.com/matzehuels/kinship/pkg/observability"
)

// maxDegreeCaches bounds how many person graphs a Runner keeps degree maps
// for.
const maxDegreeCaches = 64

// Runner executes pipeline stages with caching. It is safe for concurrent
// use; the only state it keeps besides the cache is a pool of degree maps
// per person graph.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// LayoutTTL is how long computed layouts stay cached. Zero selects
	// cache.LayoutTTL.
	LayoutTTL time.Duration

	degrees degreePool
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the default keyer.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute loads the people file at path, lays it out and renders it.
func (r *Runner) Execute(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	res := &Result{}

	start := time.Now()
	in, err := r.Load(ctx, path, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	res.Input = in
	res.Stats.LoadTime = time.Since(start)
	res.Stats.Persons = len(in.People)
	res.Stats.Virtual = in.VirtualCount()

	start = time.Now()
	l, hit, err := r.LayoutWithCacheInfo(ctx, in, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	res.Layout = l
	res.Stats.LayoutTime = time.Since(start)
	res.Stats.Generations = len(l.Generations())
	res.Stats.Snapshots = len(l.Snapshots)
	res.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"root", l.Root,
		"persons", len(l.Nodes),
		"cached", hit,
		"duration", res.Stats.LayoutTime)

	start = time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Artifacts = artifacts
	res.Stats.RenderTime = time.Since(start)
	res.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs", "formats", opts.Formats, "cached", hit, "duration", res.Stats.RenderTime)
	return res, nil
}

// Load reads the people file at path.
func (r *Runner) Load(ctx context.Context, path string, opts Options) (*Input, error) {
	start := time.Now()
	in, err := LoadFile(path, opts.Relations)
	persons := 0
	if in != nil {
		persons = len(in.People)
	}
	observability.Layout().OnLoadComplete(ctx, path, persons, time.Since(start), err)
	return in, err
}

// LoadDocument resolves a document received from elsewhere, such as an
// API request.
func (r *Runner) LoadDocument(ctx context.Context, doc *kio.Document, source string, opts Options) (*Input, error) {
	start := time.Now()
	in, err := LoadDocument(doc, source, opts.Relations)
	persons := 0
	if in != nil {
		persons = len(in.People)
	}
	observability.Layout().OnLoadComplete(ctx, source, persons, time.Since(start), err)
	return in, err
}

// LayoutWithCacheInfo computes the layout of in, serving it from the cache
// when possible. The boolean reports a cache hit.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, in *Input, opts Options) (graph.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, false, err
	}
	r.applyLogger(&opts)

	root, err := in.Root(opts.Root)
	if err != nil {
		return graph.Layout{}, false, err
	}
	key := r.Keyer.LayoutKey(in.Hash, opts.LayoutKeyOpts(root))

	if !opts.Refresh {
		if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
			if l, err := graph.UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return l, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("layout cache lookup failed", "err", err)
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	observability.Layout().OnLayoutStart(ctx, root, len(in.People))
	start := time.Now()
	l, err := r.generate(in, opts)
	observability.Layout().OnLayoutComplete(ctx, root, time.Since(start), err)
	if err != nil {
		return graph.Layout{}, false, err
	}

	if data, err := graph.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, key, data, cmp.Or(r.LayoutTTL, cache.LayoutTTL)); err != nil {
			r.Logger.Warn("layout cache store failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return l, false, nil
}

// Layout is LayoutWithCacheInfo without the cache hit flag.
func (r *Runner) Layout(ctx context.Context, in *Input, opts Options) (graph.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, in, opts)
	return l, err
}

func (r *Runner) generate(in *Input, opts Options) (graph.Layout, error) {
	e := r.degrees.acquire(in.Hash)
	e.mu.Lock()
	defer e.mu.Unlock()

	hits := e.cache.Hits()
	l, err := GenerateLayout(in, opts, e.cache)
	if e.cache.Hits() > hits {
		r.Logger.Debug("reused degree map", "root", l.Root)
	}
	return l, err
}

// RenderWithCacheInfo renders l in every requested format. The boolean
// reports whether all formats came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	data, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(data)

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, f := range opts.Formats {
			data, ok, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(f)))
			if err != nil || !ok {
				break
			}
			artifacts[f] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	observability.Layout().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, err := Render(ctx, l, opts)
	observability.Layout().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for f, data := range artifacts {
		if err := r.Cache.Set(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(f)), data, cache.ArtifactTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, false, nil
}

// Render is RenderWithCacheInfo without the cache hit flag.
func (r *Runner) Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil || opts.Logger == discardLogger {
		opts.Logger = r.Logger
	}
}

// =============================================================================
// Degree Map Pool
// =============================================================================

type degreeEntry struct {
	mu    sync.Mutex
	cache *layout.DegreeCache
}

// degreePool keeps one DegreeCache per input hash, evicting the oldest
// beyond maxDegreeCaches.
type degreePool struct {
	mu     sync.Mutex
	byHash map[string]*degreeEntry
	order  []string
}

func (p *degreePool) acquire(hash string) *degreeEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.byHash == nil {
		p.byHash = make(map[string]*degreeEntry)
	}
	if e, ok := p.byHash[hash]; ok {
		return e
	}
	e := &degreeEntry{cache: layout.NewDegreeCache()}
	p.byHash[hash] = e
	p.order = append(p.order, hash)
	if len(p.order) > maxDegreeCaches {
		delete(p.byHash, p.order[0])
		p.order = p.order[1:]
	}
	return e
}

func (p *degreePool) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.byHash)
}
