package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mhartvig/colstack/pkg/cache"
	"github.com/mhartvig/colstack/pkg/column"
	"github.com/mhartvig/colstack/pkg/manifest"
	"github.com/mhartvig/colstack/pkg/observability"
	"github.com/mhartvig/colstack/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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

// Input is the resolved solve input after the load stage: items plus the
// layout parameters merged from the manifest and option overrides.
type Input struct {
	Items       []column.Item  `json:"items"`
	Spacing     column.Spacing `json:"spacing"`
	ColumnLimit int            `json:"column_limit"`
	WidthLimit  float64        `json:"width_limit,omitempty"`
}

// Solved is a solved partition plus derived geometry, as cached and
// passed between the solve and render stages.
type Solved struct {
	Result     column.Result       `json:"result"`
	Layouts    []column.ItemLayout `json:"layouts"`
	Iterations int                 `json:"iterations,omitempty"`
}

// Execute runs the complete load → solve → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.ManifestPath)
	input, err := r.Load(&opts)
	observability.Pipeline().OnLoadComplete(ctx, opts.ManifestPath, len(input.Items), time.Since(loadStart), err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Items = input.Items
	result.Spacing = input.Spacing
	result.ColumnLimit = input.ColumnLimit
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.ItemCount = len(input.Items)

	opts.Logger.Info("loaded items",
		"items", len(input.Items),
		"column_limit", input.ColumnLimit,
		"duration", result.Stats.LoadTime)

	// Stage 2: Solve
	solveStart := time.Now()
	observability.Pipeline().OnSolveStart(ctx, opts.Method, len(input.Items))
	rec, inputHash, solveHit, err := r.SolveWithCacheInfo(ctx, input, opts)
	observability.Pipeline().OnSolveComplete(ctx, opts.Method, rec.Result.Columns(), time.Since(solveStart), err)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	result.Solve = rec.Result
	result.Layouts = rec.Layouts
	result.Iterations = rec.Iterations
	result.InputHash = inputHash
	result.Stats.SolveTime = time.Since(solveStart)
	result.Stats.ColumnCount = rec.Result.Columns()
	result.CacheInfo.SolveHit = solveHit
	result.Method, _ = column.ParseMethod(opts.Method)

	opts.Logger.Info("solved partition",
		"columns", rec.Result.Columns(),
		"height", rec.Result.MinHeight,
		"cached", solveHit,
		"duration", result.Stats.SolveTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, input, rec, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load resolves the solve input from either inline items or a manifest
// file. Option overrides win over manifest values; manifest values win
// over built-in defaults. Load mutates opts so later cache keys reflect
// the effective parameters.
func (r *Runner) Load(opts *Options) (Input, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return Input{}, err
	}

	input := Input{WidthLimit: opts.WidthLimit, ColumnLimit: opts.ColumnLimit}
	if opts.Spacing != nil {
		input.Spacing = *opts.Spacing
	}

	if len(opts.Items) > 0 {
		input.Items = opts.Items
	} else {
		m, err := manifest.Load(opts.ManifestPath)
		if err != nil {
			return Input{}, err
		}
		input.Items = m.Items
		if opts.Spacing == nil {
			input.Spacing = m.Spacing
		}
		if input.ColumnLimit == 0 {
			input.ColumnLimit = m.ColumnLimit
		}
		if input.WidthLimit == 0 {
			input.WidthLimit = m.WidthLimit
		}
	}

	if input.ColumnLimit == 0 {
		input.ColumnLimit = manifest.DefaultColumnLimit
	}

	// Keep opts in sync so SolveKeyOpts sees the effective values.
	opts.Spacing = &input.Spacing
	opts.ColumnLimit = input.ColumnLimit
	opts.WidthLimit = input.WidthLimit

	return input, nil
}

// SolveWithCacheInfo computes the partition with caching and returns the
// input hash and cache hit info.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, input Input, opts Options) (Solved, string, bool, error) {
	if err := opts.ValidateForSolve(); err != nil {
		return Solved{}, "", false, err
	}
	r.applyLogger(&opts)

	inputData, err := json.Marshal(input)
	if err != nil {
		return Solved{}, "", false, fmt.Errorf("serialize input for cache key: %w", err)
	}
	inputHash := cache.Hash(inputData)
	cacheKey := r.Keyer.SolveKey(inputHash, opts.SolveKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var rec Solved
			if err := json.Unmarshal(data, &rec); err == nil {
				observability.Cache().OnCacheHit(ctx, "solve")
				return rec, inputHash, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "solve")
	}

	rec, err := solve(input, opts)
	if err != nil {
		return Solved{}, "", false, err
	}

	if data, err := json.Marshal(rec); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLSolve)
		observability.Cache().OnCacheSet(ctx, "solve", len(data))
	}

	return rec, inputHash, false, nil
}

// Solve is a convenience wrapper that calls SolveWithCacheInfo and discards the cache info.
func (r *Runner) Solve(ctx context.Context, input Input, opts Options) (column.Result, []column.ItemLayout, error) {
	rec, _, _, err := r.SolveWithCacheInfo(ctx, input, opts)
	return rec.Result, rec.Layouts, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, input Input, rec Solved, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	recData, err := json.Marshal(rec)
	if err != nil {
		return nil, false, fmt.Errorf("serialize partition for cache key: %w", err)
	}
	solveHash := cache.Hash(recData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(solveHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := renderArtifacts(input, rec, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(solveHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// solve runs the engine for the requested method and derives item geometry.
func solve(input Input, opts Options) (Solved, error) {
	method, err := column.ParseMethod(opts.Method)
	if err != nil {
		return Solved{}, err
	}

	engine, err := column.NewEngine(input.Items, input.Spacing, input.ColumnLimit)
	if err != nil {
		return Solved{}, err
	}
	engine.SetMethod(method)

	widthLimit := input.WidthLimit
	if widthLimit <= 0 {
		widthLimit = math.Inf(1)
	}

	result, err := engine.Solve(widthLimit)
	if err != nil {
		return Solved{}, err
	}
	layouts, err := engine.LastItemLayouts()
	if err != nil {
		return Solved{}, err
	}

	return Solved{
		Result:     result,
		Layouts:    layouts,
		Iterations: engine.Iterations(),
	}, nil
}

// renderArtifacts produces every requested format from a solved partition.
func renderArtifacts(input Input, rec Solved, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			renderOpts := []render.Option{
				render.WithScale(opts.Scale),
				render.WithPadding(opts.Padding),
			}
			if opts.Labels {
				renderOpts = append(renderOpts, render.WithLabels())
			}
			artifacts[format] = render.SVG(rec.Result, rec.Layouts, renderOpts...)
		case FormatJSON:
			doc := &render.Document{
				Items:       input.Items,
				Spacing:     input.Spacing,
				ColumnLimit: input.ColumnLimit,
				WidthLimit:  input.WidthLimit,
				Method:      opts.Method,
				Result:      rec.Result,
				Layouts:     rec.Layouts,
			}
			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("encode %s: %w", format, err)
			}
			artifacts[format] = data
		default:
			return nil, fmt.Errorf("invalid format: %q", format)
		}
	}
	return artifacts, nil
}
