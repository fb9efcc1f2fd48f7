// Package pipeline provides the core load → solve → render pipeline.
//
// The pipeline is shared by the CLI and the HTTP service. By centralizing
// this logic, we ensure consistent behavior across all entry points and
// avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and validate an item manifest (TOML or JSON)
//  2. Solve: Partition the items into columns with the chosen method
//  3. Render: Generate output artifacts (SVG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    ManifestPath: "items.toml",
//	    Method:       "dp",
//	    Formats:      []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mhartvig/colstack/pkg/cache"
	"github.com/mhartvig/colstack/pkg/column"
)

const (
	// DefaultMethod is the partition method used when none is requested.
	DefaultMethod = "binsearch"

	// DefaultScale is the SVG coordinate multiplier.
	DefaultScale = 1.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one of ManifestPath or Items must be set:
	// Items takes precedence when both are present.
	ManifestPath string          `json:"manifest_path,omitempty"`
	Items        []column.Item   `json:"items,omitempty"`
	Spacing      *column.Spacing `json:"spacing,omitempty"`
	ColumnLimit  int             `json:"column_limit,omitempty"`

	// Solve options
	Method     string  `json:"method,omitempty"`
	WidthLimit float64 `json:"width_limit,omitempty"`
	Refresh    bool    `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Labels  bool     `json:"labels,omitempty"`
	Padding float64  `json:"padding,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Items are the loaded item sizes.
	Items []column.Item

	// Spacing and ColumnLimit are the effective layout parameters after
	// manifest and override merging.
	Spacing     column.Spacing
	ColumnLimit int

	// InputHash is the content hash of the solve input.
	InputHash string

	// Solve is the computed partition.
	Solve column.Result

	// Layouts is the per-item geometry derived from the partition.
	Layouts []column.ItemLayout

	// Method is the method that produced the partition.
	Method column.Method

	// Iterations is the bisection count when Method is binsearch.
	Iterations int

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount   int
	ColumnCount int
	LoadTime    time.Duration
	SolveTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SolveHit  bool // Whether the partition came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMethod checks that a method name is valid.
func ValidateMethod(method string) error {
	if _, err := column.ParseMethod(method); err != nil {
		return err
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForSolve(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for the load stage.
func (o *Options) ValidateForLoad() error {
	if o.ManifestPath == "" && len(o.Items) == 0 {
		return fmt.Errorf("manifest_path or items is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForSolve validates and sets defaults for the solve stage.
func (o *Options) ValidateForSolve() error {
	if o.Method == "" {
		o.Method = DefaultMethod
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidateMethod(o.Method)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SolveKeyOpts returns cache key options for the solve stage.
func (o *Options) SolveKeyOpts() cache.SolveKeyOpts {
	spacing := column.Spacing{}
	if o.Spacing != nil {
		spacing = *o.Spacing
	}
	return cache.SolveKeyOpts{
		Method:      o.Method,
		WidthLimit:  o.WidthLimit,
		ColumnLimit: o.ColumnLimit,
		RowSpace:    spacing.Row,
		ColumnSpace: spacing.Column,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Scale:  o.Scale,
	}
}
