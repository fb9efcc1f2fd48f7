package column

import (
	"github.com/mhartvig/colstack/pkg/errors"
)

// Engine solves column partitions for one immutable item sequence. It owns
// the shared metrics cache and the last computed result; switching methods
// or width limits reuses the cache, while a different item set, spacing, or
// column limit requires a new Engine.
//
// An Engine is not safe for concurrent Solve calls: it mutates its own
// cache and last-result state. Callers needing parallel solves should use
// separate instances, which are cheap.
type Engine struct {
	items       []Item
	spacing     Spacing
	columnLimit int

	method  Method
	binOpts BinarySearchOptions

	metrics    *Metrics
	last       *Result
	iterations int
}

// NewEngine creates an engine over the given items. The inputs are
// immutable for the instance's lifetime; the item slice is copied. Returns
// an INVALID_CONFIG or INVALID_ITEM coded error for a non-positive column
// limit, negative spacing, or a non-finite or negative item size. An empty
// item list is accepted at construction; Solve rejects it.
func NewEngine(items []Item, spacing Spacing, columnLimit int) (*Engine, error) {
	if err := errors.ValidateColumnLimit(columnLimit); err != nil {
		return nil, err
	}
	if err := errors.ValidateSpacing(spacing.Row, spacing.Column); err != nil {
		return nil, err
	}
	for i, it := range items {
		if err := errors.ValidateItemSize(it.Width, it.Height); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidItem, err, "item %d", i)
		}
	}

	owned := append([]Item(nil), items...)
	return &Engine{
		items:       owned,
		spacing:     spacing,
		columnLimit: columnLimit,
		method:      MethodBinarySearch,
		binOpts:     DefaultBinarySearchOptions(),
		metrics:     NewMetrics(owned, spacing.Row),
	}, nil
}

// Len returns the number of items.
func (e *Engine) Len() int { return len(e.items) }

// Item returns the item at index i.
func (e *Engine) Item(i int) Item { return e.items[i] }

// Spacing returns the configured spacing.
func (e *Engine) Spacing() Spacing { return e.spacing }

// ColumnLimit returns the configured column limit.
func (e *Engine) ColumnLimit() int { return e.columnLimit }

// Method returns the currently selected solving method.
func (e *Engine) Method() Method { return e.method }

// SetMethod selects the solving algorithm. Switching does not invalidate
// the metrics cache; it only makes the next Solve run the new strategy.
func (e *Engine) SetMethod(m Method) {
	e.method = m
}

// BinarySearchOptions returns the current binary-search tuning.
func (e *Engine) BinarySearchOptions() BinarySearchOptions { return e.binOpts }

// SetBinarySearchOptions replaces the binary-search tuning. Invalid options
// are rejected with an INVALID_CONFIG coded error, never clamped.
func (e *Engine) SetBinarySearchOptions(o BinarySearchOptions) error {
	if err := o.Validate(); err != nil {
		return err
	}
	e.binOpts = o
	return nil
}

// Solve computes the partition for the given width limit using the current
// method and caches the result. A width limit of +Inf means unconstrained.
// When the widest item exceeds the limit no multi-column arrangement can
// fit, and the engine degrades to the single-column layout rather than
// failing, because the caller must still render something.
func (e *Engine) Solve(widthLimit float64) (Result, error) {
	if err := errors.ValidateWidthLimit(widthLimit); err != nil {
		return Result{}, err
	}
	if len(e.items) == 0 {
		return Result{}, errors.New(errors.ErrCodeInvalidConfig, "cannot solve with zero items")
	}

	var (
		r          Result
		iterations int
	)
	switch {
	case e.columnLimit == 1, len(e.items) == 1, !validWidth(e.metrics, widthLimit):
		r = singleColumn(e.metrics)
	default:
		switch e.method {
		case MethodDynamicProgramming:
			r = solveDP(e.metrics, e.spacing.Column, e.columnLimit, widthLimit)
		case MethodGreedy:
			r = solveGreedy(e.metrics, e.spacing.Column, e.columnLimit, widthLimit)
		case MethodBinarySearch:
			r, iterations = solveBinarySearch(e.metrics, e.spacing.Column, e.columnLimit, widthLimit, e.binOpts)
		default:
			return Result{}, errors.New(errors.ErrCodeInvalidMethod, "unknown method %d", int(e.method))
		}
	}

	e.last = &r
	e.iterations = iterations
	return r, nil
}

// LastResult returns the most recent solve result. Returns a NOT_SOLVED
// coded error before the first Solve call.
func (e *Engine) LastResult() (Result, error) {
	if e.last == nil {
		return Result{}, errors.New(errors.ErrCodeNotSolved, "no solve has run yet")
	}
	return *e.last, nil
}

// LastSegments returns the column segments of the most recent solve.
func (e *Engine) LastSegments() ([]Segment, error) {
	r, err := e.LastResult()
	if err != nil {
		return nil, err
	}
	return r.Segments, nil
}

// LastItemLayouts derives per-item draw geometry from the most recent
// solve. The returned slice has the same length and order as the input
// items; geometry is recomputed on each call, never persisted.
func (e *Engine) LastItemLayouts() ([]ItemLayout, error) {
	r, err := e.LastResult()
	if err != nil {
		return nil, err
	}
	return itemLayouts(e.metrics, e.spacing, r), nil
}

// Iterations returns the bisection count of the most recent binary-search
// solve, for diagnostics. Zero for other methods.
func (e *Engine) Iterations() int { return e.iterations }

// Verify checks a result against this engine's metrics and column limit.
// A failure indicates a solver defect; it is exposed for tests and internal
// sanity guards, not as an expected runtime condition.
func (e *Engine) Verify(r Result) error {
	return verifyResult(e.metrics, e.spacing.Column, e.columnLimit, r)
}

// ClearCache drops the metrics cache and the last result. This is a
// defensive reset; the default usage pattern of constructing a fresh engine
// per item set never needs it.
func (e *Engine) ClearCache() {
	e.metrics.Clear()
	e.last = nil
	e.iterations = 0
}
