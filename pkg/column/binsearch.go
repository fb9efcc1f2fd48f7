package column

import (
	"math"

	"github.com/mhartvig/colstack/pkg/errors"
)

// Default binary-search tuning values.
const (
	DefaultEpsilon         = 1e-3
	DefaultMaxIterations   = 100
	DefaultLowerBoundRatio = 0.95
)

// BinarySearchOptions tunes the height-threshold search.
type BinarySearchOptions struct {
	// Epsilon is the convergence threshold on the height interval.
	Epsilon float64 `json:"epsilon"`

	// MaxIterations bounds the bisection loop, guaranteeing termination
	// even without numerical convergence.
	MaxIterations int `json:"max_iterations"`

	// LowerBoundRatio scales the initial lower bound to
	// ratio * upperBound / columnLimit. This is a search-acceleration
	// heuristic, not a correctness requirement: a lower bound that proves
	// wrong is widened before the search starts.
	LowerBoundRatio float64 `json:"lower_bound_ratio"`
}

// DefaultBinarySearchOptions returns the standard tuning.
func DefaultBinarySearchOptions() BinarySearchOptions {
	return BinarySearchOptions{
		Epsilon:         DefaultEpsilon,
		MaxIterations:   DefaultMaxIterations,
		LowerBoundRatio: DefaultLowerBoundRatio,
	}
}

// Validate checks each option independently. Invalid values are rejected,
// never clamped.
func (o BinarySearchOptions) Validate() error {
	if math.IsNaN(o.Epsilon) || o.Epsilon <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "epsilon must be > 0, got %g", o.Epsilon)
	}
	if o.MaxIterations <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max iterations must be > 0, got %d", o.MaxIterations)
	}
	if math.IsNaN(o.LowerBoundRatio) || o.LowerBoundRatio <= 0 || o.LowerBoundRatio > 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"lower bound ratio must be in (0, 1], got %g", o.LowerBoundRatio)
	}
	return nil
}

// solveBinarySearch bisects the maximum allowed column height. For a fixed
// cap H the greedy feasibility scan yields the minimum column count keeping
// every column under H, and that count is non-increasing in H, so the
// smallest feasible H can be bisected. Returns the result and the number of
// iterations performed for diagnostics. O(n·log(H/epsilon)).
func solveBinarySearch(m *Metrics, colSpace float64, columnLimit int, widthLimit float64, opts BinarySearchOptions) (Result, int) {
	upper := m.TotalHeight()
	lower := opts.LowerBoundRatio * upper / float64(columnLimit)

	// The heuristic lower bound assumes near-even splitting. If it proves
	// feasible the true optimum may sit below it; widen to zero so the
	// bisection brackets it.
	if cols, ok := requiredColumns(m, lower); ok && cols <= columnLimit {
		lower = 0
	}

	bestH := upper
	iterations := 0
	for iterations < opts.MaxIterations && upper-lower > opts.Epsilon {
		iterations++
		mid := lower + (upper-lower)/2
		if cols, ok := requiredColumns(m, mid); ok && cols <= columnLimit {
			bestH = mid
			upper = mid
		} else {
			lower = mid
		}
	}

	scratch := acquireSegments()
	segs := materializeSegments(m, bestH, columnLimit, scratch)
	out := append([]Segment(nil), segs...)
	releaseSegments(scratch)

	if !math.IsInf(widthLimit, 1) && usedWidth(m, colSpace, out) > widthLimit+tolerance {
		return singleColumn(m), iterations
	}
	return finishResult(m, colSpace, out), iterations
}

// requiredColumns runs the feasibility scan: the minimum number of columns
// such that no column's height exceeds maxH. Returns ok=false when a single
// item alone already exceeds maxH, in which case no column count works.
func requiredColumns(m *Metrics, maxH float64) (int, bool) {
	n := m.Len()
	cols := 1
	start := 0
	for i := 0; i < n; i++ {
		if m.Item(i).Height > maxH+tolerance {
			return 0, false
		}
		if i > start && m.ColumnHeight(start, i) > maxH+tolerance {
			cols++
			start = i
		}
	}
	return cols, true
}

// materializeSegments runs the feasibility scan once more at the final height cap
// and records the actual segments. Should the cap be slightly infeasible,
// remaining items spill into the last allowed column so the partition never
// exceeds maxCols.
func materializeSegments(m *Metrics, maxH float64, maxCols int, scratch *[]Segment) []Segment {
	n := m.Len()
	segs := (*scratch)[:0]
	start := 0
	for i := 1; i < n; i++ {
		if len(segs) == maxCols-1 {
			break
		}
		if m.ColumnHeight(start, i) > maxH+tolerance {
			segs = append(segs, Segment{Start: start, End: i - 1})
			start = i
		}
	}
	segs = append(segs, Segment{Start: start, End: n - 1})
	*scratch = segs
	return segs
}
