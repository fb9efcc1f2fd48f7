package column

import (
	"math"
	"sync"

	"github.com/mhartvig/colstack/pkg/errors"
)

// tolerance absorbs floating-point drift in width/height comparisons.
const tolerance = 1e-6

// segmentPool recycles scratch segment slices across solves. Solvers append
// into a pooled slice and copy the final partition out before release, so no
// state leaks between calls.
var segmentPool = sync.Pool{
	New: func() any {
		s := make([]Segment, 0, 16)
		return &s
	},
}

func acquireSegments() *[]Segment {
	s := segmentPool.Get().(*[]Segment)
	*s = (*s)[:0]
	return s
}

func releaseSegments(s *[]Segment) {
	segmentPool.Put(s)
}

// validWidth reports whether any multi-column arrangement can satisfy the
// width limit: true iff the single widest item fits. A limit of +Inf is
// unconstrained.
func validWidth(m *Metrics, widthLimit float64) bool {
	if math.IsInf(widthLimit, 1) {
		return true
	}
	return m.MaxItemWidth() <= widthLimit+tolerance
}

// singleColumn returns the trivial one-segment partition over all items.
// It is the universal fallback: used when only one column is allowed, when
// there is a single item, and when the width limit is infeasible.
func singleColumn(m *Metrics) Result {
	n := m.Len()
	return Result{
		UsedWidth: m.MaxItemWidth(),
		MinHeight: m.TotalHeight(),
		Segments:  []Segment{{Start: 0, End: n - 1}},
	}
}

// usedWidth computes the total width of a partition: the sum of column
// content widths plus column spacing between adjacent columns.
func usedWidth(m *Metrics, colSpace float64, segs []Segment) float64 {
	var w float64
	for i, seg := range segs {
		if i > 0 {
			w += colSpace
		}
		w += m.ColumnWidth(seg.Start, seg.End)
	}
	return w
}

// maxHeight computes the height of the tallest column in a partition.
func maxHeight(m *Metrics, segs []Segment) float64 {
	var h float64
	for _, seg := range segs {
		if ch := m.ColumnHeight(seg.Start, seg.End); ch > h {
			h = ch
		}
	}
	return h
}

// finishResult fills in the bounding box for a set of segments.
func finishResult(m *Metrics, colSpace float64, segs []Segment) Result {
	return Result{
		UsedWidth: usedWidth(m, colSpace, segs),
		MinHeight: maxHeight(m, segs),
		Segments:  segs,
	}
}

// verifyResult checks a partition for structural and metric consistency:
// segments must be contiguous, non-overlapping, cover [0, n-1] exactly once
// in order, number at most columnLimit, and the recorded bounding box must
// match the recomputed metrics within tolerance. A failure indicates a
// solver defect, not a legitimate runtime condition.
func verifyResult(m *Metrics, colSpace float64, columnLimit int, r Result) error {
	n := m.Len()
	if len(r.Segments) == 0 {
		return errors.New(errors.ErrCodeInternal, "result has no segments")
	}
	if len(r.Segments) > columnLimit {
		return errors.New(errors.ErrCodeInternal,
			"result has %d segments, column limit is %d", len(r.Segments), columnLimit)
	}

	next := 0
	for i, seg := range r.Segments {
		if seg.Start != next {
			return errors.New(errors.ErrCodeInternal,
				"segment %d starts at %d, want %d", i, seg.Start, next)
		}
		if seg.End < seg.Start {
			return errors.New(errors.ErrCodeInternal,
				"segment %d is empty (%d..%d)", i, seg.Start, seg.End)
		}
		next = seg.End + 1
	}
	if next != n {
		return errors.New(errors.ErrCodeInternal,
			"segments cover [0, %d), want [0, %d)", next, n)
	}

	if w := usedWidth(m, colSpace, r.Segments); math.Abs(w-r.UsedWidth) > tolerance {
		return errors.New(errors.ErrCodeInternal,
			"recorded used width %g, recomputed %g", r.UsedWidth, w)
	}
	if h := maxHeight(m, r.Segments); math.Abs(h-r.MinHeight) > tolerance {
		return errors.New(errors.ErrCodeInternal,
			"recorded min height %g, recomputed %g", r.MinHeight, h)
	}
	return nil
}

// itemLayouts derives per-item draw geometry from a partition. Each column
// occupies the running x-offset of the columns before it; items stretch to
// their column's content width and stack downward with row spacing.
func itemLayouts(m *Metrics, sp Spacing, r Result) []ItemLayout {
	out := make([]ItemLayout, m.Len())
	var x float64
	for ci, seg := range r.Segments {
		if ci > 0 {
			x += sp.Column
		}
		colWidth := m.ColumnWidth(seg.Start, seg.End)
		var y float64
		for i := seg.Start; i <= seg.End; i++ {
			if i > seg.Start {
				y += sp.Row
			}
			it := m.Item(i)
			out[i] = ItemLayout{X: x, Y: y, Width: colWidth, Height: it.Height}
			y += it.Height
		}
		x += colWidth
	}
	return out
}
