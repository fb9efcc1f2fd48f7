package column

import "math"

// solveGreedy packs items left-to-right against a per-column height
// allowance of totalHeight/k, trying each candidate column count k up to
// the limit and keeping the best feasible candidate. A single linear pass
// per k makes this O(n·m); the result is approximate but typically within
// ten percent of the exact optimum.
func solveGreedy(m *Metrics, colSpace float64, columnLimit int, widthLimit float64) Result {
	n := m.Len()
	maxCols := columnLimit
	if maxCols > n {
		maxCols = n
	}

	total := m.TotalHeight()

	var (
		bestSegs []Segment
		bestH    float64
		found    bool
	)
	for k := 1; k <= maxCols; k++ {
		scratch := acquireSegments()
		segs := packAllowance(m, total/float64(k), maxCols, scratch)

		if !math.IsInf(widthLimit, 1) && usedWidth(m, colSpace, segs) > widthLimit+tolerance {
			releaseSegments(scratch)
			continue
		}
		if h := maxHeight(m, segs); !found || h < bestH-tolerance {
			bestSegs = append(bestSegs[:0], segs...)
			bestH = h
			found = true
		}
		releaseSegments(scratch)
	}

	if !found {
		return singleColumn(m)
	}
	return finishResult(m, colSpace, bestSegs)
}

// packAllowance fills columns while the running column height stays within
// allowance, starting a new column otherwise. The column count never
// exceeds maxCols; once the last allowed column is open, remaining items
// spill into it regardless of the allowance. The returned slice aliases
// *scratch.
func packAllowance(m *Metrics, allowance float64, maxCols int, scratch *[]Segment) []Segment {
	n := m.Len()
	segs := (*scratch)[:0]
	start := 0
	for i := 1; i < n; i++ {
		if len(segs) == maxCols-1 {
			break
		}
		if m.ColumnHeight(start, i) > allowance+tolerance {
			segs = append(segs, Segment{Start: start, End: i - 1})
			start = i
		}
	}
	segs = append(segs, Segment{Start: start, End: n - 1})
	*scratch = segs
	return segs
}
