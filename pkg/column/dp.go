package column

import "math"

// solveDP finds the optimal partition by dynamic programming. For every
// candidate column count k it computes the minimal achievable tallest
// column over all ways to split the sequence into exactly k contiguous
// non-empty groups, recovers the split through back-pointers, and keeps the
// best k whose total width fits the limit. Ties on height prefer fewer
// columns. O(n²·m) time for m allowed columns.
func solveDP(m *Metrics, colSpace float64, columnLimit int, widthLimit float64) Result {
	n := m.Len()
	maxCols := columnLimit
	if maxCols > n {
		maxCols = n
	}

	inf := math.Inf(1)

	// dp[k][i] is the minimal tallest column splitting the first i items
	// into exactly k columns; cut[k][i] is the start of the last column.
	dp := make([][]float64, maxCols+1)
	cut := make([][]int, maxCols+1)
	for k := 0; k <= maxCols; k++ {
		dp[k] = make([]float64, n+1)
		cut[k] = make([]int, n+1)
		for i := 0; i <= n; i++ {
			dp[k][i] = inf
		}
	}
	dp[0][0] = 0

	for k := 1; k <= maxCols; k++ {
		for i := k; i <= n; i++ {
			// Last column is items[j..i-1]; at least one item per column
			// bounds j to [k-1, i-1].
			for j := k - 1; j < i; j++ {
				if dp[k-1][j] == inf {
					continue
				}
				h := m.ColumnHeight(j, i-1)
				if dp[k-1][j] > h {
					h = dp[k-1][j]
				}
				if h < dp[k][i] {
					dp[k][i] = h
					cut[k][i] = j
				}
			}
		}
	}

	var (
		bestSegs []Segment
		bestH    = inf
		found    bool
	)
	for k := 1; k <= maxCols; k++ {
		if dp[k][n] == inf {
			continue
		}
		segs := recoverSegments(cut, k, n)
		if !math.IsInf(widthLimit, 1) && usedWidth(m, colSpace, segs) > widthLimit+tolerance {
			continue
		}
		// Strict improvement only: with k ascending this prefers the
		// smallest column count among equal heights.
		if !found || dp[k][n] < bestH-tolerance {
			bestSegs = segs
			bestH = dp[k][n]
			found = true
		}
	}

	if !found {
		return singleColumn(m)
	}
	return finishResult(m, colSpace, bestSegs)
}

// recoverSegments walks the back-pointer table from dp[k][n] to the start.
func recoverSegments(cut [][]int, k, n int) []Segment {
	segs := make([]Segment, k)
	end := n
	for c := k; c >= 1; c-- {
		start := cut[c][end]
		segs[c-1] = Segment{Start: start, End: end - 1}
		end = start
	}
	return segs
}
