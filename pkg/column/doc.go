// Package column partitions an ordered sequence of rectangular items into a
// bounded number of vertical columns so that the rendered height is minimal
// under an available-width constraint.
//
// # The Partition Problem
//
// Items keep their input order and column membership must be contiguous: a
// column is always a run of consecutive indices. Columns render as parallel
// vertical stacks starting at the same top edge, so the overall height is
// the tallest column, not the sum. Finding the split points that minimize
// that tallest column is the classic linear-partition problem.
//
// This package provides multiple algorithms with different tradeoffs:
//
//   - [MethodDynamicProgramming]: Exact, O(n²·m) for m allowed columns
//   - [MethodGreedy]: Fast single-pass heuristic, O(n·m)
//   - [MethodBinarySearch]: Near-optimal height-threshold search, O(n·log H)
//
// # Dynamic Programming
//
// The exact solver fills the classic recurrence
//
//	dp[i][k] = min over j<i of max(dp[j][k-1], columnHeight(j, i-1))
//
// with back-pointers to recover the split, evaluates every feasible column
// count, and keeps the one with the smallest height. Ties prefer fewer
// columns: the result is visually simpler and leaves more width headroom.
//
// # Greedy
//
// The greedy solver tries each candidate column count k and packs items
// left-to-right against a per-column allowance of totalHeight/k. It trades
// optimality for a linear pass per candidate and typically lands within ten
// percent of the exact height.
//
// # Binary Search
//
// The balanced solver exploits monotonicity: for a fixed height cap H, a
// greedy left-to-right scan yields the minimum number of columns keeping
// every column under H, and that count only shrinks as H grows. Bisecting H
// between the tallest-possible single column and a heuristic lower bound
// converges to within a configurable epsilon, usually within one percent of
// the exact optimum.
//
// # Shared Metrics
//
// All solvers answer height and width queries through a [Metrics] cache:
// prefix height sums and a sparse range-maximum table give O(1) answers
// after linearithmic preprocessing, shared across algorithm switches on the
// same [Engine].
//
// # Usage
//
//	engine, err := column.NewEngine(items, column.Spacing{Row: 4, Column: 8}, 4)
//	if err != nil {
//	    return err
//	}
//	engine.SetMethod(column.MethodBinarySearch)
//	result, err := engine.Solve(800)
//	if err != nil {
//	    return err
//	}
//	layouts, _ := engine.LastItemLayouts() // per-item (x, y, w, h)
//
// A width limit of +Inf means unconstrained. When even a single item is
// wider than the limit no multi-column arrangement can fit, and every
// solver degrades to the single-column layout so callers always receive a
// usable (if overflowing) result.
//
// # Algorithm Selection
//
// Use greedy for:
//   - Interactive resizing where solves run on every frame
//   - Large item counts where "good enough" suffices
//
// Use binary search for:
//   - The default quality/speed balance
//
// Use dynamic programming for:
//   - Final layouts where the exact minimum matters
//   - Small to medium item counts
package column
