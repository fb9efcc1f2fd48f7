package column

import (
	"math"
	"testing"

	"github.com/mhartvig/colstack/pkg/errors"
)

func TestNewEngineValidation(t *testing.T) {
	items := []Item{{Width: 10, Height: 10}}

	tests := []struct {
		name     string
		items    []Item
		spacing  Spacing
		limit    int
		wantCode errors.Code
	}{
		{name: "valid", items: items, spacing: Spacing{Row: 4, Column: 8}, limit: 3},
		{name: "empty items accepted", items: nil, spacing: Spacing{}, limit: 1},
		{name: "zero limit", items: items, spacing: Spacing{}, limit: 0, wantCode: errors.ErrCodeInvalidConfig},
		{name: "negative row spacing", items: items, spacing: Spacing{Row: -1}, limit: 2, wantCode: errors.ErrCodeInvalidConfig},
		{name: "negative column spacing", items: items, spacing: Spacing{Column: -1}, limit: 2, wantCode: errors.ErrCodeInvalidConfig},
		{name: "NaN item", items: []Item{{Width: math.NaN(), Height: 1}}, spacing: Spacing{}, limit: 2, wantCode: errors.ErrCodeInvalidItem},
		{name: "negative item", items: []Item{{Width: -5, Height: 1}}, spacing: Spacing{}, limit: 2, wantCode: errors.ErrCodeInvalidItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(tt.items, tt.spacing, tt.limit)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("NewEngine() error = %v, want nil", err)
				}
				return
			}
			if errors.GetCode(err) != tt.wantCode {
				t.Errorf("GetCode() = %v, want %v", errors.GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestEngineSolveEmptyItems(t *testing.T) {
	e, err := NewEngine(nil, Spacing{}, 2)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if _, err := e.Solve(math.Inf(1)); errors.GetCode(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("Solve() error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func TestEngineSolveInvalidWidthLimit(t *testing.T) {
	e := mustEngine(t, galleryItems, Spacing{Row: 4, Column: 8}, 3)

	for _, wl := range []float64{-1, math.Inf(-1), math.NaN()} {
		if _, err := e.Solve(wl); err == nil {
			t.Errorf("Solve(%v) error = nil, want INVALID_CONFIG", wl)
		}
	}
}

func TestEngineAccessorsBeforeSolve(t *testing.T) {
	e := mustEngine(t, galleryItems, Spacing{}, 3)

	if _, err := e.LastResult(); errors.GetCode(err) != errors.ErrCodeNotSolved {
		t.Errorf("LastResult() error code = %v, want %v", errors.GetCode(err), errors.ErrCodeNotSolved)
	}
	if _, err := e.LastSegments(); errors.GetCode(err) != errors.ErrCodeNotSolved {
		t.Errorf("LastSegments() error code = %v, want %v", errors.GetCode(err), errors.ErrCodeNotSolved)
	}
	if _, err := e.LastItemLayouts(); errors.GetCode(err) != errors.ErrCodeNotSolved {
		t.Errorf("LastItemLayouts() error code = %v, want %v", errors.GetCode(err), errors.ErrCodeNotSolved)
	}
}

func TestEngineSolveIdempotent(t *testing.T) {
	for _, method := range Methods() {
		t.Run(method.String(), func(t *testing.T) {
			e := mustEngine(t, galleryItems, Spacing{Row: 4, Column: 8}, 3)
			e.SetMethod(method)

			first, err := e.Solve(800)
			if err != nil {
				t.Fatalf("Solve() error = %v", err)
			}
			second, err := e.Solve(800)
			if err != nil {
				t.Fatalf("Solve() error = %v", err)
			}

			if first.UsedWidth != second.UsedWidth || first.MinHeight != second.MinHeight {
				t.Errorf("repeated Solve() = (%v, %v), first was (%v, %v)",
					second.UsedWidth, second.MinHeight, first.UsedWidth, first.MinHeight)
			}
			if !equalSegments(first.Segments, second.Segments) {
				t.Errorf("repeated Solve() segments = %v, first was %v", second.Segments, first.Segments)
			}
		})
	}
}

func TestEngineSingleItem(t *testing.T) {
	for _, limit := range []int{1, 4} {
		e := mustEngine(t, []Item{{Width: 120, Height: 80}}, Spacing{Row: 4, Column: 8}, limit)

		r, err := e.Solve(math.Inf(1))
		if err != nil {
			t.Fatalf("Solve() error = %v", err)
		}
		if r.Columns() != 1 {
			t.Errorf("Columns() = %d, want 1", r.Columns())
		}
		if r.UsedWidth != 120 || r.MinHeight != 80 {
			t.Errorf("Solve() = (%v, %v), want (120, 80)", r.UsedWidth, r.MinHeight)
		}
	}
}

// TestEngineWidthInfeasibleFallback: a 200-wide item cannot fit a 100-wide
// panel, so the engine must not split into narrower columns. It degrades to
// one overflowing column instead.
func TestEngineWidthInfeasibleFallback(t *testing.T) {
	items := []Item{
		{Width: 50, Height: 10}, {Width: 200, Height: 10}, {Width: 50, Height: 10},
	}

	for _, method := range Methods() {
		t.Run(method.String(), func(t *testing.T) {
			e := mustEngine(t, items, Spacing{}, 3)
			e.SetMethod(method)

			r, err := e.Solve(100)
			if err != nil {
				t.Fatalf("Solve() error = %v", err)
			}
			if r.Columns() != 1 {
				t.Fatalf("Columns() = %d, want 1", r.Columns())
			}
			if r.UsedWidth != 200 {
				t.Errorf("UsedWidth = %v, want 200", r.UsedWidth)
			}
		})
	}
}

func TestEngineMethodSwitchKeepsCache(t *testing.T) {
	e := mustEngine(t, galleryItems, Spacing{Row: 4, Column: 8}, 3)

	e.SetMethod(MethodGreedy)
	if _, err := e.Solve(math.Inf(1)); err != nil {
		t.Fatalf("greedy Solve() error = %v", err)
	}

	e.SetMethod(MethodDynamicProgramming)
	r, err := e.Solve(math.Inf(1))
	if err != nil {
		t.Fatalf("dp Solve() error = %v", err)
	}
	if math.Abs(r.MinHeight-457) > tolerance {
		t.Errorf("MinHeight after switch = %v, want 457", r.MinHeight)
	}
}

func TestEngineItemLayouts(t *testing.T) {
	// Two columns after the split: items 0-1 then item 2. Column width is
	// the widest member; items stretch to it.
	items := []Item{
		{Width: 30, Height: 10}, {Width: 50, Height: 20}, {Width: 40, Height: 25},
	}
	e := mustEngine(t, items, Spacing{Row: 4, Column: 8}, 2)
	e.SetMethod(MethodDynamicProgramming)

	if _, err := e.Solve(math.Inf(1)); err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	layouts, err := e.LastItemLayouts()
	if err != nil {
		t.Fatalf("LastItemLayouts() error = %v", err)
	}
	if len(layouts) != len(items) {
		t.Fatalf("len(layouts) = %d, want %d", len(layouts), len(items))
	}

	want := []ItemLayout{
		{X: 0, Y: 0, Width: 50, Height: 10},
		{X: 0, Y: 14, Width: 50, Height: 20},
		{X: 58, Y: 0, Width: 40, Height: 25},
	}
	for i, got := range layouts {
		if got != want[i] {
			t.Errorf("layouts[%d] = %+v, want %+v", i, got, want[i])
		}
	}
}

func TestEngineIterationsDiagnostic(t *testing.T) {
	e := mustEngine(t, galleryItems, Spacing{Row: 4, Column: 8}, 3)

	e.SetMethod(MethodBinarySearch)
	if _, err := e.Solve(math.Inf(1)); err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if e.Iterations() == 0 {
		t.Error("Iterations() = 0 after binary-search solve, want > 0")
	}

	e.SetMethod(MethodGreedy)
	if _, err := e.Solve(math.Inf(1)); err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if e.Iterations() != 0 {
		t.Errorf("Iterations() = %d after greedy solve, want 0", e.Iterations())
	}
}

func TestEngineClearCache(t *testing.T) {
	e := mustEngine(t, galleryItems, Spacing{Row: 4, Column: 8}, 3)
	if _, err := e.Solve(math.Inf(1)); err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	e.ClearCache()

	if _, err := e.LastResult(); errors.GetCode(err) != errors.ErrCodeNotSolved {
		t.Errorf("LastResult() after ClearCache error code = %v, want %v", errors.GetCode(err), errors.ErrCodeNotSolved)
	}

	// Solving again rebuilds the metrics transparently.
	r, err := e.Solve(math.Inf(1))
	if err != nil {
		t.Fatalf("Solve() after ClearCache error = %v", err)
	}
	if math.Abs(r.MinHeight-457) > tolerance {
		t.Errorf("MinHeight = %v, want 457", r.MinHeight)
	}
}

func TestEngineVerify(t *testing.T) {
	e := mustEngine(t, galleryItems, Spacing{Row: 4, Column: 8}, 3)
	r, err := e.Solve(math.Inf(1))
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	if err := e.Verify(r); err != nil {
		t.Errorf("Verify() on solver output = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(Result) Result
	}{
		{
			name: "gap in coverage",
			mutate: func(r Result) Result {
				r.Segments = []Segment{{Start: 0, End: 3}, {Start: 5, End: 11}}
				return r
			},
		},
		{
			name: "too many columns",
			mutate: func(r Result) Result {
				r.Segments = []Segment{{Start: 0, End: 2}, {Start: 3, End: 5}, {Start: 6, End: 8}, {Start: 9, End: 11}}
				return r
			},
		},
		{
			name: "wrong height",
			mutate: func(r Result) Result {
				r.MinHeight += 10
				return r
			},
		},
		{
			name: "wrong width",
			mutate: func(r Result) Result {
				r.UsedWidth -= 10
				return r
			},
		},
		{
			name: "no segments",
			mutate: func(r Result) Result {
				r.Segments = nil
				return r
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := e.Verify(tt.mutate(r)); err == nil {
				t.Error("Verify() = nil, want error")
			}
		})
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{in: "dp", want: MethodDynamicProgramming},
		{in: "dynamic-programming", want: MethodDynamicProgramming},
		{in: "greedy", want: MethodGreedy},
		{in: "binsearch", want: MethodBinarySearch},
		{in: "binary-search", want: MethodBinarySearch},
		{in: "simplex", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMethod(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMethod(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseMethod(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func mustEngine(t *testing.T, items []Item, sp Spacing, limit int) *Engine {
	t.Helper()
	e, err := NewEngine(items, sp, limit)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}
