package column_test

import (
	"fmt"
	"math"

	"github.com/mhartvig/colstack/pkg/column"
)

func ExampleEngine() {
	items := []column.Item{
		{Width: 10, Height: 10}, {Width: 10, Height: 10}, {Width: 10, Height: 10},
		{Width: 10, Height: 10}, {Width: 10, Height: 10}, {Width: 10, Height: 10},
	}

	engine, _ := column.NewEngine(items, column.Spacing{}, 3)
	result, _ := engine.Solve(math.Inf(1))

	fmt.Println("columns:", result.Columns())
	fmt.Println("height:", result.MinHeight)
	fmt.Println("width:", result.UsedWidth)
	// Output:
	// columns: 3
	// height: 20
	// width: 30
}

func ExampleEngine_SetMethod() {
	items := []column.Item{
		{Width: 100, Height: 30}, {Width: 100, Height: 10}, {Width: 100, Height: 20},
		{Width: 100, Height: 40}, {Width: 100, Height: 10}, {Width: 100, Height: 50},
		{Width: 100, Height: 20}, {Width: 100, Height: 30},
	}

	engine, _ := column.NewEngine(items, column.Spacing{}, 3)

	// Exact solver for final layouts.
	engine.SetMethod(column.MethodDynamicProgramming)
	exact, _ := engine.Solve(math.Inf(1))

	// Fast heuristic for interactive resizing. Switching reuses the
	// shared metrics cache.
	engine.SetMethod(column.MethodGreedy)
	fast, _ := engine.Solve(math.Inf(1))

	fmt.Println("exact height:", exact.MinHeight)
	fmt.Println("greedy within bound:", fast.MinHeight >= exact.MinHeight)
	// Output:
	// exact height: 100
	// greedy within bound: true
}

func ExampleEngine_LastItemLayouts() {
	items := []column.Item{
		{Width: 30, Height: 10}, {Width: 50, Height: 20}, {Width: 40, Height: 25},
	}

	engine, _ := column.NewEngine(items, column.Spacing{Row: 4, Column: 8}, 2)
	engine.SetMethod(column.MethodDynamicProgramming)
	_, _ = engine.Solve(math.Inf(1))

	layouts, _ := engine.LastItemLayouts()
	for i, l := range layouts {
		fmt.Printf("item %d at (%g, %g) size %gx%g\n", i, l.X, l.Y, l.Width, l.Height)
	}
	// Output:
	// item 0 at (0, 0) size 50x10
	// item 1 at (0, 14) size 50x20
	// item 2 at (58, 0) size 40x25
}

func ExampleParseMethod() {
	m, _ := column.ParseMethod("binsearch")
	fmt.Println(m)

	_, err := column.ParseMethod("simplex")
	fmt.Println(err != nil)
	// Output:
	// binsearch
	// true
}
