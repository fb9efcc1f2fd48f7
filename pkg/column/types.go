package column

import (
	"github.com/mhartvig/colstack/pkg/errors"
)

// Item is a measured rectangular element. Its index in the input sequence is
// its identity; order is significant and fixed for the lifetime of an engine.
type Item struct {
	Width  float64 `json:"width" bson:"width" toml:"width"`
	Height float64 `json:"height" bson:"height" toml:"height"`
}

// Spacing holds the gaps inserted between stacked items inside one column
// (Row) and between adjacent columns (Column). Both must be >= 0.
type Spacing struct {
	Row    float64 `json:"row" bson:"row" toml:"row"`
	Column float64 `json:"column" bson:"column" toml:"column"`
}

// Segment is an inclusive, zero-based index range assigning a contiguous,
// non-empty run of items to one column.
type Segment struct {
	Start int `json:"start" bson:"start"`
	End   int `json:"end" bson:"end"`
}

// Count returns the number of items in the segment.
func (s Segment) Count() int { return s.End - s.Start + 1 }

// Result is a chosen partition and its bounding box. UsedWidth is the sum of
// column content widths plus column spacing between them; MinHeight is the
// tallest column.
type Result struct {
	UsedWidth float64   `json:"used_width" bson:"used_width"`
	MinHeight float64   `json:"min_height" bson:"min_height"`
	Segments  []Segment `json:"segments" bson:"segments"`
}

// Columns returns the number of columns in the result.
func (r Result) Columns() int { return len(r.Segments) }

// ItemLayout is the derived placement for one item in panel-local
// coordinates with a top-left origin. Items stretch to their column's
// content width.
type ItemLayout struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Method selects the solving algorithm.
type Method int

const (
	// MethodDynamicProgramming is the exact solver.
	MethodDynamicProgramming Method = iota

	// MethodGreedy is the fast approximate solver.
	MethodGreedy

	// MethodBinarySearch is the balanced height-threshold solver.
	MethodBinarySearch
)

// String returns the canonical name of the method.
func (m Method) String() string {
	switch m {
	case MethodDynamicProgramming:
		return "dp"
	case MethodGreedy:
		return "greedy"
	case MethodBinarySearch:
		return "binsearch"
	default:
		return "unknown"
	}
}

// ParseMethod converts a method name to a Method. It accepts the canonical
// names ("dp", "greedy", "binsearch") plus common long forms.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "dp", "dynamic", "dynamic-programming":
		return MethodDynamicProgramming, nil
	case "greedy":
		return MethodGreedy, nil
	case "binsearch", "binary-search", "bisect":
		return MethodBinarySearch, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidMethod,
			"invalid method: %q (must be one of: dp, greedy, binsearch)", s)
	}
}

// Methods lists all solving methods in canonical order.
func Methods() []Method {
	return []Method{MethodDynamicProgramming, MethodGreedy, MethodBinarySearch}
}
