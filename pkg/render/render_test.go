package render

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mhartvig/colstack/pkg/column"
)

func solvedFixture(t *testing.T) (column.Result, []column.ItemLayout, *column.Engine) {
	t.Helper()

	items := []column.Item{
		{Width: 50, Height: 10},
		{Width: 50, Height: 20},
		{Width: 40, Height: 25},
	}
	engine, err := column.NewEngine(items, column.Spacing{Row: 4, Column: 8}, 2)
	if err != nil {
		t.Fatal(err)
	}
	engine.SetMethod(column.MethodDynamicProgramming)
	result, err := engine.Solve(math.Inf(1))
	if err != nil {
		t.Fatal(err)
	}
	layouts, err := engine.LastItemLayouts()
	if err != nil {
		t.Fatal(err)
	}
	return result, layouts, engine
}

func TestSVG(t *testing.T) {
	result, layouts, _ := solvedFixture(t)

	svg := string(SVG(result, layouts))

	if !strings.HasPrefix(svg, "<svg xmlns=") {
		t.Errorf("missing svg header: %q", svg[:40])
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("missing closing tag")
	}
	if got := strings.Count(svg, "<rect"); got != len(layouts) {
		t.Errorf("rect count = %d, want %d", got, len(layouts))
	}
	// Labels are opt-in.
	if strings.Contains(svg, "<text") {
		t.Error("labels rendered without WithLabels")
	}
}

func TestSVGOptions(t *testing.T) {
	result, layouts, _ := solvedFixture(t)

	svg := string(SVG(result, layouts, WithLabels(), WithScale(2), WithPadding(10)))

	if got := strings.Count(svg, "<text"); got != len(layouts) {
		t.Errorf("label count = %d, want %d", got, len(layouts))
	}
	// First item sits at the padding offset, doubled by the scale.
	if !strings.Contains(svg, `x="20.0" y="20.0"`) {
		t.Errorf("scaled padding offset missing from:\n%s", svg)
	}
}

func TestSVGColumnsGetDistinctFills(t *testing.T) {
	result, layouts, _ := solvedFixture(t)

	svg := string(SVG(result, layouts))

	fills := map[string]bool{}
	for _, line := range strings.Split(svg, "\n") {
		if i := strings.Index(line, `fill="#`); i >= 0 {
			fills[line[i+6:i+13]] = true
		}
	}
	if len(fills) != len(result.Segments) {
		t.Errorf("distinct fills = %d, want %d", len(fills), len(result.Segments))
	}
}

func TestJSONRoundTrip(t *testing.T) {
	result, layouts, engine := solvedFixture(t)

	doc := &Document{
		Items:       []column.Item{{Width: 50, Height: 10}, {Width: 50, Height: 20}, {Width: 40, Height: 25}},
		Spacing:     engine.Spacing(),
		ColumnLimit: engine.ColumnLimit(),
		Method:      engine.Method().String(),
		Result:      result,
		Layouts:     layouts,
	}

	var buf bytes.Buffer
	if err := WriteJSON(doc, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if got.Result.MinHeight != doc.Result.MinHeight {
		t.Errorf("MinHeight = %v, want %v", got.Result.MinHeight, doc.Result.MinHeight)
	}
	if len(got.Layouts) != len(doc.Layouts) {
		t.Errorf("len(Layouts) = %d, want %d", len(got.Layouts), len(doc.Layouts))
	}
	if got.Method != "dp" {
		t.Errorf("Method = %q, want dp", got.Method)
	}
}

func TestReadJSONInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"items": [`},
		{"layout count mismatch", `{"items": [{"width":1,"height":1}], "layouts": [{}, {}]}`},
		{"segment out of range", `{"items": [{"width":1,"height":1}], "result": {"segments": [{"start":0,"end":3}]}}`},
		{"segment inverted", `{"items": [{"width":1,"height":1}], "result": {"segments": [{"start":1,"end":0}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestExportImportJSON(t *testing.T) {
	result, layouts, engine := solvedFixture(t)

	doc := &Document{
		Items:       []column.Item{{Width: 50, Height: 10}, {Width: 50, Height: 20}, {Width: 40, Height: 25}},
		Spacing:     engine.Spacing(),
		ColumnLimit: engine.ColumnLimit(),
		Method:      engine.Method().String(),
		Result:      result,
		Layouts:     layouts,
	}

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := ExportJSON(doc, path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if len(got.Items) != 3 {
		t.Errorf("len(Items) = %d, want 3", len(got.Items))
	}
}
