package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mhartvig/colstack/pkg/column"
)

// Document is the JSON layout artifact: the solve inputs alongside the
// computed result and per-item geometry. A document round-trips through
// [WriteJSON] and [ReadJSON].
type Document struct {
	Items       []column.Item       `json:"items"`
	Spacing     column.Spacing      `json:"spacing"`
	ColumnLimit int                 `json:"column_limit"`
	WidthLimit  float64             `json:"width_limit,omitempty"`
	Method      string              `json:"method"`
	Result      column.Result       `json:"result"`
	Layouts     []column.ItemLayout `json:"layouts"`
}

// WriteJSON encodes a layout document as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a layout document to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(doc, f)
}

// ReadJSON decodes a layout document from r.
//
// ReadJSON validates the structural relationship between the parts:
// every layout must correspond to an item, and every segment must
// reference valid item indices. It does not re-verify the solve itself;
// use [column.Engine.Verify] for that.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if len(doc.Layouts) != 0 && len(doc.Layouts) != len(doc.Items) {
		return nil, fmt.Errorf("document has %d layouts for %d items", len(doc.Layouts), len(doc.Items))
	}
	for i, seg := range doc.Result.Segments {
		if seg.Start < 0 || seg.End >= len(doc.Items) || seg.Start > seg.End {
			return nil, fmt.Errorf("segment %d: invalid range [%d,%d] for %d items", i, seg.Start, seg.End, len(doc.Items))
		}
	}

	return &doc, nil
}

// ImportJSON reads a JSON file at path and returns the decoded document.
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
