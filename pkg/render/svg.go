package render

import (
	"bytes"
	"fmt"

	"github.com/mhartvig/colstack/pkg/column"
)

// Style controls the visual appearance of rendered layouts.
// Implementations draw individual SVG fragments into a shared buffer.
type Style interface {
	// RenderDefs writes SVG <defs> content shared by all items.
	RenderDefs(buf *bytes.Buffer)
	// RenderItem writes the SVG for a single positioned item.
	RenderItem(buf *bytes.Buffer, b Box)
	// RenderLabel writes the SVG for an item's index label.
	RenderLabel(buf *bytes.Buffer, b Box)
}

// Box carries everything a Style needs to draw one item.
type Box struct {
	Index      int     // position in the original sequence
	Column     int     // column the item landed in
	X, Y, W, H float64 // rendered geometry
	CX, CY     float64 // center, for label placement
}

// Option configures the SVG renderer.
type Option func(*renderer)

type renderer struct {
	style   Style
	scale   float64
	padding float64
	labels  bool
}

// WithStyle sets the rendering style. Defaults to [Flat].
func WithStyle(s Style) Option { return func(r *renderer) { r.style = s } }

// WithScale multiplies all coordinates by the given factor.
func WithScale(scale float64) Option { return func(r *renderer) { r.scale = scale } }

// WithPadding adds whitespace around the layout, in layout units.
func WithPadding(padding float64) Option { return func(r *renderer) { r.padding = padding } }

// WithLabels draws each item's sequence index at its center.
func WithLabels() Option { return func(r *renderer) { r.labels = true } }

// SVG renders positioned items as a standalone SVG document. The result
// describes which segment each item belongs to; layouts carry the
// geometry derived for the same solve.
func SVG(result column.Result, layouts []column.ItemLayout, opts ...Option) []byte {
	r := renderer{style: Flat{}, scale: 1}
	for _, opt := range opts {
		opt(&r)
	}

	boxes := buildBoxes(result, layouts, r.scale, r.padding)

	var width, height float64
	for _, b := range boxes {
		width = max(width, b.X+b.W)
		height = max(height, b.Y+b.H)
	}
	width += r.padding * r.scale
	height += r.padding * r.scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	r.style.RenderDefs(&buf)
	for _, b := range boxes {
		r.style.RenderItem(&buf, b)
	}
	if r.labels {
		for _, b := range boxes {
			r.style.RenderLabel(&buf, b)
		}
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func buildBoxes(result column.Result, layouts []column.ItemLayout, scale, padding float64) []Box {
	boxes := make([]Box, len(layouts))
	for i, l := range layouts {
		b := Box{
			Index:  i,
			Column: columnOf(result, i),
			X:      (l.X + padding) * scale,
			Y:      (l.Y + padding) * scale,
			W:      l.Width * scale,
			H:      l.Height * scale,
		}
		b.CX = b.X + b.W/2
		b.CY = b.Y + b.H/2
		boxes[i] = b
	}
	return boxes
}

func columnOf(result column.Result, item int) int {
	for c, seg := range result.Segments {
		if item >= seg.Start && item <= seg.End {
			return c
		}
	}
	return 0
}
