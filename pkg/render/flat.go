package render

import (
	"bytes"
	"fmt"
)

// columnPalette cycles per column so adjacent columns stay visually
// distinct.
var columnPalette = []string{
	"#4c6ef5", "#f59f00", "#40c057", "#e64980",
	"#15aabf", "#fa5252", "#7950f2", "#82c91e",
}

// Flat is the default style: solid fills keyed by column, a thin
// stroke, and plain index labels.
type Flat struct{}

func (Flat) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <style>
    .item { stroke: #343a40; stroke-width: 1; fill-opacity: 0.85; }
    .label { font-family: monospace; font-size: 11px; fill: #212529; text-anchor: middle; dominant-baseline: central; }
  </style>
`)
}

func (Flat) RenderItem(buf *bytes.Buffer, b Box) {
	fill := columnPalette[b.Column%len(columnPalette)]
	fmt.Fprintf(buf, `  <rect class="item" id="item-%d" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		b.Index, b.X, b.Y, b.W, b.H, fill)
}

func (Flat) RenderLabel(buf *bytes.Buffer, b Box) {
	fmt.Fprintf(buf, `  <text class="label" data-item="%d" x="%.1f" y="%.1f">%d</text>`+"\n",
		b.Index, b.CX, b.CY, b.Index)
}
