// Package render turns solved column layouts into output artifacts.
//
// Two artifact formats are supported:
//
//   - SVG: a visual rendering of the positioned items, one rectangle per
//     item, produced by [SVG]. Appearance is controlled through
//     [Option] values and the [Style] interface.
//   - JSON: a machine-readable layout document produced by [WriteJSON]
//     and re-imported with [ReadJSON], carrying the solve inputs, the
//     chosen segments, and the per-item geometry.
//
// The renderer never recomputes geometry: it draws exactly the
// [column.ItemLayout] values the engine derived, so the artifact is a
// faithful record of the solve.
package render
