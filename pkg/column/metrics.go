package column

import "math/bits"

// Metrics answers column height and content width queries over item index
// ranges in O(1) after preprocessing. One Metrics instance is owned by an
// [Engine] and shared by every solver invocation and algorithm switch.
type Metrics struct {
	items    []Item
	rowSpace float64

	// prefix[i] holds the height sum of items[0:i].
	prefix []float64

	// sparse[k][i] holds the max width over items[i : i+2^k].
	sparse [][]float64
}

// NewMetrics builds a metrics cache over items with the given row spacing.
// Preprocessing is O(n log n); the items slice is referenced, not copied,
// and must not be mutated afterwards.
func NewMetrics(items []Item, rowSpace float64) *Metrics {
	m := &Metrics{items: items, rowSpace: rowSpace}
	m.build()
	return m
}

// Len returns the number of items.
func (m *Metrics) Len() int { return len(m.items) }

// Item returns the item at index i.
func (m *Metrics) Item(i int) Item { return m.items[i] }

// ColumnHeight returns the height of items[i..j] stacked in one column,
// including row spacing between consecutive items. Requires 0 <= i <= j < n.
func (m *Metrics) ColumnHeight(i, j int) float64 {
	m.ensure()
	return m.prefix[j+1] - m.prefix[i] + m.rowSpace*float64(j-i)
}

// ColumnWidth returns the content width of a column holding items[i..j],
// which is the widest member of the range. Requires 0 <= i <= j < n.
func (m *Metrics) ColumnWidth(i, j int) float64 {
	m.ensure()
	k := bits.Len(uint(j-i+1)) - 1
	left := m.sparse[k][i]
	right := m.sparse[k][j-(1<<k)+1]
	if left >= right {
		return left
	}
	return right
}

// TotalHeight returns the height of the whole sequence as one column.
func (m *Metrics) TotalHeight() float64 {
	if len(m.items) == 0 {
		return 0
	}
	return m.ColumnHeight(0, len(m.items)-1)
}

// MaxItemWidth returns the width of the widest item.
func (m *Metrics) MaxItemWidth() float64 {
	if len(m.items) == 0 {
		return 0
	}
	return m.ColumnWidth(0, len(m.items)-1)
}

// Clear drops all derived values. The next query rebuilds them. This is a
// defensive reset hook; the default immutable-engine usage never needs it.
func (m *Metrics) Clear() {
	m.prefix = nil
	m.sparse = nil
}

// ensure rebuilds the derived tables after a Clear.
func (m *Metrics) ensure() {
	if m.prefix == nil {
		m.build()
	}
}

func (m *Metrics) build() {
	n := len(m.items)

	m.prefix = make([]float64, n+1)
	for i, it := range m.items {
		m.prefix[i+1] = m.prefix[i] + it.Height
	}

	if n == 0 {
		m.sparse = nil
		return
	}

	levels := bits.Len(uint(n))
	m.sparse = make([][]float64, levels)
	m.sparse[0] = make([]float64, n)
	for i, it := range m.items {
		m.sparse[0][i] = it.Width
	}
	for k := 1; k < levels; k++ {
		span := 1 << k
		row := make([]float64, n-span+1)
		prev := m.sparse[k-1]
		for i := range row {
			a, b := prev[i], prev[i+span/2]
			if a >= b {
				row[i] = a
			} else {
				row[i] = b
			}
		}
		m.sparse[k] = row
	}
}
