package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mhartvig/colstack/pkg/column"
	"github.com/mhartvig/colstack/pkg/pipeline"
)

// Color palette
var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// Public styles
var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
)

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// cacheBadge renders the cached/fresh marker for a pipeline stage.
func cacheBadge(hit bool) string {
	if hit {
		return styleCached.Render("cached")
	}
	return styleComputed.Render("fresh")
}

// formatNum trims trailing zeros from a float for display.
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// renderResultTable renders the per-column summary for a solved partition.
func renderResultTable(items []column.Item, result column.Result, spacing column.Spacing) string {
	rows := make([][]string, 0, len(result.Segments))
	for i, seg := range result.Segments {
		height := spacing.Row * float64(seg.End-seg.Start)
		width := 0.0
		for j := seg.Start; j <= seg.End; j++ {
			height += items[j].Height
			width = max(width, items[j].Width)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%d–%d", seg.Start, seg.End),
			strconv.Itoa(seg.Count()),
			formatNum(width),
			formatNum(height),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Col", "Items", "Count", "Width", "Height").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleNumber
			}
			return StyleValue
		}).
		Render()
}

// printSolveSummary prints the complete result block for a solve run.
func printSolveSummary(result *pipeline.Result, spacing column.Spacing) {
	printSuccess("Solved %d items into %d columns", result.Stats.ItemCount, result.Stats.ColumnCount)
	printDetail("method: %s  height: %s  width: %s  solve: %s",
		result.Method, formatNum(result.Solve.MinHeight), formatNum(result.Solve.UsedWidth),
		cacheBadge(result.CacheInfo.SolveHit))
	if result.Method == column.MethodBinarySearch {
		printDetail("bisection iterations: %d", result.Iterations)
	}
	fmt.Println(renderResultTable(result.Items, result.Solve, spacing))
}
