package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mhartvig/colstack/pkg/column"
	"github.com/mhartvig/colstack/pkg/manifest"
)

// exploreCommand creates the explore command: an interactive TUI for
// trying methods, column limits, and width limits against a manifest.
func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [manifest]",
		Short: "Interactively explore partition parameters",
		Long: `Explore opens an interactive view of a manifest. Adjust the column limit,
width limit, and method with the keyboard and watch the partition update.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			model, err := newExploreModel(m)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}
}

// widthStep is the width limit increment for the explore view.
const widthStep = 10

// exploreModel is the bubbletea model for the explore command.
type exploreModel struct {
	engine     *column.Engine
	widthLimit float64
	result     column.Result
	err        error
}

func newExploreModel(m *manifest.Manifest) (*exploreModel, error) {
	engine, err := m.Engine()
	if err != nil {
		return nil, err
	}
	em := &exploreModel{
		engine:     engine,
		widthLimit: m.EffectiveWidthLimit(),
	}
	em.solve()
	return em, nil
}

func (m *exploreModel) solve() {
	m.result, m.err = m.engine.Solve(m.widthLimit)
}

// rebuild recreates the engine with a new column limit, keeping items
// and spacing. Engines are immutable in their inputs.
func (m *exploreModel) rebuild(columnLimit int) {
	items := make([]column.Item, m.engine.Len())
	for i := range items {
		items[i] = m.engine.Item(i)
	}
	engine, err := column.NewEngine(items, m.engine.Spacing(), columnLimit)
	if err != nil {
		m.err = err
		return
	}
	engine.SetMethod(m.engine.Method())
	m.engine = engine
	m.solve()
}

func (m *exploreModel) Init() tea.Cmd {
	return nil
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.rebuild(m.engine.ColumnLimit() + 1)
	case "down", "j":
		if m.engine.ColumnLimit() > 1 {
			m.rebuild(m.engine.ColumnLimit() - 1)
		}
	case "left", "h":
		if !math.IsInf(m.widthLimit, 1) {
			m.widthLimit -= widthStep
			if m.widthLimit < widthStep {
				m.widthLimit = widthStep
			}
		} else {
			m.widthLimit = m.boundedStart()
		}
		m.solve()
	case "right", "l":
		if !math.IsInf(m.widthLimit, 1) {
			m.widthLimit += widthStep
		}
		m.solve()
	case "w":
		// toggle bounded/unbounded width
		if math.IsInf(m.widthLimit, 1) {
			m.widthLimit = m.boundedStart()
		} else {
			m.widthLimit = math.Inf(1)
		}
		m.solve()
	case "m":
		m.engine.SetMethod(nextMethod(m.engine.Method()))
		m.solve()
	}
	return m, nil
}

// boundedStart picks a reasonable finite width limit when switching away
// from unbounded: the width the current partition actually uses.
func (m *exploreModel) boundedStart() float64 {
	if m.err == nil && m.result.UsedWidth > 0 {
		return m.result.UsedWidth
	}
	return widthStep * 10
}

func nextMethod(method column.Method) column.Method {
	methods := column.Methods()
	for i, cand := range methods {
		if cand == method {
			return methods[(i+1)%len(methods)]
		}
	}
	return methods[0]
}

func (m *exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Colstack Explorer"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ columns  ←/→ width  w toggle width limit  m method  q quit"))
	b.WriteString("\n\n")

	width := "unbounded"
	if !math.IsInf(m.widthLimit, 1) {
		width = formatNum(m.widthLimit)
	}
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %d\n\n",
		StyleDim.Render("method:"), StyleNumber.Render(m.engine.Method().String()),
		StyleDim.Render("width:"), StyleValue.Render(width),
		StyleDim.Render("columns ≤"), m.engine.ColumnLimit()))

	if m.err != nil {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("! %v", m.err)))
		b.WriteString("\n")
		return b.String()
	}

	items := make([]column.Item, m.engine.Len())
	for i := range items {
		items[i] = m.engine.Item(i)
	}
	b.WriteString(renderResultTable(items, m.result, m.engine.Spacing()))
	b.WriteString("\n\n")
	b.WriteString(m.renderBars())
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s %s   %s %s",
		StyleDim.Render("height:"), StyleNumber.Render(formatNum(m.result.MinHeight)),
		StyleDim.Render("used width:"), StyleNumber.Render(formatNum(m.result.UsedWidth))))
	if m.engine.Method() == column.MethodBinarySearch {
		b.WriteString(fmt.Sprintf("   %s %d", StyleDim.Render("iterations:"), m.engine.Iterations()))
	}
	b.WriteString("\n")

	return b.String()
}

// barHeight is the maximum bar height in terminal rows.
const barHeight = 8

// renderBars draws a vertical bar per column, scaled to the tallest.
func (m *exploreModel) renderBars() string {
	heights := make([]float64, len(m.result.Segments))
	tallest := 0.0
	for i, seg := range m.result.Segments {
		h := m.engine.Spacing().Row * float64(seg.End-seg.Start)
		for j := seg.Start; j <= seg.End; j++ {
			h += m.engine.Item(j).Height
		}
		heights[i] = h
		tallest = max(tallest, h)
	}
	if tallest == 0 {
		return ""
	}

	bars := make([]string, len(heights))
	barStyle := lipgloss.NewStyle().Foreground(colorCyan)
	for i, h := range heights {
		rows := int(math.Round(h / tallest * barHeight))
		if rows < 1 {
			rows = 1
		}
		var col strings.Builder
		for r := 0; r < barHeight-rows; r++ {
			col.WriteString("    \n")
		}
		for r := 0; r < rows; r++ {
			col.WriteString(barStyle.Render("████") + "\n")
		}
		col.WriteString(StyleDim.Render(fmt.Sprintf(" %-3d", i+1)))
		bars[i] = col.String()
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, bars...)
}
