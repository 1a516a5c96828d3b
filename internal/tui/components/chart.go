package components

import (
	"fmt"
	"math"
	"strings"

	"mortsim/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Series is one named line on a LineChart. Values align with the chart's x values.
type Series struct {
	Name   string
	Values []float64
	Color  lipgloss.Color
}

const (
	markGlyph    = '•'
	linkGlyph    = '│'
	overlapGlyph = '◆'
)

type cell struct {
	r     rune
	color lipgloss.Color
}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		buf.WriteRune(blocks[min(max(idx, 0), len(blocks)-1)])
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// LineChart plots every series against xs on a shared y axis, with axis
// titles and a legend. width and height bound the plot area including the
// y labels; titles, x labels and legend add four lines below and above.
func LineChart(xs []int, series []Series, width, height int, xTitle, yTitle string) string {
	n := len(xs)
	if n == 0 || len(series) == 0 {
		return ""
	}
	if width < 20 || height < 4 {
		return Sparkline(series[0].Values, series[0].Color)
	}

	t := theme.Active

	maxVal := 0.0
	for _, s := range series {
		for _, v := range s.Values {
			maxVal = max(maxVal, v)
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Y axis: nice tick step, at most one tick every two rows.
	tickStep := chartTickStep(maxVal)
	maxIntervals := max(height/2, 2)
	for int(math.Ceil(maxVal/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := max(int(math.Round(ceiling/tickStep)), 1)
	rowsPerTick := max(height/numIntervals, 2)
	chartH := rowsPerTick*numIntervals + 1 // +1 for the zero row

	yLabelW := max(len(formatChartLabel(ceiling))+1, 4)
	tickLabels := make(map[int]string, numIntervals+1)
	for i := 0; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	chartW := max(width-yLabelW-1, 10)

	level := func(v float64) int {
		l := int(math.Round(v / ceiling * float64(chartH-1)))
		return min(max(l, 0), chartH-1)
	}
	column := func(c int) int {
		if chartW <= 1 || n <= 1 {
			return 0
		}
		return c * (n - 1) / (chartW - 1)
	}

	grid := make([][]cell, chartH)
	for r := range grid {
		grid[r] = make([]cell, chartW)
	}

	for si, s := range series {
		prev := -1
		for c := 0; c < chartW; c++ {
			idx := column(c)
			if idx >= len(s.Values) {
				break
			}
			lvl := level(s.Values[idx])

			if prev >= 0 && abs(lvl-prev) > 1 {
				lo, hi := min(lvl, prev)+1, max(lvl, prev)
				for r := lo; r < hi; r++ {
					if grid[r][c].r == 0 {
						grid[r][c] = cell{linkGlyph, s.Color}
					}
				}
			}

			existing := grid[lvl][c]
			if si > 0 && existing.r == markGlyph && existing.color != s.Color {
				grid[lvl][c] = cell{overlapGlyph, t.AccentBright}
			} else {
				grid[lvl][c] = cell{markGlyph, s.Color}
			}
			prev = lvl
		}
	}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	titleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render(yTitle))
	b.WriteString("\n")

	for r := chartH - 1; r >= 0; r-- {
		label, ticked := tickLabels[r]
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		if ticked {
			b.WriteString(axisStyle.Render("┤"))
		} else {
			b.WriteString(axisStyle.Render("│"))
		}
		b.WriteString(renderCells(grid[r], blank))
		b.WriteString("\n")
	}

	// X axis
	b.WriteString(blank.Render(strings.Repeat(" ", yLabelW)))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", chartW)))
	b.WriteString("\n")

	b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
	b.WriteString(axisStyle.Render(xAxisLabels(xs, chartW)))
	b.WriteString("\n")

	pad := max((yLabelW+1+chartW-lipgloss.Width(xTitle))/2, 0)
	b.WriteString(blank.Render(strings.Repeat(" ", pad)))
	b.WriteString(titleStyle.Render(xTitle))
	b.WriteString("\n")

	b.WriteString(Legend(series))
	return b.String()
}

// Legend renders a colored marker and name for each series.
func Legend(series []Series) string {
	t := theme.Active
	nameStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	parts := make([]string, len(series))
	for i, s := range series {
		mark := lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface).Render(string(markGlyph))
		parts[i] = mark + nameStyle.Render(" "+s.Name)
	}
	return strings.Join(parts, blank.Render("   "))
}

func renderCells(row []cell, blank lipgloss.Style) string {
	var b strings.Builder
	for _, c := range row {
		if c.r == 0 {
			b.WriteString(blank.Render(" "))
			continue
		}
		b.WriteString(lipgloss.NewStyle().Foreground(c.color).Background(theme.Active.Surface).Render(string(c.r)))
	}
	return b.String()
}

// xAxisLabels places period labels at nice steps under a chartW-wide axis.
func xAxisLabels(xs []int, chartW int) string {
	buf := []byte(strings.Repeat(" ", chartW))
	first, last := xs[0], xs[len(xs)-1]
	span := last - first
	if span <= 0 {
		lbl := fmt.Sprint(first)
		copy(buf, lbl)
		return strings.TrimRight(string(buf), " ")
	}

	step := int(chartTickStep(float64(span)))
	step = max(step, 1)
	const minSpacing = 6
	for step*(chartW-1)/span < minSpacing && step < span {
		step *= 2
	}

	lastLbl := fmt.Sprint(last)
	lastPos := max(chartW-len(lastLbl), 0)

	end := -1
	for p := first; p < last; p = (p/step + 1) * step {
		pos := (p - first) * (chartW - 1) / span
		lbl := fmt.Sprint(p)
		if pos+len(lbl) >= lastPos {
			break
		}
		if pos <= end {
			continue
		}
		copy(buf[pos:], lbl)
		end = pos + len(lbl)
	}
	if lastPos > end {
		copy(buf[lastPos:], lastLbl)
	}

	return strings.TrimRight(string(buf), " ")
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	case v == 0:
		return "0"
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
