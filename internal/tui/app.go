// Package tui provides the interactive Bubble Tea explorer for mortsim.
package tui

import (
	"fmt"
	"strings"

	"mortsim/internal/amortize"
	"mortsim/internal/cli"
	"mortsim/internal/model"
	"mortsim/internal/tui/components"
	"mortsim/internal/tui/theme"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	tabOverview = iota
	tabSchedule
	tabChart
	tabYearly
)

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5
	wheelStep        = 3
)

// App is the root Bubble Tea model.
type App struct {
	// Inputs and derived data
	loan    model.Loan
	payment float64 // override; 0 uses the computed payment
	ledger  model.Ledger
	summary model.Summary
	years   []model.YearRecord
	err     error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	schedule table.Model
	yearly   table.Model

	// Loan edit form (huh)
	form     *huh.Form
	formVals *LoanFormValues // shared with the form across App copies
}

// NewApp creates the explorer for a loan and optional payment override.
func NewApp(loan model.Loan, payment float64) App {
	a := App{
		loan:     loan,
		payment:  payment,
		schedule: newTable(scheduleColumns()),
		yearly:   newTable(yearlyColumns()),
	}
	a.recompute()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.EnableMouseCellMotion
}

func (a *App) recompute() {
	a.ledger, a.err = amortize.ScheduleLoan(a.loan, a.payment)
	if a.err != nil {
		a.summary = model.Summary{}
		a.years = nil
		a.schedule.SetRows(nil)
		a.yearly.SetRows(nil)
		return
	}

	a.summary = amortize.Summarize(a.ledger)
	a.years = amortize.Yearly(a.ledger)
	a.schedule.SetRows(scheduleRows(a.ledger))
	a.yearly.SetRows(yearlyRows(a.years))
	a.schedule.GotoTop()
	a.yearly.GotoTop()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resizeTables()
		if a.form != nil {
			a.form = a.form.WithWidth(min(msg.Width, 72)).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.form != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if a.form != nil {
			if key == "esc" {
				a.form = nil
				return a, nil
			}
			return a.updateForm(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "e":
			return a.openForm()
		case "left", "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		}
		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}

		var cmd tea.Cmd
		switch a.activeTab {
		case tabSchedule:
			a.schedule, cmd = a.schedule.Update(msg)
		case tabYearly:
			a.yearly, cmd = a.yearly.Update(msg)
		}
		return a, cmd
	}

	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		switch a.activeTab {
		case tabSchedule:
			a.schedule.MoveUp(wheelStep)
		case tabYearly:
			a.yearly.MoveUp(wheelStep)
		}
	case tea.MouseButtonWheelDown:
		switch a.activeTab {
		case tabSchedule:
			a.schedule.MoveDown(wheelStep)
		case tabYearly:
			a.yearly.MoveDown(wheelStep)
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X - a.contentOffset()); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) openForm() (tea.Model, tea.Cmd) {
	vals := NewLoanFormValues(a.loan, a.payment, theme.Active.Name)
	a.formVals = &vals
	a.form = NewLoanForm(a.formVals, FormOptions{Title: "Edit loan", Payment: true})
	if a.width > 0 {
		a.form = a.form.WithWidth(min(a.width, 72)).WithHeight(a.height)
	}
	return a, a.form.Init()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		loan, payment, err := a.formVals.Loan()
		a.form = nil
		if err != nil {
			a.err = err
			return a, nil
		}
		a.loan, a.payment = loan, payment
		a.recompute()
		return a, nil
	case huh.StateAborted:
		a.form = nil
		return a, nil
	}
	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) contentOffset() int {
	return max((a.width-a.contentWidth())/2, 0)
}

func (a App) contentHeight() int {
	// tab bar + status bar
	return max(a.height-2, minContentHeight)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  mortsim needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewForm() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Render(a.form.View())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	bindings := []struct{ key, desc string }{
		{"o s c y", "Jump to tab"},
		{"← → tab", "Previous / Next tab"},
		{"j k ↑ ↓", "Scroll table rows"},
		{"g G", "First / Last row"},
		{"e", "Edit loan"},
		{"esc", "Close form"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		fmt.Fprintf(&b, "%s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	contentH := a.contentHeight()

	header := components.RenderTabBar(a.activeTab, cw)

	info := fmt.Sprintf("%s @ %s, %s",
		cli.FormatMoney(a.loan.Parameters().Principal),
		cli.FormatRate(a.loan.AnnualRate),
		cli.FormatTerm(a.loan.Parameters().TermMonths))
	warning := ""
	if a.err != nil {
		warning = a.err.Error()
	} else if a.summary.PayoffPeriod == 0 {
		warning = "balance not repaid within term"
	}
	statusBar := components.RenderStatusBar(cw, info, warning)

	var content string
	switch {
	case a.err != nil:
		content = a.renderError(cw)
	case a.activeTab == tabOverview:
		content = a.renderOverviewTab(cw)
	case a.activeTab == tabSchedule:
		content = a.renderScheduleTab(cw)
	case a.activeTab == tabChart:
		content = a.renderChartTab(cw, contentH)
	case a.activeTab == tabYearly:
		content = a.renderYearlyTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, a.height, lipgloss.Center, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderError(cw int) string {
	t := theme.Active
	msg := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface).Render(a.err.Error())
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("Press e to edit the loan.")
	return components.ContentCard("Cannot compute schedule", msg+"\n\n"+hint, cw)
}

func (a *App) resizeTables() {
	h := max(a.contentHeight()-4, 3) // card border, title, table header
	a.schedule.SetHeight(h)
	a.yearly.SetHeight(h)
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW
		if i < len(components.Tabs)-1 {
			pos++ // separator
		}
	}
	return -1
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
