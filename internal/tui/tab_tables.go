package tui

import (
	"fmt"

	"mortsim/internal/cli"
	"mortsim/internal/model"
	"mortsim/internal/tui/components"
	"mortsim/internal/tui/theme"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const (
	periodColW = 8
	amountColW = 17
)

func scheduleColumns() []table.Column {
	cols := make([]table.Column, len(cli.ScheduleHeaders))
	for i, h := range cli.ScheduleHeaders {
		w := amountColW
		if i == 0 {
			w = periodColW
		}
		cols[i] = table.Column{Title: alignHeader(h, w, i), Width: w}
	}
	return cols
}

func yearlyColumns() []table.Column {
	headers := cli.YearlyTable(nil).Headers
	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		w := amountColW
		if i == 0 {
			w = periodColW + 2
		}
		cols[i] = table.Column{Title: alignHeader(h, w, i), Width: w}
	}
	return cols
}

// alignHeader right-aligns amount headers over their right-aligned cells.
func alignHeader(h string, w, col int) string {
	if col == 0 {
		return h
	}
	return fmt.Sprintf("%*s", w, h)
}

func newTable(cols []table.Column) table.Model {
	t := theme.Active

	tbl := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Foreground(t.Accent).
		Bold(true)
	s.Cell = s.Cell.Foreground(t.TextPrimary)
	s.Selected = s.Selected.
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(false)
	tbl.SetStyles(s)
	return tbl
}

// rightAlign pads amount cells so they line up under right-aligned headers.
func rightAlign(cells []string, cols []table.Column) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		if i == 0 {
			row[i] = c
			continue
		}
		row[i] = fmt.Sprintf("%*s", cols[i].Width, c)
	}
	return row
}

func scheduleRows(l model.Ledger) []table.Row {
	cols := scheduleColumns()
	rows := make([]table.Row, 0, l.Len())
	for _, r := range l.Records() {
		rows = append(rows, rightAlign(cli.ScheduleRow(r), cols))
	}
	return rows
}

func yearlyRows(years []model.YearRecord) []table.Row {
	cols := yearlyColumns()
	tbl := cli.YearlyTable(years)
	rows := make([]table.Row, 0, len(tbl.Rows))
	for _, r := range tbl.Rows {
		if len(r) == 1 && r[0] == cli.SeparatorRow {
			continue
		}
		rows = append(rows, rightAlign(r, cols))
	}
	return rows
}

func (a App) renderScheduleTab(cw int) string {
	title := fmt.Sprintf("Schedule  %d / %d", a.schedule.Cursor()+1, a.ledger.Len())
	return components.ContentCard(title, a.schedule.View(), cw)
}

func (a App) renderYearlyTab(cw int) string {
	title := fmt.Sprintf("By year  %d years", len(a.years))
	return components.ContentCard(title, a.yearly.View(), cw)
}
