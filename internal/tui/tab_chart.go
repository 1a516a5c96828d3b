package tui

import (
	"mortsim/internal/tui/components"
	"mortsim/internal/tui/theme"
)

// Chart axis titles and series names.
const (
	xAxisTitle     = "Periods"
	yAxisTitle     = "Amount"
	interestLabel  = "Interest Paid"
	principalLabel = "Principal Paid"
)

func (a App) renderChartTab(cw, contentH int) string {
	t := theme.Active

	series := []components.Series{
		{Name: interestLabel, Values: a.ledger.InterestSeries(), Color: t.Interest},
		{Name: principalLabel, Values: a.ledger.PrincipalSeries(), Color: t.Principal},
	}
	// card border + title, y title, x axis, x labels, x title, legend
	plotH := max(contentH-9, 4)
	chart := components.LineChart(a.ledger.Periods(), series, components.CardInnerWidth(cw), plotH, xAxisTitle, yAxisTitle)

	return components.ContentCard("Interest and principal per period", chart, cw)
}
