package tui

import (
	"fmt"
	"strings"

	"mortsim/internal/cli"
	"mortsim/internal/tui/components"
	"mortsim/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.summary
	params := a.loan.Parameters()

	payoff := "never"
	payoffNote := "balance remains"
	if s.PayoffPeriod > 0 {
		payoff = fmt.Sprintf("period %d", s.PayoffPeriod)
		payoffNote = cli.FormatTerm(s.PayoffPeriod)
	}

	cards := components.MetricCardRow([]components.Metric{
		{Label: "Monthly Payment", Value: cli.FormatMoney(s.Payment), Color: t.AccentBright},
		{Label: "Total Interest", Value: cli.FormatMoney(s.TotalInterest), Note: cli.FormatPercent(s.InterestShare) + " of paid", Color: t.Interest},
		{Label: "Total Paid", Value: cli.FormatMoney(s.TotalPaid)},
		{Label: "Paid Off", Value: payoff, Note: payoffNote, Color: t.Principal},
	}, cw)

	halves := components.LayoutRow(cw, 2)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	var loan strings.Builder
	for _, kv := range []struct{ k, v string }{
		{"Price", cli.FormatMoney(a.loan.Price)},
		{"Down payment", fmt.Sprintf("%s (%s)", cli.FormatMoney(a.loan.DownPayment()), cli.FormatPercent(a.loan.DownpaymentRate))},
		{"Principal", cli.FormatMoney(params.Principal)},
		{"Annual rate", cli.FormatRate(params.AnnualRate)},
		{"Term", fmt.Sprintf("%d months (%s)", params.TermMonths, cli.FormatTerm(params.TermMonths))},
	} {
		fmt.Fprintf(&loan, "%s%s\n", labelStyle.Render(fmt.Sprintf("%-14s", kv.k)), valueStyle.Render(kv.v))
	}
	loanCard := components.ContentCard("Loan", strings.TrimSuffix(loan.String(), "\n"), halves[0])

	inner := components.CardInnerWidth(halves[1])
	barW := max(inner-22, 4)
	var repay strings.Builder
	repay.WriteString(components.RatioBar("Principal", 1-s.InterestShare, t.Principal, 10, barW))
	repay.WriteString("\n")
	repay.WriteString(components.RatioBar("Interest", s.InterestShare, t.Interest, 10, barW))
	repay.WriteString("\n\n")
	repay.WriteString(labelStyle.Render("Balance "))
	repay.WriteString(components.Sparkline(cli.Downsample(a.ledger.BalanceSeries(), inner-8), t.Balance))
	repayCard := components.ContentCard("Where the money goes", repay.String(), halves[1])

	return cards + "\n" + components.CardRow([]string{loanCard, repayCard})
}
