package cli

import (
	"fmt"
	"strconv"

	"mortsim/internal/model"
)

// ScheduleHeaders are the column titles of the per-period table.
var ScheduleHeaders = []string{"Period", "Payment", "Interest Paid", "Principal Paid", "Remaining Balance"}

// ScheduleRow formats one period for display.
func ScheduleRow(r model.PeriodRecord) []string {
	return []string{
		strconv.Itoa(r.Period),
		FormatMoney(r.Payment),
		FormatMoney(r.Interest),
		FormatMoney(r.Principal),
		FormatMoney(r.Balance),
	}
}

// ScheduleTable builds the per-period table. With every > 1 only every
// n-th period is kept; the first and last periods are always shown.
func ScheduleTable(l model.Ledger, every int) Table {
	rows := make([][]string, 0, l.Len())
	for i := 0; i < l.Len(); i++ {
		if every > 1 && i%every != 0 && i != l.Len()-1 {
			continue
		}
		rows = append(rows, ScheduleRow(l.Record(i)))
	}
	return Table{
		Headers: ScheduleHeaders,
		Rows:    rows,
	}
}

// YearlyTable builds one row per loan year.
func YearlyTable(years []model.YearRecord) Table {
	rows := make([][]string, 0, len(years)+2)
	var paid, interest, principal float64
	for _, y := range years {
		label := strconv.Itoa(y.Year)
		if y.Payments < model.MonthsPerYear {
			label += fmt.Sprintf(" (%dm)", y.Payments)
		}
		rows = append(rows, []string{
			label,
			FormatMoney(y.Paid),
			FormatMoney(y.Interest),
			FormatMoney(y.Principal),
			FormatMoney(y.EndBalance),
		})
		paid += y.Paid
		interest += y.Interest
		principal += y.Principal
	}
	if len(years) > 0 {
		rows = append(rows,
			[]string{SeparatorRow},
			[]string{"Total", FormatMoney(paid), FormatMoney(interest), FormatMoney(principal), ""},
		)
	}
	return Table{
		Headers: []string{"Year", "Paid", "Interest Paid", "Principal Paid", "End Balance"},
		Rows:    rows,
	}
}

// SummaryTable builds the metric/value table for a loan and its totals.
func SummaryTable(loan model.Loan, s model.Summary) Table {
	params := loan.Parameters()
	payoff := "never"
	if s.PayoffPeriod > 0 {
		payoff = fmt.Sprintf("period %d (%s)", s.PayoffPeriod, FormatTerm(s.PayoffPeriod))
	}

	return Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Price", FormatMoney(loan.Price)},
			{"Down Payment", fmt.Sprintf("%s (%s)", FormatMoney(loan.DownPayment()), FormatPercent(loan.DownpaymentRate))},
			{"Principal", FormatMoney(params.Principal)},
			{"Annual Rate", FormatRate(params.AnnualRate)},
			{"Term", fmt.Sprintf("%d months (%s)", params.TermMonths, FormatTerm(params.TermMonths))},
			{SeparatorRow},
			{"Monthly Payment", FormatMoney(s.Payment)},
			{"Total Paid", FormatMoney(s.TotalPaid)},
			{"Total Interest", FormatMoney(s.TotalInterest)},
			{"Total Principal", FormatMoney(s.TotalPrincipal)},
			{"Interest Share", FormatPercent(s.InterestShare)},
			{SeparatorRow},
			{"Final Balance", FormatMoney(s.FinalBalance)},
			{"Paid Off", payoff},
		},
	}
}
