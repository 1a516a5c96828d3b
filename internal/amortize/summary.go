package amortize

import (
	"math"

	"mortsim/internal/model"
)

// BalanceTolerance is the residual below which a balance counts as paid off.
const BalanceTolerance = 0.005

// Summarize totals a ledger. Totals use the amounts actually applied, so a
// clamped final period contributes less than the nominal payment.
func Summarize(l model.Ledger) model.Summary {
	s := model.Summary{
		Periods: l.Len(),
		Payment: l.Payment,
	}

	for i := 0; i < l.Len(); i++ {
		r := l.Record(i)
		s.TotalInterest += r.Interest
		s.TotalPrincipal += r.Principal
		if s.PayoffPeriod == 0 && math.Abs(r.Balance) <= BalanceTolerance {
			s.PayoffPeriod = r.Period
		}
	}
	s.TotalPaid = s.TotalInterest + s.TotalPrincipal

	if last, ok := l.Final(); ok {
		s.FinalBalance = last.Balance
	} else {
		s.FinalBalance = l.Principal
	}
	if s.TotalPaid > 0 {
		s.InterestShare = s.TotalInterest / s.TotalPaid
	}
	return s
}

// Yearly rolls the ledger into 12-period rows. The last row is partial
// when the term is not a whole number of years.
func Yearly(l model.Ledger) []model.YearRecord {
	var years []model.YearRecord
	for i := 0; i < l.Len(); i++ {
		r := l.Record(i)
		year := (r.Period-1)/model.MonthsPerYear + 1
		if len(years) == 0 || years[len(years)-1].Year != year {
			years = append(years, model.YearRecord{Year: year})
		}
		y := &years[len(years)-1]
		y.Payments++
		y.Interest += r.Interest
		y.Principal += r.Principal
		y.Paid += r.Interest + r.Principal
		y.EndBalance = r.Balance
	}
	return years
}
