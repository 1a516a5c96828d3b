// Package model defines domain types for mortgage amortization.
package model

// MonthsPerYear is the number of compounding periods in a year.
const MonthsPerYear = 12

// Loan holds the user-facing purchase inputs.
type Loan struct {
	Price           float64 `json:"price"`
	DownpaymentRate float64 `json:"downpayment_rate"`
	Years           int     `json:"years"`
	AnnualRate      float64 `json:"annual_rate"`
}

// DownPayment returns the cash paid up front.
func (l Loan) DownPayment() float64 {
	return l.Price * l.DownpaymentRate
}

// Parameters derives the financed principal and monthly term.
func (l Loan) Parameters() LoanParameters {
	return LoanParameters{
		Principal:  l.Price * (1 - l.DownpaymentRate),
		AnnualRate: l.AnnualRate,
		TermMonths: l.Years * MonthsPerYear,
	}
}

// LoanParameters describes a fixed-rate, fixed-term loan.
type LoanParameters struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annual_rate"`
	TermMonths int     `json:"term_months"`
}

// PeriodicRate is the nominal annual rate spread over monthly periods.
func (p LoanParameters) PeriodicRate() float64 {
	return p.AnnualRate / MonthsPerYear
}
