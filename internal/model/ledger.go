package model

// PeriodRecord is the payment breakdown for one period.
type PeriodRecord struct {
	Period    int     `json:"period"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Balance   float64 `json:"balance"` // remaining after this period's payment
}

// Ledger is the ordered per-period schedule for a loan. The records are
// fixed at construction; accessors hand out copies.
type Ledger struct {
	Principal    float64 // balance at period 0
	PeriodicRate float64
	Payment      float64

	records []PeriodRecord
}

// NewLedger wraps records produced by the amortization engine.
func NewLedger(principal, periodicRate, payment float64, records []PeriodRecord) Ledger {
	return Ledger{
		Principal:    principal,
		PeriodicRate: periodicRate,
		Payment:      payment,
		records:      records,
	}
}

// Len returns the number of periods.
func (l Ledger) Len() int { return len(l.records) }

// Record returns the i-th record (0-based).
func (l Ledger) Record(i int) PeriodRecord { return l.records[i] }

// Records returns a copy of all records in period order.
func (l Ledger) Records() []PeriodRecord {
	out := make([]PeriodRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Final returns the last record, or false for an empty ledger.
func (l Ledger) Final() (PeriodRecord, bool) {
	if len(l.records) == 0 {
		return PeriodRecord{}, false
	}
	return l.records[len(l.records)-1], true
}

// Periods returns the x-axis for plotting: 1..n.
func (l Ledger) Periods() []int {
	out := make([]int, len(l.records))
	for i, r := range l.records {
		out[i] = r.Period
	}
	return out
}

// InterestSeries returns interest paid per period, aligned with Periods.
func (l Ledger) InterestSeries() []float64 {
	return l.series(func(r PeriodRecord) float64 { return r.Interest })
}

// PrincipalSeries returns principal paid per period, aligned with Periods.
func (l Ledger) PrincipalSeries() []float64 {
	return l.series(func(r PeriodRecord) float64 { return r.Principal })
}

// BalanceSeries returns the remaining balance per period.
func (l Ledger) BalanceSeries() []float64 {
	return l.series(func(r PeriodRecord) float64 { return r.Balance })
}

func (l Ledger) series(pick func(PeriodRecord) float64) []float64 {
	out := make([]float64, len(l.records))
	for i, r := range l.records {
		out[i] = pick(r)
	}
	return out
}

// Summary holds lifetime totals for a ledger.
type Summary struct {
	Periods        int     `json:"periods"`
	Payment        float64 `json:"payment"`
	TotalPaid      float64 `json:"total_paid"`
	TotalInterest  float64 `json:"total_interest"`
	TotalPrincipal float64 `json:"total_principal"`
	FinalBalance   float64 `json:"final_balance"`
	PayoffPeriod   int     `json:"payoff_period"` // 0 when the balance never reaches zero
	InterestShare  float64 `json:"interest_share"`
}

// YearRecord rolls twelve periods into one row.
type YearRecord struct {
	Year       int     `json:"year"`
	Payments   int     `json:"payments"`
	Paid       float64 `json:"paid"`
	Interest   float64 `json:"interest"`
	Principal  float64 `json:"principal"`
	EndBalance float64 `json:"end_balance"`
}
