package export

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"mortsim/internal/amortize"
	"mortsim/internal/model"
)

// Cents rounds an amount half-up to two places and returns it as a JSON number.
func Cents(v float64) json.Number {
	return json.Number(decimal.NewFromFloat(v).StringFixed(2))
}

// Rate keeps enough places to reproduce a periodic rate.
func Rate(v float64) json.Number {
	return json.Number(decimal.NewFromFloat(v).Round(10).String())
}

// RecordDocument is the wire form of one period.
type RecordDocument struct {
	Period    int         `json:"period"`
	Payment   json.Number `json:"payment"`
	Interest  json.Number `json:"interest"`
	Principal json.Number `json:"principal"`
	Balance   json.Number `json:"balance"`
}

// SummaryDocument is the wire form of ledger totals.
type SummaryDocument struct {
	Periods        int         `json:"periods"`
	Payment        json.Number `json:"payment"`
	TotalPaid      json.Number `json:"total_paid"`
	TotalInterest  json.Number `json:"total_interest"`
	TotalPrincipal json.Number `json:"total_principal"`
	FinalBalance   json.Number `json:"final_balance"`
	PayoffPeriod   int         `json:"payoff_period"`
	InterestShare  json.Number `json:"interest_share"`
}

// LedgerDocument is the wire form of a full schedule.
type LedgerDocument struct {
	Principal    json.Number      `json:"principal"`
	PeriodicRate json.Number      `json:"periodic_rate"`
	Payment      json.Number      `json:"payment"`
	Summary      SummaryDocument  `json:"summary"`
	Records      []RecordDocument `json:"records"`
}

// NewSummaryDocument rounds a Summary for output.
func NewSummaryDocument(s model.Summary) SummaryDocument {
	return SummaryDocument{
		Periods:        s.Periods,
		Payment:        Cents(s.Payment),
		TotalPaid:      Cents(s.TotalPaid),
		TotalInterest:  Cents(s.TotalInterest),
		TotalPrincipal: Cents(s.TotalPrincipal),
		FinalBalance:   Cents(s.FinalBalance),
		PayoffPeriod:   s.PayoffPeriod,
		InterestShare:  json.Number(decimal.NewFromFloat(s.InterestShare).StringFixed(4)),
	}
}

// NewLedgerDocument rounds every record of l for output.
func NewLedgerDocument(l model.Ledger) LedgerDocument {
	records := make([]RecordDocument, 0, l.Len())
	for _, r := range l.Records() {
		records = append(records, RecordDocument{
			Period:    r.Period,
			Payment:   Cents(r.Payment),
			Interest:  Cents(r.Interest),
			Principal: Cents(r.Principal),
			Balance:   Cents(r.Balance),
		})
	}
	return LedgerDocument{
		Principal:    Cents(l.Principal),
		PeriodicRate: Rate(l.PeriodicRate),
		Payment:      Cents(l.Payment),
		Summary:      NewSummaryDocument(amortize.Summarize(l)),
		Records:      records,
	}
}
