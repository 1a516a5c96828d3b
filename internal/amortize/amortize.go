// Package amortize computes fixed-rate amortization schedules.
package amortize

import (
	"fmt"
	"math"

	"mortsim/internal/model"
)

// PeriodicPayment returns the constant end-of-period payment that retires
// principal in term payments at periodicRate (ordinary annuity).
// A zero rate degenerates to straight-line repayment.
func PeriodicPayment(principal, periodicRate float64, term int) (float64, error) {
	if !finite(principal) || principal <= 0 {
		return 0, invalid("principal", "positive", principal)
	}
	if term <= 0 {
		return 0, invalid("term", "at least 1 month", float64(term))
	}
	if term > MaxTermMonths {
		return 0, invalid("term", fmt.Sprintf("at most %d months", MaxTermMonths), float64(term))
	}
	if !finite(periodicRate) || periodicRate < 0 {
		return 0, invalid("periodic_rate", "non-negative", periodicRate)
	}

	n := float64(term)
	if periodicRate == 0 {
		return principal / n, nil
	}
	return periodicRate * principal / (1 - math.Pow(1+periodicRate, -n)), nil
}

// BuildLedger runs the amortization recurrence for exactly term periods.
// Each period depends on the previous balance, so periods are computed in
// order. When the fixed payment would overpay the remaining balance, the
// principal portion is clamped to that balance.
func BuildLedger(principal, periodicRate, payment float64, term int) model.Ledger {
	var records []model.PeriodRecord
	if term > 0 {
		records = make([]model.PeriodRecord, 0, term)
	}

	balance := principal
	for i := 1; i <= term; i++ {
		interest := periodicRate * balance
		paid := payment - interest
		if balance < paid {
			paid = balance
		}
		balance -= paid

		records = append(records, model.PeriodRecord{
			Period:    i,
			Payment:   payment,
			Interest:  interest,
			Principal: paid,
			Balance:   balance,
		})
	}

	return model.NewLedger(principal, periodicRate, payment, records)
}

// Schedule validates params, derives the payment, and builds the ledger.
func Schedule(params model.LoanParameters) (model.Ledger, error) {
	if err := Validate(params); err != nil {
		return model.Ledger{}, err
	}
	rate := params.PeriodicRate()
	payment, err := PeriodicPayment(params.Principal, rate, params.TermMonths)
	if err != nil {
		return model.Ledger{}, err
	}
	return BuildLedger(params.Principal, rate, payment, params.TermMonths), nil
}

// ScheduleWithPayment builds a ledger from an independently supplied
// payment. The balance is not forced to zero: an under-sized payment
// leaves a positive balance after the last period. The payment must exceed
// the first period's interest, otherwise the balance would grow.
func ScheduleWithPayment(params model.LoanParameters, payment float64) (model.Ledger, error) {
	if err := Validate(params); err != nil {
		return model.Ledger{}, err
	}
	if !finite(payment) || payment <= 0 {
		return model.Ledger{}, invalid("payment", "positive", payment)
	}
	if payment <= params.Principal*params.PeriodicRate() {
		return model.Ledger{}, invalid("payment", "greater than the first period's interest", payment)
	}
	return BuildLedger(params.Principal, params.PeriodicRate(), payment, params.TermMonths), nil
}

// ScheduleLoan derives parameters from purchase inputs and schedules them.
// A positive override replaces the computed payment.
func ScheduleLoan(l model.Loan, override float64) (model.Ledger, error) {
	if err := ValidateLoan(l); err != nil {
		return model.Ledger{}, err
	}
	if override != 0 {
		return ScheduleWithPayment(l.Parameters(), override)
	}
	return Schedule(l.Parameters())
}

// BalanceAt is the closed-form balance after k payments, ignoring the
// final-period clamp.
func BalanceAt(principal, periodicRate, payment float64, k int) float64 {
	if periodicRate == 0 {
		return principal - payment*float64(k)
	}
	g := math.Pow(1+periodicRate, float64(k))
	return principal*g - payment*(g-1)/periodicRate
}
