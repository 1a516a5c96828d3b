package amortize

import (
	"errors"
	"fmt"
	"math"

	"mortsim/internal/model"
)

// ErrInvalidInput is the root of every parameter rejection.
var ErrInvalidInput = errors.New("invalid input")

// Upper bounds on the loan term. They keep Years*12 far from int overflow
// and cap the size of a single ledger.
const (
	MaxYears      = 100
	MaxTermMonths = MaxYears * model.MonthsPerYear
)

// InputError names the parameter that was rejected and the constraint it broke.
type InputError struct {
	Param      string
	Constraint string
	Value      float64
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s must be %s (got %v)", e.Param, e.Constraint, e.Value)
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match.
func (e *InputError) Unwrap() error { return ErrInvalidInput }

func invalid(param, constraint string, v float64) error {
	return &InputError{Param: param, Constraint: constraint, Value: v}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateLoan checks the purchase inputs before any derivation.
func ValidateLoan(l model.Loan) error {
	switch {
	case !finite(l.Price) || l.Price <= 0:
		return invalid("price", "positive", l.Price)
	case !finite(l.DownpaymentRate) || l.DownpaymentRate < 0 || l.DownpaymentRate >= 1:
		return invalid("downpayment_rate", "in [0, 1)", l.DownpaymentRate)
	case l.Years < 1:
		return invalid("years", "at least 1", float64(l.Years))
	case l.Years > MaxYears:
		return invalid("years", fmt.Sprintf("at most %d", MaxYears), float64(l.Years))
	case !finite(l.AnnualRate) || l.AnnualRate < 0:
		return invalid("annual_rate", "non-negative", l.AnnualRate)
	}
	return nil
}

// Validate checks derived loan parameters.
func Validate(p model.LoanParameters) error {
	switch {
	case !finite(p.Principal) || p.Principal <= 0:
		return invalid("principal", "positive", p.Principal)
	case p.TermMonths < 1:
		return invalid("term", "at least 1 month", float64(p.TermMonths))
	case p.TermMonths > MaxTermMonths:
		return invalid("term", fmt.Sprintf("at most %d months", MaxTermMonths), float64(p.TermMonths))
	case !finite(p.AnnualRate) || p.AnnualRate < 0:
		return invalid("annual_rate", "non-negative", p.AnnualRate)
	}
	return nil
}
