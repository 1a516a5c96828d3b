package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mortsim/internal/amortize"
	"mortsim/internal/model"
	"mortsim/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
)

// LoanFormValues holds the text bound to the loan form fields. Rates are
// entered as percentages.
type LoanFormValues struct {
	Price   string
	Down    string // percent of price
	Years   string
	Rate    string // annual percent
	Payment string // optional override
	Theme   string
}

// FormOptions selects the optional form fields.
type FormOptions struct {
	Title   string
	Payment bool
	Theme   bool
}

// NewLoanFormValues fills the form text from a loan.
func NewLoanFormValues(l model.Loan, payment float64, themeName string) LoanFormValues {
	v := LoanFormValues{
		Price: decimal.NewFromFloat(l.Price).String(),
		Down:  decimal.NewFromFloat(l.DownpaymentRate).Shift(2).String(),
		Years: strconv.Itoa(l.Years),
		Rate:  decimal.NewFromFloat(l.AnnualRate).Shift(2).String(),
		Theme: themeName,
	}
	if payment > 0 {
		v.Payment = decimal.NewFromFloat(payment).String()
	}
	return v
}

// Loan parses the form text and validates the result.
func (v LoanFormValues) Loan() (model.Loan, float64, error) {
	price, err := parseNumber(v.Price)
	if err != nil {
		return model.Loan{}, 0, err
	}
	down, err := parsePercent(v.Down)
	if err != nil {
		return model.Loan{}, 0, err
	}
	years, err := strconv.Atoi(strings.TrimSpace(v.Years))
	if err != nil {
		return model.Loan{}, 0, errors.New("years must be a whole number")
	}
	rate, err := parsePercent(v.Rate)
	if err != nil {
		return model.Loan{}, 0, err
	}

	var payment float64
	if strings.TrimSpace(v.Payment) != "" {
		if payment, err = parseNumber(v.Payment); err != nil {
			return model.Loan{}, 0, err
		}
		if payment <= 0 {
			return model.Loan{}, 0, errors.New("payment must be positive")
		}
	}

	loan := model.Loan{Price: price, DownpaymentRate: down, Years: years, AnnualRate: rate}
	if err := amortize.ValidateLoan(loan); err != nil {
		return model.Loan{}, 0, err
	}
	return loan, payment, nil
}

// NewLoanForm builds the huh form bound to v.
func NewLoanForm(v *LoanFormValues, opts FormOptions) *huh.Form {
	title := opts.Title
	if title == "" {
		title = "Loan"
	}

	fields := []huh.Field{
		huh.NewInput().
			Title(title).
			Description("Purchase price").
			Value(&v.Price).
			Validate(func(s string) error {
				p, err := parseNumber(s)
				if err != nil {
					return err
				}
				if p <= 0 {
					return errors.New("price must be positive")
				}
				return nil
			}),
		huh.NewInput().
			Title("Down payment (%)").
			Value(&v.Down).
			Validate(func(s string) error {
				d, err := parsePercent(s)
				if err != nil {
					return err
				}
				if d < 0 || d >= 1 {
					return errors.New("down payment must be at least 0% and below 100%")
				}
				return nil
			}),
		huh.NewInput().
			Title("Term (years)").
			Value(&v.Years).
			Validate(func(s string) error {
				n, err := strconv.Atoi(strings.TrimSpace(s))
				if err != nil || n < 1 || n > amortize.MaxYears {
					return fmt.Errorf("term must be a whole number of years, 1 to %d", amortize.MaxYears)
				}
				return nil
			}),
		huh.NewInput().
			Title("Annual rate (%)").
			Value(&v.Rate).
			Validate(func(s string) error {
				r, err := parsePercent(s)
				if err != nil {
					return err
				}
				if r < 0 {
					return errors.New("rate cannot be negative")
				}
				return nil
			}),
	}

	if opts.Payment {
		fields = append(fields, huh.NewInput().
			Title("Monthly payment").
			Description("Leave blank to use the computed payment").
			Value(&v.Payment).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return nil
				}
				p, err := parseNumber(s)
				if err != nil {
					return err
				}
				if p <= 0 {
					return errors.New("payment must be positive")
				}
				return nil
			}))
	}

	groups := []*huh.Group{huh.NewGroup(fields...)}
	if opts.Theme {
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&v.Theme),
		))
	}
	return huh.NewForm(groups...)
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(strings.NewReplacer(",", "", "$", "", "_", "").Replace(s))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.New("enter a number")
	}
	return d.InexactFloat64(), nil
}

func parsePercent(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.New("enter a percentage")
	}
	return d.Shift(-2).InexactFloat64(), nil
}
