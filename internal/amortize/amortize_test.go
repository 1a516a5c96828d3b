package amortize

import (
	"errors"
	"math"
	"testing"

	"mortsim/internal/model"
)

func near(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}

func mustSchedule(t *testing.T, p model.LoanParameters) model.Ledger {
	t.Helper()
	l, err := Schedule(p)
	if err != nil {
		t.Fatalf("Schedule(%+v): %v", p, err)
	}
	return l
}

func TestPeriodicPayment_WorkedExample(t *testing.T) {
	rate := 0.0703 / 12
	got, err := PeriodicPayment(160000, rate, 360)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !near(rate, 0.00585833, 1e-8) {
		t.Fatalf("periodic rate = %.8f, want 0.00585833", rate)
	}
	if !near(got, 1067.71, 0.01) {
		t.Fatalf("payment = %.4f, want 1067.71", got)
	}
}

func TestPeriodicPayment_ZeroRate(t *testing.T) {
	got, err := PeriodicPayment(1200, 0, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 100 {
		t.Fatalf("payment = %v, want 100", got)
	}
}

func TestPeriodicPayment_SinglePeriod(t *testing.T) {
	got, err := PeriodicPayment(1000, 0.01, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !near(got, 1010, 1e-9) {
		t.Fatalf("payment = %v, want 1010", got)
	}
}

func TestPeriodicPayment_Invalid(t *testing.T) {
	cases := []struct {
		name      string
		principal float64
		rate      float64
		term      int
		param     string
	}{
		{"zero principal", 0, 0.005, 360, "principal"},
		{"negative principal", -1, 0.005, 360, "principal"},
		{"NaN principal", math.NaN(), 0.005, 360, "principal"},
		{"zero term", 1000, 0.005, 0, "term"},
		{"negative term", 1000, 0.005, -12, "term"},
		{"term past limit", 1000, 0.005, MaxTermMonths + 1, "term"},
		{"negative rate", 1000, -0.01 / 12, 360, "periodic_rate"},
		{"infinite rate", 1000, math.Inf(1), 360, "periodic_rate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PeriodicPayment(tc.principal, tc.rate, tc.term)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
			var ie *InputError
			if !errors.As(err, &ie) {
				t.Fatalf("err = %T, want *InputError", err)
			}
			if ie.Param != tc.param {
				t.Fatalf("Param = %q, want %q", ie.Param, tc.param)
			}
		})
	}
}

func TestSchedule_WorkedExample(t *testing.T) {
	l := mustSchedule(t, model.LoanParameters{Principal: 160000, AnnualRate: 0.0703, TermMonths: 360})

	if l.Len() != 360 {
		t.Fatalf("Len = %d, want 360", l.Len())
	}
	first := l.Record(0)
	if first.Period != 1 {
		t.Errorf("first Period = %d, want 1", first.Period)
	}
	if !near(first.Interest, 937.33, 0.01) {
		t.Errorf("first Interest = %.4f, want 937.33", first.Interest)
	}
	if !near(first.Principal, 130.38, 0.01) {
		t.Errorf("first Principal = %.4f, want 130.38", first.Principal)
	}
	if !near(first.Balance, 159869.62, 0.5) {
		t.Errorf("first Balance = %.4f, want 159869.62", first.Balance)
	}

	last, ok := l.Final()
	if !ok {
		t.Fatal("Final returned !ok")
	}
	if last.Period != 360 {
		t.Errorf("last Period = %d, want 360", last.Period)
	}
	if !near(last.Balance, 0, 0.01) {
		t.Errorf("last Balance = %.6f, want 0", last.Balance)
	}
}

func TestSchedule_ZeroBalanceTermination(t *testing.T) {
	for _, principal := range []float64{1, 1000, 160000, 2_500_000} {
		for _, annual := range []float64{0, 0.0001, 0.01, 0.0703, 0.12, 0.25} {
			for _, term := range []int{1, 2, 12, 37, 180, 360, 600} {
				l := mustSchedule(t, model.LoanParameters{Principal: principal, AnnualRate: annual, TermMonths: term})
				last, _ := l.Final()
				if math.Abs(last.Balance) > 1e-6*principal {
					t.Fatalf("P=%v rate=%v n=%d: final balance = %g, want ~0", principal, annual, term, last.Balance)
				}
				if last.Balance < 0 {
					t.Fatalf("P=%v rate=%v n=%d: final balance negative (%g)", principal, annual, term, last.Balance)
				}
			}
		}
	}
}

func TestSchedule_Monotonicity(t *testing.T) {
	l := mustSchedule(t, model.LoanParameters{Principal: 250000, AnnualRate: 0.055, TermMonths: 300})
	eps := 1e-9 * l.Principal

	for i := 1; i < l.Len(); i++ {
		prev, cur := l.Record(i-1), l.Record(i)
		if cur.Balance > prev.Balance+eps {
			t.Fatalf("period %d: balance rose %.6f -> %.6f", cur.Period, prev.Balance, cur.Balance)
		}
		if cur.Principal < prev.Principal-eps {
			t.Fatalf("period %d: principal fell %.6f -> %.6f", cur.Period, prev.Principal, cur.Principal)
		}
		if cur.Interest > prev.Interest+eps {
			t.Fatalf("period %d: interest rose %.6f -> %.6f", cur.Period, prev.Interest, cur.Interest)
		}
	}
}

func TestSchedule_Conservation(t *testing.T) {
	l := mustSchedule(t, model.LoanParameters{Principal: 98000, AnnualRate: 0.041, TermMonths: 240})

	balance := l.Principal
	for _, r := range l.Records() {
		if !near(r.Interest+r.Principal, r.Payment, 1e-9*l.Principal) && r.Period != l.Len() {
			t.Fatalf("period %d: interest+principal = %.8f, payment = %.8f", r.Period, r.Interest+r.Principal, r.Payment)
		}
		if r.Interest+r.Principal > r.Payment+1e-9 {
			t.Fatalf("period %d: applied %.8f exceeds payment %.8f", r.Period, r.Interest+r.Principal, r.Payment)
		}
		if !near(balance-r.Principal, r.Balance, 1e-9) {
			t.Fatalf("period %d: balance %.6f, want %.6f", r.Period, r.Balance, balance-r.Principal)
		}
		balance = r.Balance
	}
}

func TestSchedule_ZeroRate(t *testing.T) {
	l := mustSchedule(t, model.LoanParameters{Principal: 36000, AnnualRate: 0, TermMonths: 36})

	if l.Payment != 1000 {
		t.Fatalf("Payment = %v, want 1000", l.Payment)
	}
	for _, r := range l.Records() {
		if r.Interest != 0 {
			t.Fatalf("period %d: Interest = %v, want 0", r.Period, r.Interest)
		}
		if r.Principal != l.Payment {
			t.Fatalf("period %d: Principal = %v, want %v", r.Period, r.Principal, l.Payment)
		}
	}
	if last, _ := l.Final(); last.Balance != 0 {
		t.Fatalf("final Balance = %v, want 0", last.Balance)
	}
}

func TestSchedule_InvalidInputEmitsNothing(t *testing.T) {
	cases := []model.LoanParameters{
		{Principal: 0, AnnualRate: 0.05, TermMonths: 360},
		{Principal: 100000, AnnualRate: 0.05, TermMonths: 0},
		{Principal: 100000, AnnualRate: 0.05, TermMonths: MaxTermMonths + 1},
		{Principal: 100000, AnnualRate: -0.01, TermMonths: 360},
	}
	for _, p := range cases {
		l, err := Schedule(p)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Schedule(%+v) err = %v, want ErrInvalidInput", p, err)
		}
		if l.Len() != 0 {
			t.Fatalf("Schedule(%+v) emitted %d records, want 0", p, l.Len())
		}
	}
}

func TestBuildLedger_ClampsOverpayment(t *testing.T) {
	// 1000/month against 100000 at 5% retires the loan around period 130.
	l := BuildLedger(100000, 0.05/12, 1000, 360)

	if l.Len() != 360 {
		t.Fatalf("Len = %d, want 360 (loop bound is fixed)", l.Len())
	}

	clamped := -1
	for _, r := range l.Records() {
		if r.Balance < 0 {
			t.Fatalf("period %d: negative balance %g", r.Period, r.Balance)
		}
		if clamped < 0 && r.Interest+r.Principal < r.Payment-1e-9 {
			clamped = r.Period
		}
	}
	if clamped < 0 {
		t.Fatal("expected a clamped period")
	}
	after := l.Record(clamped - 1)
	if after.Balance != 0 {
		t.Fatalf("balance after clamp = %g, want 0", after.Balance)
	}
	tail := l.Record(l.Len() - 1)
	if tail.Interest != 0 || tail.Principal != 0 || tail.Balance != 0 {
		t.Fatalf("tail record = %+v, want zero interest/principal/balance", tail)
	}
}

func TestBuildLedger_UndersizedPaymentKeepsBalance(t *testing.T) {
	// Payment covers the interest but not the full principal.
	l := BuildLedger(100000, 0.05/12, 500, 120)

	if l.Len() != 120 {
		t.Fatalf("Len = %d, want 120", l.Len())
	}
	last, _ := l.Final()
	if last.Balance <= 0 {
		t.Fatalf("final Balance = %g, want positive", last.Balance)
	}
	if last.Balance >= l.Principal {
		t.Fatalf("final Balance = %g, want below principal %g", last.Balance, l.Principal)
	}
}

func TestBuildLedger_EmptyTerm(t *testing.T) {
	l := BuildLedger(1000, 0.01, 100, 0)
	if l.Len() != 0 {
		t.Fatalf("Len = %d, want 0", l.Len())
	}
	if _, ok := l.Final(); ok {
		t.Fatal("Final returned ok for empty ledger")
	}
}

func TestScheduleWithPayment_RejectsNonPositive(t *testing.T) {
	p := model.LoanParameters{Principal: 1000, AnnualRate: 0.05, TermMonths: 12}
	for _, pay := range []float64{0, -10, math.NaN()} {
		_, err := ScheduleWithPayment(p, pay)
		var ie *InputError
		if !errors.As(err, &ie) || ie.Param != "payment" {
			t.Fatalf("ScheduleWithPayment(%v) err = %v, want payment InputError", pay, err)
		}
	}
}

func TestScheduleWithPayment_RejectsPaymentBelowInterest(t *testing.T) {
	p := model.LoanParameters{Principal: 160000, AnnualRate: 0.0703, TermMonths: 3}
	interest := p.Principal * p.PeriodicRate()

	for _, pay := range []float64{100, interest} {
		l, err := ScheduleWithPayment(p, pay)
		var ie *InputError
		if !errors.As(err, &ie) || ie.Param != "payment" {
			t.Fatalf("ScheduleWithPayment(%v) err = %v, want payment InputError", pay, err)
		}
		if l.Len() != 0 {
			t.Fatalf("ScheduleWithPayment(%v) emitted %d records, want 0", pay, l.Len())
		}
	}

	l, err := ScheduleWithPayment(p, interest+1)
	if err != nil {
		t.Fatalf("payment just above interest: %v", err)
	}
	prev := p.Principal
	for _, r := range l.Records() {
		if r.Balance > prev {
			t.Fatalf("period %d balance %.2f rose above %.2f", r.Period, r.Balance, prev)
		}
		prev = r.Balance
	}
}

func TestScheduleLoan_RejectsOverflowingYears(t *testing.T) {
	loan := model.Loan{Price: 200000, DownpaymentRate: 0.2, Years: 4611686018427387934, AnnualRate: 0.0703}
	l, err := ScheduleLoan(loan, 0)
	var ie *InputError
	if !errors.As(err, &ie) || ie.Param != "years" {
		t.Fatalf("err = %v, want years InputError", err)
	}
	if l.Len() != 0 {
		t.Fatalf("emitted %d records, want 0", l.Len())
	}
}

func TestScheduleLoan_DerivesParameters(t *testing.T) {
	loan := model.Loan{Price: 200000, DownpaymentRate: 0.2, Years: 30, AnnualRate: 0.0703}
	l, err := ScheduleLoan(loan, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !near(l.Principal, 160000, 1e-6) {
		t.Fatalf("Principal = %v, want 160000", l.Principal)
	}
	if l.Len() != 360 {
		t.Fatalf("Len = %d, want 360", l.Len())
	}
}

func TestValidateLoan(t *testing.T) {
	ok := model.Loan{Price: 300000, DownpaymentRate: 0.1, Years: 25, AnnualRate: 0.06}
	cases := []struct {
		name  string
		mut   func(*model.Loan)
		param string
	}{
		{"valid", func(*model.Loan) {}, ""},
		{"zero down", func(l *model.Loan) { l.DownpaymentRate = 0 }, ""},
		{"zero price", func(l *model.Loan) { l.Price = 0 }, "price"},
		{"full down", func(l *model.Loan) { l.DownpaymentRate = 1 }, "downpayment_rate"},
		{"negative down", func(l *model.Loan) { l.DownpaymentRate = -0.1 }, "downpayment_rate"},
		{"zero years", func(l *model.Loan) { l.Years = 0 }, "years"},
		{"max years", func(l *model.Loan) { l.Years = MaxYears }, ""},
		{"past max years", func(l *model.Loan) { l.Years = MaxYears + 1 }, "years"},
		{"overflowing years", func(l *model.Loan) { l.Years = math.MaxInt/model.MonthsPerYear + 2 }, "years"},
		{"negative rate", func(l *model.Loan) { l.AnnualRate = -0.01 }, "annual_rate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := ok
			tc.mut(&l)
			err := ValidateLoan(l)
			if tc.param == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ie *InputError
			if !errors.As(err, &ie) {
				t.Fatalf("err = %v, want *InputError", err)
			}
			if ie.Param != tc.param {
				t.Fatalf("Param = %q, want %q", ie.Param, tc.param)
			}
		})
	}
}

func TestBalanceAt_MatchesRecurrence(t *testing.T) {
	l := mustSchedule(t, model.LoanParameters{Principal: 160000, AnnualRate: 0.0703, TermMonths: 360})
	for _, k := range []int{1, 12, 120, 359} {
		want := l.Record(k - 1).Balance
		got := BalanceAt(l.Principal, l.PeriodicRate, l.Payment, k)
		if !near(got, want, 1e-6) {
			t.Fatalf("BalanceAt(%d) = %.8f, want %.8f", k, got, want)
		}
	}
	if got := BalanceAt(1200, 0, 100, 5); got != 700 {
		t.Fatalf("zero-rate BalanceAt = %v, want 700", got)
	}
}

func TestInputError_Message(t *testing.T) {
	err := Validate(model.LoanParameters{Principal: -5, AnnualRate: 0.05, TermMonths: 12})
	want := "invalid input: principal must be positive (got -5)"
	if err == nil || err.Error() != want {
		t.Fatalf("err = %v, want %q", err, want)
	}
}
