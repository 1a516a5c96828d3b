package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"mortsim/internal/amortize"
	"mortsim/internal/config"
	"mortsim/internal/model"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagPrice   float64
	flagDown    float64
	flagYears   int
	flagRate    float64
	flagPayment float64
	flagQuiet   bool
	flagVerbose bool
)

// Resolved by the root PersistentPreRunE before any command runs.
var (
	cfg  = config.DefaultConfig()
	loan = cfg.Loan.LoanModel()
)

var rootCmd = &cobra.Command{
	Use:   "mortsim",
	Short: "Fixed-rate mortgage amortization",
	Long: "Compute the payment and per-period amortization schedule of a fixed-rate loan,\n" +
		"and explore it as tables, charts, exports, an HTTP API, or an interactive TUI.",
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
	RunE:              runSchedule,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	def := config.DefaultConfig().Loan

	rootCmd.PersistentFlags().Float64VarP(&flagPrice, "price", "p", def.Price, "Purchase price")
	rootCmd.PersistentFlags().Float64VarP(&flagDown, "down", "d", def.DownpaymentRate, "Down payment as a fraction of price")
	rootCmd.PersistentFlags().IntVarP(&flagYears, "years", "y", def.Years, "Loan term in years")
	rootCmd.PersistentFlags().Float64VarP(&flagRate, "rate", "r", def.AnnualRate, "Annual interest rate as a fraction")
	rootCmd.PersistentFlags().Float64Var(&flagPayment, "payment", 0, "Fixed monthly payment instead of the computed one")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress notes on stderr")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Debug logging")
}

// prepare loads .env and the config file, then layers explicitly set flags
// on top of the configured loan.
func prepare(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	switch {
	case flagVerbose:
		level = slog.LevelDebug
	case flagQuiet:
		level = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}
		slog.Debug("no .env file", "error", err)
	}

	c, err := config.Load()
	if err != nil {
		return err
	}
	cfg = c
	loan = resolveLoan(cfg.Loan, cmd.Flags().Changed)

	slog.Debug("loan resolved",
		"config", config.Path(),
		"price", loan.Price,
		"downpayment_rate", loan.DownpaymentRate,
		"years", loan.Years,
		"annual_rate", loan.AnnualRate,
		"payment", flagPayment,
	)
	return nil
}

// resolveLoan prefers flags the user set over the configured values.
func resolveLoan(lc config.LoanConfig, changed func(name string) bool) model.Loan {
	l := lc.LoanModel()
	if changed("price") {
		l.Price = flagPrice
	}
	if changed("down") {
		l.DownpaymentRate = flagDown
	}
	if changed("years") {
		l.Years = flagYears
	}
	if changed("rate") {
		l.AnnualRate = flagRate
	}
	return l
}

// buildLedger is the shared schedule path used by all commands.
func buildLedger() (model.Ledger, error) {
	l, err := amortize.ScheduleLoan(loan, flagPayment)
	if err != nil {
		return model.Ledger{}, err
	}
	return l, nil
}

// note writes a hint to stderr unless --quiet.
func note(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
}
