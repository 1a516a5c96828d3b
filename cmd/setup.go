package cmd

import (
	"errors"
	"fmt"

	"mortsim/internal/config"
	"mortsim/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Save default loan inputs and theme",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	vals := tui.NewLoanFormValues(loan, 0, cfg.Appearance.Theme)
	form := tui.NewLoanForm(&vals, tui.FormOptions{Title: "Welcome to mortsim", Theme: true})
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(out, "  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	l, _, err := vals.Loan()
	if err != nil {
		return err
	}
	cfg.Loan = config.LoanConfig{
		Price:           l.Price,
		DownpaymentRate: l.DownpaymentRate,
		Years:           l.Years,
		AnnualRate:      l.AnnualRate,
	}
	cfg.Appearance.Theme = vals.Theme

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Saved to %s\n", config.Path())
	fmt.Fprintln(out, "  Run `mortsim setup` anytime to reconfigure.")
	fmt.Fprintln(out)
	return nil
}
