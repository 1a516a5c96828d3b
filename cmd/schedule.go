package cmd

import (
	"fmt"

	"mortsim/internal/amortize"
	"mortsim/internal/cli"

	"github.com/spf13/cobra"
)

var (
	flagYearly bool
	flagEvery  int
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Per-period amortization table",
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().BoolVar(&flagYearly, "yearly", false, "Roll periods up into loan years")
	scheduleCmd.Flags().IntVar(&flagEvery, "every", 1, "Show every n-th period (first and last always shown)")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	ledger, err := buildLedger()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	params := loan.Parameters()

	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("%s @ %s  %s",
		cli.FormatMoney(params.Principal),
		cli.FormatRate(params.AnnualRate),
		cli.FormatTerm(params.TermMonths))))
	fmt.Fprintln(out)

	table := cli.ScheduleTable(ledger, flagEvery)
	if flagYearly {
		table = cli.YearlyTable(amortize.Yearly(ledger))
	}
	fmt.Fprint(out, cli.RenderTable(table))

	s := amortize.Summarize(ledger)
	fmt.Fprintf(out, "\n  Monthly payment %s, total interest %s\n",
		cli.FormatMoney(s.Payment), cli.FormatMoney(s.TotalInterest))
	if s.PayoffPeriod == 0 {
		note("Balance of %s remains after the last period", cli.FormatMoney(s.FinalBalance))
	}
	return nil
}
