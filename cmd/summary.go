package cmd

import (
	"fmt"

	"mortsim/internal/amortize"
	"mortsim/internal/cli"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Loan totals and payoff",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	ledger, err := buildLedger()
	if err != nil {
		return err
	}
	s := amortize.Summarize(ledger)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle("MORTGAGE SUMMARY"))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(cli.SummaryTable(loan, s)))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", cli.RenderSplitBar(s.TotalPrincipal, s.TotalInterest, 50))
	fmt.Fprintf(out, "  %s\n", cli.Legend())
	fmt.Fprintf(out, "  Balance %s\n", cli.RenderSparkline(cli.Downsample(ledger.BalanceSeries(), 48)))
	return nil
}
