package cmd

import (
	"fmt"

	"mortsim/internal/cli"
	"mortsim/internal/tui/components"
	"mortsim/internal/tui/theme"

	"github.com/spf13/cobra"
)

var (
	flagChartWidth  int
	flagChartHeight int
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Interest and principal paid per period",
	RunE:  runChart,
}

func init() {
	chartCmd.Flags().IntVar(&flagChartWidth, "width", 0, "Plot width in columns (default from config)")
	chartCmd.Flags().IntVar(&flagChartHeight, "height", 0, "Plot height in rows (default from config)")
	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, _ []string) error {
	ledger, err := buildLedger()
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)
	t := theme.Active

	width, height := cfg.Output.ChartWidth, cfg.Output.ChartHeight
	if flagChartWidth > 0 {
		width = flagChartWidth
	}
	if flagChartHeight > 0 {
		height = flagChartHeight
	}

	series := []components.Series{
		{Name: "Interest Paid", Values: ledger.InterestSeries(), Color: t.Interest},
		{Name: "Principal Paid", Values: ledger.PrincipalSeries(), Color: t.Principal},
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("PAYMENT SPLIT  %s per month", cli.FormatMoney(ledger.Payment))))
	fmt.Fprintln(out)
	fmt.Fprintln(out, components.LineChart(ledger.Periods(), series, width, height, "Periods", "Amount"))
	return nil
}
