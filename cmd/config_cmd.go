// Package cmd implements the mortsim CLI commands.
package cmd

import (
	"fmt"

	"mortsim/internal/cli"
	"mortsim/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Loan]")
	fmt.Fprintf(out, "    Price:        %s\n", cli.FormatMoney(cfg.Loan.Price))
	fmt.Fprintf(out, "    Down payment: %s\n", cli.FormatPercent(cfg.Loan.DownpaymentRate))
	fmt.Fprintf(out, "    Years:        %d\n", cfg.Loan.Years)
	fmt.Fprintf(out, "    Annual rate:  %s\n", cli.FormatRate(cfg.Loan.AnnualRate))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Output]")
	fmt.Fprintf(out, "    Format: %s\n", cfg.Output.Format)
	fmt.Fprintf(out, "    Chart:  %dx%d\n", cfg.Output.ChartWidth, cfg.Output.ChartHeight)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Server]")
	fmt.Fprintf(out, "    Address: %s\n", cfg.Server.Addr)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Appearance]")
	fmt.Fprintf(out, "    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Fprintln(out)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(out, "  Problems:\n    %v\n\n", err)
	}

	fmt.Fprintln(out, "  Run `mortsim setup` to reconfigure.")
	return nil
}
