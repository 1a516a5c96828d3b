package cmd

import (
	"fmt"
	"io"
	"os"

	"mortsim/internal/export"

	"github.com/spf13/cobra"
)

var (
	flagFormat string
	flagOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the schedule as CSV, JSON, or a table",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagFormat, "format", "f", "", "Output format: table, csv, json (default from config)")
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	format := cfg.Output.Format
	if flagFormat != "" {
		format = flagFormat
	}
	r, err := export.New(format)
	if err != nil {
		return err
	}

	ledger, err := buildLedger()
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if flagOutput != "" {
		f, err := os.Create(flagOutput) //nolint:gosec // output path is chosen by the local user
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := r.Render(w, ledger); err != nil {
		return err
	}
	if flagOutput != "" {
		note("Wrote %d periods to %s", ledger.Len(), flagOutput)
	}
	return nil
}
