package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mortsim/internal/cli"
	"mortsim/internal/client"
	"mortsim/internal/server"

	"github.com/spf13/cobra"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve schedules over HTTP",
	RunE:  runServe,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query a running server's status endpoint",
	RunE:  runServeStatus,
}

func init() {
	serveCmd.PersistentFlags().StringVar(&flagAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.AddCommand(serveStatusCmd)
	rootCmd.AddCommand(serveCmd)
}

func serveAddr() string {
	if flagAddr != "" {
		return flagAddr
	}
	return cfg.Server.Addr
}

func runServe(_ *cobra.Command, _ []string) error {
	svc := server.New(server.Config{
		Addr:     serveAddr(),
		Defaults: loan,
		Logger:   slog.Default(),
	})

	note("mortsim listening on http://%s", serveAddr())
	note("Try: curl 'http://%s/v1/summary?price=350000&annual_rate=0.065'", serveAddr())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runServeStatus(cmd *cobra.Command, _ []string) error {
	addr := serveAddr()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Address: http://%s\n", addr)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
	defer cancel()

	st, err := client.New(addr).Status(ctx)
	if err != nil {
		return fmt.Errorf("server status: %w", err)
	}

	fmt.Fprintf(out, "  Started:  %s\n", st.StartedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(out, "  Requests: %s (%s rejected)\n",
		cli.FormatNumber(st.Requests), cli.FormatNumber(st.Rejected))
	fmt.Fprintf(out, "  Defaults: %s, %s down, %d years at %s\n",
		cli.FormatMoney(st.Defaults.Price),
		cli.FormatPercent(st.Defaults.DownpaymentRate),
		st.Defaults.Years,
		cli.FormatRate(st.Defaults.AnnualRate))
	return nil
}
