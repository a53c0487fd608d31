package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"suichat/internal/ledgerserver"
	"suichat/internal/observability"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		addr     string
		dbPath   string
		logLevel string
	)
	cfg := ledgerserver.DefaultConfig()
	cmd := &cobra.Command{
		Use:          "ledger",
		Short:        "Run the development ledger",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, addr, dbPath, logLevel, cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&dbPath, "db", "ledger.db", "SQLite database path")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level")
	cmd.Flags().Float64Var(&cfg.RateLimitRPS, "rate", cfg.RateLimitRPS, "requests per second allowed per host")
	cmd.Flags().IntVar(&cfg.RateLimitBurst, "burst", cfg.RateLimitBurst, "burst size per host")
	return cmd
}

func serve(ctx context.Context, addr, dbPath, logLevel string, cfg ledgerserver.Config) error {
	log := observability.NewLogger("ledger", logLevel, os.Stderr)
	metrics := observability.NewMetrics(prometheus.NewRegistry())

	st, err := ledgerserver.OpenStore(ctx, dbPath)
	if err != nil {
		log.Error(err, "open store")
		return err
	}
	defer st.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           ledgerserver.New(st, cfg, log, metrics),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("ledger listening on " + addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		log.Error(err, "listen")
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
