package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"network-quality/internal/metrics"
	"network-quality/internal/monitor"
	"network-quality/internal/probe"
	"network-quality/internal/runner"
	"network-quality/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard and API, measuring on request",
	Long: `Serve the dashboard and API, measuring on request.

On SIGINT or SIGTERM a measurement already running is allowed to finish and is
published before exit, so shutdown can take up to the throughput timeout.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	st, closeStore, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer closeStore()

	// Initialize components
	prober := probe.New(cfg.ProbeConfig(), probe.NewSpeedtest(), logger)
	run := runner.New(prober, cfg.RunnerTimeouts(), cfg.Workers, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	exporter := metrics.New(registry)

	mon := monitor.New(run, st, exporter, cfg.Interval, logger)
	webServer, err := web.New(mon, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), cfg.Port, logger)
	if err != nil {
		return err
	}

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := mon.Start(); err != nil {
		return fmt.Errorf("failed to start monitor: %w", err)
	}

	webErr := make(chan error, 1)
	go func() {
		webErr <- webServer.Start()
	}()

	logger.Info("Web interface available", "url", fmt.Sprintf("http://localhost:%d", cfg.Port))

	select {
	case <-sigChan:
		logger.Info("Shutting down...")
	case err = <-webErr:
		if err != nil {
			err = fmt.Errorf("web server failed: %w", err)
		}
	}

	// an in-flight run is not cancelled; Wait blocks until it is published
	mon.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if shutdownErr := webServer.Shutdown(ctx); shutdownErr != nil {
		logger.Warn("Web server shutdown incomplete", "error", shutdownErr)
	}
	mon.Wait()

	return err
}
