package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"network-quality/internal/probe"
	"network-quality/internal/report"
	"network-quality/internal/runner"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run all probes once and print the snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		reportDir, _ := cmd.Flags().GetString("report")

		st, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		prober := probe.New(cfg.ProbeConfig(), probe.NewSpeedtest(), logger)
		snapshot := runner.New(prober, cfg.RunnerTimeouts(), cfg.Workers, logger).Run(cmd.Context())
		st.Update(snapshot)

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(snapshot); err != nil {
				return err
			}
		} else if err := report.WriteText(os.Stdout, snapshot); err != nil {
			return err
		}

		if reportDir != "" {
			if _, err := report.NewGenerator(logger).GenerateReport(reportDir, snapshot); err != nil {
				return err
			}
		}
		return nil
	},
}
