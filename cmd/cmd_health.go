// Copyright 2026 The Rumbo Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe the configured providers and print their availability",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := LoadConfig(options.ConfigFile)
		if err != nil {
			return err
		}

		orchestrator, err := buildOrchestrator(cfg)
		if err != nil {
			return err
		}

		health := orchestrator.ProvidersHealth(cmd.Context())

		// Print in configured fallback order, not map order.
		for _, pc := range cfg.Providers {
			status := "❌ unavailable"
			if health[pc.Name] {
				status = "✅ ok"
			}

			fmt.Printf("%-20s %s\n", pc.Name, status)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
