// Copyright 2026 The Rumbo Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jcodagnone/rumbo/geo"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the location query HTTP gateway",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := LoadConfig(options.ConfigFile)
		if err != nil {
			return err
		}

		orchestrator, err := buildOrchestrator(cfg)
		if err != nil {
			return err
		}

		names := make([]string, 0, len(cfg.Providers))
		for _, pc := range cfg.Providers {
			names = append(names, pc.Name)
		}

		fmt.Printf("🌎 Providers (in fallback order): %s\n", strings.Join(names, ", "))

		if cfg.Cache.Redis.Addr != "" {
			fmt.Printf("🗄️  Backing cache: redis at %s\n", cfg.Cache.Redis.Addr)
		} else {
			fmt.Println("🗄️  Backing cache: disabled (local tier only)")
		}

		fmt.Printf("🚀 Listening on %s\n", cfg.Listen)

		return geo.NewServer(orchestrator).Run(cfg.Listen)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
