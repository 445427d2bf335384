// Copyright 2026 The Rumbo Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/jcodagnone/rumbo/geo"
)

var warmCmd = &cobra.Command{
	Use:   "warm <addresses-file>",
	Short: "Pre-populate the cache from a file of addresses",
	Long: `Geocodes every address in the given file (one per line, '#' starts a
comment) through the regular provider chain, so the cache is warm before
traffic arrives. Providers that disallow caching contribute nothing here
beyond spending quota, so order your configuration accordingly.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(options.ConfigFile)
		if err != nil {
			return err
		}

		orchestrator, err := buildOrchestrator(cfg)
		if err != nil {
			return err
		}

		addresses, err := readAddresses(args[0])
		if err != nil {
			return err
		}

		var bar *progressbar.ProgressBar
		if isatty.IsTerminal(os.Stderr.Fd()) {
			bar = progressbar.NewOptions(len(addresses),
				progressbar.OptionSetDescription("Warming cache"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}

		var resolved, unresolved int

		ctx := cmd.Context()

		for _, address := range addresses {
			result, err := orchestrator.Geocode(ctx, address)
			if err != nil {
				return fmt.Errorf("warming %q: %w", address, err)
			}

			if result.Provider == geo.NoProvider {
				unresolved++
			} else {
				resolved++
			}

			if bar != nil {
				_ = bar.Add(1)
			}
		}

		fmt.Printf("✅ Warmed %d addresses (%d unresolved)\n", resolved, unresolved)

		return nil
	},
}

func readAddresses(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening addresses file: %w", err)
	}
	defer f.Close()

	var addresses []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		addresses = append(addresses, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading addresses file: %w", err)
	}

	return addresses, nil
}

func init() {
	rootCmd.AddCommand(warmCmd)
}
