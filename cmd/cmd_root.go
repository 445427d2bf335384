// Copyright 2026 The Rumbo Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

type rootOptions struct {
	// ConfigFile is the path to the YAML configuration file.
	ConfigFile string

	// Enables light tracing of HTTP requests and responses
	EnableHTTPTrace bool

	// Enables full HTTP body tracing
	EnableHTTPBodyTrace bool
}

var options rootOptions

var rootCmd = &cobra.Command{
	Use:   "rumbo",
	Short: "location query aggregation service",
	Long: `
rumbo mediates geocoding, reverse-geocoding and routing queries between
callers and several external location providers, caching what each
provider's terms allow and falling back across providers in priority
order when one fails.
`,
}

var Version = "dev"

func Execute(version string) {
	Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&options.ConfigFile, "config", "c", "rumbo.yaml",
		"path to the configuration file")
	rootCmd.PersistentFlags().BoolVar(&options.EnableHTTPTrace, "http-trace", false,
		"trace provider HTTP requests and responses to stderr")
	rootCmd.PersistentFlags().BoolVar(&options.EnableHTTPBodyTrace, "http-body-trace", false,
		"also trace provider HTTP bodies (implies --http-trace)")
}
