// Package cmd implements the CLI commands for AuditPipe using Cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "auditpipe",
	Short: "AuditPipe — audit HTML documents for on-page SEO signals",
	Long: `AuditPipe audits HTML documents for on-page SEO signals: title and
description presence, heading distribution, image alt coverage, and
link health.

Usage:
  auditpipe audit <batch.json> [flags]`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the process logger. User-facing progress goes to
// stdout via fmt; diagnostics go to stderr through this.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
