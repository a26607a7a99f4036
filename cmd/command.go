// Copyright 2026 The objprobe Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"

	"github.com/objprobe/objprobe/pkg/debug"
	"github.com/objprobe/objprobe/pkg/inspect"
	"github.com/objprobe/objprobe/pkg/logger"
	"github.com/objprobe/objprobe/pkg/utils"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "objprobe",
	Short: "objprobe - diagnostics for remote object stores",
	Long: `objprobe inspects and enumerates objects in remote object stores.

It answers two questions about a bucket without touching object data:
how large is a single object, and which objects match a wildcard
pattern (and how long the listing took).`,
	PersistentPreRun: initializeProbe,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&utils.ConfigurationFileDirectory, "config_dir", ".", "Directory for configuration files")

	rootCmd.PersistentFlags().String("backend", "", "Named backend profile from the config file")
	rootCmd.PersistentFlags().String("endpoint", "", "S3 endpoint override (e.g. http://localhost:9000)")
	rootCmd.PersistentFlags().String("region", "", "S3 region")
	rootCmd.PersistentFlags().String("access_key", "", "S3 access key (static credentials)")
	rootCmd.PersistentFlags().String("secret_key", "", "S3 secret key (static credentials)")
	rootCmd.PersistentFlags().Bool("path_style", false, "Use path-style S3 addressing")
	rootCmd.PersistentFlags().String("root_dir", ".", "Root directory for file:// references")
	rootCmd.PersistentFlags().String("debug_addr", "", "Address for the debug HTTP listener (disabled when empty)")
}

// initializeProbe loads configuration and wires the diagnostics surface
// before any subcommand runs.
func initializeProbe(cmd *cobra.Command, args []string) {
	utils.LoadConfiguration("objprobe", false)

	// Tag every log line of this invocation with a run ID.
	l := logger.With().Str("run_id", uuid.NewString()).Logger()
	cmd.SetContext(logger.WithLogger(cmd.Context(), &l))

	if err := inspect.RegisterMetrics(debug.Registry()); err != nil {
		logger.Warn().Err(err).Msg("Failed to register inspection metrics")
	}

	fl := NewFlagLoader(cmd)
	if addr := fl.String("debug_addr"); addr != "" {
		go func() {
			if err := debug.Serve(addr); err != nil {
				logger.Warn().Err(err).Msg("Debug listener stopped")
			}
		}()
	}
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
