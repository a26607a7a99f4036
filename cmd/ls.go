// Copyright 2026 The objprobe Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/objprobe/objprobe/pkg/logger"

	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls URI",
	Short: "List the immediate children of a prefix",
	Long: `Ls prints the immediate children of a directory-like prefix, one per
line: object names and subdirectory names relative to the prefix.

Example:
  objprobe ls s3://my-bucket/datasets`,
	Args: cobra.ExactArgs(1),
	Run:  runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	uri := args[0]

	insp, _, err := newInspector(cmd, uri)
	if err != nil {
		logger.Ctx(ctx).Fatal().Err(err).Str("uri", uri).Msg("ls failed")
	}
	defer storeManager.Close()

	children, err := insp.Children(ctx, uri)
	if err != nil {
		logger.Ctx(ctx).Fatal().Err(err).Str("uri", uri).Msg("ls failed")
	}

	for _, child := range children {
		fmt.Println(child)
	}
}
