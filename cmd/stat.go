// Copyright 2026 The objprobe Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/objprobe/objprobe/pkg/logger"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statCmd = &cobra.Command{
	Use:   "stat URI",
	Short: "Print the size in bytes of a single object",
	Long: `Stat queries the metadata of one object and prints its byte length.

Example:
  objprobe stat s3://my-bucket/datasets/train.tar.gz`,
	Args: cobra.ExactArgs(1),
	Run:  runStat,
}

func init() {
	statCmd.Flags().Bool("human", false, "Print a human-readable size")
	rootCmd.AddCommand(statCmd)
}

func runStat(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	uri := args[0]

	insp, _, err := newInspector(cmd, uri)
	if err != nil {
		logger.Ctx(ctx).Fatal().Err(err).Str("uri", uri).Msg("stat failed")
	}
	defer storeManager.Close()

	info, err := insp.Stat(ctx, uri)
	if err != nil {
		logger.Ctx(ctx).Fatal().Err(err).Str("uri", uri).Msg("stat failed")
	}

	if human, _ := cmd.Flags().GetBool("human"); human {
		fmt.Println(humanize.IBytes(uint64(info.Size)))
		return
	}
	fmt.Println(info.Size)
}
