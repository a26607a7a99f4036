// Copyright 2026 The objprobe Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/objprobe/objprobe/pkg/inspect"
	"github.com/objprobe/objprobe/pkg/logger"
	"github.com/objprobe/objprobe/pkg/objref"

	"github.com/spf13/cobra"
)

var globCmd = &cobra.Command{
	Use:   "glob PATTERN",
	Short: "Time a wildcard listing and print elapsed seconds and match count",
	Long: `Glob enumerates every object matching a wildcard pattern and prints
the wall-clock seconds the listing took followed by the match count.
Wildcards (*, ?, [...]) apply within path segments and never cross "/".

Example:
  objprobe glob 's3://my-bucket/imagenet/*/train*'`,
	Args: cobra.ExactArgs(1),
	Run:  runGlob,
}

func init() {
	globCmd.Flags().Bool("long", false, "Also print each matching URI")
	rootCmd.AddCommand(globCmd)
}

func runGlob(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	pattern := args[0]

	insp, _, err := newInspector(cmd, pattern)
	if err != nil {
		logger.Ctx(ctx).Fatal().Err(err).Str("pattern", pattern).Msg("glob failed")
	}
	defer storeManager.Close()

	refs, elapsed, err := inspect.Timed(func() ([]objref.Ref, error) {
		return insp.Glob(ctx, pattern)
	})
	if err != nil {
		logger.Ctx(ctx).Fatal().Err(err).Str("pattern", pattern).Msg("glob failed")
	}

	fmt.Println(elapsed.Seconds(), len(refs))
	if long, _ := cmd.Flags().GetBool("long"); long {
		for _, ref := range refs {
			fmt.Println(ref)
		}
	}
}
