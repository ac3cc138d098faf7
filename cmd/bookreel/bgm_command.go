package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookreel/internal/bgm"
)

func newBGMCommand(ctx *commandContext) *cobra.Command {
	bgmCmd := &cobra.Command{
		Use:   "bgm",
		Short: "Background music utilities",
	}
	bgmCmd.AddCommand(newBGMListCommand(ctx))
	return bgmCmd
}

func newBGMListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List discoverable background music tracks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			tracks, err := bgm.Discover(cfg.Paths.BGMDirs)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(tracks) == 0 {
				fmt.Fprintln(out, "No background music tracks found")
				for _, dir := range cfg.Paths.BGMDirs {
					fmt.Fprintf(out, "  searched %s\n", dir)
				}
				return nil
			}
			rows := make([][]string, 0, len(tracks))
			for _, track := range tracks {
				rows = append(rows, []string{track.Name, track.Path})
			}
			fmt.Fprintln(out, renderTable([]string{"Track", "Path"}, rows, nil))
			return nil
		},
	}
}
