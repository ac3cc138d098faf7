package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookreel/internal/config"
	"bookreel/internal/media/ffprobe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file>",
		Short: "Inspect a media file with ffprobe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			result, err := ffprobe.Inspect(cmd.Context(), cfg.FFprobeBinary(), path)
			if err != nil {
				return err
			}

			width, height := result.Dimensions()
			rows := [][]string{
				{"Duration", fmt.Sprintf("%.2fs", result.DurationSeconds())},
				{"Video streams", fmt.Sprintf("%d", result.VideoStreamCount())},
				{"Audio streams", fmt.Sprintf("%d", result.AudioStreamCount())},
			}
			if width > 0 {
				rows = append(rows, []string{"Dimensions", fmt.Sprintf("%dx%d", width, height)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Property", "Value"}, rows, nil))
			return nil
		},
	}
}
