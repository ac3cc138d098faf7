package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"bookreel/internal/config"
	"bookreel/internal/render"
)

func newBurninCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "burnin <video> <subtitles.ass>",
		Short: "Burn an ASS subtitle file into an existing video",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}
			videoPath, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve video path: %w", err)
			}
			subtitlePath, err := config.ExpandPath(args[1])
			if err != nil {
				return fmt.Errorf("resolve subtitle path: %w", err)
			}

			renderer, err := ctx.newRenderer()
			if err != nil {
				return err
			}

			target := outputPath
			if target == "" {
				ext := filepath.Ext(videoPath)
				target = strings.TrimSuffix(videoPath, ext) + "_with_subtitles" + ext
			}
			in := render.Artifact{Path: videoPath}
			out, err := renderer.BurnSubtitles(cmd.Context(), in, subtitlePath, target)
			if err != nil {
				return err
			}
			if !out.HasSubtitles {
				fmt.Fprintln(cmd.OutOrStdout(), "Burn-in failed, original video left unchanged")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination for the subtitled video")
	return cmd
}
