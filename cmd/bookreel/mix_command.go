package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"bookreel/internal/bgm"
	"bookreel/internal/config"
	"bookreel/internal/render"
)

func newMixCommand(ctx *commandContext) *cobra.Command {
	var volume float64
	var outputPath string

	cmd := &cobra.Command{
		Use:   "mix <video> <bgm>",
		Short: "Mix background music into an existing video",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			videoPath, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve video path: %w", err)
			}
			bgmPath, err := bgm.Resolve(args[1], cfg.Paths.BGMDirs)
			if err != nil {
				return err
			}

			if volume < 0 {
				volume = cfg.BGM.Volume
			}

			target := outputPath
			if target == "" {
				ext := filepath.Ext(videoPath)
				target = strings.TrimSuffix(videoPath, ext) + "_with_bgm" + ext
			}

			renderer, err := ctx.newRenderer()
			if err != nil {
				return err
			}
			artifact, err := renderer.MixBGM(cmd.Context(),
				render.Artifact{Path: videoPath}, bgmPath, volume, target)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Mixed %s into %s\n", filepath.Base(bgmPath), artifact.Path)
			return nil
		},
	}

	cmd.Flags().Float64Var(&volume, "volume", -1, "BGM volume (0.0 to 1.0, default from config)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination for the mixed video")
	return cmd
}
