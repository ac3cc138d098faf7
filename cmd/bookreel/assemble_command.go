package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookreel/internal/config"
	"bookreel/internal/render"
	"bookreel/internal/storyboard"
)

func newAssembleCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "assemble <storyboard.json>",
		Short: "Assemble scene clips into the base video only",
		Long: `Assemble runs just the compositing stage: scene clips with motion
effects and transitions, no subtitles, no background music. Useful for
previewing pacing before a full render.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			storyboardPath, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve storyboard path: %w", err)
			}
			sb, err := storyboard.Load(storyboardPath)
			if err != nil {
				return err
			}

			renderer, err := ctx.newRenderer()
			if err != nil {
				return err
			}
			timed := renderer.ResolveDurations(cmd.Context(), sb)

			target := outputPath
			if target == "" {
				target = render.OutputName(cfg.Paths.OutputDir, sb.BookName, render.SuffixBase)
			}
			artifact, err := renderer.Assemble(cmd.Context(), sb, timed, target)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Assembled %d scenes into %s (%.1fs)\n",
				len(sb.Scenes), artifact.Path, artifact.DurationSeconds)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination for the assembled video")
	return cmd
}
