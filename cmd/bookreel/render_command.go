package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"bookreel/internal/config"
	"bookreel/internal/pipeline"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var subtitleType string
	var bgmFile string
	var noBGM bool

	cmd := &cobra.Command{
		Use:   "render <storyboard.json>",
		Short: "Render a storyboard into a promotional video",
		Long: `Render assembles the storyboard's scenes into a video, burns in
subtitles, and mixes background music. Progress is persisted so an
interrupted render resumes after the last completed stage.`,
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

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			runner, err := pipeline.NewRunner(cfg, store, ctx.ensureLogger())
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			job, err := runner.Run(runCtx, storyboardPath, pipeline.Overrides{
				SubtitleType: subtitleType,
				BGMFile:      bgmFile,
				SkipBGM:      noBGM,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rendered %s\n", job.BookName)
			fmt.Fprintf(out, "  Output:    %s\n", job.FinalPath)
			fmt.Fprintf(out, "  Duration:  %.1fs\n", job.DurationSeconds)
			fmt.Fprintf(out, "  Subtitles: %s\n", yesNo(job.HasSubtitles))
			fmt.Fprintf(out, "  BGM:       %s\n", yesNo(job.HasBGM))
			return nil
		},
	}

	cmd.Flags().StringVar(&subtitleType, "subtitles", "", "Subtitle mode override (karaoke, normal, none)")
	cmd.Flags().StringVar(&bgmFile, "bgm", "", "Background music file or track name")
	cmd.Flags().BoolVar(&noBGM, "no-bgm", false, "Skip background music mixing")
	return cmd
}
