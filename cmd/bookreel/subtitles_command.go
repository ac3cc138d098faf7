package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookreel/internal/config"
	"bookreel/internal/storyboard"
	"bookreel/internal/subtitles"
)

func newSubtitlesCommand(ctx *commandContext) *cobra.Command {
	var subtitleType string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "subtitles <storyboard.json>",
		Short: "Generate the ASS subtitle file for a storyboard",
		Long: `Subtitles builds the subtitle timeline from the storyboard's
narration and scene durations and writes the ASS file without rendering
any video. Useful for inspecting cue timing before a full render.`,
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

			selection := subtitleType
			if selection == "" {
				selection = string(sb.SubtitleType)
			}
			if selection == "" {
				selection = cfg.Subtitles.Type
			}
			mode, err := storyboard.ParseSubtitleType(selection)
			if err != nil {
				return err
			}
			if mode == storyboard.SubtitleNone {
				return fmt.Errorf("subtitle mode is none; nothing to generate")
			}

			renderer, err := ctx.newRenderer()
			if err != nil {
				return err
			}
			timed := renderer.ResolveDurations(cmd.Context(), sb)

			base, highlight := sb.Colors(cfg.Subtitles.BaseColor, cfg.Subtitles.HighlightColor)
			maxChars := cfg.Subtitles.KaraokeMaxChars
			if mode == storyboard.SubtitleNormal {
				maxChars = cfg.Subtitles.NormalMaxChars
			}
			cues := subtitles.BuildTimeline(timed, subtitles.TimelineOptions{
				Mode:     mode,
				MaxChars: maxChars,
				Colors:   subtitles.ColorPair{Base: base, Highlight: highlight},
			})
			style := subtitles.StyleFor(sb.AspectRatio, mode, cfg.Subtitles.FontName)
			style.BaseColor = base

			target := outputPath
			if target == "" {
				target = storyboardPath + ".ass"
			}
			doc := subtitles.Document{
				Title: sb.BookName + " Promotional Video",
				Style: style,
				Cues:  cues,
			}
			if err := doc.WriteFile(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d cues to %s\n", len(cues), target)
			return nil
		},
	}

	cmd.Flags().StringVar(&subtitleType, "type", "", "Subtitle mode override (karaoke, normal)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination for the ASS file")
	return cmd
}
