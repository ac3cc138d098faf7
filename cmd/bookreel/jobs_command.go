package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newJobsCommand(ctx *commandContext) *cobra.Command {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect render jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			jobs, err := store.ListJobs(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(jobs) == 0 {
				fmt.Fprintln(out, "No render jobs recorded")
				return nil
			}
			rows := make([][]string, 0, len(jobs))
			for _, job := range jobs {
				rows = append(rows, []string{
					strconv.FormatInt(job.ID, 10),
					job.BookName,
					string(job.Status),
					fmt.Sprintf("%.1fs", job.DurationSeconds),
					yesNo(job.HasSubtitles),
					yesNo(job.HasBGM),
					job.UpdatedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Book", "Status", "Duration", "Subs", "BGM", "Updated"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	jobsCmd.AddCommand(newJobsShowCommand(ctx))
	return jobsCmd
}

func newJobsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one render job in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid job id %q", args[0])
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			job, err := store.GetJob(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Job %d: %s\n", job.ID, job.BookName)
			fmt.Fprintf(out, "  Storyboard: %s\n", job.StoryboardPath)
			fmt.Fprintf(out, "  Status:     %s\n", job.Status)
			if job.ErrorMessage != "" {
				fmt.Fprintf(out, "  Error:      %s\n", job.ErrorMessage)
			}
			if job.BasePath != "" {
				fmt.Fprintf(out, "  Base:       %s\n", job.BasePath)
			}
			if job.SubtitledPath != "" && job.SubtitledPath != job.BasePath {
				fmt.Fprintf(out, "  Subtitled:  %s\n", job.SubtitledPath)
			}
			if job.FinalPath != "" {
				fmt.Fprintf(out, "  Final:      %s\n", job.FinalPath)
			}
			fmt.Fprintf(out, "  Duration:   %.1fs\n", job.DurationSeconds)
			fmt.Fprintf(out, "  Updated:    %s\n", job.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}
