package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nkaddour/ttc/internal/domain"
)

func newScheduleCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage scheduled posts",
	}

	cmd.AddCommand(
		newScheduleListCmd(app),
		newScheduleGetCmd(app),
		newScheduleAddCmd(app),
		newScheduleDeleteCmd(app),
	)

	return cmd
}

func newScheduleListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scheduled posts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireAuthenticated(cmd.Context()); err != nil {
				return err
			}

			schedules, err := app.gateway.ListSchedules(cmd.Context())
			if err != nil {
				return err
			}

			for _, schedule := range schedules {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n",
					schedule.ID, schedule.ScheduleTime, schedule.Status, schedule.Caption)
			}
			return nil
		},
	}
}

func newScheduleGetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one scheduled post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuthenticated(cmd.Context()); err != nil {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			schedule, err := app.gateway.GetSchedule(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "id: %d\n", schedule.ID)
			_, _ = fmt.Fprintf(out, "caption: %s\n", schedule.Caption)
			_, _ = fmt.Fprintf(out, "time: %s\n", schedule.ScheduleTime)
			_, _ = fmt.Fprintf(out, "status: %s\n", schedule.Status)
			if schedule.Tags != "" {
				_, _ = fmt.Fprintf(out, "tags: %s\n", schedule.Tags)
			}
			if schedule.VideoPath != "" {
				_, _ = fmt.Fprintf(out, "video: %s\n", schedule.VideoPath)
			}
			return nil
		},
	}
}

func newScheduleAddCmd(app *app) *cobra.Command {
	var (
		accountID int64
		caption   string
		at        string
		tags      string
		video     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a post",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireAuthenticated(cmd.Context()); err != nil {
				return err
			}

			when, ok := domain.ParseScheduleTime(at)
			if !ok {
				return fmt.Errorf("invalid --at value %q, use RFC 3339 or 2006-01-02T15:04:05", at)
			}

			schedule := domain.NewSchedule{
				AccountID:    accountID,
				Caption:      caption,
				ScheduleTime: when,
				Tags:         tags,
				VideoFile:    video,
			}
			if err := schedule.Validate(app.now()); err != nil {
				return err
			}

			created, err := app.gateway.CreateSchedule(cmd.Context(), schedule)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created schedule %d for %s\n", created.ID, created.ScheduleTime)
			return nil
		},
	}

	cmd.Flags().Int64Var(&accountID, "account", 0, "account id to post from")
	cmd.Flags().StringVar(&caption, "caption", "", "post caption")
	cmd.Flags().StringVar(&at, "at", "", "post time")
	cmd.Flags().StringVar(&tags, "tags", "", "comma-separated tags")
	cmd.Flags().StringVar(&video, "video", "", "video file to upload (mp4, mov or avi)")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("caption")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

func newScheduleDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"remove", "rm"},
		Short:   "Delete a scheduled post",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuthenticated(cmd.Context()); err != nil {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := app.gateway.DeleteSchedule(cmd.Context(), id); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted schedule %d\n", id)
			return nil
		},
	}
}
