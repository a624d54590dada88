package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	dashboardrender "github.com/nkaddour/ttc/internal/adapters/render/dashboard"
	"github.com/nkaddour/ttc/internal/application"
)

func newDashboardCmd(app *app) *cobra.Command {
	var (
		jsonOutput bool
		watch      bool
		interval   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show resource counts and upcoming posts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireAuthenticated(cmd.Context()); err != nil {
				return err
			}

			if watch {
				return runDashboardWatch(cmd, app, interval)
			}

			var snapshot application.Snapshot
			err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Refreshing dashboard...", func(ctx context.Context) error {
				snapshot = app.dashboard.Refresh(ctx)
				return nil
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				encoded, err := json.MarshalIndent(snapshot, "", "  ")
				if err != nil {
					return fmt.Errorf("encode snapshot: %w", err)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
				return nil
			}

			username := ""
			if user, ok := app.session.CurrentUser(); ok {
				username = user.Username
			}

			output, err := dashboardrender.Render(snapshot, dashboardrender.RenderOptions{
				Now:      snapshot.TakenAt,
				Username: username,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output the snapshot as JSON")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep refreshing until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", app.config.GetDuration("dashboard.interval"), "refresh interval in watch mode")

	return cmd
}

func runDashboardWatch(cmd *cobra.Command, app *app, interval time.Duration) error {
	username := ""
	if user, ok := app.session.CurrentUser(); ok {
		username = user.Username
	}

	refresh := func() application.Snapshot {
		return app.dashboard.Refresh(cmd.Context())
	}

	p := tea.NewProgram(
		dashboardrender.NewWatchModel(dashboardrender.RenderOptions{Username: username}, refresh),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithContext(cmd.Context()),
	)

	poller := app.dashboard.StartPolling(cmd.Context(), interval, func(snapshot application.Snapshot) {
		p.Send(dashboardrender.SnapshotMsg(snapshot))
	})
	defer poller.Stop()

	_, err := p.Run()
	return err
}
