package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nkaddour/ttc/internal/domain"
)

func newEngagementCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "engagement",
		Short: "Trigger and inspect engagements",
	}

	cmd.AddCommand(
		newEngagementListCmd(app),
		newEngagementLikeCmd(app),
		newEngagementCommentCmd(app),
		newEngagementShareCmd(app),
		newEngagementSaveCmd(app),
		newEngagementFollowCmd(app),
	)

	return cmd
}

func newEngagementListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List engagement history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireAuthenticated(cmd.Context()); err != nil {
				return err
			}

			engagements, err := app.gateway.ListEngagements(cmd.Context())
			if err != nil {
				return err
			}

			for _, engagement := range engagements {
				target := engagement.TargetURL
				if target == "" {
					target = engagement.TargetUsername
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n",
					engagement.ID, engagement.EngagementType, engagement.Status, target)
			}
			return nil
		},
	}
}

func printEngagement(cmd *cobra.Command, engagement domain.Engagement) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "engagement %d queued (%s)\n",
		engagement.ID, engagement.EngagementType)
}

func newEngagementLikeCmd(app *app) *cobra.Command {
	var req domain.LikeRequest

	cmd := &cobra.Command{
		Use:   "like",
		Short: "Like a video",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireAuthenticated(cmd.Context()); err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return err
			}

			engagement, err := app.gateway.Like(cmd.Context(), req)
			if err != nil {
				return err
			}
			printEngagement(cmd, engagement)
			return nil
		},
	}

	cmd.Flags().Int64Var(&req.AccountID, "account", 0, "account id to act from")
	cmd.Flags().StringVar(&req.TargetURL, "url", "", "target video URL")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func newEngagementCommentCmd(app *app) *cobra.Command {
	var req domain.CommentRequest

	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Comment on a video",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireAuthenticated(cmd.Context()); err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return err
			}

			engagement, err := app.gateway.Comment(cmd.Context(), req)
			if err != nil {
				return err
			}
			printEngagement(cmd, engagement)
			return nil
		},
	}

	cmd.Flags().Int64Var(&req.AccountID, "account", 0, "account id to act from")
	cmd.Flags().StringVar(&req.TargetURL, "url", "", "target video URL")
	cmd.Flags().StringVar(&req.CommentText, "text", "", "comment text")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

func newEngagementShareCmd(app *app) *cobra.Command {
	var req domain.ShareRequest

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Share a video",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireAuthenticated(cmd.Context()); err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return err
			}

			engagement, err := app.gateway.Share(cmd.Context(), req)
			if err != nil {
				return err
			}
			printEngagement(cmd, engagement)
			return nil
		},
	}

	cmd.Flags().Int64Var(&req.AccountID, "account", 0, "account id to act from")
	cmd.Flags().StringVar(&req.TargetURL, "url", "", "target video URL")
	cmd.Flags().StringVar(&req.ShareType, "type", "copy",
		fmt.Sprintf("share type (%s)", strings.Join(domain.ShareTypes, ", ")))
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func newEngagementSaveCmd(app *app) *cobra.Command {
	var req domain.SaveRequest

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a video",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireAuthenticated(cmd.Context()); err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return err
			}

			engagement, err := app.gateway.Save(cmd.Context(), req)
			if err != nil {
				return err
			}
			printEngagement(cmd, engagement)
			return nil
		},
	}

	cmd.Flags().Int64Var(&req.AccountID, "account", 0, "account id to act from")
	cmd.Flags().StringVar(&req.TargetURL, "url", "", "target video URL")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func newEngagementFollowCmd(app *app) *cobra.Command {
	var req domain.FollowRequest

	cmd := &cobra.Command{
		Use:   "follow",
		Short: "Follow a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireAuthenticated(cmd.Context()); err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return err
			}

			engagement, err := app.gateway.Follow(cmd.Context(), req)
			if err != nil {
				return err
			}
			printEngagement(cmd, engagement)
			return nil
		},
	}

	cmd.Flags().Int64Var(&req.AccountID, "account", 0, "account id to act from")
	cmd.Flags().StringVar(&req.Username, "user", "", "username to follow")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
