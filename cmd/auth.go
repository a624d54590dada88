package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nkaddour/ttc/internal/domain"
)

func newLoginCmd(app *app) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.session.Login(cmd.Context(), username, password); err != nil {
				return err
			}

			user, _ := app.session.CurrentUser()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newRegisterCmd(app *app) *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a user and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := domain.Registration{Username: username, Email: email, Password: password}
			if err := app.session.Register(cmd.Context(), reg); err != nil {
				return err
			}

			user, _ := app.session.CurrentUser()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "registered and signed in as %s\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.session.Logout(cmd.Context()); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func newWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireAuthenticated(cmd.Context()); err != nil {
				return err
			}

			user, ok := app.session.CurrentUser()
			if !ok {
				return errNotSignedIn
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s (id %d)\n", user.Username, user.ID)
			if user.Email != "" {
				_, _ = fmt.Fprintf(out, "email: %s\n", user.Email)
			}
			if user.IsAdmin {
				_, _ = fmt.Fprintln(out, "admin: yes")
			}
			return nil
		},
	}
}
