package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nkaddour/ttc/internal/domain"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage automation accounts",
	}

	cmd.AddCommand(
		newAccountListCmd(app),
		newAccountGetCmd(app),
		newAccountAddCmd(app),
		newAccountUpdateCmd(app),
		newAccountDeleteCmd(app),
	)

	return cmd
}

func newAccountListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List automation accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireAuthenticated(cmd.Context()); err != nil {
				return err
			}

			accounts, err := app.gateway.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}

			for _, account := range accounts {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n",
					account.ID, account.Username, account.Country, account.Proxy)
			}
			return nil
		},
	}
}

func newAccountGetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one automation account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuthenticated(cmd.Context()); err != nil {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			account, err := app.gateway.GetAccount(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "id: %d\n", account.ID)
			_, _ = fmt.Fprintf(out, "username: %s\n", account.Username)
			_, _ = fmt.Fprintf(out, "country: %s\n", account.Country)
			if account.Proxy != "" {
				_, _ = fmt.Fprintf(out, "proxy: %s\n", account.Proxy)
			}
			return nil
		},
	}
}

func accountFlags(cmd *cobra.Command, account *domain.NewAccount) {
	cmd.Flags().StringVarP(&account.Username, "username", "u", "", "TikTok username")
	cmd.Flags().StringVarP(&account.Password, "password", "p", "", "TikTok password")
	cmd.Flags().StringVarP(&account.Country, "country", "c", "", "account country")
	cmd.Flags().StringVar(&account.Proxy, "proxy", "", "proxy address to route through")
}

func newAccountAddCmd(app *app) *cobra.Command {
	var account domain.NewAccount

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an automation account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireAuthenticated(cmd.Context()); err != nil {
				return err
			}
			if err := account.Validate(); err != nil {
				return err
			}

			created, err := app.gateway.CreateAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created account %d (%s)\n", created.ID, created.Username)
			return nil
		},
	}

	accountFlags(cmd, &account)
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("country")

	return cmd
}

func newAccountUpdateCmd(app *app) *cobra.Command {
	var account domain.NewAccount

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an automation account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuthenticated(cmd.Context()); err != nil {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := account.Validate(); err != nil {
				return err
			}

			updated, err := app.gateway.UpdateAccount(cmd.Context(), id, account)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated account %d (%s)\n", updated.ID, updated.Username)
			return nil
		},
	}

	accountFlags(cmd, &account)
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("country")

	return cmd
}

func newAccountDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"remove", "rm"},
		Short:   "Delete an automation account",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuthenticated(cmd.Context()); err != nil {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := app.gateway.DeleteAccount(cmd.Context(), id); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted account %d\n", id)
			return nil
		},
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
