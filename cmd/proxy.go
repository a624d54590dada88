package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nkaddour/ttc/internal/domain"
)

func newProxyCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proxy",
		Short: "Manage proxies",
	}

	cmd.AddCommand(
		newProxyListCmd(app),
		newProxyAddCmd(app),
		newProxyDeleteCmd(app),
	)

	return cmd
}

func newProxyListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List proxies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireAuthenticated(cmd.Context()); err != nil {
				return err
			}

			proxies, err := app.gateway.ListProxies(cmd.Context())
			if err != nil {
				return err
			}

			for _, proxy := range proxies {
				state := "inactive"
				if proxy.IsActive {
					state = "active"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n",
					proxy.ID, proxy.Address, proxy.Country, state)
			}
			return nil
		},
	}
}

func newProxyAddCmd(app *app) *cobra.Command {
	var proxy domain.NewProxy

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a proxy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireAuthenticated(cmd.Context()); err != nil {
				return err
			}
			if err := proxy.Validate(); err != nil {
				return err
			}

			created, err := app.gateway.CreateProxy(cmd.Context(), proxy)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created proxy %d (%s)\n", created.ID, created.Address)
			return nil
		},
	}

	cmd.Flags().StringVarP(&proxy.Address, "address", "a", "", "proxy address in IP:PORT form")
	cmd.Flags().StringVarP(&proxy.Country, "country", "c", "", "proxy country")
	_ = cmd.MarkFlagRequired("address")
	_ = cmd.MarkFlagRequired("country")

	return cmd
}

func newProxyDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"remove", "rm"},
		Short:   "Delete a proxy",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuthenticated(cmd.Context()); err != nil {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := app.gateway.DeleteProxy(cmd.Context(), id); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted proxy %d\n", id)
			return nil
		},
	}
}
