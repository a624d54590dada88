package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "ttc",
		Short:         "TikTok automation console: accounts, proxies, schedules and engagements",
		Long:          "ttc drives a TikTok automation backend from the terminal: sign in, manage automation accounts and their proxies, schedule posts, trigger engagements and watch it all on a live dashboard.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// Keep normal command output clean; --verbose opens the firehose.
			logrus.SetLevel(logrus.WarnLevel)
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(app),
		newLoginCmd(app),
		newRegisterCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newAccountCmd(app),
		newProxyCmd(app),
		newScheduleCmd(app),
		newEngagementCmd(app),
		newDashboardCmd(app),
	)

	return rootCmd
}
