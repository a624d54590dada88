package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

type configFile struct {
	API struct {
		BaseURL string `toml:"base_url"`
		Timeout string `toml:"timeout"`
	} `toml:"api"`
	Credentials struct {
		PassKey string `toml:"pass_key"`
		File    string `toml:"file"`
	} `toml:"credentials"`
	Dashboard struct {
		Interval string `toml:"interval"`
	} `toml:"dashboard"`
}

func newConfigCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ttc configuration",
	}

	cmd.AddCommand(
		newConfigInitCmd(app),
		newConfigShowCmd(app),
	)

	return cmd
}

func newConfigInitCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := os.UserConfigDir()
			if err != nil {
				return fmt.Errorf("resolve config directory: %w", err)
			}
			path := filepath.Join(dir, "ttc", "config.toml")

			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file already exists at %s", path)
			}

			var file configFile
			file.API.BaseURL = app.config.GetString("api.base_url")
			file.API.Timeout = app.config.GetString("api.timeout")
			file.Credentials.PassKey = app.config.GetString("credentials.pass_key")
			file.Credentials.File = app.config.GetString("credentials.file")
			file.Dashboard.Interval = app.config.GetString("dashboard.interval")

			encoded, err := toml.Marshal(file)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}
			if err := os.WriteFile(path, encoded, 0o600); err != nil {
				return fmt.Errorf("write config file: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}

func newConfigShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, key := range []string{
				"api.base_url",
				"api.timeout",
				"credentials.pass_key",
				"credentials.file",
				"dashboard.interval",
			} {
				_, _ = fmt.Fprintf(out, "%s = %q\n", key, app.config.GetString(key))
			}
			return nil
		},
	}
}
