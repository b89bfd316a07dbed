package cli

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/macromate/macromate/internal/app"
	configinfra "github.com/macromate/macromate/internal/infrastructure/config"
)

func newConfigCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect MacroMate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, container)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show full configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showConfig(cmd, container)
			},
		},
		&cobra.Command{
			Use:   "diff",
			Short: "Show differences from the default configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				diff := cmp.Diff(configinfra.Default(), container.Config)
				if diff == "" {
					fmt.Fprintln(cmd.OutOrStdout(), "No differences from default configuration.")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), diff)
				return nil
			},
		},
	)
	return cmd
}

func showConfig(cmd *cobra.Command, container *app.Container) error {
	cfg := container.Config
	// never print the credential
	cfg.API.APIKey = ""
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", container.ConfigLoader.Path(), raw)
	return nil
}
