package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/go-mail-relay/internal/platform/config"
)

const profileEnv = "APP_PROFILE"

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	profile   string
	configDir string
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	profile := o.profile
	if profile == "" {
		profile = os.Getenv(profileEnv)
	}
	if profile == "" {
		return nil, errors.New("a profile is required: pass --profile or set APP_PROFILE (e.g. local, test, prod)")
	}

	var opts []config.Option
	if o.configDir != "" {
		opts = append(opts, config.WithConfigDir(o.configDir))
	}
	return config.Load(profile, opts...)
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "mail-relay",
		Short:         "Outbound mail relay with readiness gating and ordered shutdown",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.profile, "profile", "p", "", "Configuration profile (overrides "+profileEnv+")")
	rootCmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "Directory holding base.yaml and profile files")

	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newProbeCommand(opts))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
