// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/cardiocomp/config"
)

// errNoConfigPath is returned by `config init` without --config.
var errNoConfigPath = errors.New("config init: --config is required")

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage run configuration files",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a run configuration (defaults plus given flags) to --config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.configPath == "" {
				return errNoConfigPath
			}
			if _, err := os.Stat(a.configPath); err == nil && !force {
				return fmt.Errorf("config init: %s already exists (use --force)", a.configPath)
			}

			cfg := config.Default()
			a.override(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.Save(a.configPath); err != nil {
				return err
			}
			a.logger.Info("configuration written", zap.String("path", a.configPath), zap.String("mode", cfg.Mode))
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", a.configPath)

			return nil
		},
	}
	a.runFlags(initCmd, true)
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(initCmd)

	return cmd
}
