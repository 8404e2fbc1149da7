// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/cardiocomp/model"
)

func newDescribeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the symbolic volume, objective and gradient for a mode",
		Long: `Print the symbolic volume, objective and gradient for a mode.

Mode and volume come from --config first; --mode and --vol win.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.resolve(cmd)
			if err != nil {
				return err
			}
			mc, err := cfg.Model()
			if err != nil {
				return err
			}
			m, err := model.Build(mc)
			if err != nil {
				return err
			}
			a.logger.Debug("describing model", zap.String("mode", cfg.Mode), zap.Float64("volume", cfg.Volume))

			ex := m.Expressions()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "volume:    %s\n", ex.Volume)
			fmt.Fprintf(out, "objective: %s\n", ex.Objective)
			for i, g := range ex.Gradient {
				fmt.Fprintf(out, "d/d%s: %s\n", model.SymbolNames[i], g)
			}

			return nil
		},
	}
	a.runFlags(cmd, false)

	return cmd
}
