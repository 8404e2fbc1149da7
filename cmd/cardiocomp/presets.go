// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/cardiocomp/model"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the physiological presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MODE\tRS\tRP\tKR\tKL")
			for _, p := range model.Presets() {
				fmt.Fprintf(w, "%s\t%v\t%v\t%v\t%v\n",
					p.Name, p.SystemicResistance, p.PulmonaryResistance, p.SystemicScale, p.PulmonaryScale)
			}

			return w.Flush()
		},
	}
}

func joinModes() string { return strings.Join(model.Modes(), ", ") }
