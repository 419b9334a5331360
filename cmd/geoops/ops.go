package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"geoops/internal/geom"
)

var opsCmd = &cobra.Command{
	Use:   "ops <path>",
	Short: "List the operations available for a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer e.closeLog()

		fc, err := geom.Load(args[0])
		if err != nil {
			return err
		}
		observed := geom.ObservedKinds(fc)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "kinds: %s\nnodes: %d\n", observed, geom.CoordCount(fc))

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("OPERATION", "ACTS ON")
		for _, d := range e.registry.Available(observed) {
			t.Row(d.Name, d.Allowed.Intersect(observed).String())
		}
		_, err = fmt.Fprintln(out, t.Render())
		return err
	},
}

func init() {
	rootCmd.AddCommand(opsCmd)
}
