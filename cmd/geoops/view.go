package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"geoops/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view [path]",
	Short: "Open the interactive viewer",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	// stderr would corrupt the alt screen: log only to --log-file
	e, err := setup(cmd, nil)
	if err != nil {
		return err
	}
	defer e.closeLog()

	opts := tui.Options{Registry: e.registry, Logger: e.log}
	var m tea.Model
	if len(args) > 0 {
		m = tui.NewWithPath(args[0], opts)
	} else {
		m = tui.New(opts)
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
