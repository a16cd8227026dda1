package main

import (
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the title screen",
	Long: `Open the title screen to pick single player or co-op, or browse the
run history.

Navigation:
  Up/Down   - Move selection
  Enter     - Select
  Q/Ctrl+C  - Quit`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	return runLocal(0)
}
