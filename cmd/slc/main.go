package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "slc",
		Short:        "Shader language compiler front end",
		SilenceUsage: true,
	}

	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newWatchCmd())
	return cmd
}
