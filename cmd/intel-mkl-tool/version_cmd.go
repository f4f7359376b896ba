package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// toolVersion is overridden at release time via -ldflags.
var toolVersion = "dev"

// mklVersion is the pinned MKL release the artifact tables describe.
const mklVersion = "2020.4"

// createVersionCommand creates the version subcommand
func createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tool version and the pinned MKL release",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "intel-mkl-tool %s (MKL %s)\n", toolVersion, mklVersion)
		},
	}
}
