package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ctypes/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print ctypec's version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
		return nil
	},
}
