// Version command for the compass CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/compasscare/compass/pkg/compass"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the compass version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("compass", compass.Version)
	},
}
