package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the ibmicall version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("ibmicall", Version)
		return nil
	},
}
