package cli

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the supported sources, currencies, units, and ranges",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().List()
	},
}
