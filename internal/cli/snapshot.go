package cli

import (
	"github.com/spf13/cobra"

	"spotwatch/internal/app"
)

var snapshotSource string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Fetch and display the current spot price across all currencies",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.SnapshotOptions{
			Source: snapshotSource,
		}
		return getApp().Snapshot(cmd.Context(), opts)
	},
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotSource, "source", "", "Asset pool id (defaults to config)")
}
