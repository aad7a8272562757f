package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/ridepool/core/model"
	"github.com/example/ridepool/pkg/export"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the trip manifest from a fleet snapshot",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "fleet snapshot JSON file")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv or json")
	_ = exportCmd.MarkFlagRequired("snapshot")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	var snap model.Snapshot
	if err := readJSONFile(snapshotPath, &snap); err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	switch exportFormat {
	case "csv":
		return export.WriteCSV(os.Stdout, snap.Trips)
	case "json":
		return export.WriteJSON(os.Stdout, snap.Trips)
	default:
		return fmt.Errorf("unknown format %q", exportFormat)
	}
}
