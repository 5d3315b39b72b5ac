// Export command writes a full backup document.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all data as a backup document",
	Long: `Export writes a versioned JSON document containing every collection,
the child profile, per-day schedule overrides, and summary statistics.
With no file argument the document goes to stdout.

Example:
  compass export backup.json
  compass export > backup.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()

		data, err := s.mgr.ExportJSON()
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}

		if len(args) == 0 {
			fmt.Println(string(data))
			return nil
		}

		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", args[0], err)
		}
		fmt.Fprintln(os.Stderr, "Exported to", args[0])
		return nil
	},
}
