// Import command applies a backup document.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/compasscare/compass/pkg/types"
)

var importMode string

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a backup document",
	Long: `Import validates a backup document in full before touching storage,
then applies it atomically: either every key is written or none are.

In replace mode existing data is overwritten wholesale. In merge mode
existing records win and only records with new IDs are added.

Example:
  compass import backup.json
  compass import backup.json --mode merge
  cat backup.json | compass import`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importMode, "mode", types.ImportReplace, "import mode (replace or merge)")
}

func runImport(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	report, err := s.mgr.Import(data, importMode)
	if err != nil {
		if ve, ok := types.AsValidationError(err); ok {
			fmt.Fprintln(os.Stderr, "import rejected, nothing was changed:")
			for _, fe := range ve.Fields {
				fmt.Fprintln(os.Stderr, "  -", fe.String())
			}
			os.Exit(exitUserError)
		}
		return fmt.Errorf("import: %w", err)
	}

	if flagJSON {
		return printJSON(report)
	}
	fmt.Printf("Imported %d records (%s mode)\n", report.Total(), report.Mode)
	if report.ProfileImported {
		fmt.Println("  profile imported")
	}
	if report.DailySchedules > 0 {
		fmt.Printf("  %d daily schedules\n", report.DailySchedules)
	}
	return nil
}
