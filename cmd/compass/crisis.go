// Crisis commands record and query crisis events.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/compasscare/compass/pkg/types"
)

var crisisCmd = &cobra.Command{
	Use:   "crisis",
	Short: "Record and query crisis events",
}

var (
	crisisContext    string
	crisisType       string
	crisisDuration   int
	crisisIntensity  int
	crisisTime       string
	crisisResolution string
	crisisNotes      string
	crisisTriggers   []string
	crisisStrategies []string
)

var crisisAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a crisis event",
	Long: `Add records a crisis episode with its type, duration, and peak
intensity (1-10).

Example:
  compass crisis add --context school --type meltdown --duration 300 --intensity 8
  compass crisis add --context home --type shutdown --duration 120 --intensity 5 --resolution "quiet room"`,
	Args: cobra.NoArgs,
	RunE: runCrisisAdd,
}

var crisisListContext string

var crisisListCmd = &cobra.Command{
	Use:   "list",
	Short: "List crisis events, newest first",
	Args:  cobra.NoArgs,
	RunE:  runCrisisList,
}

func init() {
	crisisAddCmd.Flags().StringVar(&crisisContext, "context", "", "context (home or school, required)")
	crisisAddCmd.Flags().StringVar(&crisisType, "type", "", "crisis type (required)")
	crisisAddCmd.Flags().IntVar(&crisisDuration, "duration", 0, "duration in seconds")
	crisisAddCmd.Flags().IntVar(&crisisIntensity, "intensity", 0, "peak intensity 1-10 (required)")
	crisisAddCmd.Flags().StringVar(&crisisTime, "time", "", "timestamp (RFC 3339, default now)")
	crisisAddCmd.Flags().StringVar(&crisisResolution, "resolution", "", "how the episode resolved")
	crisisAddCmd.Flags().StringVar(&crisisNotes, "notes", "", "free-form notes")
	crisisAddCmd.Flags().StringSliceVar(&crisisTriggers, "trigger", nil, "sensory trigger (repeatable)")
	crisisAddCmd.Flags().StringSliceVar(&crisisStrategies, "strategy", nil, "strategy used (repeatable)")
	_ = crisisAddCmd.MarkFlagRequired("context")
	_ = crisisAddCmd.MarkFlagRequired("type")
	_ = crisisAddCmd.MarkFlagRequired("intensity")

	crisisListCmd.Flags().StringVar(&crisisListContext, "context", "", "filter by context")

	crisisCmd.AddCommand(crisisAddCmd)
	crisisCmd.AddCommand(crisisListCmd)
}

func runCrisisAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	ts, err := parseWhen(crisisTime)
	if err != nil {
		return err
	}

	event, err := s.store.AddCrisisEvent(types.CrisisInput{
		Timestamp:       ts,
		Context:         crisisContext,
		Type:            crisisType,
		DurationSeconds: crisisDuration,
		PeakIntensity:   crisisIntensity,
		SensoryTriggers: crisisTriggers,
		StrategiesUsed:  crisisStrategies,
		Resolution:      crisisResolution,
		Notes:           crisisNotes,
	})
	if err != nil {
		return fmt.Errorf("add crisis event: %w", err)
	}

	if flagJSON {
		return printJSON(event)
	}
	fmt.Printf("Recorded crisis event %s\n", event.ID)
	return nil
}

func runCrisisList(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	var events []types.CrisisEvent
	if crisisListContext != "" {
		events = s.store.CrisisEventsByContext(crisisListContext)
	} else {
		events = s.store.CrisisEvents()
	}

	if flagJSON {
		return printJSON(events)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIMESTAMP\tCONTEXT\tTYPE\tDURATION\tINTENSITY")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%ds\t%d\n",
			e.Timestamp.Format("2006-01-02 15:04"), e.Context, e.Type, e.DurationSeconds, e.PeakIntensity)
	}
	return w.Flush()
}
