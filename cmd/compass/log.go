// Log commands record and query behavioral log entries.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/compasscare/compass/internal/store"
	"github.com/compasscare/compass/pkg/types"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record and query behavioral log entries",
}

var (
	logContext       string
	logArousal       int
	logValence       int
	logEnergy        int
	logNote          string
	logTime          string
	logDuration      int
	logStrategies    []string
	logEffectiveness int
)

var logAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new log entry",
	Long: `Add records a behavioral log entry with arousal, valence, and energy
ratings in the 1-10 range. Day-of-week and time-of-day fields are derived
from the timestamp at creation and never recomputed.

Example:
  compass log add --context home --arousal 6 --valence 4 --energy 7
  compass log add --context school --arousal 8 --valence 2 --energy 9 --note "fire drill"`,
	Args: cobra.NoArgs,
	RunE: runLogAdd,
}

var (
	logListContext   string
	logListTimeOfDay string
	logListMin       int
)

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List log entries, newest first",
	Args:  cobra.NoArgs,
	RunE:  runLogList,
}

func init() {
	logAddCmd.Flags().StringVar(&logContext, "context", "", "context (home or school, required)")
	logAddCmd.Flags().IntVar(&logArousal, "arousal", 0, "arousal rating 1-10 (required)")
	logAddCmd.Flags().IntVar(&logValence, "valence", 0, "valence rating 1-10 (required)")
	logAddCmd.Flags().IntVar(&logEnergy, "energy", 0, "energy rating 1-10 (required)")
	logAddCmd.Flags().StringVar(&logNote, "note", "", "free-form note")
	logAddCmd.Flags().StringVar(&logTime, "time", "", "timestamp (RFC 3339, default now)")
	logAddCmd.Flags().IntVar(&logDuration, "duration", 0, "duration in minutes")
	logAddCmd.Flags().StringSliceVar(&logStrategies, "strategy", nil, "strategy used (repeatable)")
	logAddCmd.Flags().IntVar(&logEffectiveness, "effectiveness", 0, "strategy effectiveness 1-10")
	_ = logAddCmd.MarkFlagRequired("context")
	_ = logAddCmd.MarkFlagRequired("arousal")
	_ = logAddCmd.MarkFlagRequired("valence")
	_ = logAddCmd.MarkFlagRequired("energy")

	logListCmd.Flags().StringVar(&logListContext, "context", "", "filter by context")
	logListCmd.Flags().StringVar(&logListTimeOfDay, "time-of-day", "", "filter by time of day (morning, afternoon, evening, night)")
	logListCmd.Flags().IntVar(&logListMin, "min-arousal", 0, "only entries with arousal at or above this")

	logCmd.AddCommand(logAddCmd)
	logCmd.AddCommand(logListCmd)
}

func runLogAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	ts, err := parseWhen(logTime)
	if err != nil {
		return err
	}

	in := types.LogInput{
		Timestamp:       ts,
		Context:         logContext,
		Arousal:         logArousal,
		Valence:         logValence,
		Energy:          logEnergy,
		Strategies:      logStrategies,
		DurationMinutes: logDuration,
		Note:            logNote,
	}
	if cmd.Flags().Changed("effectiveness") {
		in.StrategyEffectiveness = &logEffectiveness
	}

	entry, err := s.store.AddLog(in)
	if err != nil {
		return fmt.Errorf("add log: %w", err)
	}

	if flagJSON {
		return printJSON(entry)
	}
	fmt.Printf("Recorded log %s (%s %s)\n", entry.ID, entry.DayOfWeek, entry.TimeOfDay)
	return nil
}

func runLogList(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	var filter store.LogFilter
	if logListContext != "" {
		filter.Context = &logListContext
	}
	if logListTimeOfDay != "" {
		filter.TimeOfDay = &logListTimeOfDay
	}
	if logListMin > 0 {
		filter.MinArousal = &logListMin
	}

	entries := s.store.FilterLogs(filter)
	if flagJSON {
		return printJSON(entries)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIMESTAMP\tCONTEXT\tAROUSAL\tVALENCE\tENERGY\tNOTE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04"), e.Context, e.Arousal, e.Valence, e.Energy, e.Note)
	}
	return w.Flush()
}
