// Goal commands create goals, append progress, and track status.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/compasscare/compass/pkg/types"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Create goals and track progress",
}

var (
	goalTitle     string
	goalCategory  string
	goalTarget    float64
	goalUnit      string
	goalDirection string
	goalStart     string
	goalEnd       string
)

var goalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new goal",
	Long: `Add creates a goal with a numeric target and a direction (increase,
decrease, or maintain). New goals start in the not_started status; status
moves only as progress is appended.

Example:
  compass goal add --title "Independent dressing" --target 10 --unit times --direction increase --start 2025-03-01 --end 2025-06-01`,
	Args: cobra.NoArgs,
	RunE: runGoalAdd,
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals",
	Args:  cobra.NoArgs,
	RunE:  runGoalList,
}

var (
	progressValue   float64
	progressDate    string
	progressContext string
)

var goalProgressCmd = &cobra.Command{
	Use:   "progress <goal-id>",
	Short: "Append a progress measurement to a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalProgress,
}

var goalDiscontinueCmd = &cobra.Command{
	Use:   "discontinue <goal-id>",
	Short: "Discontinue a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalDiscontinue,
}

func init() {
	goalAddCmd.Flags().StringVar(&goalTitle, "title", "", "goal title (required)")
	goalAddCmd.Flags().StringVar(&goalCategory, "category", "", "goal category")
	goalAddCmd.Flags().Float64Var(&goalTarget, "target", 0, "numeric target value")
	goalAddCmd.Flags().StringVar(&goalUnit, "unit", "", "unit of the target value")
	goalAddCmd.Flags().StringVar(&goalDirection, "direction", types.DirectionIncrease, "target direction (increase, decrease, maintain)")
	goalAddCmd.Flags().StringVar(&goalStart, "start", "", "start date YYYY-MM-DD (default today)")
	goalAddCmd.Flags().StringVar(&goalEnd, "end", "", "target date YYYY-MM-DD (required)")
	_ = goalAddCmd.MarkFlagRequired("title")
	_ = goalAddCmd.MarkFlagRequired("end")

	goalProgressCmd.Flags().Float64Var(&progressValue, "value", 0, "measured value (required)")
	goalProgressCmd.Flags().StringVar(&progressDate, "date", "", "measurement date YYYY-MM-DD (default today)")
	goalProgressCmd.Flags().StringVar(&progressContext, "context", types.ContextHome, "context of the measurement")
	_ = goalProgressCmd.MarkFlagRequired("value")

	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalProgressCmd)
	goalCmd.AddCommand(goalDiscontinueCmd)
}

func runGoalAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	start := goalStart
	if start == "" {
		start = today()
	}

	goal, err := s.store.AddGoal(types.GoalInput{
		Title:           goalTitle,
		Category:        goalCategory,
		TargetValue:     goalTarget,
		TargetUnit:      goalUnit,
		TargetDirection: goalDirection,
		StartDate:       start,
		TargetDate:      goalEnd,
	})
	if err != nil {
		return fmt.Errorf("add goal: %w", err)
	}

	if flagJSON {
		return printJSON(goal)
	}
	fmt.Printf("Created goal %s (%s)\n", goal.ID, goal.Status)
	return nil
}

func runGoalList(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	goals := s.store.Goals()
	if flagJSON {
		return printJSON(goals)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPROGRESS\tTARGET")
	for _, g := range goals {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f%%\t%.1f %s\n",
			g.ID, g.Title, g.Status, g.ProgressPercent, g.TargetValue, g.TargetUnit)
	}
	return w.Flush()
}

func runGoalProgress(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	date := progressDate
	if date == "" {
		date = today()
	}

	goal, err := s.store.AddGoalProgress(args[0], types.GoalProgressInput{
		Date:    date,
		Value:   progressValue,
		Context: progressContext,
	})
	if err != nil {
		return fmt.Errorf("add progress: %w", err)
	}

	if flagJSON {
		return printJSON(goal)
	}
	fmt.Printf("Goal %s: %.0f%% (%s)\n", goal.ID, goal.ProgressPercent, goal.Status)
	return nil
}

func runGoalDiscontinue(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.store.DiscontinueGoal(args[0]); err != nil {
		return fmt.Errorf("discontinue goal: %w", err)
	}
	fmt.Printf("Discontinued goal %s\n", args[0])
	return nil
}
