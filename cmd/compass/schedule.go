// Schedule commands manage daily schedule entries and templates.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/compasscare/compass/pkg/types"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage daily schedule entries and templates",
}

var (
	schedDate     string
	schedContext  string
	schedTitle    string
	schedIcon     string
	schedStart    string
	schedEnd      string
	schedDuration int
)

var scheduleAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an activity to a day's schedule",
	Long: `Add creates a schedule entry for the given date and context. New
entries start in the upcoming status.

Example:
  compass schedule add --date 2025-03-10 --context home --title "Breakfast" --from 08:00 --to 08:30`,
	Args: cobra.NoArgs,
	RunE: runScheduleAdd,
}

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List schedule entries for a date",
	Args:  cobra.NoArgs,
	RunE:  runScheduleList,
}

var schedStatus string

var scheduleStatusCmd = &cobra.Command{
	Use:   "status <entry-id>",
	Short: "Update the status of a schedule entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runScheduleStatus,
}

var (
	tplName    string
	tplContext string
	tplDay     string
	tplTitles  []string
)

var scheduleTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage reusable schedule templates",
}

var scheduleTemplateAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a schedule template",
	Args:  cobra.NoArgs,
	RunE:  runTemplateAdd,
}

var scheduleTemplateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List schedule templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplateList,
}

var applyDate string

var scheduleTemplateApplyCmd = &cobra.Command{
	Use:   "apply <template-id>",
	Short: "Instantiate a template's activities on a date",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateApply,
}

func init() {
	scheduleAddCmd.Flags().StringVar(&schedDate, "date", "", "date YYYY-MM-DD (default today)")
	scheduleAddCmd.Flags().StringVar(&schedContext, "context", types.ContextHome, "context (home or school)")
	scheduleAddCmd.Flags().StringVar(&schedTitle, "title", "", "activity title (required)")
	scheduleAddCmd.Flags().StringVar(&schedIcon, "icon", "", "activity icon")
	scheduleAddCmd.Flags().StringVar(&schedStart, "from", "", "scheduled start HH:MM")
	scheduleAddCmd.Flags().StringVar(&schedEnd, "to", "", "scheduled end HH:MM")
	scheduleAddCmd.Flags().IntVar(&schedDuration, "duration", 0, "duration in minutes")
	_ = scheduleAddCmd.MarkFlagRequired("title")

	scheduleListCmd.Flags().StringVar(&schedDate, "date", "", "date YYYY-MM-DD (default today)")
	scheduleListCmd.Flags().StringVar(&schedContext, "context", types.ContextHome, "context (home or school)")

	scheduleStatusCmd.Flags().StringVar(&schedStatus, "status", "", "new status (completed, current, upcoming, skipped, modified)")
	_ = scheduleStatusCmd.MarkFlagRequired("status")

	scheduleTemplateAddCmd.Flags().StringVar(&tplName, "name", "", "template name (required)")
	scheduleTemplateAddCmd.Flags().StringVar(&tplContext, "context", types.ContextHome, "context (home or school)")
	scheduleTemplateAddCmd.Flags().StringVar(&tplDay, "day", types.TemplateDayAll, "weekday name or \"all\"")
	scheduleTemplateAddCmd.Flags().StringSliceVar(&tplTitles, "activity", nil, "activity title (repeatable)")
	_ = scheduleTemplateAddCmd.MarkFlagRequired("name")

	scheduleTemplateApplyCmd.Flags().StringVar(&applyDate, "date", "", "date YYYY-MM-DD (default today)")

	scheduleTemplateCmd.AddCommand(scheduleTemplateAddCmd)
	scheduleTemplateCmd.AddCommand(scheduleTemplateListCmd)
	scheduleTemplateCmd.AddCommand(scheduleTemplateApplyCmd)

	scheduleCmd.AddCommand(scheduleAddCmd)
	scheduleCmd.AddCommand(scheduleListCmd)
	scheduleCmd.AddCommand(scheduleStatusCmd)
	scheduleCmd.AddCommand(scheduleTemplateCmd)
}

func runScheduleAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	date := schedDate
	if date == "" {
		date = today()
	}

	entry, err := s.store.AddScheduleEntry(date, schedContext, types.Activity{
		Title:           schedTitle,
		Icon:            schedIcon,
		ScheduledStart:  schedStart,
		ScheduledEnd:    schedEnd,
		DurationMinutes: schedDuration,
	})
	if err != nil {
		return fmt.Errorf("add schedule entry: %w", err)
	}

	if flagJSON {
		return printJSON(entry)
	}
	fmt.Printf("Added %q to %s (%s)\n", entry.Activity.Title, entry.Date, entry.Context)
	return nil
}

func runScheduleList(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	date := schedDate
	if date == "" {
		date = today()
	}

	entries := s.store.ScheduleEntriesOn(date, schedContext)
	if flagJSON {
		return printJSON(entries)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTART\tEND\tSTATUS")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Activity.Title, e.Activity.ScheduledStart, e.Activity.ScheduledEnd, e.Status)
	}
	return w.Flush()
}

func runScheduleStatus(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	patch := types.SchedulePatch{Status: &schedStatus}
	switch schedStatus {
	case types.ScheduleStatusCurrent:
		now := time.Now()
		patch.ActualStart = &now
	case types.ScheduleStatusCompleted:
		now := time.Now()
		patch.ActualEnd = &now
	}

	s.store.UpdateScheduleEntry(args[0], patch)
	fmt.Printf("Entry %s marked %s\n", args[0], schedStatus)
	return nil
}

func runTemplateAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	activities := make([]types.Activity, 0, len(tplTitles))
	for _, title := range tplTitles {
		activities = append(activities, types.Activity{Title: title})
	}

	tpl, err := s.store.AddScheduleTemplate(tplName, tplContext, tplDay, activities)
	if err != nil {
		return fmt.Errorf("add template: %w", err)
	}

	if flagJSON {
		return printJSON(tpl)
	}
	fmt.Printf("Created template %s (%d activities)\n", tpl.ID, len(tpl.Activities))
	return nil
}

func runTemplateList(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	templates := s.store.ScheduleTemplates()
	if flagJSON {
		return printJSON(templates)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCONTEXT\tDAY\tACTIVITIES")
	for _, t := range templates {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", t.ID, t.Name, t.Context, t.DayOfWeek, len(t.Activities))
	}
	return w.Flush()
}

func runTemplateApply(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	date := applyDate
	if date == "" {
		date = today()
	}

	entries, err := s.store.ApplyTemplate(args[0], date)
	if err != nil {
		return fmt.Errorf("apply template: %w", err)
	}

	if flagJSON {
		return printJSON(entries)
	}
	fmt.Printf("Created %d entries on %s\n", len(entries), date)
	return nil
}
