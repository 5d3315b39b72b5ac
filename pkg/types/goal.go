package types

import (
	"math"
	"time"
)

// Goal statuses. A goal progresses not_started → in_progress →
// {on_track | at_risk} → achieved as progress is appended; discontinued is
// reachable from any non-terminal state by explicit user action.
const (
	GoalStatusNotStarted   = "not_started"
	GoalStatusInProgress   = "in_progress"
	GoalStatusOnTrack      = "on_track"
	GoalStatusAtRisk       = "at_risk"
	GoalStatusAchieved     = "achieved"
	GoalStatusDiscontinued = "discontinued"
)

// ValidGoalStatuses is the set of recognized goal status values.
var ValidGoalStatuses = map[string]bool{
	GoalStatusNotStarted:   true,
	GoalStatusInProgress:   true,
	GoalStatusOnTrack:      true,
	GoalStatusAtRisk:       true,
	GoalStatusAchieved:     true,
	GoalStatusDiscontinued: true,
}

// Goal target directions.
const (
	DirectionIncrease = "increase"
	DirectionDecrease = "decrease"
	DirectionMaintain = "maintain"
)

// ValidDirections is the set of recognized target directions.
var ValidDirections = map[string]bool{
	DirectionIncrease: true,
	DirectionDecrease: true,
	DirectionMaintain: true,
}

// GoalProgress is one progress measurement on a goal. Progress records are
// embedded in their parent goal's history, ordered by append time.
type GoalProgress struct {
	ID      string  `json:"id"`
	GoalID  string  `json:"goalId"`
	Date    string  `json:"date"`
	Value   float64 `json:"value"`
	Context string  `json:"context"`
}

// Goal is a tracked objective. CurrentValue mirrors the latest progress
// value; Status and ProgressPercent are recomputed by ApplyProgress on every
// append. StartDate and TargetDate are "YYYY-MM-DD" strings.
type Goal struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Category        string         `json:"category"`
	TargetValue     float64        `json:"targetValue"`
	TargetUnit      string         `json:"targetUnit"`
	TargetDirection string         `json:"targetDirection"`
	StartDate       string         `json:"startDate"`
	TargetDate      string         `json:"targetDate"`
	CurrentValue    float64        `json:"currentValue"`
	ProgressPercent float64        `json:"progressPercent"`
	Status          string         `json:"status"`
	ProgressHistory []GoalProgress `json:"progressHistory"`
}

// GoalInput carries the caller-supplied fields of a new Goal.
type GoalInput struct {
	Title           string
	Category        string
	TargetValue     float64
	TargetUnit      string
	TargetDirection string
	StartDate       string
	TargetDate      string
}

// GoalPatch is a shallow partial update of a Goal's descriptive fields.
// Progress, status, and current value move only through ApplyProgress and
// Discontinue.
type GoalPatch struct {
	Title       *string
	Category    *string
	TargetValue *float64
	TargetUnit  *string
	TargetDate  *string
}

// GoalProgressInput carries the caller-supplied fields of a new progress
// measurement.
type GoalProgressInput struct {
	Date    string
	Value   float64
	Context string
}

// Terminal reports whether the goal is in a terminal status.
func (g *Goal) Terminal() bool {
	return g.Status == GoalStatusAchieved || g.Status == GoalStatusDiscontinued
}

// Discontinue moves the goal to the discontinued status. It is a no-op on a
// goal that is already terminal.
func (g *Goal) Discontinue() {
	if g.Terminal() {
		return
	}
	g.Status = GoalStatusDiscontinued
}

// ApplyProgress appends entry to the progress history, mirrors its value
// into CurrentValue, and recomputes ProgressPercent and Status. A goal in a
// terminal status still accumulates history and value but keeps its status.
//
// For decrease goals the baseline is the first entry in the history, so the
// first-ever measurement always computes against itself and yields 0% unless
// it already meets the target. That property is deliberate; see DESIGN.md.
func (g *Goal) ApplyProgress(entry GoalProgress, now time.Time) {
	g.ProgressHistory = append(g.ProgressHistory, entry)
	g.CurrentValue = entry.Value
	g.ProgressPercent = g.progressPercent()

	if g.Terminal() {
		return
	}

	days := g.daysUntilDeadline(now)
	percent := g.ProgressPercent
	switch {
	case percent >= 100:
		g.Status = GoalStatusAchieved
	case percent >= 75:
		g.Status = GoalStatusOnTrack
	case percent >= 25:
		if days < 14 && percent < 50 {
			g.Status = GoalStatusAtRisk
		} else {
			g.Status = GoalStatusInProgress
		}
	default:
		if days < 7 {
			g.Status = GoalStatusAtRisk
		} else if g.Status == GoalStatusNotStarted {
			g.Status = GoalStatusInProgress
		}
	}
}

// progressPercent computes the percent-complete for the current value.
func (g *Goal) progressPercent() float64 {
	switch g.TargetDirection {
	case DirectionDecrease:
		if g.CurrentValue <= g.TargetValue {
			return 100
		}
		baseline := g.CurrentValue
		if len(g.ProgressHistory) > 0 {
			baseline = g.ProgressHistory[0].Value
		}
		span := baseline - g.TargetValue
		if span <= 0 {
			// Degenerate baseline: already at or past the target when
			// tracking began, yet the current value exceeds the target.
			return 0
		}
		return clampPercent((baseline - g.CurrentValue) / span * 100)
	default:
		// increase; maintain uses the same formula.
		if g.TargetValue <= 0 {
			if g.CurrentValue <= 0 {
				return 0
			}
			return 100
		}
		return math.Min(100, g.CurrentValue/g.TargetValue*100)
	}
}

// daysUntilDeadline returns the whole days remaining until TargetDate,
// rounded up. An unparseable target date counts as no deadline pressure.
func (g *Goal) daysUntilDeadline(now time.Time) int {
	deadline, err := time.Parse("2006-01-02", g.TargetDate)
	if err != nil {
		return math.MaxInt32
	}
	return int(math.Ceil(deadline.Sub(now).Hours() / 24))
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
