package report

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/goal"
)

type Status string

const (
	StatusCompleted      Status = "Completed"
	StatusOverdue        Status = "Overdue"
	StatusOnTrack        Status = "On Track"
	StatusSlightlyBehind Status = "Slightly Behind"
	StatusBehind         Status = "Behind"
	StatusGoodProgress   Status = "Good Progress"
	StatusMakingProgress Status = "Making Progress"
	StatusStarted        Status = "Started"
	StatusJustStarted    Status = "Just Started"
)

// Tone is a coarse colour hint for rendering a status.
type Tone string

const (
	ToneGood  Tone = "good"
	ToneInfo  Tone = "info"
	ToneWarn  Tone = "warn"
	ToneBad   Tone = "bad"
	ToneMuted Tone = "muted"
)

func (s Status) Tone() Tone {
	switch s {
	case StatusCompleted, StatusOnTrack, StatusGoodProgress:
		return ToneGood
	case StatusMakingProgress, StatusStarted:
		return ToneInfo
	case StatusSlightlyBehind:
		return ToneWarn
	case StatusOverdue, StatusBehind:
		return ToneBad
	default:
		return ToneMuted
	}
}

type Progress struct {
	Percent int    `json:"percent"`
	Status  Status `json:"status"`
	// Expected is the percentage the goal should have reached by now. It is
	// only set for goals with a target date that has not passed.
	Expected int `json:"expected,omitempty"`
}

// GoalProgress rates a goal at time now. Percent is clamped to 100.
func GoalProgress(g *goal.Goal, now time.Time) Progress {
	p := Progress{Percent: percent(g)}

	if g.TargetDate == nil {
		p.Status = byThreshold(p.Percent)
		return p
	}

	today := civil.DateOf(now)

	if today.After(*g.TargetDate) {
		p.Status = StatusOverdue
		if p.Percent >= 100 {
			p.Status = StatusCompleted
		}

		return p
	}

	// Both days are read in now's location so a goal created this evening
	// does not start tomorrow.
	created := civil.DateOf(g.CreatedAt.In(now.Location()))
	totalDays := g.TargetDate.DaysSince(created)
	elapsed := max(0, today.DaysSince(created))

	p.Expected = 100
	if totalDays > 0 {
		p.Expected = roundInt(decimal.NewFromInt(int64(elapsed)).Div(decimal.NewFromInt(int64(totalDays))).Mul(hundred))
	}

	switch {
	case p.Percent >= 100:
		p.Status = StatusCompleted
	case p.Percent >= p.Expected:
		p.Status = StatusOnTrack
	case decimal.NewFromInt(int64(p.Percent)).GreaterThanOrEqual(decimal.NewFromInt(int64(p.Expected)).Mul(decimal.RequireFromString("0.8"))):
		p.Status = StatusSlightlyBehind
	default:
		p.Status = StatusBehind
	}

	return p
}

func percent(g *goal.Goal) int {
	if !g.TargetAmount.IsPositive() {
		return 0
	}

	return min(100, roundInt(g.SavedAmount.Div(g.TargetAmount).Mul(hundred)))
}

func byThreshold(percent int) Status {
	switch {
	case percent >= 100:
		return StatusCompleted
	case percent >= 75:
		return StatusGoodProgress
	case percent >= 50:
		return StatusMakingProgress
	case percent >= 25:
		return StatusStarted
	default:
		return StatusJustStarted
	}
}

func roundInt(d decimal.Decimal) int {
	return int(d.Round(0).IntPart())
}
