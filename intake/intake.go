// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package intake

import (
	"math"
	"time"

	"github.com/danielhkuo/hydrate/models"
)

const (
	// SnapStep is the slider granularity in ml
	SnapStep = 50
	// SliderHeadroom is how far past the goal the slider reaches
	SliderHeadroom = 1000

	labelFormat = "Jan 2"
	keyFormat   = "2006-01-02"
)

// DayStart returns local midnight of the day containing t.
func DayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DayWindow returns [midnight, next midnight) for the day containing now.
func DayWindow(now time.Time, loc *time.Location) (start, end time.Time) {
	start = DayStart(now, loc)
	return start, start.AddDate(0, 0, 1)
}

// Progress is intake as a percentage of goal, clamped to [0, 100].
func Progress(intake, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	p := float64(intake) / float64(goal) * 100
	return math.Max(0, math.Min(p, 100))
}

// Snap rounds v to the nearest multiple of step, halves rounding up.
func Snap(v, step int) int {
	if step <= 0 {
		return v
	}
	return int(math.Floor(float64(v)/float64(step)+0.5)) * step
}

// Pending returns the amount to log when the slider moved from today to slider.
// Moving the slider down cannot remove water, so ok is false for any delta <= 0.
func Pending(slider, today int) (amount int, ok bool) {
	delta := slider - today
	if delta <= 0 {
		return 0, false
	}
	return delta, true
}

// SliderMax is the slider's upper bound for a goal.
func SliderMax(goal int) int {
	return goal + SliderHeadroom
}

// Total sums log amounts.
func Total(logs []models.WaterLog) int {
	sum := 0
	for _, l := range logs {
		sum += l.Amount
	}
	return sum
}

// NormalizeView maps anything but "month" to the 7-day view.
func NormalizeView(view string) string {
	if view == models.ViewMonth {
		return models.ViewMonth
	}
	return models.View7Days
}

// ChartRange returns the inclusive range shown by a chart view: the last
// seven calendar days or month-to-date, both ending at 23:59:59.999999 today.
func ChartRange(view string, now time.Time, loc *time.Location) (start, end time.Time) {
	today := DayStart(now, loc)
	end = today.AddDate(0, 0, 1).Add(-time.Microsecond)

	if NormalizeView(view) == models.ViewMonth {
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc), end
	}
	return today.AddDate(0, 0, -6), end
}

// Buckets sums logs per local calendar day and returns one point per day
// from start to end, in order, with zero for days without logs.
func Buckets(logs []models.WaterLog, start, end time.Time, loc *time.Location) []models.DayPoint {
	sums := make(map[string]int)
	for _, l := range logs {
		sums[l.Timestamp.In(loc).Format(keyFormat)] += l.Amount
	}

	points := []models.DayPoint{}
	for day := DayStart(start, loc); !day.After(end); day = day.AddDate(0, 0, 1) {
		points = append(points, models.DayPoint{
			Date:   day,
			Label:  day.Format(labelFormat),
			Intake: sums[day.Format(keyFormat)],
		})
	}
	return points
}
