package core

import "math"

const baseScore = 5.0

// Score is the breakdown attached to a task at completion. Total is what
// gets persisted in the points field; Base depends only on size and
// priority, Bonus on timing accuracy. The time multiplier never drops below
// 1.0, so Bonus is never negative.
type Score struct {
	Base  float64
	Bonus float64
	Total float64
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func sizeFactor(t Task) float64 {
	if t.Type == TypeProject {
		return 2.0
	}
	switch {
	case t.ExpectedTime < 30:
		return 1.0
	case t.ExpectedTime <= 90:
		return 1.2
	default:
		return 1.5
	}
}

func priorityFactor(p Priority) float64 {
	switch p {
	case PriorityUrgent:
		return 2.0
	case PriorityHigh:
		return 1.7
	case PriorityMedium:
		return 1.3
	default:
		return 1.0
	}
}

const lateGraceMinutes = 15

func timeMultiplier(expected, actual int) float64 {
	diff := expected - actual
	switch {
	case diff >= 0:
		return 1.5
	case -diff <= lateGraceMinutes:
		return 1.2
	default:
		return 1.0
	}
}

// ComputeScore is pure: same task attributes and realized duration always
// produce the same breakdown. Callers must resolve a concrete actualMinutes
// first (see ActualMinutes).
func ComputeScore(t Task, actualMinutes int) Score {
	base := round1(baseScore * sizeFactor(t) * priorityFactor(t.Priority))
	total := round1(base * timeMultiplier(t.ExpectedTime, actualMinutes))
	return Score{
		Base:  base,
		Bonus: round1(total - base),
		Total: total,
	}
}

// MinutesBetween computes the realized duration between two times of day,
// wrapping forward by a full day when the window crosses midnight.
func MinutesBetween(start, end Clock) int {
	d := end.MinuteOfDay() - start.MinuteOfDay()
	if d < 0 {
		d += 24 * 60
	}
	return d
}

// ActualMinutes resolves the realized duration for scoring. When either end
// of the actual window is missing or failed to parse, the planned duration
// stands in so the completion flow stays usable.
func ActualMinutes(t Task, start, end Clock) int {
	if start.IsZero() || end.IsZero() {
		return t.ExpectedTime
	}
	return MinutesBetween(start, end)
}
