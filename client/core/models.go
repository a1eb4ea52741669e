package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ID is the canonical form of a task or subtask identifier. The backend
// hands out numeric ids for tasks and uuid strings for subtasks, and
// different code paths historically passed either form around, so every
// identifier is normalized to a string at the model boundary.
type ID string

func NormalizeID(raw string) ID {
	s := strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ID(strconv.FormatInt(n, 10))
	}
	return ID(s)
}

func (id ID) Equal(other ID) bool {
	return NormalizeID(string(id)) == NormalizeID(string(other))
}

func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		*id = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return fmt.Errorf("parse id %s: %w", s, err)
		}
		*id = NormalizeID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("parse id %s: %w", s, err)
	}
	*id = NormalizeID(n.String())
	return nil
}

const dayLayout = "2006-01-02"

// Day is a calendar date with no time-of-day component. It partitions the
// task cache and is exchanged with the backend as "2006-01-02".
type Day struct {
	time.Time
}

func NewDay(t time.Time) Day {
	y, m, d := t.Date()
	return Day{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", s, ErrBadFormat)
	}
	return Day{t}, nil
}

func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dayLayout)
}

func (d Day) Equal(other Day) bool {
	return d.String() == other.String()
}

func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Day) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Clock is a wall-clock time of day. It accepts "15:04" and "15:04:05" on
// the wire and marshals the zero value as "" so unscheduled tasks round-trip.
type Clock struct {
	hour, min, sec int
	set            bool
}

func NewClock(hour, min int) Clock {
	return Clock{hour: hour, min: min, set: true}
}

func ClockOf(t time.Time) Clock {
	return Clock{hour: t.Hour(), min: t.Minute(), sec: t.Second(), set: true}
}

func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Clock{}, nil
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return Clock{hour: t.Hour(), min: t.Minute(), sec: t.Second(), set: true}, nil
		}
	}
	return Clock{}, fmt.Errorf("parse clock %q: %w", s, ErrBadFormat)
}

func (c Clock) IsZero() bool { return !c.set }

func (c Clock) String() string {
	if !c.set {
		return ""
	}
	if c.sec != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", c.hour, c.min, c.sec)
	}
	return fmt.Sprintf("%02d:%02d", c.hour, c.min)
}

// MinuteOfDay ignores seconds: durations are modeled at minute granularity.
func (c Clock) MinuteOfDay() int {
	return c.hour*60 + c.min
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

func (c *Clock) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*c = Clock{}
		return nil
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Rank orders priorities low < medium < high < urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

type TaskType string

const (
	TypeRegular TaskType = "regular"
	TypeProject TaskType = "project"
)

func (t TaskType) Valid() bool {
	return t == TypeRegular || t == TypeProject
}

type SubTask struct {
	ID           ID     `json:"id"`
	TaskID       ID     `json:"taskId,omitempty"`
	Name         string `json:"name"`
	IsCompleted  bool   `json:"isCompleted"`
	TimeEstimate int    `json:"timeEstimate,omitempty"`
}

type Task struct {
	ID              ID         `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	Day             Day        `json:"day"`
	StartTime       Clock      `json:"startTime,omitempty"`
	EndTime         Clock      `json:"endTime,omitempty"`
	ActualStartTime Clock      `json:"actualStartTime,omitempty"`
	ActualEndTime   Clock      `json:"actualEndTime,omitempty"`
	ExpectedTime    int        `json:"expectedTime"`
	ActualTime      int        `json:"actualTime"`
	Priority        Priority   `json:"priority"`
	Type            TaskType   `json:"type"`
	Done            bool       `json:"done"`
	Points          float64    `json:"points"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	SubTasks        []SubTask  `json:"subTasks,omitempty"`
}

// Clone returns a copy that shares no mutable state with the receiver, so
// cache reads can be handed out without exposing the cached record.
func (t Task) Clone() Task {
	out := t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		out.CompletedAt = &at
	}
	if t.SubTasks != nil {
		out.SubTasks = make([]SubTask, len(t.SubTasks))
		copy(out.SubTasks, t.SubTasks)
	}
	return out
}

// AllSubTasksDone reports whether every step of a project is checked off.
// A project with no steps never auto-completes.
func (t Task) AllSubTasksDone() bool {
	if t.Type != TypeProject || len(t.SubTasks) == 0 {
		return false
	}
	for _, st := range t.SubTasks {
		if !st.IsCompleted {
			return false
		}
	}
	return true
}

// TaskPatch is a partial update: nil fields are left unchanged on merge.
type TaskPatch struct {
	Name            *string
	Description     *string
	Day             *Day
	StartTime       *Clock
	EndTime         *Clock
	ActualStartTime *Clock
	ActualEndTime   *Clock
	ExpectedTime    *int
	ActualTime      *int
	Priority        *Priority
	Done            *bool
	Points          *float64
	CompletedAt     *time.Time
	SubTasks        *[]SubTask
}

func (p TaskPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Day == nil &&
		p.StartTime == nil && p.EndTime == nil &&
		p.ActualStartTime == nil && p.ActualEndTime == nil &&
		p.ExpectedTime == nil && p.ActualTime == nil &&
		p.Priority == nil && p.Done == nil && p.Points == nil &&
		p.CompletedAt == nil && p.SubTasks == nil
}

// Apply merges the patch into a full record. Fields absent from the patch
// are preserved from the cached record; a CompletedAt pointing at the zero
// time clears the timestamp.
func (p TaskPatch) Apply(t Task) Task {
	out := t.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Day != nil {
		out.Day = *p.Day
	}
	if p.StartTime != nil {
		out.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		out.EndTime = *p.EndTime
	}
	if p.ActualStartTime != nil {
		out.ActualStartTime = *p.ActualStartTime
	}
	if p.ActualEndTime != nil {
		out.ActualEndTime = *p.ActualEndTime
	}
	if p.ExpectedTime != nil {
		out.ExpectedTime = *p.ExpectedTime
	}
	if p.ActualTime != nil {
		out.ActualTime = *p.ActualTime
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	if p.Done != nil {
		out.Done = *p.Done
	}
	if p.Points != nil {
		out.Points = *p.Points
	}
	if p.CompletedAt != nil {
		if p.CompletedAt.IsZero() {
			out.CompletedAt = nil
		} else {
			at := *p.CompletedAt
			out.CompletedAt = &at
		}
	}
	if p.SubTasks != nil {
		out.SubTasks = make([]SubTask, len(*p.SubTasks))
		copy(out.SubTasks, *p.SubTasks)
	}
	return out
}
