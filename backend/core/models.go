package core

import "time"

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

type TaskType string

const (
	TypeRegular TaskType = "regular"
	TypeProject TaskType = "project"
)

func (t TaskType) Valid() bool {
	return t == TypeRegular || t == TypeProject
}

// Task is the persisted record. Planned and actual time-of-day windows are
// stored as "HH:MM" text; the client owns their interpretation. Points are
// stored exactly as the client computed them: the server is not a scoring
// authority.
type Task struct {
	ID              int64      `db:"id"`
	Name            string     `db:"name"`
	Description     string     `db:"description"`
	Day             time.Time  `db:"day"`
	StartTime       string     `db:"start_time"`
	EndTime         string     `db:"end_time"`
	ActualStartTime string     `db:"actual_start_time"`
	ActualEndTime   string     `db:"actual_end_time"`
	ExpectedTime    int        `db:"expected_time"`
	ActualTime      int        `db:"actual_time"`
	Priority        Priority   `db:"priority"`
	Type            TaskType   `db:"type"`
	Done            bool       `db:"done"`
	Points          float64    `db:"points"`
	CompletedAt     *time.Time `db:"completed_at"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`

	SubTasks []SubTask `db:"-"`
}

type SubTask struct {
	ID           string `db:"id"` // uuid
	TaskID       int64  `db:"task_id"`
	Name         string `db:"name"`
	IsCompleted  bool   `db:"is_completed"`
	TimeEstimate int    `db:"time_estimate"`
	Position     int    `db:"position"`
}
