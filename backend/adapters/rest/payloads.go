package rest

import (
	"time"

	"github.com/Mostafa-Elmoalem/Impulse-sub000/backend/core"
)

const dayLayout = "2006-01-02"

// Wire shapes match what the client cache stores: calendar dates as
// "2006-01-02", times of day as "HH:MM" text.

type SubTaskOut struct {
	ID           string `json:"id"`
	TaskID       int64  `json:"taskId"`
	Name         string `json:"name"`
	IsCompleted  bool   `json:"isCompleted"`
	TimeEstimate int    `json:"timeEstimate,omitempty"`
}

type TaskOut struct {
	ID              int64        `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description,omitempty"`
	Day             string       `json:"day"`
	StartTime       string       `json:"startTime,omitempty"`
	EndTime         string       `json:"endTime,omitempty"`
	ActualStartTime string       `json:"actualStartTime,omitempty"`
	ActualEndTime   string       `json:"actualEndTime,omitempty"`
	ExpectedTime    int          `json:"expectedTime"`
	ActualTime      int          `json:"actualTime"`
	Priority        string       `json:"priority"`
	Type            string       `json:"type"`
	Done            bool         `json:"done"`
	Points          float64      `json:"points"`
	CompletedAt     *time.Time   `json:"completedAt,omitempty"`
	SubTasks        []SubTaskOut `json:"subTasks,omitempty"`
}

func SubTaskToWire(st core.SubTask) SubTaskOut {
	return SubTaskOut{
		ID:           st.ID,
		TaskID:       st.TaskID,
		Name:         st.Name,
		IsCompleted:  st.IsCompleted,
		TimeEstimate: st.TimeEstimate,
	}
}

func TaskToWire(t core.Task) TaskOut {
	out := TaskOut{
		ID:              t.ID,
		Name:            t.Name,
		Description:     t.Description,
		Day:             t.Day.Format(dayLayout),
		StartTime:       t.StartTime,
		EndTime:         t.EndTime,
		ActualStartTime: t.ActualStartTime,
		ActualEndTime:   t.ActualEndTime,
		ExpectedTime:    t.ExpectedTime,
		ActualTime:      t.ActualTime,
		Priority:        string(t.Priority),
		Type:            string(t.Type),
		Done:            t.Done,
		Points:          t.Points,
		CompletedAt:     t.CompletedAt,
	}
	for _, st := range t.SubTasks {
		out.SubTasks = append(out.SubTasks, SubTaskToWire(st))
	}
	return out
}

type TaskIn struct {
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Day             string     `json:"day"`
	StartTime       string     `json:"startTime"`
	EndTime         string     `json:"endTime"`
	ActualStartTime string     `json:"actualStartTime"`
	ActualEndTime   string     `json:"actualEndTime"`
	ExpectedTime    int        `json:"expectedTime"`
	ActualTime      int        `json:"actualTime"`
	Priority        string     `json:"priority"`
	Type            string     `json:"type"`
	Done            bool       `json:"done"`
	Points          float64    `json:"points"`
	CompletedAt     *time.Time `json:"completedAt"`
}

func (in TaskIn) ToCore() (core.Task, error) {
	day, err := time.Parse(dayLayout, in.Day)
	if err != nil {
		return core.Task{}, core.ErrTaskInvalidArgs
	}
	return core.Task{
		Name:            in.Name,
		Description:     in.Description,
		Day:             day,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		ActualStartTime: in.ActualStartTime,
		ActualEndTime:   in.ActualEndTime,
		ExpectedTime:    in.ExpectedTime,
		ActualTime:      in.ActualTime,
		Priority:        core.Priority(in.Priority),
		Type:            core.TaskType(in.Type),
		Done:            in.Done,
		Points:          in.Points,
		CompletedAt:     in.CompletedAt,
	}, nil
}

type SubTaskIn struct {
	Name         string `json:"name"`
	IsCompleted  bool   `json:"isCompleted"`
	TimeEstimate int    `json:"timeEstimate"`
}

type CreateProjectIn struct {
	TaskIn
	SubTasks []SubTaskIn `json:"subTasks"`
}
