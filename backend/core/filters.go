package core

import "time"

type ListTasksFilter struct {
	Day  time.Time
	Done *bool
}
