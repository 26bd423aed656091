package domain

import "time"

// TaskStatus is stored as a small integer: 0 complete, 1 open.
type TaskStatus int

const (
	StatusComplete TaskStatus = 0
	StatusOpen     TaskStatus = 1
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	return s == StatusComplete || s == StatusOpen
}

// Priority bounds; 1 sorts first.
const (
	MinPriority = 1
	MaxPriority = 10
)

// DateLayout is the month/day/year form accepted for task dates. Leading zeros
// are optional, so both 04/21/2015 and 4/21/2015 parse.
const DateLayout = "1/2/2006"

// Task is a to-do entry owned by the user who created it.
type Task struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	DueDate    time.Time  `json:"due_date"`
	Priority   int        `json:"priority"`
	PostedDate time.Time  `json:"posted_date"`
	Status     TaskStatus `json:"status"`
	UserID     int64      `json:"user_id"`
}

func (t *Task) IsOpen() bool {
	return t != nil && t.Status == StatusOpen
}

// CanMutate reports whether user may complete or delete task: owners always,
// admins for every task, nobody else.
func CanMutate(user *User, task *Task) bool {
	if user == nil || task == nil {
		return false
	}
	return task.UserID == user.ID || user.IsAdmin()
}
