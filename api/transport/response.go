package transport

import (
	"time"

	"github.com/kevlab/flasktaskr-project/domain"
)

// Envelope wraps every page and form response. Message carries the notice a
// rendered page would flash to the user.
type Envelope struct {
	Status   string      `json:"status"`
	Code     string      `json:"code,omitempty"`
	Message  string      `json:"message,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	Error    interface{} `json:"error,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
}

func NewSuccess(message string, data interface{}) Envelope {
	return Envelope{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}

func NewError(code, message string, detail interface{}) Envelope {
	return Envelope{
		Status:  "error",
		Code:    code,
		Message: message,
		Error:   detail,
	}
}

func NewRedirect(location, message string) Envelope {
	return Envelope{
		Status:   "redirect",
		Message:  message,
		Redirect: location,
	}
}

// APIDateLayout is the ISO form used for dates in JSON output.
const APIDateLayout = "2006-01-02"

// TaskResponse is the public JSON shape of a task.
type TaskResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	DueDate    string `json:"due_date"`
	Priority   int    `json:"priority"`
	PostedDate string `json:"posted_date"`
	Status     int    `json:"status"`
	UserID     int64  `json:"user_id"`
}

func NewTaskResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:         t.ID,
		Name:       t.Name,
		DueDate:    t.DueDate.Format(APIDateLayout),
		Priority:   t.Priority,
		PostedDate: t.PostedDate.Format(APIDateLayout),
		Status:     int(t.Status),
		UserID:     t.UserID,
	}
}

func NewTaskList(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewTaskResponse(t))
	}
	return out
}

// APIError is the body of API failures.
type APIError struct {
	Error string `json:"error"`
}

// TaskItem is one row of the tasks page. The mutate links are present only
// when the viewer owns the task or is an admin.
type TaskItem struct {
	TaskResponse
	CanMutate   bool   `json:"can_mutate"`
	CompleteURL string `json:"complete_url,omitempty"`
	DeleteURL   string `json:"delete_url,omitempty"`
}

type TasksPage struct {
	Username    string        `json:"username"`
	User        *UserResponse `json:"user,omitempty"`
	OpenTasks   []TaskItem    `json:"open_tasks"`
	ClosedTasks []TaskItem    `json:"closed_tasks"`
}

type UserResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	RegisteredOn time.Time `json:"registered_on"`
}

func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.Role),
		RegisteredOn: u.RegisteredOn,
	}
}
