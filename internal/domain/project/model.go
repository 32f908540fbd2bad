package project

import "time"

// Project represents a container for tasks owned by a single user.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskRef is the lightweight task shape embedded in project listings,
// enough for summary counts and status breakdowns.
type TaskRef struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

// ProjectWithTasks is a project plus its task references, the shape the
// list endpoint returns and the filter engine consumes.
type ProjectWithTasks struct {
	Project
	Tasks []TaskRef `json:"tasks"`
}

// TaskCount returns the number of tasks attached to the project.
func (p ProjectWithTasks) TaskCount() int {
	return len(p.Tasks)
}
