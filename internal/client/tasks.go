package client

import (
	"context"
	"net/http"

	"github.com/sprintdeck/sprintdeck/internal/domain/task"
)

// TaskForm carries the writable task fields.
type TaskForm struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status,omitempty"`
	Priority    string  `json:"priority,omitempty"`
	AssigneeID  *string `json:"assigneeId,omitempty"`
}

func tasksPath(projectID string) string {
	return "/api/projects/" + projectID + "/tasks"
}

// ListTasks fetches all tasks for a project.
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]task.Task, error) {
	var tasks []task.Task
	if err := c.get(ctx, tasksPath(projectID), "tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask fetches a single task.
func (c *Client) GetTask(ctx context.Context, projectID, taskID string) (*task.Task, error) {
	var t task.Task
	if err := c.get(ctx, tasksPath(projectID)+"/"+taskID, "task", &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTask creates a task in the project.
func (c *Client) CreateTask(ctx context.Context, projectID string, form TaskForm) (*task.Task, error) {
	var t task.Task
	if err := c.send(ctx, http.MethodPost, tasksPath(projectID), form, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTask replaces a task's mutable fields.
func (c *Client) UpdateTask(ctx context.Context, projectID, taskID string, form TaskForm) (*task.Task, error) {
	var t task.Task
	if err := c.send(ctx, http.MethodPut, tasksPath(projectID)+"/"+taskID, form, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, projectID, taskID string) error {
	return c.send(ctx, http.MethodDelete, tasksPath(projectID)+"/"+taskID, nil, nil)
}

// UpdateTaskStatus performs the status-only transition behind a kanban drop.
func (c *Client) UpdateTaskStatus(ctx context.Context, projectID, taskID string, status task.Status) (*task.Task, error) {
	var t task.Task
	body := map[string]task.Status{"status": status}
	if err := c.send(ctx, http.MethodPatch, tasksPath(projectID)+"/"+taskID+"/status", body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
