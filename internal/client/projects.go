package client

import (
	"context"
	"net/http"

	"github.com/sprintdeck/sprintdeck/internal/domain/project"
)

// ProjectForm carries the writable project fields.
type ProjectForm struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// ListProjects fetches the projects visible to the current user.
func (c *Client) ListProjects(ctx context.Context) ([]project.ProjectWithTasks, error) {
	var projects []project.ProjectWithTasks
	if err := c.get(ctx, "/api/projects", "projects", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject fetches a single project.
func (c *Client) GetProject(ctx context.Context, projectID string) (*project.Project, error) {
	var proj project.Project
	if err := c.get(ctx, "/api/projects/"+projectID, "project", &proj); err != nil {
		return nil, err
	}
	return &proj, nil
}

// CreateProject creates a project owned by the current user.
func (c *Client) CreateProject(ctx context.Context, form ProjectForm) (*project.Project, error) {
	var proj project.Project
	if err := c.send(ctx, http.MethodPost, "/api/projects", form, &proj); err != nil {
		return nil, err
	}
	return &proj, nil
}

// UpdateProject renames or re-describes a project.
func (c *Client) UpdateProject(ctx context.Context, projectID string, form ProjectForm) (*project.Project, error) {
	var proj project.Project
	if err := c.send(ctx, http.MethodPut, "/api/projects/"+projectID, form, &proj); err != nil {
		return nil, err
	}
	return &proj, nil
}

// DeleteProject removes a project and everything in it.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	return c.send(ctx, http.MethodDelete, "/api/projects/"+projectID, nil, nil)
}
