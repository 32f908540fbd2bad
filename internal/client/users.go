package client

import (
	"context"
	"net/http"

	"github.com/sprintdeck/sprintdeck/internal/domain/member"
	"github.com/sprintdeck/sprintdeck/internal/domain/user"
)

// ListUsers fetches the user directory.
func (c *Client) ListUsers(ctx context.Context) ([]user.User, error) {
	var users []user.User
	if err := c.get(ctx, "/api/users", "users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// InviteUser invites the user with the given email to the project. When
// the email has no account, the returned *MutationError carries the
// server's "user not found" explanation.
func (c *Client) InviteUser(ctx context.Context, projectID, email string) error {
	body := map[string]string{"email": email}
	return c.send(ctx, http.MethodPost, "/api/projects/"+projectID+"/invite", body, nil)
}

// ListProjectMembers fetches a project's members with their roles.
func (c *Client) ListProjectMembers(ctx context.Context, projectID string) ([]member.Info, error) {
	var members []member.Info
	if err := c.get(ctx, "/api/projects/"+projectID+"/members", "project members", &members); err != nil {
		return nil, err
	}
	return members, nil
}

// AddProjectMember attaches an existing user to the project.
func (c *Client) AddProjectMember(ctx context.Context, projectID, userID string, role member.Role) error {
	body := map[string]string{"userId": userID, "role": string(role)}
	return c.send(ctx, http.MethodPost, "/api/projects/"+projectID+"/members", body, nil)
}

// RemoveProjectMember detaches a member from the project.
func (c *Client) RemoveProjectMember(ctx context.Context, projectID, userID string) error {
	body := map[string]string{"userId": userID}
	return c.send(ctx, http.MethodDelete, "/api/projects/"+projectID+"/members", body, nil)
}

// MyProjectRole fetches the current user's role in the project.
func (c *Client) MyProjectRole(ctx context.Context, projectID string) (member.Role, error) {
	var out struct {
		Role member.Role `json:"role"`
	}
	if err := c.get(ctx, "/api/projects/"+projectID+"/my-role", "project role", &out); err != nil {
		return "", err
	}
	return out.Role, nil
}

// ListProjectAssignees fetches the users a task may be assigned to.
func (c *Client) ListProjectAssignees(ctx context.Context, projectID string) ([]user.User, error) {
	var users []user.User
	if err := c.get(ctx, "/api/projects/"+projectID+"/assignees", "project assignees", &users); err != nil {
		return nil, err
	}
	return users, nil
}
