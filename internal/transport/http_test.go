package transport_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sprintdeck/sprintdeck/internal/domain/member"
	"github.com/sprintdeck/sprintdeck/internal/testserver"
)

func doJSON(t *testing.T, method, url, token string, body any) (int, []byte) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func createProject(t *testing.T, ts *testserver.TestServer, token, name string) string {
	t.Helper()

	status, body := doJSON(t, http.MethodPost, ts.URL()+"/api/projects", token,
		map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, status)

	var proj struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &proj))
	return proj.ID
}

func TestHealthOpen(t *testing.T) {
	ts := testserver.New(t)

	status, body := doJSON(t, http.MethodGet, ts.URL()+"/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestProjectLifecycle(t *testing.T) {
	ts := testserver.New(t)
	_, token := ts.AddUser(t, "owner@example.com", "Owner")

	projectID := createProject(t, ts, token, "Roadmap")

	status, body := doJSON(t, http.MethodGet, ts.URL()+"/api/projects", token, nil)
	require.Equal(t, http.StatusOK, status)

	var projects []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Tasks []any  `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(body, &projects))
	require.Len(t, projects, 1)
	require.Equal(t, projectID, projects[0].ID)
	require.NotNil(t, projects[0].Tasks, "task refs serialize as an empty array, not null")

	status, _ = doJSON(t, http.MethodPut, ts.URL()+"/api/projects/"+projectID, token,
		map[string]string{"name": "Renamed"})
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, http.MethodDelete, ts.URL()+"/api/projects/"+projectID, token, nil)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"message":"Project deleted successfully"}`, string(body))

	status, _ = doJSON(t, http.MethodGet, ts.URL()+"/api/projects/"+projectID, token, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestProjectValidation(t *testing.T) {
	ts := testserver.New(t)
	_, token := ts.AddUser(t, "owner@example.com", "Owner")

	status, body := doJSON(t, http.MethodPost, ts.URL()+"/api/projects", token,
		map[string]string{"name": "   "})
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, string(body), "Invalid input")
}

func TestProjectUpdateRequiresOwner(t *testing.T) {
	ts := testserver.New(t)
	_, ownerToken := ts.AddUser(t, "owner@example.com", "Owner")
	memberID, memberToken := ts.AddUser(t, "member@example.com", "Member")

	projectID := createProject(t, ts, ownerToken, "Shared")

	status, _ := doJSON(t, http.MethodPost, ts.URL()+"/api/projects/"+projectID+"/members", ownerToken,
		map[string]string{"userId": memberID})
	require.Equal(t, http.StatusOK, status)

	// A member can read but not rename.
	status, _ = doJSON(t, http.MethodGet, ts.URL()+"/api/projects/"+projectID, memberToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, http.MethodPut, ts.URL()+"/api/projects/"+projectID, memberToken,
		map[string]string{"name": "Hijacked"})
	require.Equal(t, http.StatusForbidden, status)
}

func TestTaskLifecycle(t *testing.T) {
	ts := testserver.New(t)
	userID, token := ts.AddUser(t, "owner@example.com", "Owner")
	projectID := createProject(t, ts, token, "Board")

	tasksURL := ts.URL() + "/api/projects/" + projectID + "/tasks"

	status, body := doJSON(t, http.MethodPost, tasksURL, token, map[string]any{
		"title":      "Fix bug",
		"priority":   "HIGH",
		"assigneeId": userID,
	})
	require.Equal(t, http.StatusCreated, status)

	var created struct {
		ID         string  `json:"id"`
		Status     string  `json:"status"`
		Priority   string  `json:"priority"`
		AssigneeID *string `json:"assigneeId"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	require.Equal(t, "TODO", created.Status, "status defaults to TODO")
	require.Equal(t, "HIGH", created.Priority)
	require.NotNil(t, created.AssigneeID)

	// Kanban move.
	status, body = doJSON(t, http.MethodPatch, tasksURL+"/"+created.ID+"/status", token,
		map[string]string{"status": "IN_PROGRESS"})
	require.Equal(t, http.StatusOK, status)

	var moved struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(body, &moved))
	require.Equal(t, "IN_PROGRESS", moved.Status)

	status, body = doJSON(t, http.MethodDelete, tasksURL+"/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"message":"Task deleted successfully"}`, string(body))
}

func TestTaskValidationErrors(t *testing.T) {
	ts := testserver.New(t)
	_, token := ts.AddUser(t, "owner@example.com", "Owner")
	projectID := createProject(t, ts, token, "Board")

	tasksURL := ts.URL() + "/api/projects/" + projectID + "/tasks"

	status, body := doJSON(t, http.MethodPost, tasksURL, token, map[string]string{
		"title":  "Bad status",
		"status": "LIMBO",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, string(body), "Invalid status")

	status, body = doJSON(t, http.MethodPost, tasksURL, token, map[string]string{
		"title":    "Bad priority",
		"priority": "MEH",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, string(body), "Invalid priority")

	// An assignee outside the project is rejected.
	outsiderID, _ := ts.AddUser(t, "outsider@example.com", "Outsider")
	status, body = doJSON(t, http.MethodPost, tasksURL, token, map[string]any{
		"title":      "Bad assignee",
		"assigneeId": outsiderID,
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, string(body), "Assignee is not a member")
}

func TestTasksHiddenFromStrangers(t *testing.T) {
	ts := testserver.New(t)
	_, ownerToken := ts.AddUser(t, "owner@example.com", "Owner")
	_, strangerToken := ts.AddUser(t, "stranger@example.com", "Stranger")
	projectID := createProject(t, ts, ownerToken, "Private")

	status, _ := doJSON(t, http.MethodGet, ts.URL()+"/api/projects/"+projectID+"/tasks", strangerToken, nil)
	require.Equal(t, http.StatusNotFound, status, "strangers see not-found, not forbidden")
}

func TestMemberEndpoints(t *testing.T) {
	ts := testserver.New(t)
	_, ownerToken := ts.AddUser(t, "owner@example.com", "Owner")
	memberID, memberToken := ts.AddUser(t, "member@example.com", "Member")
	projectID := createProject(t, ts, ownerToken, "Team")

	base := ts.URL() + "/api/projects/" + projectID

	status, body := doJSON(t, http.MethodGet, base+"/my-role", ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"role":"OWNER"}`, string(body))

	status, _ = doJSON(t, http.MethodPost, base+"/members", ownerToken,
		map[string]string{"userId": memberID, "role": "ADMIN"})
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, http.MethodGet, base+"/my-role", memberToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"role":"ADMIN"}`, string(body))

	status, body = doJSON(t, http.MethodGet, base+"/members", ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
	var members []member.Info
	require.NoError(t, json.Unmarshal(body, &members))
	require.Len(t, members, 1)
	require.Equal(t, memberID, members[0].ID)

	// Assignees include the owner, who has no membership row.
	status, body = doJSON(t, http.MethodGet, base+"/assignees", ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
	var assignees []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &assignees))
	require.Len(t, assignees, 2)

	status, body = doJSON(t, http.MethodDelete, base+"/members", ownerToken,
		map[string]string{"userId": memberID})
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"message":"User removed from project successfully"}`, string(body))
}

func TestOwnerCannotBeRemoved(t *testing.T) {
	ts := testserver.New(t)
	ownerID, ownerToken := ts.AddUser(t, "owner@example.com", "Owner")
	projectID := createProject(t, ts, ownerToken, "Team")

	status, body := doJSON(t, http.MethodDelete, ts.URL()+"/api/projects/"+projectID+"/members", ownerToken,
		map[string]string{"userId": ownerID})
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, string(body), "Cannot remove project owner")
}

func TestInvite(t *testing.T) {
	ts := testserver.New(t)
	_, ownerToken := ts.AddUser(t, "owner@example.com", "Owner")
	ts.AddUser(t, "friend@example.com", "Friend")
	projectID := createProject(t, ts, ownerToken, "Team")

	inviteURL := ts.URL() + "/api/projects/" + projectID + "/invite"

	status, body := doJSON(t, http.MethodPost, inviteURL, ownerToken,
		map[string]string{"email": "friend@example.com"})
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"message":"Invitation sent successfully"}`, string(body))

	// Inviting twice is a duplicate membership.
	status, body = doJSON(t, http.MethodPost, inviteURL, ownerToken,
		map[string]string{"email": "friend@example.com"})
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, string(body), "already a member")
}

func TestInviteUnknownEmail(t *testing.T) {
	ts := testserver.New(t)
	_, ownerToken := ts.AddUser(t, "owner@example.com", "Owner")
	projectID := createProject(t, ts, ownerToken, "Team")

	status, body := doJSON(t, http.MethodPost, ts.URL()+"/api/projects/"+projectID+"/invite", ownerToken,
		map[string]string{"email": "ghost@example.com"})
	require.Equal(t, http.StatusNotFound, status)

	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(body, &errResp))
	require.Equal(t, "User not found", errResp.Error)
	require.Equal(t, member.UserNotFoundMessage, errResp.Message)
}

func TestListUsers(t *testing.T) {
	ts := testserver.New(t)
	_, token := ts.AddUser(t, "first@example.com", "First")
	ts.AddUser(t, "second@example.com", "Second")

	status, body := doJSON(t, http.MethodGet, ts.URL()+"/api/users", token, nil)
	require.Equal(t, http.StatusOK, status)

	var users []struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(body, &users))
	require.Len(t, users, 2)
}

func TestMalformedBody(t *testing.T) {
	ts := testserver.New(t)
	_, token := ts.AddUser(t, "owner@example.com", "Owner")

	req, err := http.NewRequest(http.MethodPost, ts.URL()+"/api/projects", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
