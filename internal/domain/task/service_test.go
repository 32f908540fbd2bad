package task_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sprintdeck/sprintdeck/internal/domain/task"
	"github.com/sprintdeck/sprintdeck/internal/repository"
	"github.com/sprintdeck/sprintdeck/internal/repository/mocks"
)

func newTaskService(t *testing.T) (*task.Service, *mocks.TaskRepository, *mocks.ProjectRepository) {
	t.Helper()
	repo := new(mocks.TaskRepository)
	projects := new(mocks.ProjectRepository)
	return task.NewService(repo, projects, nil), repo, projects
}

func TestTaskCreate(t *testing.T) {
	svc, repo, projects := newTaskService(t)
	ctx := context.Background()

	projects.On("HasAccess", ctx, "p1", "u1").Return(true, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*task.Task")).Return(nil)

	created, err := svc.Create(ctx, "u1", "p1", task.CreateRequest{
		Title:    "  Write tests  ",
		Status:   task.StatusInProgress,
		Priority: task.PriorityHigh,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Write tests", created.Title, "title is trimmed")
	require.Equal(t, task.StatusInProgress, created.Status)
	require.Equal(t, task.PriorityHigh, created.Priority)
	require.Equal(t, "p1", created.ProjectID)
	require.Nil(t, created.Description)
	require.False(t, created.CreatedAt.IsZero())

	repo.AssertExpectations(t)
}

func TestTaskCreate_Defaults(t *testing.T) {
	svc, repo, projects := newTaskService(t)
	ctx := context.Background()

	projects.On("HasAccess", ctx, "p1", "u1").Return(true, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*task.Task")).Return(nil)

	created, err := svc.Create(ctx, "u1", "p1", task.CreateRequest{Title: "Defaults"})
	require.NoError(t, err)
	require.Equal(t, task.StatusTodo, created.Status)
	require.Equal(t, task.PriorityMedium, created.Priority)
}

func TestTaskCreate_Validation(t *testing.T) {
	ctx := context.Background()
	long := strings.Repeat("x", 501)

	cases := []struct {
		name string
		req  task.CreateRequest
		want error
	}{
		{"empty title", task.CreateRequest{Title: "   "}, task.ErrInvalidInput},
		{"title too long", task.CreateRequest{Title: strings.Repeat("x", 101)}, task.ErrInvalidInput},
		{"description too long", task.CreateRequest{Title: "ok", Description: &long}, task.ErrInvalidInput},
		{"bad status", task.CreateRequest{Title: "ok", Status: "LIMBO"}, task.ErrInvalidStatus},
		{"bad priority", task.CreateRequest{Title: "ok", Priority: "MEH"}, task.ErrInvalidPriority},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, projects := newTaskService(t)
			projects.On("HasAccess", ctx, "p1", "u1").Return(true, nil)

			_, err := svc.Create(ctx, "u1", "p1", tc.req)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestTaskCreate_AssigneeMustHaveAccess(t *testing.T) {
	svc, _, projects := newTaskService(t)
	ctx := context.Background()
	outsider := "u9"

	projects.On("HasAccess", ctx, "p1", "u1").Return(true, nil)
	projects.On("HasAccess", ctx, "p1", "u9").Return(false, nil)

	_, err := svc.Create(ctx, "u1", "p1", task.CreateRequest{Title: "ok", AssigneeID: &outsider})
	require.ErrorIs(t, err, task.ErrInvalidAssignee)
}

func TestTaskCreate_NoAccessLooksLikeMissingProject(t *testing.T) {
	svc, _, projects := newTaskService(t)
	ctx := context.Background()

	projects.On("HasAccess", ctx, "p1", "intruder").Return(false, nil)

	_, err := svc.Create(ctx, "intruder", "p1", task.CreateRequest{Title: "ok"})
	require.ErrorIs(t, err, task.ErrProjectNotFound)
}

func TestTaskList(t *testing.T) {
	svc, repo, projects := newTaskService(t)
	ctx := context.Background()

	projects.On("HasAccess", ctx, "p1", "u1").Return(true, nil)
	repo.On("ListByProject", ctx, "p1").Return([]task.Task{{ID: "t1"}}, nil)

	tasks, err := svc.List(ctx, "u1", "p1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
}

func TestTaskGet_NotFound(t *testing.T) {
	svc, repo, projects := newTaskService(t)
	ctx := context.Background()

	projects.On("HasAccess", ctx, "p1", "u1").Return(true, nil)
	repo.On("Get", ctx, "p1", "missing").Return(nil, repository.ErrNotFound)

	_, err := svc.Get(ctx, "u1", "p1", "missing")
	require.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestTaskUpdate(t *testing.T) {
	svc, repo, projects := newTaskService(t)
	ctx := context.Background()

	existing := &task.Task{ID: "t1", ProjectID: "p1", Title: "Old", Status: task.StatusTodo, Priority: task.PriorityLow}
	projects.On("HasAccess", ctx, "p1", "u1").Return(true, nil)
	repo.On("Get", ctx, "p1", "t1").Return(existing, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*task.Task")).Return(nil)

	desc := "  now with details  "
	updated, err := svc.Update(ctx, "u1", "p1", "t1", task.UpdateRequest{
		Title:       "New title",
		Description: &desc,
		Status:      task.StatusReview,
		Priority:    task.PriorityUrgent,
	})
	require.NoError(t, err)
	require.Equal(t, "New title", updated.Title)
	require.NotNil(t, updated.Description)
	require.Equal(t, "now with details", *updated.Description)
	require.Equal(t, task.StatusReview, updated.Status)
}

func TestTaskUpdate_BlankDescriptionBecomesNil(t *testing.T) {
	svc, repo, projects := newTaskService(t)
	ctx := context.Background()

	projects.On("HasAccess", ctx, "p1", "u1").Return(true, nil)
	repo.On("Get", ctx, "p1", "t1").Return(&task.Task{ID: "t1", ProjectID: "p1"}, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*task.Task")).Return(nil)

	blank := "   "
	updated, err := svc.Update(ctx, "u1", "p1", "t1", task.UpdateRequest{
		Title:       "ok",
		Description: &blank,
		Status:      task.StatusTodo,
		Priority:    task.PriorityMedium,
	})
	require.NoError(t, err)
	require.Nil(t, updated.Description)
}

func TestTaskUpdateStatus(t *testing.T) {
	svc, repo, projects := newTaskService(t)
	ctx := context.Background()

	moved := &task.Task{ID: "t1", ProjectID: "p1", Status: task.StatusDone}
	projects.On("HasAccess", ctx, "p1", "u1").Return(true, nil)
	repo.On("UpdateStatus", ctx, "p1", "t1", task.StatusDone).Return(moved, nil)

	got, err := svc.UpdateStatus(ctx, "u1", "p1", "t1", task.StatusDone)
	require.NoError(t, err)
	require.Equal(t, task.StatusDone, got.Status)
	repo.AssertExpectations(t)
}

func TestTaskUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc, repo, projects := newTaskService(t)
	ctx := context.Background()

	projects.On("HasAccess", ctx, "p1", "u1").Return(true, nil)

	_, err := svc.UpdateStatus(ctx, "u1", "p1", "t1", "LIMBO")
	require.ErrorIs(t, err, task.ErrInvalidStatus)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskDelete_NotFound(t *testing.T) {
	svc, repo, projects := newTaskService(t)
	ctx := context.Background()

	projects.On("HasAccess", ctx, "p1", "u1").Return(true, nil)
	repo.On("Delete", ctx, "p1", "missing").Return(repository.ErrNotFound)

	err := svc.Delete(ctx, "u1", "p1", "missing")
	require.ErrorIs(t, err, task.ErrTaskNotFound)
}
