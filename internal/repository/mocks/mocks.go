// Package mocks provides testify mocks for the domain repository
// interfaces, used by service tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sprintdeck/sprintdeck/internal/domain/member"
	"github.com/sprintdeck/sprintdeck/internal/domain/project"
	"github.com/sprintdeck/sprintdeck/internal/domain/task"
	"github.com/sprintdeck/sprintdeck/internal/domain/user"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) ListForUser(ctx context.Context, userID string) ([]project.ProjectWithTasks, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]project.ProjectWithTasks); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProjectRepository) HasAccess(ctx context.Context, projectID, userID string) (bool, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Bool(0), args.Error(1)
}

// TaskRepository is a mock for task.Repository.
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TaskRepository) Get(ctx context.Context, projectID, id string) (*task.Task, error) {
	args := m.Called(ctx, projectID, id)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]task.Task, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]task.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TaskRepository) UpdateStatus(ctx context.Context, projectID, id string, status task.Status) (*task.Task, error) {
	args := m.Called(ctx, projectID, id, status)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) Delete(ctx context.Context, projectID, id string) error {
	args := m.Called(ctx, projectID, id)
	return args.Error(0)
}

// MemberRepository is a mock for member.Repository.
type MemberRepository struct {
	mock.Mock
}

func (m *MemberRepository) Add(ctx context.Context, mem *member.Member) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}

func (m *MemberRepository) Get(ctx context.Context, projectID, userID string) (*member.Member, error) {
	args := m.Called(ctx, projectID, userID)
	if mem, ok := args.Get(0).(*member.Member); ok {
		return mem, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MemberRepository) ListByProject(ctx context.Context, projectID string) ([]member.Info, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]member.Info); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MemberRepository) Remove(ctx context.Context, projectID, userID string) error {
	args := m.Called(ctx, projectID, userID)
	return args.Error(0)
}

// UserRepository is a mock for user.Repository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) List(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]user.User); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) ListProjectUsers(ctx context.Context, projectID string) ([]user.User, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]user.User); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
