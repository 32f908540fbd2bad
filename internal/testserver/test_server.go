// Package testserver spins up an in-process SprintDeck server over an
// in-memory database for client and integration tests.
package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sprintdeck/sprintdeck/internal/domain/member"
	"github.com/sprintdeck/sprintdeck/internal/domain/project"
	"github.com/sprintdeck/sprintdeck/internal/domain/task"
	"github.com/sprintdeck/sprintdeck/internal/domain/user"
	"github.com/sprintdeck/sprintdeck/internal/sqlite"
	"github.com/sprintdeck/sprintdeck/internal/transport"
)

// TestServer bundles a running server with its backing stores.
type TestServer struct {
	Server  *httptest.Server
	DB      *sqlite.DB
	Users   *user.Service
	APIKeys *sqlite.APIKeyRepository
}

// New starts a server backed by a fresh in-memory database.
func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	projectRepo := sqlite.NewProjectRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	memberRepo := sqlite.NewMemberRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	apiKeys := sqlite.NewAPIKeyRepository(db)

	userSvc := user.NewService(userRepo, projectRepo, nil)
	services := transport.Services{
		Projects: project.NewService(projectRepo, nil),
		Tasks:    task.NewService(taskRepo, projectRepo, nil),
		Members:  member.NewService(memberRepo, projectRepo, userRepo, nil),
		Users:    userSvc,
	}

	server := httptest.NewServer(transport.NewRouter(services, transport.AuthMiddleware(apiKeys), nil))

	ts := &TestServer{
		Server:  server,
		DB:      db,
		Users:   userSvc,
		APIKeys: apiKeys,
	}

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

// AddUser registers a user and an API token for them, returning the
// user id. The token is the user's email prefixed with "token-".
func (ts *TestServer) AddUser(t *testing.T, email, name string) (userID, token string) {
	t.Helper()

	u, err := ts.Users.Register(context.Background(), email, &name)
	require.NoError(t, err)

	token = "token-" + email
	require.NoError(t, ts.APIKeys.CreateKey(context.Background(), token, u.ID))

	return u.ID, token
}

// URL returns the server's base URL.
func (ts *TestServer) URL() string {
	return ts.Server.URL
}
