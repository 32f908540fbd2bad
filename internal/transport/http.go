// Package transport exposes the REST API over chi.
package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sprintdeck/sprintdeck/internal/domain/member"
	"github.com/sprintdeck/sprintdeck/internal/domain/project"
	"github.com/sprintdeck/sprintdeck/internal/domain/task"
	"github.com/sprintdeck/sprintdeck/internal/domain/user"
)

// Services bundles the domain services the handlers dispatch to.
type Services struct {
	Projects *project.Service
	Tasks    *task.Service
	Members  *member.Service
	Users    *user.Service
}

// Server wires HTTP handlers.
type Server struct {
	svc    Services
	logger *slog.Logger
}

// NewRouter creates the REST router. The health endpoint is open; the
// /api tree requires bearer auth.
func NewRouter(svc Services, authMiddleware func(http.Handler) http.Handler, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		if authMiddleware != nil {
			r.Use(authMiddleware)
		}

		r.Get("/users", srv.handleListUsers)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", srv.handleListProjects)
			r.Post("/", srv.handleCreateProject)

			r.Route("/{projectID}", func(r chi.Router) {
				r.Get("/", srv.handleGetProject)
				r.Put("/", srv.handleUpdateProject)
				r.Delete("/", srv.handleDeleteProject)

				r.Get("/my-role", srv.handleMyRole)
				r.Get("/assignees", srv.handleListAssignees)
				r.Post("/invite", srv.handleInvite)

				r.Get("/members", srv.handleListMembers)
				r.Post("/members", srv.handleAddMember)
				r.Delete("/members", srv.handleRemoveMember)

				r.Route("/tasks", func(r chi.Router) {
					r.Get("/", srv.handleListTasks)
					r.Post("/", srv.handleCreateTask)

					r.Route("/{taskID}", func(r chi.Router) {
						r.Get("/", srv.handleGetTask)
						r.Put("/", srv.handleUpdateTask)
						r.Delete("/", srv.handleDeleteTask)
						r.Patch("/status", srv.handleUpdateTaskStatus)
					})
				})
			})
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- projects ---

type projectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	projects, err := s.svc.Projects.List(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if projects == nil {
		projects = []project.ProjectWithTasks{}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	proj, err := s.svc.Projects.Create(r.Context(), userID, project.CreateRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, proj)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	proj, err := s.svc.Projects.Get(r.Context(), userID, chi.URLParam(r, "projectID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	proj, err := s.svc.Projects.Update(r.Context(), userID, chi.URLParam(r, "projectID"), project.UpdateRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	if err := s.svc.Projects.Delete(r.Context(), userID, chi.URLParam(r, "projectID")); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}

// --- tasks ---

type taskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	AssigneeID  *string `json:"assigneeId"`
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	tasks, err := s.svc.Tasks.List(r.Context(), userID, chi.URLParam(r, "projectID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	t, err := s.svc.Tasks.Create(r.Context(), userID, chi.URLParam(r, "projectID"), task.CreateRequest{
		Title:       req.Title,
		Description: req.Description,
		Status:      task.Status(req.Status),
		Priority:    task.Priority(req.Priority),
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	t, err := s.svc.Tasks.Get(r.Context(), userID, chi.URLParam(r, "projectID"), chi.URLParam(r, "taskID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	t, err := s.svc.Tasks.Update(r.Context(), userID, chi.URLParam(r, "projectID"), chi.URLParam(r, "taskID"), task.UpdateRequest{
		Title:       req.Title,
		Description: req.Description,
		Status:      task.Status(req.Status),
		Priority:    task.Priority(req.Priority),
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	if err := s.svc.Tasks.Delete(r.Context(), userID, chi.URLParam(r, "projectID"), chi.URLParam(r, "taskID")); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

func (s *Server) handleUpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	t, err := s.svc.Tasks.UpdateStatus(r.Context(), userID, chi.URLParam(r, "projectID"), chi.URLParam(r, "taskID"), task.Status(req.Status))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// --- members, invites, roles, assignees ---

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	members, err := s.svc.Members.List(r.Context(), userID, chi.URLParam(r, "projectID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if members == nil {
		members = []member.Info{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	var req struct {
		UserID string `json:"userId"`
		Role   string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	if err := s.svc.Members.Add(r.Context(), userID, chi.URLParam(r, "projectID"), req.UserID, member.Role(req.Role)); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User added to project successfully"})
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	var req struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	if err := s.svc.Members.Remove(r.Context(), userID, chi.URLParam(r, "projectID"), req.UserID); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User removed from project successfully"})
}

func (s *Server) handleInvite(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	if err := s.svc.Members.Invite(r.Context(), userID, chi.URLParam(r, "projectID"), req.Email); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Invitation sent successfully"})
}

func (s *Server) handleMyRole(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	role, err := s.svc.Members.RoleOf(r.Context(), chi.URLParam(r, "projectID"), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]member.Role{"role": role})
}

func (s *Server) handleListAssignees(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	assignees, err := s.svc.Users.Assignees(r.Context(), userID, chi.URLParam(r, "projectID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if assignees == nil {
		assignees = []user.User{}
	}
	writeJSON(w, http.StatusOK, assignees)
}

// --- users ---

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.Users.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if users == nil {
		users = []user.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeDomainError(w, err)
}
