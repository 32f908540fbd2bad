package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sprintdeck/sprintdeck/internal/domain/member"
	"github.com/sprintdeck/sprintdeck/internal/domain/project"
	"github.com/sprintdeck/sprintdeck/internal/domain/task"
	"github.com/sprintdeck/sprintdeck/internal/domain/user"
)

// errorBody is the JSON failure shape: an error label, plus an optional
// longer human-readable message.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, label, message string) {
	writeJSON(w, status, errorBody{Error: label, Message: message})
}

// writeDomainError maps domain sentinel errors onto HTTP failures. The
// invite flow's user-not-found carries its specific explanation so
// clients can show it verbatim.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, member.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found", member.UserNotFoundMessage)
	case errors.Is(err, user.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found", "")
	case errors.Is(err, task.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, "Task not found", "")
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, task.ErrProjectNotFound),
		errors.Is(err, member.ErrProjectNotFound),
		errors.Is(err, user.ErrProjectNotFound):
		writeError(w, http.StatusNotFound, "Project not found", "")
	case errors.Is(err, member.ErrNotMember):
		writeError(w, http.StatusNotFound, "User is not a member of this project", "")
	case errors.Is(err, project.ErrAccessDenied), errors.Is(err, member.ErrAccessDenied):
		writeError(w, http.StatusForbidden, "Access denied", "")
	case errors.Is(err, member.ErrAlreadyMember):
		writeError(w, http.StatusBadRequest, "User is already a member", "")
	case errors.Is(err, member.ErrCannotRemoveOwner):
		writeError(w, http.StatusBadRequest, "Cannot remove project owner", "")
	case errors.Is(err, task.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "Invalid status. Must be one of: TODO, IN_PROGRESS, REVIEW, DONE", "")
	case errors.Is(err, task.ErrInvalidPriority):
		writeError(w, http.StatusBadRequest, "Invalid priority. Must be one of: LOW, MEDIUM, HIGH, URGENT", "")
	case errors.Is(err, task.ErrInvalidAssignee):
		writeError(w, http.StatusBadRequest, "Assignee is not a member of the project", "")
	case errors.Is(err, member.ErrInvalidRole):
		writeError(w, http.StatusBadRequest, "Invalid role. Must be one of: OWNER, ADMIN, MEMBER", "")
	case errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, task.ErrInvalidInput),
		errors.Is(err, user.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid input", "")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error", "")
	}
}
