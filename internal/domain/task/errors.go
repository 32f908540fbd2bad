package task

import "errors"

var (
	// ErrTaskNotFound indicates the task doesn't exist in the project.
	ErrTaskNotFound = errors.New("task not found")
	// ErrProjectNotFound indicates the enclosing project doesn't exist
	// or the caller has no access to it.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates invalid task fields.
	ErrInvalidInput = errors.New("invalid task input")
	// ErrInvalidStatus indicates a status outside TODO, IN_PROGRESS, REVIEW, DONE.
	ErrInvalidStatus = errors.New("invalid task status")
	// ErrInvalidPriority indicates a priority outside LOW, MEDIUM, HIGH, URGENT.
	ErrInvalidPriority = errors.New("invalid task priority")
	// ErrInvalidAssignee indicates the assignee is not the project owner or a member.
	ErrInvalidAssignee = errors.New("assignee is not a member of the project")
)
