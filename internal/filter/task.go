package filter

import (
	"cmp"
	"sort"
	"strings"

	"github.com/sprintdeck/sprintdeck/internal/domain/task"
)

// TaskSortKey selects the task sort dimension.
type TaskSortKey string

const (
	TasksByTitle     TaskSortKey = "title"
	TasksByCreatedAt TaskSortKey = "createdAt"
	TasksByUpdatedAt TaskSortKey = "updatedAt"
	TasksByPriority  TaskSortKey = "priority"
	TasksByStatus    TaskSortKey = "status"
)

// TaskFilterState holds the current task view settings. Status,
// Priority, and Assignee hold All or a literal value to match.
type TaskFilterState struct {
	Search    string
	Status    string
	Priority  string
	Assignee  string
	SortBy    TaskSortKey
	SortOrder SortOrder
}

// DefaultTaskFilter returns the initial task filter state.
func DefaultTaskFilter() TaskFilterState {
	return TaskFilterState{
		Search:    "",
		Status:    All,
		Priority:  All,
		Assignee:  All,
		SortBy:    TasksByCreatedAt,
		SortOrder: Desc,
	}
}

// ReduceTask applies one action to the state. Unknown action types
// leave the state unchanged.
func ReduceTask(state TaskFilterState, action Action) TaskFilterState {
	switch action.Type {
	case SetSearch:
		state.Search = action.Value
	case SetStatus:
		state.Status = action.Value
	case SetPriority:
		state.Priority = action.Value
	case SetAssignee:
		state.Assignee = action.Value
	case SetSortBy:
		state.SortBy = TaskSortKey(action.Value)
	case SetSortOrder:
		state.SortOrder = SortOrder(action.Value)
	case ResetFilters:
		return DefaultTaskFilter()
	}
	return state
}

// FilterSortTasks returns a new slice holding the tasks matching the
// filter state, ordered by its sort settings. The input is never mutated.
func FilterSortTasks(tasks []task.Task, f TaskFilterState) []task.Task {
	filtered := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if matchesTask(t, f) {
			filtered = append(filtered, t)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		c := compareTasks(filtered[i], filtered[j], f.SortBy)
		if f.SortOrder == Desc {
			c = -c
		}
		return c < 0
	})

	return filtered
}

func matchesTask(t task.Task, f TaskFilterState) bool {
	if f.Search != "" && !matchesSearch(f.Search, t.Title, t.Description) {
		return false
	}
	if f.Status != All && string(t.Status) != f.Status {
		return false
	}
	if f.Priority != All && string(t.Priority) != f.Priority {
		return false
	}

	if f.Assignee != All {
		if f.Assignee == AssigneeUnassigned {
			if t.AssigneeID != nil {
				return false
			}
		} else if t.AssigneeID == nil || *t.AssigneeID != f.Assignee {
			return false
		}
	}

	return true
}

func compareTasks(a, b task.Task, key TaskSortKey) int {
	switch key {
	case TasksByTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case TasksByUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case TasksByPriority:
		return cmp.Compare(a.Priority.Rank(), b.Priority.Rank())
	case TasksByStatus:
		return cmp.Compare(a.Status.Rank(), b.Status.Rank())
	default:
		// Unrecognized keys fall back to creation time.
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}
