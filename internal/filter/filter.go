// Package filter implements the client-side view pipeline: pure
// filter/sort functions over project and task collections, and
// reducer-style state records driven by discrete actions.
package filter

// SortOrder selects ascending or descending comparison.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// All disables a filter clause.
const All = "ALL"

// OwnerCurrent selects projects owned by the current user. It resolves
// against the current-user id supplied to the engine; when that id is
// empty the clause matches nothing.
const OwnerCurrent = "current"

// AssigneeUnassigned selects tasks with no assignee.
const AssigneeUnassigned = "UNASSIGNED"

// ActionType tags a filter-state action.
type ActionType string

const (
	SetSearch    ActionType = "SET_SEARCH"
	SetOwner     ActionType = "SET_OWNER"
	SetStatus    ActionType = "SET_STATUS"
	SetPriority  ActionType = "SET_PRIORITY"
	SetAssignee  ActionType = "SET_ASSIGNEE"
	SetSortBy    ActionType = "SET_SORT_BY"
	SetSortOrder ActionType = "SET_SORT_ORDER"
	ResetFilters ActionType = "RESET_FILTERS"
)

// Action is a tagged filter-state transition. Value carries the payload
// for every action type except ResetFilters.
type Action struct {
	Type  ActionType
	Value string
}
