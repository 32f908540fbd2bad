package filter

import (
	"cmp"
	"sort"
	"strings"

	"github.com/sprintdeck/sprintdeck/internal/domain/project"
)

// ProjectSortKey selects the project sort dimension.
type ProjectSortKey string

const (
	ProjectsByName      ProjectSortKey = "name"
	ProjectsByCreatedAt ProjectSortKey = "createdAt"
	ProjectsByUpdatedAt ProjectSortKey = "updatedAt"
	ProjectsByTaskCount ProjectSortKey = "taskCount"
)

// ProjectFilterState holds the current project view settings. It is a
// value type; reducers return new values and never mutate.
type ProjectFilterState struct {
	Search    string
	Owner     string
	SortBy    ProjectSortKey
	SortOrder SortOrder
}

// DefaultProjectFilter returns the initial project filter state.
func DefaultProjectFilter() ProjectFilterState {
	return ProjectFilterState{
		Search:    "",
		Owner:     All,
		SortBy:    ProjectsByCreatedAt,
		SortOrder: Desc,
	}
}

// ReduceProject applies one action to the state. Unknown action types
// leave the state unchanged.
func ReduceProject(state ProjectFilterState, action Action) ProjectFilterState {
	switch action.Type {
	case SetSearch:
		state.Search = action.Value
	case SetOwner:
		state.Owner = action.Value
	case SetSortBy:
		state.SortBy = ProjectSortKey(action.Value)
	case SetSortOrder:
		state.SortOrder = SortOrder(action.Value)
	case ResetFilters:
		return DefaultProjectFilter()
	}
	return state
}

// FilterSortProjects returns a new slice holding the projects matching
// the filter state, ordered by its sort settings. The input is never
// mutated. currentUserID resolves the OwnerCurrent sentinel.
func FilterSortProjects(projects []project.ProjectWithTasks, f ProjectFilterState, currentUserID string) []project.ProjectWithTasks {
	filtered := make([]project.ProjectWithTasks, 0, len(projects))
	for _, p := range projects {
		if matchesProject(p, f, currentUserID) {
			filtered = append(filtered, p)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		c := compareProjects(filtered[i], filtered[j], f.SortBy)
		if f.SortOrder == Desc {
			c = -c
		}
		return c < 0
	})

	return filtered
}

func matchesProject(p project.ProjectWithTasks, f ProjectFilterState, currentUserID string) bool {
	if f.Search != "" && !matchesSearch(f.Search, p.Name, p.Description) {
		return false
	}

	if f.Owner != All {
		owner := f.Owner
		if owner == OwnerCurrent {
			if currentUserID == "" {
				return false
			}
			owner = currentUserID
		}
		if p.UserID != owner {
			return false
		}
	}

	return true
}

func compareProjects(a, b project.ProjectWithTasks, key ProjectSortKey) int {
	switch key {
	case ProjectsByName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case ProjectsByUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case ProjectsByTaskCount:
		return cmp.Compare(len(a.Tasks), len(b.Tasks))
	default:
		// Unrecognized keys fall back to creation time.
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

// matchesSearch reports whether the term occurs case-insensitively in
// the name or in the description. A nil description never matches.
func matchesSearch(term, name string, description *string) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(name), term) {
		return true
	}
	return description != nil && strings.Contains(strings.ToLower(*description), term)
}
