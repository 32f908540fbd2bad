package member

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist or the
	// caller has no access to it.
	ErrProjectNotFound = errors.New("project not found")
	// ErrAccessDenied indicates the operation requires the owner or an admin.
	ErrAccessDenied = errors.New("access denied")
	// ErrUserNotFound indicates the invited or referenced user doesn't exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrAlreadyMember indicates the user already has a membership row.
	ErrAlreadyMember = errors.New("user is already a member")
	// ErrNotMember indicates the user has no membership row to remove.
	ErrNotMember = errors.New("user is not a member of this project")
	// ErrCannotRemoveOwner indicates an attempt to remove the project
	// owner through the member-removal path.
	ErrCannotRemoveOwner = errors.New("cannot remove project owner")
	// ErrInvalidRole indicates a role outside OWNER, ADMIN, MEMBER.
	ErrInvalidRole = errors.New("invalid member role")
)

// UserNotFoundMessage is the human-readable explanation surfaced when
// inviting an email with no account. Clients show this verbatim.
const UserNotFoundMessage = "This user is not active in SprintDeck. " +
	"The user should sign up first before you can add them. " +
	"In a future version, we will send them an email."
