package user

import "time"

// User is an account known to the identity store. The core only ever
// consumes ids and display fields; credential handling lives elsewhere.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name,omitempty"`
	CreatedAt time.Time `json:"-"`
}

// DisplayName returns the user's name, falling back to the email.
func (u User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Email
}
