package partition

import (
	"fmt"

	"github.com/google/uuid"
)

// User is the identity a scheme assigns into a group. Only the fields
// schemes actually consult are carried here; the full student profile lives
// with the host platform.
type User struct {
	// ID is the platform-wide user identifier.
	ID uuid.UUID

	// Username is the user's login, used in logs only.
	Username string

	// Cohort is the user's enrollment cohort (e.g. "2024-spring"), consulted
	// by cohort-based schemes. Empty when the user has none.
	Cohort string
}

// NewUser creates a User, validating the id as a UUID.
func NewUser(id, username, cohort string) (User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return User{}, fmt.Errorf("%w: user id %q: %v", ErrInvalidID, id, err)
	}
	return User{ID: uid, Username: username, Cohort: cohort}, nil
}

// Key returns the stable key under which assignments for this user are
// stored.
func (u User) Key() string {
	return u.ID.String()
}
