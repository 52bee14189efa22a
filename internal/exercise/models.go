package exercise

import (
	"time"

	"github.com/google/uuid"
)

// UserLog is the stored record for one user: an identity plus an ordered,
// append-only sequence of exercise entries.
type UserLog struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Revision  int        `json:"revision"`
	Log       []Entry    `json:"log"`
	CreatedAt time.Time  `json:"created_at,omitempty"`
	UpdatedAt time.Time  `json:"updated_at,omitempty"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Entry is one logged activity embedded in a UserLog. Entries have no
// identity of their own and are never updated or removed once appended.
type Entry struct {
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
	Date        time.Time `json:"date"`
}

// UserSummary is the projection returned by the users listing: the log
// entries are excluded.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Revision int       `json:"revision"`
}

// CreateUserRequest carries the input for creating a new user log.
type CreateUserRequest struct {
	Username string `json:"username" form:"username"`
}

// AddExerciseRequest carries the raw, unparsed input for appending an
// exercise. Fields stay strings so the service can report field-specific
// validation errors in a fixed order.
type AddExerciseRequest struct {
	UserID      string `json:"userId" form:"userId"`
	Description string `json:"description" form:"description"`
	Duration    string `json:"duration" form:"duration"`
	Date        string `json:"date" form:"date"`
}

// LogQuery carries the raw query parameters for fetching a user's log.
type LogQuery struct {
	UserID string
	From   string
	To     string
	Limit  string
}

// LogEntryView is one entry shaped for display, with the date rendered in
// the fixed "Thu Dec 13 1990" format.
type LogEntryView struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogResult is the response for a log fetch. Count is the number of entries
// actually returned after range and limit filtering.
type LogResult struct {
	ID       uuid.UUID      `json:"id"`
	Username string         `json:"username"`
	Count    int            `json:"count"`
	Log      []LogEntryView `json:"log"`
}

// CreatedUser is the canonical create-user response shape.
type CreatedUser struct {
	Username string    `json:"username"`
	ID       uuid.UUID `json:"id"`
}
