package shift

import "time"

// Status enum
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCanceled   Status = "canceled"
)

// Shift is a single scheduled work interval, optionally assigned to a
// worker. Times are half-open: a shift occupies [StartTime, EndTime).
type Shift struct {
	ID             string
	RosterID       string
	Title          string
	Description    *string
	Location       *string
	Notes          *string
	StartTime      time.Time
	EndTime        time.Time
	Status         Status
	AssignedUserID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	AssignedUserName *string
	RosterTitle      *string
	CompanyID        string
}
