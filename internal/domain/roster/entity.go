package roster

import "time"

// Roster is a scheduling window owning a set of shifts for a company.
// Publication is one-way: a published roster never returns to draft.
type Roster struct {
	ID          string
	Title       string
	Description *string
	StartDate   time.Time
	EndDate     time.Time
	IsPublished bool
	CompanyID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
