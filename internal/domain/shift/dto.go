package shift

import (
	"time"

	"github.com/rosterly/rosterly-backend-go/internal/pkg/validator"
)

var validStatuses = []string{
	string(StatusScheduled),
	string(StatusInProgress),
	string(StatusCompleted),
	string(StatusCanceled),
}

type CreateShiftRequest struct {
	RosterID       string  `json:"roster_id"`
	Title          string  `json:"title"`
	Description    *string `json:"description"`
	Location       *string `json:"location"`
	Notes          *string `json:"notes"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	AssignedUserID *string `json:"assigned_user_id"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RosterID) {
		errs = append(errs, validator.ValidationError{
			Field:   "roster_id",
			Message: "roster_id is required",
		})
	}

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	start, startOK := validator.IsValidDateTime(r.StartTime)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be a valid ISO8601 timestamp",
		})
	}

	end, endOK := validator.IsValidDateTime(r.EndTime)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be a valid ISO8601 timestamp",
		})
	}

	if startOK && endOK && !start.Before(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be before end_time",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateShiftRequest struct {
	ID             string  `json:"-"`
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	Location       *string `json:"location"`
	Notes          *string `json:"notes"`
	StartTime      *string `json:"start_time"`
	EndTime        *string `json:"end_time"`
	Status         *string `json:"status"`
	AssignedUserID *string `json:"assigned_user_id"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartTime != nil {
		if _, ok := validator.IsValidDateTime(*r.StartTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be a valid ISO8601 timestamp",
			})
		}
	}

	if r.EndTime != nil {
		if _, ok := validator.IsValidDateTime(*r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be a valid ISO8601 timestamp",
			})
		}
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, validStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of scheduled, in_progress, completed, canceled",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignShiftRequest struct {
	ShiftID string `json:"-"`
	UserID  string `json:"user_id"`
}

func (r *AssignShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ShiftFilter struct {
	RosterID       *string
	AssignedUserID *string
	StartDate      *string
	EndDate        *string
	Status         *string
	Page           int
	Limit          int
}

type ShiftResponse struct {
	ID               string    `json:"id"`
	RosterID         string    `json:"roster_id"`
	RosterTitle      *string   `json:"roster_title,omitempty"`
	Title            string    `json:"title"`
	Description      *string   `json:"description,omitempty"`
	Location         *string   `json:"location,omitempty"`
	Notes            *string   `json:"notes,omitempty"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Status           string    `json:"status"`
	AssignedUserID   *string   `json:"assigned_user_id,omitempty"`
	AssignedUserName *string   `json:"assigned_user_name,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type ListShiftResponse struct {
	Data       []ShiftResponse `json:"data"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
}
