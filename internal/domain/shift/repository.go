package shift

import "context"

// ShiftRepository defines data access methods for shifts.
type ShiftRepository interface {
	Create(ctx context.Context, shift Shift) (Shift, error)
	GetByID(ctx context.Context, id string, companyID string) (Shift, error)
	List(ctx context.Context, companyID string, filter ShiftFilter) ([]Shift, int64, error)
	// ListActiveByAssignee returns every non-canceled shift assigned to
	// userID, used for conflict detection. Runs inside the caller's
	// transaction when one is present on the context.
	ListActiveByAssignee(ctx context.Context, userID string) ([]Shift, error)
	Update(ctx context.Context, shift Shift) (Shift, error)
	Delete(ctx context.Context, id string, companyID string) error
}

type ShiftService interface {
	Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	GetByID(ctx context.Context, id string) (ShiftResponse, error)
	List(ctx context.Context, filter ShiftFilter) (ListShiftResponse, error)
	Update(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
	Assign(ctx context.Context, req AssignShiftRequest) (ShiftResponse, error)
	Delete(ctx context.Context, id string) error
}
