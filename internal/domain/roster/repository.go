package roster

import "context"

// RosterRepository defines data access methods for rosters.
// All methods include companyID to prevent cross-company data access.
type RosterRepository interface {
	Create(ctx context.Context, roster Roster) (Roster, error)
	GetByID(ctx context.Context, id string, companyID string) (Roster, error)
	List(ctx context.Context, companyID string, filter RosterFilter) ([]Roster, int64, error)
	Update(ctx context.Context, roster Roster) (Roster, error)
	// MarkPublished flips is_published only when it is still false so a
	// duplicate publish loses the race at the database, not after it.
	MarkPublished(ctx context.Context, id string, companyID string) (Roster, error)
	Delete(ctx context.Context, id string, companyID string) error
}

type RosterService interface {
	Create(ctx context.Context, req CreateRosterRequest) (RosterResponse, error)
	GetByID(ctx context.Context, id string) (RosterResponse, error)
	List(ctx context.Context, filter RosterFilter) (ListRosterResponse, error)
	Update(ctx context.Context, req UpdateRosterRequest) (RosterResponse, error)
	Publish(ctx context.Context, id string) (RosterResponse, error)
	Delete(ctx context.Context, id string) error
}
