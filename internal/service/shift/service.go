package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rosterly/rosterly-backend-go/internal/domain/auth"
	"github.com/rosterly/rosterly-backend-go/internal/domain/roster"
	"github.com/rosterly/rosterly-backend-go/internal/domain/shift"
	"github.com/rosterly/rosterly-backend-go/internal/domain/user"
	"github.com/rosterly/rosterly-backend-go/internal/pkg/database"
	"github.com/rosterly/rosterly-backend-go/internal/repository/postgresql"
)

type ShiftServiceImpl struct {
	db *database.DB
	shift.ShiftRepository
	roster.RosterRepository
	user.UserRepository
}

func NewShiftService(
	db *database.DB,
	shiftRepository shift.ShiftRepository,
	rosterRepository roster.RosterRepository,
	userRepository user.UserRepository,
) shift.ShiftService {
	return &ShiftServiceImpl{
		db:               db,
		ShiftRepository:  shiftRepository,
		RosterRepository: rosterRepository,
		UserRepository:   userRepository,
	}
}

func toResponse(s shift.Shift) shift.ShiftResponse {
	return shift.ShiftResponse{
		ID:               s.ID,
		RosterID:         s.RosterID,
		RosterTitle:      s.RosterTitle,
		Title:            s.Title,
		Description:      s.Description,
		Location:         s.Location,
		Notes:            s.Notes,
		StartTime:        s.StartTime,
		EndTime:          s.EndTime,
		Status:           string(s.Status),
		AssignedUserID:   s.AssignedUserID,
		AssignedUserName: s.AssignedUserName,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// validateAssignee checks that the user exists, is active and belongs to
// the caller's company.
func (s *ShiftServiceImpl) validateAssignee(ctx context.Context, userID string, companyID string) error {
	assignee, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ErrAssigneeNotFound
		}
		return fmt.Errorf("failed to get user by ID: %w", err)
	}
	if !assignee.IsActive {
		return user.ErrUserInactive
	}
	if assignee.CompanyID == nil || *assignee.CompanyID != companyID {
		return shift.ErrAssigneeWrongOrg
	}
	return nil
}

// checkConflict looks for an overlapping non-canceled shift of the same
// assignee. It must run on the transaction's querier so the check and the
// subsequent write commit atomically.
func (s *ShiftServiceImpl) checkConflict(ctx context.Context, userID string, candidate shift.Interval, excludeID string) error {
	existing, err := s.ShiftRepository.ListActiveByAssignee(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list shifts by assignee: %w", err)
	}
	if conflict := shift.FindConflict(candidate, existing, excludeID); conflict != nil {
		return shift.ErrShiftConflict
	}
	return nil
}

// Create implements shift.ShiftService.
func (s *ShiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if !identity.Can(user.PermissionShiftManage) {
		return shift.ShiftResponse{}, user.ErrForbidden
	}
	if identity.CompanyID == "" {
		return shift.ShiftResponse{}, user.ErrUserHasNoCompany
	}

	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	startTime, _ := time.Parse(time.RFC3339, req.StartTime)
	endTime, _ := time.Parse(time.RFC3339, req.EndTime)

	if _, err := s.RosterRepository.GetByID(ctx, req.RosterID, identity.CompanyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftResponse{}, roster.ErrRosterNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get roster by ID: %w", err)
	}

	if req.AssignedUserID != nil {
		if err := s.validateAssignee(ctx, *req.AssignedUserID, identity.CompanyID); err != nil {
			return shift.ShiftResponse{}, err
		}
	}

	newShift := shift.Shift{
		RosterID:       req.RosterID,
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		Notes:          req.Notes,
		StartTime:      startTime,
		EndTime:        endTime,
		Status:         shift.StatusScheduled,
		AssignedUserID: req.AssignedUserID,
	}

	var created shift.Shift
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if newShift.AssignedUserID != nil {
			candidate := shift.Interval{Start: startTime, End: endTime}
			if err := s.checkConflict(txCtx, *newShift.AssignedUserID, candidate, ""); err != nil {
				return err
			}
		}

		created, err = s.ShiftRepository.Create(txCtx, newShift)
		if err != nil {
			return fmt.Errorf("failed to create shift: %w", err)
		}
		return nil
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return toResponse(created), nil
}

// GetByID implements shift.ShiftService.
func (s *ShiftServiceImpl) GetByID(ctx context.Context, id string) (shift.ShiftResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if identity.CompanyID == "" {
		return shift.ShiftResponse{}, user.ErrUserHasNoCompany
	}

	found, err := s.ShiftRepository.GetByID(ctx, id, identity.CompanyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftResponse{}, shift.ErrShiftNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get shift by ID: %w", err)
	}

	if !identity.Can(user.PermissionShiftViewAll) {
		if found.AssignedUserID == nil || *found.AssignedUserID != identity.UserID {
			return shift.ShiftResponse{}, shift.ErrShiftAccessDenied
		}
	}

	return toResponse(found), nil
}

// List implements shift.ShiftService. Callers without the view-all
// permission only ever see their own shifts, whatever filter they send.
func (s *ShiftServiceImpl) List(ctx context.Context, filter shift.ShiftFilter) (shift.ListShiftResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return shift.ListShiftResponse{}, err
	}
	if identity.CompanyID == "" {
		return shift.ListShiftResponse{}, user.ErrUserHasNoCompany
	}

	if !identity.Can(user.PermissionShiftViewAll) {
		userID := identity.UserID
		filter.AssignedUserID = &userID
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	shifts, total, err := s.ShiftRepository.List(ctx, identity.CompanyID, filter)
	if err != nil {
		return shift.ListShiftResponse{}, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, toResponse(sh))
	}

	return shift.ListShiftResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Update implements shift.ShiftService. Changing the time window or the
// assignee re-runs the conflict check inside the same transaction as the
// write.
func (s *ShiftServiceImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if !identity.Can(user.PermissionShiftManage) {
		return shift.ShiftResponse{}, user.ErrForbidden
	}
	if identity.CompanyID == "" {
		return shift.ShiftResponse{}, user.ErrUserHasNoCompany
	}

	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	existing, err := s.ShiftRepository.GetByID(ctx, req.ID, identity.CompanyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftResponse{}, shift.ErrShiftNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get shift by ID: %w", err)
	}

	timeChanged := false
	assigneeChanged := false

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	if req.Location != nil {
		existing.Location = req.Location
	}
	if req.Notes != nil {
		existing.Notes = req.Notes
	}
	if req.StartTime != nil {
		startTime, _ := time.Parse(time.RFC3339, *req.StartTime)
		existing.StartTime = startTime
		timeChanged = true
	}
	if req.EndTime != nil {
		endTime, _ := time.Parse(time.RFC3339, *req.EndTime)
		existing.EndTime = endTime
		timeChanged = true
	}
	if req.Status != nil {
		existing.Status = shift.Status(*req.Status)
	}
	if req.AssignedUserID != nil {
		existing.AssignedUserID = req.AssignedUserID
		assigneeChanged = true
	}

	if !existing.StartTime.Before(existing.EndTime) {
		return shift.ShiftResponse{}, shift.ErrInvalidTimeRange
	}

	if assigneeChanged {
		if err := s.validateAssignee(ctx, *existing.AssignedUserID, identity.CompanyID); err != nil {
			return shift.ShiftResponse{}, err
		}
	}

	var updated shift.Shift
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		needsCheck := (timeChanged || assigneeChanged) &&
			existing.AssignedUserID != nil && existing.Status != shift.StatusCanceled
		if needsCheck {
			candidate := shift.Interval{Start: existing.StartTime, End: existing.EndTime}
			if err := s.checkConflict(txCtx, *existing.AssignedUserID, candidate, existing.ID); err != nil {
				return err
			}
		}

		updated, err = s.ShiftRepository.Update(txCtx, existing)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return shift.ErrShiftNotFound
			}
			return fmt.Errorf("failed to update shift: %w", err)
		}
		return nil
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return toResponse(updated), nil
}

// Assign implements shift.ShiftService.
func (s *ShiftServiceImpl) Assign(ctx context.Context, req shift.AssignShiftRequest) (shift.ShiftResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if !identity.Can(user.PermissionShiftAssign) {
		return shift.ShiftResponse{}, user.ErrForbidden
	}
	if identity.CompanyID == "" {
		return shift.ShiftResponse{}, user.ErrUserHasNoCompany
	}

	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	existing, err := s.ShiftRepository.GetByID(ctx, req.ShiftID, identity.CompanyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftResponse{}, shift.ErrShiftNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get shift by ID: %w", err)
	}

	if err := s.validateAssignee(ctx, req.UserID, identity.CompanyID); err != nil {
		return shift.ShiftResponse{}, err
	}

	existing.AssignedUserID = &req.UserID

	var updated shift.Shift
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		candidate := shift.Interval{Start: existing.StartTime, End: existing.EndTime}
		if err := s.checkConflict(txCtx, req.UserID, candidate, existing.ID); err != nil {
			return err
		}

		updated, err = s.ShiftRepository.Update(txCtx, existing)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return shift.ErrShiftNotFound
			}
			return fmt.Errorf("failed to update shift: %w", err)
		}
		return nil
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return toResponse(updated), nil
}

// Delete implements shift.ShiftService.
func (s *ShiftServiceImpl) Delete(ctx context.Context, id string) error {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return err
	}
	if !identity.Can(user.PermissionShiftManage) {
		return user.ErrForbidden
	}
	if identity.CompanyID == "" {
		return user.ErrUserHasNoCompany
	}

	if err := s.ShiftRepository.Delete(ctx, id, identity.CompanyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to delete shift: %w", err)
	}

	return nil
}
