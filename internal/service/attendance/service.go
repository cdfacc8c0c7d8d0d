package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rosterly/rosterly-backend-go/internal/domain/attendance"
	"github.com/rosterly/rosterly-backend-go/internal/domain/auth"
	"github.com/rosterly/rosterly-backend-go/internal/domain/shift"
	"github.com/rosterly/rosterly-backend-go/internal/domain/user"
	"github.com/rosterly/rosterly-backend-go/internal/pkg/database"
	"github.com/rosterly/rosterly-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	shift.ShiftRepository
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepository attendance.AttendanceRepository,
	shiftRepository shift.ShiftRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepository,
		ShiftRepository:      shiftRepository,
	}
}

func toResponse(a attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:            a.ID,
		ShiftID:       a.ShiftID,
		ShiftTitle:    a.ShiftTitle,
		UserID:        a.UserID,
		UserName:      a.UserName,
		ClockIn:       a.ClockIn,
		ClockOut:      a.ClockOut,
		BreakDuration: a.BreakDuration,
		TotalHours:    a.TotalHours,
		Notes:         a.Notes,
		Status:        string(a.Status),
		ApprovedBy:    a.ApprovedBy,
		ApprovedAt:    a.ApprovedAt,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// getScoped fetches an attendance record and verifies its shift belongs
// to the caller's company.
func (s *AttendanceServiceImpl) getScoped(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	att, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	if _, err := s.ShiftRepository.GetByID(ctx, att.ShiftID, companyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get shift by ID: %w", err)
	}

	return att, nil
}

// ClockIn implements attendance.AttendanceService. The one-record-per-
// shift rule is pre-checked and backed by the UNIQUE constraint on
// shift_id, so two concurrent clock-ins for the same shift cannot both
// commit.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !identity.Can(user.PermissionAttendanceCreate) {
		return attendance.AttendanceResponse{}, user.ErrForbidden
	}
	if identity.CompanyID == "" {
		return attendance.AttendanceResponse{}, user.ErrUserHasNoCompany
	}

	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// Workers clock in for themselves; creating a record for someone
	// else needs approval authority.
	if req.UserID != identity.UserID && !identity.Can(user.PermissionAttendanceApprove) {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceAccessDenied
	}

	if _, err := s.ShiftRepository.GetByID(ctx, req.ShiftID, identity.CompanyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceResponse{}, shift.ErrShiftNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get shift by ID: %w", err)
	}

	clockIn, _ := time.Parse(time.RFC3339, req.ClockIn)

	breakDuration := decimal.Zero
	if req.BreakDuration != nil {
		breakDuration = *req.BreakDuration
	}

	newAtt := attendance.Attendance{
		ShiftID:       req.ShiftID,
		UserID:        req.UserID,
		ClockIn:       clockIn,
		BreakDuration: breakDuration,
		Notes:         req.Notes,
		Status:        attendance.StatusPending,
	}

	if req.ClockOut != nil {
		clockOut, _ := time.Parse(time.RFC3339, *req.ClockOut)
		newAtt.ClockOut = &clockOut
		totalHours := attendance.ComputeTotalHours(clockIn, clockOut, breakDuration)
		newAtt.TotalHours = &totalHours
	}

	var created attendance.Attendance
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		_, err := s.AttendanceRepository.GetByShiftID(txCtx, req.ShiftID)
		if err == nil {
			return attendance.ErrAttendanceExists
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to get attendance by shift ID: %w", err)
		}

		created, err = s.AttendanceRepository.Create(txCtx, newAtt)
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(created), nil
}

// GetByID implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetByID(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if identity.CompanyID == "" {
		return attendance.AttendanceResponse{}, user.ErrUserHasNoCompany
	}

	att, err := s.getScoped(ctx, id, identity.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if !identity.Can(user.PermissionAttendanceViewAll) && att.UserID != identity.UserID {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceAccessDenied
	}

	return toResponse(att), nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if identity.CompanyID == "" {
		return attendance.ListAttendanceResponse{}, user.ErrUserHasNoCompany
	}

	if !identity.Can(user.PermissionAttendanceViewAll) {
		userID := identity.UserID
		filter.UserID = &userID
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := s.AttendanceRepository.List(ctx, identity.CompanyID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, a := range records {
		responses = append(responses, toResponse(a))
	}

	return attendance.ListAttendanceResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Update implements attendance.AttendanceService. Any change to the
// clock-out or the break recomputes total_hours, including a break-only
// edit against an existing clock-out. A status change to approved stamps
// the approver the same way Approve does.
func (s *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if identity.CompanyID == "" {
		return attendance.AttendanceResponse{}, user.ErrUserHasNoCompany
	}

	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := s.getScoped(ctx, req.ID, identity.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if !identity.Can(user.PermissionAttendanceViewAll) && existing.UserID != identity.UserID {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceAccessDenied
	}

	if req.Status != nil && !identity.Can(user.PermissionAttendanceApprove) {
		return attendance.AttendanceResponse{}, user.ErrForbidden
	}

	recompute := false

	if req.ClockOut != nil {
		clockOut, _ := time.Parse(time.RFC3339, *req.ClockOut)
		if !existing.ClockIn.Before(clockOut) {
			return attendance.AttendanceResponse{}, attendance.ErrClockOutBeforeClockIn
		}
		existing.ClockOut = &clockOut
		recompute = true
	}
	if req.BreakDuration != nil {
		existing.BreakDuration = *req.BreakDuration
		recompute = true
	}
	if req.Notes != nil {
		existing.Notes = req.Notes
	}
	if req.Status != nil {
		existing.Status = attendance.Status(*req.Status)
		if existing.Status == attendance.StatusApproved {
			now := time.Now().UTC()
			approverID := identity.UserID
			existing.ApprovedBy = &approverID
			existing.ApprovedAt = &now
		}
	}

	if recompute && existing.ClockOut != nil {
		totalHours := attendance.ComputeTotalHours(existing.ClockIn, *existing.ClockOut, existing.BreakDuration)
		existing.TotalHours = &totalHours
	}

	updated, err := s.AttendanceRepository.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return toResponse(updated), nil
}

// Approve implements attendance.AttendanceService. Only pending records
// move; approved and rejected ones stay where they are.
func (s *AttendanceServiceImpl) Approve(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	return s.process(ctx, id, attendance.StatusApproved)
}

// Reject implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Reject(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	return s.process(ctx, id, attendance.StatusRejected)
}

func (s *AttendanceServiceImpl) process(ctx context.Context, id string, target attendance.Status) (attendance.AttendanceResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !identity.Can(user.PermissionAttendanceApprove) {
		return attendance.AttendanceResponse{}, user.ErrForbidden
	}
	if identity.CompanyID == "" {
		return attendance.AttendanceResponse{}, user.ErrUserHasNoCompany
	}

	existing, err := s.getScoped(ctx, id, identity.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if existing.Status != attendance.StatusPending {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceAlreadyProcessed
	}

	existing.Status = target
	if target == attendance.StatusApproved {
		now := time.Now().UTC()
		approverID := identity.UserID
		existing.ApprovedBy = &approverID
		existing.ApprovedAt = &now
	}

	updated, err := s.AttendanceRepository.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return toResponse(updated), nil
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return err
	}
	if !identity.Can(user.PermissionAttendanceDelete) {
		return user.ErrForbidden
	}
	if identity.CompanyID == "" {
		return user.ErrUserHasNoCompany
	}

	if _, err := s.getScoped(ctx, id, identity.CompanyID); err != nil {
		return err
	}

	if err := s.AttendanceRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	return nil
}
