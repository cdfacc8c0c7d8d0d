package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rosterly/rosterly-backend-go/internal/domain/attendance"
	"github.com/rosterly/rosterly-backend-go/internal/domain/auth"
	"github.com/rosterly/rosterly-backend-go/internal/domain/company"
	"github.com/rosterly/rosterly-backend-go/internal/domain/payroll"
	"github.com/rosterly/rosterly-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	payroll.PayrollRepository
	attendance.AttendanceRepository
	user.UserRepository
	company.CompanyRepository
}

func NewPayrollService(
	payrollRepository payroll.PayrollRepository,
	attendanceRepository attendance.AttendanceRepository,
	userRepository user.UserRepository,
	companyRepository company.CompanyRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		PayrollRepository:    payrollRepository,
		AttendanceRepository: attendanceRepository,
		UserRepository:       userRepository,
		CompanyRepository:    companyRepository,
	}
}

func toResponse(p payroll.Payroll) payroll.PayrollResponse {
	return payroll.PayrollResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		UserName:      p.UserName,
		UserEmail:     p.UserEmail,
		PeriodStart:   p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     p.PeriodEnd.Format("2006-01-02"),
		RegularHours:  p.RegularHours,
		OvertimeHours: p.OvertimeHours,
		HourlyRate:    p.HourlyRate,
		RegularPay:    p.RegularPay,
		OvertimePay:   p.OvertimePay,
		Bonuses:       p.Bonuses,
		Deductions:    p.Deductions,
		NetPay:        p.NetPay,
		Notes:         p.Notes,
		Status:        string(p.Status),
		ApprovedBy:    p.ApprovedBy,
		ApprovedAt:    p.ApprovedAt,
		PaidAt:        p.PaidAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// payableUser loads the worker being paid and checks rate and company
// membership.
func (s *PayrollServiceImpl) payableUser(ctx context.Context, userID string, companyID string) (user.User, error) {
	target, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by ID: %w", err)
	}
	if target.CompanyID == nil || *target.CompanyID != companyID {
		return user.User{}, user.ErrUserNotFound
	}
	if target.HourlyRate == nil {
		return user.User{}, user.ErrUserHasNoRate
	}
	return target, nil
}

// Create implements payroll.PayrollService. Pay amounts are always
// derived from the worker's stored rate and the company multiplier,
// never taken from the request.
func (s *PayrollServiceImpl) Create(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if !identity.Can(user.PermissionPayrollCreate) {
		return payroll.PayrollResponse{}, user.ErrForbidden
	}
	if identity.CompanyID == "" {
		return payroll.PayrollResponse{}, user.ErrUserHasNoCompany
	}

	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	target, err := s.payableUser(ctx, req.UserID, identity.CompanyID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	companyData, err := s.CompanyRepository.GetByID(ctx, identity.CompanyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollResponse{}, company.ErrCompanyNotFound
		}
		return payroll.PayrollResponse{}, fmt.Errorf("failed to get company by ID: %w", err)
	}

	periodStart, _ := time.Parse("2006-01-02", req.PeriodStart)
	periodEnd, _ := time.Parse("2006-01-02", req.PeriodEnd)

	bonuses := decimal.Zero
	if req.Bonuses != nil {
		bonuses = *req.Bonuses
	}
	deductions := decimal.Zero
	if req.Deductions != nil {
		deductions = *req.Deductions
	}

	breakdown := payroll.Compute(*target.HourlyRate, req.RegularHours, req.OvertimeHours, bonuses, deductions, companyData.OvertimeMultiplier)

	created, err := s.PayrollRepository.Create(ctx, payroll.Payroll{
		UserID:        req.UserID,
		CompanyID:     identity.CompanyID,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		RegularHours:  req.RegularHours,
		OvertimeHours: req.OvertimeHours,
		HourlyRate:    *target.HourlyRate,
		RegularPay:    breakdown.RegularPay,
		OvertimePay:   breakdown.OvertimePay,
		Bonuses:       bonuses,
		Deductions:    deductions,
		NetPay:        breakdown.NetPay,
		Notes:         req.Notes,
		Status:        payroll.StatusDraft,
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return toResponse(created), nil
}

// Generate implements payroll.PayrollService. Hours come from approved
// attendance whose clock-in falls inside the period; the split against
// the weekly threshold treats the threshold as a flat figure for the
// whole period.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if !identity.Can(user.PermissionPayrollGenerate) {
		return payroll.PayrollResponse{}, user.ErrForbidden
	}
	if identity.CompanyID == "" {
		return payroll.PayrollResponse{}, user.ErrUserHasNoCompany
	}

	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	target, err := s.payableUser(ctx, req.UserID, identity.CompanyID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	companyData, err := s.CompanyRepository.GetByID(ctx, identity.CompanyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollResponse{}, company.ErrCompanyNotFound
		}
		return payroll.PayrollResponse{}, fmt.Errorf("failed to get company by ID: %w", err)
	}

	periodStart, _ := time.Parse("2006-01-02", req.PeriodStart)
	periodEnd, _ := time.Parse("2006-01-02", req.PeriodEnd)

	totalHours, err := s.AttendanceRepository.SumApprovedHours(ctx, req.UserID, periodStart, periodEnd)
	if err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("failed to sum approved hours: %w", err)
	}

	regularHours, overtimeHours := payroll.SplitHours(totalHours, companyData.WeeklyHoursThreshold)
	breakdown := payroll.Compute(*target.HourlyRate, regularHours, overtimeHours, decimal.Zero, decimal.Zero, companyData.OvertimeMultiplier)

	created, err := s.PayrollRepository.Create(ctx, payroll.Payroll{
		UserID:        req.UserID,
		CompanyID:     identity.CompanyID,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		RegularHours:  regularHours,
		OvertimeHours: overtimeHours,
		HourlyRate:    *target.HourlyRate,
		RegularPay:    breakdown.RegularPay,
		OvertimePay:   breakdown.OvertimePay,
		Bonuses:       decimal.Zero,
		Deductions:    decimal.Zero,
		NetPay:        breakdown.NetPay,
		Status:        payroll.StatusPendingApproval,
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return toResponse(created), nil
}

// GetByID implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetByID(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if identity.CompanyID == "" {
		return payroll.PayrollResponse{}, user.ErrUserHasNoCompany
	}

	found, err := s.PayrollRepository.GetByID(ctx, id, identity.CompanyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollResponse{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollResponse{}, fmt.Errorf("failed to get payroll by ID: %w", err)
	}

	if !identity.Can(user.PermissionPayrollViewAll) && found.UserID != identity.UserID {
		return payroll.PayrollResponse{}, payroll.ErrPayrollAccessDenied
	}

	return toResponse(found), nil
}

// List implements payroll.PayrollService.
func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}
	if identity.CompanyID == "" {
		return payroll.ListPayrollResponse{}, user.ErrUserHasNoCompany
	}

	if !identity.Can(user.PermissionPayrollViewAll) {
		userID := identity.UserID
		filter.UserID = &userID
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := s.PayrollRepository.List(ctx, identity.CompanyID, filter)
	if err != nil {
		return payroll.ListPayrollResponse{}, fmt.Errorf("failed to list payroll records: %w", err)
	}

	responses := make([]payroll.PayrollResponse, 0, len(records))
	for _, p := range records {
		responses = append(responses, toResponse(p))
	}

	return payroll.ListPayrollResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Update implements payroll.PayrollService. Pay-affecting fields trigger
// a recompute from the stored hourly rate and the company multiplier.
// Paid records only accept note edits; an edited approved record drops
// back to pending approval. A status change to approved or paid stamps
// the same fields the dedicated transitions do.
func (s *PayrollServiceImpl) Update(ctx context.Context, req payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if !identity.Can(user.PermissionPayrollUpdate) {
		return payroll.PayrollResponse{}, user.ErrForbidden
	}
	if identity.CompanyID == "" {
		return payroll.PayrollResponse{}, user.ErrUserHasNoCompany
	}

	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	existing, err := s.PayrollRepository.GetByID(ctx, req.ID, identity.CompanyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollResponse{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollResponse{}, fmt.Errorf("failed to get payroll by ID: %w", err)
	}

	if existing.Status == payroll.StatusPaid && (req.HasPayChanges() || req.Status != nil) {
		return payroll.PayrollResponse{}, payroll.ErrPayrollAlreadyPaid
	}

	if req.RegularHours != nil {
		existing.RegularHours = *req.RegularHours
	}
	if req.OvertimeHours != nil {
		existing.OvertimeHours = *req.OvertimeHours
	}
	if req.Bonuses != nil {
		existing.Bonuses = *req.Bonuses
	}
	if req.Deductions != nil {
		existing.Deductions = *req.Deductions
	}
	if req.Notes != nil {
		existing.Notes = req.Notes
	}

	if req.HasPayChanges() {
		companyData, err := s.CompanyRepository.GetByID(ctx, identity.CompanyID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return payroll.PayrollResponse{}, company.ErrCompanyNotFound
			}
			return payroll.PayrollResponse{}, fmt.Errorf("failed to get company by ID: %w", err)
		}

		breakdown := payroll.Compute(existing.HourlyRate, existing.RegularHours, existing.OvertimeHours, existing.Bonuses, existing.Deductions, companyData.OvertimeMultiplier)
		existing.RegularPay = breakdown.RegularPay
		existing.OvertimePay = breakdown.OvertimePay
		existing.NetPay = breakdown.NetPay

		// An approved record whose figures change needs a fresh
		// approval.
		if existing.Status == payroll.StatusApproved {
			existing.Status = payroll.StatusPendingApproval
			existing.ApprovedBy = nil
			existing.ApprovedAt = nil
		}
	}

	if req.Status != nil {
		existing.Status = payroll.Status(*req.Status)
		switch existing.Status {
		case payroll.StatusApproved:
			now := time.Now().UTC()
			approverID := identity.UserID
			existing.ApprovedBy = &approverID
			existing.ApprovedAt = &now
		case payroll.StatusPaid:
			if existing.PaidAt == nil {
				now := time.Now().UTC()
				existing.PaidAt = &now
			}
		}
	}

	updated, err := s.PayrollRepository.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollResponse{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollResponse{}, fmt.Errorf("failed to update payroll: %w", err)
	}

	return toResponse(updated), nil
}

// Approve implements payroll.PayrollService. Draft and pending records
// move to approved; paid is terminal.
func (s *PayrollServiceImpl) Approve(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if !identity.Can(user.PermissionPayrollApprove) {
		return payroll.PayrollResponse{}, user.ErrForbidden
	}
	if identity.CompanyID == "" {
		return payroll.PayrollResponse{}, user.ErrUserHasNoCompany
	}

	existing, err := s.PayrollRepository.GetByID(ctx, id, identity.CompanyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollResponse{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollResponse{}, fmt.Errorf("failed to get payroll by ID: %w", err)
	}

	switch existing.Status {
	case payroll.StatusDraft, payroll.StatusPendingApproval:
	case payroll.StatusPaid:
		return payroll.PayrollResponse{}, payroll.ErrPayrollAlreadyPaid
	default:
		return payroll.PayrollResponse{}, payroll.ErrInvalidStatus
	}

	now := time.Now().UTC()
	approverID := identity.UserID
	existing.Status = payroll.StatusApproved
	existing.ApprovedBy = &approverID
	existing.ApprovedAt = &now

	updated, err := s.PayrollRepository.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollResponse{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollResponse{}, fmt.Errorf("failed to update payroll: %w", err)
	}

	return toResponse(updated), nil
}

// Delete implements payroll.PayrollService.
func (s *PayrollServiceImpl) Delete(ctx context.Context, id string) error {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return err
	}
	if !identity.Can(user.PermissionPayrollDelete) {
		return user.ErrForbidden
	}
	if identity.CompanyID == "" {
		return user.ErrUserHasNoCompany
	}

	existing, err := s.PayrollRepository.GetByID(ctx, id, identity.CompanyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ErrPayrollNotFound
		}
		return fmt.Errorf("failed to get payroll by ID: %w", err)
	}

	if existing.Status == payroll.StatusPaid {
		return payroll.ErrCannotDeletePaid
	}

	if err := s.PayrollRepository.Delete(ctx, id, identity.CompanyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ErrPayrollNotFound
		}
		return fmt.Errorf("failed to delete payroll: %w", err)
	}

	return nil
}
