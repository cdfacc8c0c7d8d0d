package roster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rosterly/rosterly-backend-go/internal/domain/auth"
	"github.com/rosterly/rosterly-backend-go/internal/domain/roster"
	"github.com/rosterly/rosterly-backend-go/internal/domain/user"
)

type RosterServiceImpl struct {
	roster.RosterRepository
}

func NewRosterService(rosterRepository roster.RosterRepository) roster.RosterService {
	return &RosterServiceImpl{
		RosterRepository: rosterRepository,
	}
}

func toResponse(r roster.Roster) roster.RosterResponse {
	return roster.RosterResponse{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		IsPublished: r.IsPublished,
		CompanyID:   r.CompanyID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// Create implements roster.RosterService.
func (s *RosterServiceImpl) Create(ctx context.Context, req roster.CreateRosterRequest) (roster.RosterResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return roster.RosterResponse{}, err
	}
	if !identity.Can(user.PermissionRosterManage) {
		return roster.RosterResponse{}, user.ErrForbidden
	}
	if identity.CompanyID == "" {
		return roster.RosterResponse{}, user.ErrUserHasNoCompany
	}

	if err := req.Validate(); err != nil {
		return roster.RosterResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	created, err := s.RosterRepository.Create(ctx, roster.Roster{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		IsPublished: false,
		CompanyID:   identity.CompanyID,
	})
	if err != nil {
		return roster.RosterResponse{}, fmt.Errorf("failed to create roster: %w", err)
	}

	return toResponse(created), nil
}

// GetByID implements roster.RosterService.
func (s *RosterServiceImpl) GetByID(ctx context.Context, id string) (roster.RosterResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return roster.RosterResponse{}, err
	}
	if identity.CompanyID == "" {
		return roster.RosterResponse{}, user.ErrUserHasNoCompany
	}

	found, err := s.RosterRepository.GetByID(ctx, id, identity.CompanyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roster.RosterResponse{}, roster.ErrRosterNotFound
		}
		return roster.RosterResponse{}, fmt.Errorf("failed to get roster by ID: %w", err)
	}

	return toResponse(found), nil
}

// List implements roster.RosterService.
func (s *RosterServiceImpl) List(ctx context.Context, filter roster.RosterFilter) (roster.ListRosterResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return roster.ListRosterResponse{}, err
	}
	if identity.CompanyID == "" {
		return roster.ListRosterResponse{}, user.ErrUserHasNoCompany
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	rosters, total, err := s.RosterRepository.List(ctx, identity.CompanyID, filter)
	if err != nil {
		return roster.ListRosterResponse{}, fmt.Errorf("failed to list rosters: %w", err)
	}

	responses := make([]roster.RosterResponse, 0, len(rosters))
	for _, r := range rosters {
		responses = append(responses, toResponse(r))
	}

	return roster.ListRosterResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Update implements roster.RosterService. The resulting date range is
// re-validated after partial updates are applied.
func (s *RosterServiceImpl) Update(ctx context.Context, req roster.UpdateRosterRequest) (roster.RosterResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return roster.RosterResponse{}, err
	}
	if !identity.Can(user.PermissionRosterManage) {
		return roster.RosterResponse{}, user.ErrForbidden
	}
	if identity.CompanyID == "" {
		return roster.RosterResponse{}, user.ErrUserHasNoCompany
	}

	if err := req.Validate(); err != nil {
		return roster.RosterResponse{}, err
	}

	existing, err := s.RosterRepository.GetByID(ctx, req.ID, identity.CompanyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roster.RosterResponse{}, roster.ErrRosterNotFound
		}
		return roster.RosterResponse{}, fmt.Errorf("failed to get roster by ID: %w", err)
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	if req.StartDate != nil {
		startDate, _ := time.Parse("2006-01-02", *req.StartDate)
		existing.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, _ := time.Parse("2006-01-02", *req.EndDate)
		existing.EndDate = endDate
	}

	if !existing.StartDate.Before(existing.EndDate) {
		return roster.RosterResponse{}, roster.ErrInvalidDateRange
	}

	updated, err := s.RosterRepository.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roster.RosterResponse{}, roster.ErrRosterNotFound
		}
		return roster.RosterResponse{}, fmt.Errorf("failed to update roster: %w", err)
	}

	return toResponse(updated), nil
}

// Publish implements roster.RosterService. Publication is one-way; a
// second publish fails without touching the row.
func (s *RosterServiceImpl) Publish(ctx context.Context, id string) (roster.RosterResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return roster.RosterResponse{}, err
	}
	if !identity.Can(user.PermissionRosterPublish) {
		return roster.RosterResponse{}, user.ErrForbidden
	}
	if identity.CompanyID == "" {
		return roster.RosterResponse{}, user.ErrUserHasNoCompany
	}

	existing, err := s.RosterRepository.GetByID(ctx, id, identity.CompanyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roster.RosterResponse{}, roster.ErrRosterNotFound
		}
		return roster.RosterResponse{}, fmt.Errorf("failed to get roster by ID: %w", err)
	}

	if existing.IsPublished {
		return roster.RosterResponse{}, roster.ErrRosterAlreadyPublished
	}

	published, err := s.RosterRepository.MarkPublished(ctx, id, identity.CompanyID)
	if err != nil {
		// A concurrent publish can win between the read above and the
		// guarded update; the row is then already published.
		if errors.Is(err, pgx.ErrNoRows) {
			return roster.RosterResponse{}, roster.ErrRosterAlreadyPublished
		}
		return roster.RosterResponse{}, fmt.Errorf("failed to publish roster: %w", err)
	}

	return toResponse(published), nil
}

// Delete implements roster.RosterService.
func (s *RosterServiceImpl) Delete(ctx context.Context, id string) error {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return err
	}
	if !identity.Can(user.PermissionRosterManage) {
		return user.ErrForbidden
	}
	if identity.CompanyID == "" {
		return user.ErrUserHasNoCompany
	}

	if err := s.RosterRepository.Delete(ctx, id, identity.CompanyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roster.ErrRosterNotFound
		}
		return fmt.Errorf("failed to delete roster: %w", err)
	}

	return nil
}
