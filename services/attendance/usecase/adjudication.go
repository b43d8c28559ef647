package usecase

import (
	"context"
	"fmt"
	"time"

	"attendance/domain"
)

type adjudicationUseCase struct {
	events  domain.AttendanceRepo
	TimeOut time.Duration
}

func NewAdjudicationUseCase(events domain.AttendanceRepo, to time.Duration) domain.AdjudicationUseCase {
	return &adjudicationUseCase{
		events:  events,
		TimeOut: to,
	}
}

func (au *adjudicationUseCase) gate(actor *domain.User, requestID int) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}
	if actor.Role != domain.RoleAdmin {
		return fmt.Errorf("role %s may not adjudicate requests: %w", actor.Role, domain.ErrForbidden)
	}
	if requestID <= 0 {
		return fmt.Errorf("request id is required: %w", domain.ErrInvalidInput)
	}
	return nil
}

// Approve consumes the pending request and finalizes the attendance record.
// The repository runs both as one transaction; a repeated call against an
// already-consumed id comes back as not found.
func (au *adjudicationUseCase) Approve(ctx context.Context, actor *domain.User, requestID int) (*domain.AttendanceRequest, error) {
	if err := au.gate(actor, requestID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	return au.events.ApproveRequest(ctx, requestID)
}

// Reject consumes the pending request; no record is created.
func (au *adjudicationUseCase) Reject(ctx context.Context, actor *domain.User, requestID int) (*domain.AttendanceRequest, error) {
	if err := au.gate(actor, requestID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	return au.events.RejectRequest(ctx, requestID)
}

func (au *adjudicationUseCase) GetAllPending(ctx context.Context, actor *domain.User) (*[]domain.AttendanceRequest, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("role %s may not list requests: %w", actor.Role, domain.ErrForbidden)
	}

	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	return au.events.GetAllPendingRequests(ctx)
}
