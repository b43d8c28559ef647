package usecase

import (
	"context"
	"fmt"
	"time"

	"attendance/domain"
)

type submissionUseCase struct {
	events  domain.AttendanceRepo
	TimeOut time.Duration
}

func NewSubmissionUseCase(events domain.AttendanceRepo, to time.Duration) domain.SubmissionUseCase {
	return &submissionUseCase{
		events:  events,
		TimeOut: to,
	}
}

// parseEventDate accepts a full timestamp or a bare calendar day; any
// time-of-day or offset noise is dropped by normalization afterwards.
func parseEventDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// Submit validates the payload, normalizes the date and branches on the
// actor's role: admins create the record directly, users file a pending
// request. Exactly one row in exactly one table, never both.
func (su *submissionUseCase) Submit(ctx context.Context, actor *domain.User, payload *domain.EventPayload) (*domain.SubmissionResult, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}

	eventType, err := domain.ParseStatus(payload.EventType)
	if err != nil {
		return nil, err
	}

	parsed, err := parseEventDate(payload.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", payload.Date, domain.ErrInvalidInput)
	}
	day := domain.NormalizeDate(parsed)

	ctx, cancel := context.WithTimeout(ctx, su.TimeOut)
	defer cancel()

	switch actor.Role {
	case domain.RoleAdmin:
		rec := &domain.AttendanceRecord{
			UserID: actor.UserID,
			Date:   day,
			Status: eventType,
		}
		if err := su.events.CreateRecord(ctx, rec); err != nil {
			return nil, err
		}
		return &domain.SubmissionResult{Kind: "record", Record: rec}, nil

	case domain.RoleUser:
		req := &domain.AttendanceRequest{
			StudentID:          actor.UserID,
			RequestedDate:      day,
			RequestedEventType: eventType,
			Reason:             payload.Reason,
		}
		if err := su.events.CreateRequest(ctx, req); err != nil {
			return nil, err
		}
		return &domain.SubmissionResult{Kind: "request", Request: req}, nil
	}

	// Unreachable while Role stays a closed enum.
	return nil, fmt.Errorf("invalid user role %q: %w", actor.Role, domain.ErrInvalidInput)
}
