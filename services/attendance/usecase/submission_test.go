package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"attendance/domain"
)

func TestSubmitAdminCreatesRecord(t *testing.T) {
	repo := &fakeEventRepo{}
	uc := NewSubmissionUseCase(repo, time.Second)

	result, err := uc.Submit(context.Background(), admin(), &domain.EventPayload{
		Date:      "2026-02-03T15:04:05+07:00",
		EventType: "LATE",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Kind != "record" {
		t.Errorf("expected kind record, got %s", result.Kind)
	}
	if result.Record == nil || result.Request != nil {
		t.Fatal("admin submission should carry a record and no request")
	}
	if result.Record.Status != domain.StatusLate {
		t.Errorf("expected status LATE, got %s", result.Record.Status)
	}

	want := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	if !result.Record.Date.Equal(want) {
		t.Errorf("expected normalized date %v, got %v", want, result.Record.Date)
	}
	if len(repo.records) != 1 || len(repo.requests) != 0 {
		t.Errorf("expected exactly one record and no requests, got %d/%d",
			len(repo.records), len(repo.requests))
	}
}

func TestSubmitUserCreatesPendingRequest(t *testing.T) {
	repo := &fakeEventRepo{}
	uc := NewSubmissionUseCase(repo, time.Second)

	result, err := uc.Submit(context.Background(), student(), &domain.EventPayload{
		Date:      "2026-02-04",
		EventType: "ON_LEAVE",
		Reason:    "doctor appointment",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Kind != "request" {
		t.Errorf("expected kind request, got %s", result.Kind)
	}
	if result.Request == nil || result.Record != nil {
		t.Fatal("user submission should carry a request and no record")
	}
	if result.Request.Status != domain.RequestPending {
		t.Errorf("expected status PENDING, got %s", result.Request.Status)
	}
	if result.Request.RequestedEventType != domain.StatusOnLeave {
		t.Errorf("expected event type ON_LEAVE, got %s", result.Request.RequestedEventType)
	}
	if result.Request.Reason != "doctor appointment" {
		t.Errorf("unexpected reason %q", result.Request.Reason)
	}
	if len(repo.requests) != 1 || len(repo.records) != 0 {
		t.Errorf("expected exactly one request and no records, got %d/%d",
			len(repo.requests), len(repo.records))
	}
}

func TestSubmitInvalidEventType(t *testing.T) {
	repo := &fakeEventRepo{}
	uc := NewSubmissionUseCase(repo, time.Second)

	_, err := uc.Submit(context.Background(), student(), &domain.EventPayload{
		Date:      "2026-02-04",
		EventType: "PRESENT",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(repo.records)+len(repo.requests) != 0 {
		t.Error("no row should be created for an invalid event type")
	}
}

func TestSubmitInvalidDate(t *testing.T) {
	uc := NewSubmissionUseCase(&fakeEventRepo{}, time.Second)

	_, err := uc.Submit(context.Background(), admin(), &domain.EventPayload{
		Date:      "03/02/2026",
		EventType: "ON_TIME",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSubmitUnauthenticated(t *testing.T) {
	repo := &fakeEventRepo{}
	uc := NewSubmissionUseCase(repo, time.Second)

	_, err := uc.Submit(context.Background(), nil, &domain.EventPayload{
		Date:      "2026-02-04",
		EventType: "ON_TIME",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if len(repo.records)+len(repo.requests) != 0 {
		t.Error("no row should be created for an unauthenticated caller")
	}
}

func TestSubmitDuplicateDayConflicts(t *testing.T) {
	repo := &fakeEventRepo{}
	uc := NewSubmissionUseCase(repo, time.Second)

	payload := &domain.EventPayload{Date: "2026-02-04", EventType: "ON_TIME"}

	if _, err := uc.Submit(context.Background(), admin(), payload); err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	// Same day at a different time-of-day still normalizes to the same row.
	_, err := uc.Submit(context.Background(), admin(), &domain.EventPayload{
		Date:      "2026-02-04T23:59:00Z",
		EventType: "LATE",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(repo.records) != 1 {
		t.Errorf("expected exactly one record, got %d", len(repo.records))
	}
}

func TestSubmitDuplicatePendingRequestConflicts(t *testing.T) {
	repo := &fakeEventRepo{}
	uc := NewSubmissionUseCase(repo, time.Second)

	payload := &domain.EventPayload{Date: "2026-02-05", EventType: "ABSENT"}

	if _, err := uc.Submit(context.Background(), student(), payload); err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	_, err := uc.Submit(context.Background(), student(), payload)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(repo.requests) != 1 {
		t.Errorf("expected exactly one request, got %d", len(repo.requests))
	}
}
