package usecase

import (
	"context"
	"fmt"
	"time"

	"attendance/domain"
)

// fakeEventRepo mimics the store's behavior closely enough for usecase
// tests: duplicate-day inserts conflict, approve is all-or-nothing.
type fakeEventRepo struct {
	records       []domain.AttendanceRecord
	requests      []domain.AttendanceRequest
	notifications []domain.Notification
	nextID        int

	failCreateRecord error
}

func (f *fakeEventRepo) id() int {
	f.nextID++
	return f.nextID
}

func (f *fakeEventRepo) hasRecord(userID int, date time.Time) bool {
	for _, rec := range f.records {
		if rec.UserID == userID && rec.Date.Equal(date) {
			return true
		}
	}
	return false
}

func (f *fakeEventRepo) CreateRecord(ctx context.Context, rec *domain.AttendanceRecord) error {
	if f.failCreateRecord != nil {
		return f.failCreateRecord
	}
	if f.hasRecord(rec.UserID, rec.Date) {
		return fmt.Errorf("there is already an existing event on %s: %w",
			rec.Date.Format("2006-01-02"), domain.ErrConflict)
	}
	rec.ID = f.id()
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeEventRepo) CreateRequest(ctx context.Context, req *domain.AttendanceRequest) error {
	for _, existing := range f.requests {
		if existing.StudentID == req.StudentID && existing.RequestedDate.Equal(req.RequestedDate) {
			return fmt.Errorf("there is already an existing request for %s: %w",
				req.RequestedDate.Format("2006-01-02"), domain.ErrConflict)
		}
	}
	req.ID = f.id()
	req.Status = domain.RequestPending
	f.requests = append(f.requests, *req)
	return nil
}

func (f *fakeEventRepo) findRequest(requestID int) (int, *domain.AttendanceRequest) {
	for i := range f.requests {
		if f.requests[i].ID == requestID {
			return i, &f.requests[i]
		}
	}
	return -1, nil
}

func (f *fakeEventRepo) ApproveRequest(ctx context.Context, requestID int) (*domain.AttendanceRequest, error) {
	i, req := f.findRequest(requestID)
	if req == nil {
		return nil, fmt.Errorf("attendance request %d: %w", requestID, domain.ErrNotFound)
	}
	if f.hasRecord(req.StudentID, req.RequestedDate) {
		// Whole transaction rolls back; the request stays pending.
		return nil, fmt.Errorf("there is already an existing event on %s: %w",
			req.RequestedDate.Format("2006-01-02"), domain.ErrConflict)
	}
	consumed := *req
	f.requests = append(f.requests[:i], f.requests[i+1:]...)
	f.records = append(f.records, domain.AttendanceRecord{
		ID:     f.id(),
		UserID: consumed.StudentID,
		Date:   consumed.RequestedDate,
		Status: consumed.RequestedEventType,
	})
	f.notifications = append(f.notifications, domain.Notification{
		ID:      f.id(),
		UserID:  consumed.StudentID,
		Message: "approved",
	})
	return &consumed, nil
}

func (f *fakeEventRepo) RejectRequest(ctx context.Context, requestID int) (*domain.AttendanceRequest, error) {
	i, req := f.findRequest(requestID)
	if req == nil {
		return nil, fmt.Errorf("attendance request %d: %w", requestID, domain.ErrNotFound)
	}
	consumed := *req
	f.requests = append(f.requests[:i], f.requests[i+1:]...)
	f.notifications = append(f.notifications, domain.Notification{
		ID:      f.id(),
		UserID:  consumed.StudentID,
		Message: "rejected",
	})
	return &consumed, nil
}

func (f *fakeEventRepo) GetAllPendingRequests(ctx context.Context) (*[]domain.AttendanceRequest, error) {
	out := make([]domain.AttendanceRequest, len(f.requests))
	copy(out, f.requests)
	return &out, nil
}

func (f *fakeEventRepo) GetRecordsInRange(ctx context.Context, from, to time.Time) (*[]domain.AttendanceRecord, error) {
	var out []domain.AttendanceRecord
	for _, rec := range f.records {
		if !rec.Date.Before(from) && !rec.Date.After(to) {
			out = append(out, rec)
		}
	}
	return &out, nil
}

type fakeUserRepo struct {
	users      []domain.User
	nextID     int
	failCreate error
}

func (f *fakeUserRepo) FindUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	for _, u := range f.users {
		if u.ExternalID == externalID {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("no user for identity %s: %w", externalID, domain.ErrNotFound)
}

func (f *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("no user with email %s: %w", email, domain.ErrNotFound)
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *domain.User) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	f.nextID++
	user.UserID = f.nextID
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) GetAllUsers(ctx context.Context) (*[]domain.User, error) {
	out := make([]domain.User, len(f.users))
	copy(out, f.users)
	return &out, nil
}

type fakeProvider struct {
	created []string
	deleted []string

	createErr error
	loginErr  error
}

func (f *fakeProvider) CreateIdentity(ctx context.Context, email, username, password string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	ref := fmt.Sprintf("ext-%d", len(f.created)+1)
	f.created = append(f.created, ref)
	return ref, nil
}

func (f *fakeProvider) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &domain.Session{Token: "token-" + email, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (f *fakeProvider) VerifySession(ctx context.Context, token string) (string, error) {
	return "", domain.ErrUnauthorized
}

func (f *fakeProvider) DeleteIdentity(ctx context.Context, externalID string) error {
	f.deleted = append(f.deleted, externalID)
	return nil
}

func admin() *domain.User {
	return &domain.User{UserID: 1, Email: "admin@example.com", Name: "Admin", Role: domain.RoleAdmin}
}

func student() *domain.User {
	return &domain.User{UserID: 2, Email: "student@example.com", Name: "Student", Role: domain.RoleUser}
}
