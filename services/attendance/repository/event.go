package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"attendance/domain"

	"gorm.io/gorm"
)

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(database *gorm.DB) domain.AttendanceRepo {
	return &eventRepository{
		db: database,
	}
}

// CreateRecord inserts a finalized attendance record. The unique index on
// (user_id, date) turns a duplicate day into a conflict, no prior existence
// check needed.
func (er *eventRepository) CreateRecord(ctx context.Context, rec *domain.AttendanceRecord) error {
	if err := er.db.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("there is already an existing event on %s: %w",
				rec.Date.Format("2006-01-02"), domain.ErrConflict)
		}
		return fmt.Errorf("could not create attendance record: %w", err)
	}
	return nil
}

// CreateRequest inserts a pending request; duplicate pending days surface as
// conflicts via the partial unique index.
func (er *eventRepository) CreateRequest(ctx context.Context, req *domain.AttendanceRequest) error {
	req.Status = domain.RequestPending
	if err := er.db.WithContext(ctx).Create(req).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("there is already an existing request for %s: %w",
				req.RequestedDate.Format("2006-01-02"), domain.ErrConflict)
		}
		return fmt.Errorf("could not create attendance request: %w", err)
	}
	return nil
}

// ApproveRequest consumes a pending request and materializes the attendance
// record in one transaction. If the record insert hits the duplicate-day
// index the whole transaction rolls back and the request stays pending.
func (er *eventRepository) ApproveRequest(ctx context.Context, requestID int) (*domain.AttendanceRequest, error) {
	var req domain.AttendanceRequest

	err := er.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND status = ?", requestID, domain.RequestPending).First(&req).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("attendance request %d: %w", requestID, domain.ErrNotFound)
			}
			return fmt.Errorf("could not load attendance request: %w", err)
		}

		if err := tx.Delete(&domain.AttendanceRequest{}, req.ID).Error; err != nil {
			return fmt.Errorf("could not remove attendance request: %w", err)
		}

		rec := domain.AttendanceRecord{
			UserID: req.StudentID,
			Date:   req.RequestedDate,
			Status: req.RequestedEventType,
		}
		if err := tx.Create(&rec).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("there is already an existing event on %s: %w",
					req.RequestedDate.Format("2006-01-02"), domain.ErrConflict)
			}
			return fmt.Errorf("could not create attendance record: %w", err)
		}

		notif := domain.Notification{
			UserID: req.StudentID,
			Message: fmt.Sprintf("Your attendance request for %s was approved",
				req.RequestedDate.Format("2006-01-02")),
		}
		if err := tx.Create(&notif).Error; err != nil {
			return fmt.Errorf("could not create notification: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &req, nil
}

// RejectRequest consumes a pending request without creating a record.
func (er *eventRepository) RejectRequest(ctx context.Context, requestID int) (*domain.AttendanceRequest, error) {
	var req domain.AttendanceRequest

	err := er.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND status = ?", requestID, domain.RequestPending).First(&req).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("attendance request %d: %w", requestID, domain.ErrNotFound)
			}
			return fmt.Errorf("could not load attendance request: %w", err)
		}

		if err := tx.Delete(&domain.AttendanceRequest{}, req.ID).Error; err != nil {
			return fmt.Errorf("could not remove attendance request: %w", err)
		}

		notif := domain.Notification{
			UserID: req.StudentID,
			Message: fmt.Sprintf("Your attendance request for %s was rejected",
				req.RequestedDate.Format("2006-01-02")),
		}
		if err := tx.Create(&notif).Error; err != nil {
			return fmt.Errorf("could not create notification: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &req, nil
}

func (er *eventRepository) GetAllPendingRequests(ctx context.Context) (*[]domain.AttendanceRequest, error) {
	var requests []domain.AttendanceRequest
	err := er.db.WithContext(ctx).
		Where("status = ?", domain.RequestPending).
		Order("requested_date").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("could not get pending requests: %w", err)
	}
	return &requests, nil
}

func (er *eventRepository) GetRecordsInRange(ctx context.Context, from, to time.Time) (*[]domain.AttendanceRecord, error) {
	var records []domain.AttendanceRecord
	err := er.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("could not get attendance records: %w", err)
	}
	return &records, nil
}
