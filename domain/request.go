package domain

import (
	"context"
	"time"
)

// RequestStatus exists for the stored column; only PENDING is ever produced.
// Adjudication removes the row instead of flipping the status.
type RequestStatus string

const RequestPending RequestStatus = "PENDING"

// AttendanceRequest is a user's not-yet-adjudicated submission. A partial
// unique index keeps one pending request per (student_id, requested_date).
type AttendanceRequest struct {
	ID                 int           `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID          int           `gorm:"not null;index" json:"student_id"`
	RequestedDate      time.Time     `gorm:"type:date;not null" json:"requested_date"`
	RequestedEventType Status        `gorm:"type:attendance_status_enum;not null" json:"requested_event_type"`
	Status             RequestStatus `gorm:"type:varchar(20);not null;default:PENDING" json:"status"`
	Reason             string        `gorm:"type:text" json:"reason"`
	CreatedAt          time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

// EventPayload is the submission body shared by both roles.
type EventPayload struct {
	Date      string `json:"date" valid:"required~Date is required"`
	EventType string `json:"event_type" valid:"required~Event type is required"`
	Reason    string `json:"reason" valid:"-"`
}

// SubmissionResult says which kind of row the submission produced so the
// caller can render the matching confirmation.
type SubmissionResult struct {
	Kind    string             `json:"kind"` // "record" or "request"
	Record  *AttendanceRecord  `json:"record,omitempty"`
	Request *AttendanceRequest `json:"request,omitempty"`
}

type SubmissionUseCase interface {
	Submit(ctx context.Context, actor *User, payload *EventPayload) (*SubmissionResult, error)
}

type AdjudicationUseCase interface {
	Approve(ctx context.Context, actor *User, requestID int) (*AttendanceRequest, error)
	Reject(ctx context.Context, actor *User, requestID int) (*AttendanceRequest, error)
	GetAllPending(ctx context.Context, actor *User) (*[]AttendanceRequest, error)
}
