package domain

import (
	"context"
	"fmt"
	"time"
)

// Status is the fixed set of daily attendance outcomes.
type Status string

const (
	StatusOnTime  Status = "ON_TIME"
	StatusLate    Status = "LATE"
	StatusOnLeave Status = "ON_LEAVE"
	StatusAbsent  Status = "ABSENT"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOnTime, StatusLate, StatusOnLeave, StatusAbsent:
		return Status(s), nil
	}
	return "", fmt.Errorf("invalid event type %q: %w", s, ErrInvalidInput)
}

// AttendanceRecord is the finalized per-day entry. At most one row exists
// per (user_id, date); the unique index in config/db.go enforces it.
type AttendanceRecord struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int       `gorm:"not null;index" json:"user_id"`
	Date      time.Time `gorm:"type:date;not null" json:"date"`
	Status    Status    `gorm:"type:attendance_status_enum;not null" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// NormalizeDate collapses a timestamp to a UTC calendar day. Time-of-day and
// local offset supplied by the caller are discarded, so per-day uniqueness is
// well-defined regardless of submission time zone. Idempotent.
func NormalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekWindow returns the Monday-start week containing day, both ends
// inclusive and normalized to UTC midnight.
func WeekWindow(day time.Time) (from, to time.Time) {
	d := NormalizeDate(day)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	from = d.AddDate(0, 0, -offset)
	to = from.AddDate(0, 0, 6)
	return from, to
}

// InWindow reports whether day falls inside [from, to], boundaries included.
func InWindow(day, from, to time.Time) bool {
	d := NormalizeDate(day)
	return !d.Before(from) && !d.After(to)
}

// WeeklySummary holds per-status counters for one week window.
type WeeklySummary struct {
	Present int `json:"present"`
	Late    int `json:"late"`
	OnLeave int `json:"on_leave"`
	Absent  int `json:"absent"`
}

// Summarize counts records inside the window by status. Records carrying an
// unrecognized status are skipped rather than reported as an error.
func Summarize(records []AttendanceRecord, from, to time.Time) WeeklySummary {
	var sum WeeklySummary
	for _, rec := range records {
		if !InWindow(rec.Date, from, to) {
			continue
		}
		switch rec.Status {
		case StatusOnTime:
			sum.Present++
		case StatusLate:
			sum.Late++
		case StatusOnLeave:
			sum.OnLeave++
		case StatusAbsent:
			sum.Absent++
		}
	}
	return sum
}

// DayKey identifies the single cell a record occupies in the weekly grid.
func DayKey(userID int, day time.Time) string {
	return fmt.Sprintf("%d-%s", userID, NormalizeDate(day).Format("2006-01-02"))
}

// AttendanceMap indexes records inside the window by (user, day). By the
// uniqueness invariant each key maps to at most one record.
func AttendanceMap(records []AttendanceRecord, from, to time.Time) map[string]AttendanceRecord {
	grid := make(map[string]AttendanceRecord)
	for _, rec := range records {
		if !InWindow(rec.Date, from, to) {
			continue
		}
		grid[DayKey(rec.UserID, rec.Date)] = rec
	}
	return grid
}

// WeeklyReport is the admin-facing aggregation over one week window.
type WeeklyReport struct {
	From    time.Time     `json:"from"`
	To      time.Time     `json:"to"`
	Summary WeeklySummary `json:"summary"`
	Rows    []UserWeekRow `json:"rows"`
}

type UserWeekRow struct {
	UserID int       `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Days   []DayCell `json:"days"`
}

type DayCell struct {
	Date   time.Time         `json:"date"`
	Record *AttendanceRecord `json:"record,omitempty"`
}

type AttendanceRepo interface {
	CreateRecord(ctx context.Context, rec *AttendanceRecord) error
	CreateRequest(ctx context.Context, req *AttendanceRequest) error
	ApproveRequest(ctx context.Context, requestID int) (*AttendanceRequest, error)
	RejectRequest(ctx context.Context, requestID int) (*AttendanceRequest, error)
	GetAllPendingRequests(ctx context.Context) (*[]AttendanceRequest, error)
	GetRecordsInRange(ctx context.Context, from, to time.Time) (*[]AttendanceRecord, error)
}

type ReportUseCase interface {
	WeeklyReport(ctx context.Context, anchor time.Time) (*WeeklyReport, error)
}
