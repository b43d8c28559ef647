package usecase

import (
	"context"
	"time"

	"attendance/domain"
)

type reportUseCase struct {
	events  domain.AttendanceRepo
	users   domain.UserRepo
	TimeOut time.Duration
}

func NewReportUseCase(events domain.AttendanceRepo, users domain.UserRepo, to time.Duration) domain.ReportUseCase {
	return &reportUseCase{
		events:  events,
		users:   users,
		TimeOut: to,
	}
}

// WeeklyReport aggregates the Monday-start week containing anchor: per-status
// counters plus one row per user holding the seven day cells.
func (ru *reportUseCase) WeeklyReport(ctx context.Context, anchor time.Time) (*domain.WeeklyReport, error) {
	from, to := domain.WeekWindow(anchor)

	ctx, cancel := context.WithTimeout(ctx, ru.TimeOut)
	defer cancel()

	records, err := ru.events.GetRecordsInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	users, err := ru.users.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	grid := domain.AttendanceMap(*records, from, to)

	rows := make([]domain.UserWeekRow, 0, len(*users))
	for _, user := range *users {
		row := domain.UserWeekRow{
			UserID: user.UserID,
			Name:   user.Name,
			Email:  user.Email,
		}
		for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
			cell := domain.DayCell{Date: day}
			if rec, ok := grid[domain.DayKey(user.UserID, day)]; ok {
				recCopy := rec
				cell.Record = &recCopy
			}
			row.Days = append(row.Days, cell)
		}
		rows = append(rows, row)
	}

	return &domain.WeeklyReport{
		From:    from,
		To:      to,
		Summary: domain.Summarize(*records, from, to),
		Rows:    rows,
	}, nil
}
