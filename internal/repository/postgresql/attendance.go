package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/suweldo/payroll-backend-go/internal/domain/attendance"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.EventRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) GetEventsInRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, time_in, time_out, status,
			   COALESCE(late_minutes, 0), COALESCE(undertime_minutes, 0),
			   COALESCE(overtime_minutes, 0), created_at
		FROM attendance_events
		WHERE date >= $1 AND date <= $2
	`
	args := []interface{}{start, end}

	if employeeID != "" {
		query += ` AND employee_id = $3`
		args = append(args, employeeID)
	}
	query += ` ORDER BY employee_id, date`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance events: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		var ev attendance.Event
		if err := rows.Scan(
			&ev.ID, &ev.EmployeeID, &ev.Date, &ev.TimeIn, &ev.TimeOut, &ev.Status,
			&ev.LateMinutes, &ev.UndertimeMinutes, &ev.OvertimeMinutes, &ev.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return events, nil
}
