package payroll

import (
	"context"
	"time"
)

type RecordRepository interface {
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time) (Record, error)
	List(ctx context.Context, filter Filter, callerEmployeeID string, canSeeAll bool) ([]Record, int64, error)
	// ListByPeriod returns non-archived records overlapping the period,
	// optionally restricted to one employee. Used by the deduction distributor.
	ListByPeriod(ctx context.Context, start, end *time.Time, employeeID string) ([]Record, error)
	UpdateStatus(ctx context.Context, id string, from, to Status) error
	SetArchived(ctx context.Context, ids []string, archived bool) (int64, error)
}
