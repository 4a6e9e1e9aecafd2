package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetActive(ctx context.Context) ([]Employee, error)
	GetCompensationProfile(ctx context.Context, employeeID string) (CompensationProfile, error)
}
