package deduction

import "context"

type CatalogRepository interface {
	// ListTypes returns the catalog ordered by creation, oldest first.
	ListTypes(ctx context.Context) ([]Type, error)
	ListEmployeeDeductions(ctx context.Context) ([]EmployeeDeduction, error)
}
