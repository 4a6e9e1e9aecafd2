package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/suweldo/payroll-backend-go/internal/domain/auth"
	"github.com/suweldo/payroll-backend-go/internal/domain/report"
)

func TestDepartmentFamilyRequiresHR(t *testing.T) {
	svc := deductionTestService(&stubTx{}, &stubSnapshotRepo{}, nil, nil)
	me := auth.Caller{UserID: "u2", EmployeeID: "e2", Role: auth.RoleEmployee}

	// Department rows aggregate org-wide salary totals and carry no employee
	// id to scope by, so non-privileged callers are rejected outright.
	_, err := svc.List(context.Background(), me, report.TypeDepartment, report.ListRequest{})
	assert.ErrorIs(t, err, auth.ErrHRAccessRequired)

	_, err = svc.Get(context.Background(), me, report.TypeDepartment, 1)
	assert.ErrorIs(t, err, auth.ErrHRAccessRequired)

	_, err = svc.Export(context.Background(), me, report.TypeDepartment, FormatCSV, report.ListRequest{})
	assert.ErrorIs(t, err, auth.ErrHRAccessRequired)
}
