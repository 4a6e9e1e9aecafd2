package payroll

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/jung-kurt/gofpdf"
	"github.com/suweldo/payroll-backend-go/internal/domain/auth"
	"github.com/suweldo/payroll-backend-go/internal/domain/payroll"
)

// RenderPayslip renders one payroll record as a single-page PDF with the
// deduction breakdown. The caller scope check is the same as GetByID.
func (s *Service) RenderPayslip(ctx context.Context, caller auth.Caller, payrollID string) ([]byte, error) {
	record, err := s.payrollRepo.GetByID(ctx, payrollID)
	if err != nil {
		return nil, err
	}
	if !caller.CanSeeAll() && record.EmployeeID != caller.EmployeeID {
		return nil, payroll.ErrRecordNotFound
	}

	employeeName := record.EmployeeID
	if record.EmployeeName != nil {
		employeeName = *record.EmployeeName
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", employeeName))
	pdf.Ln(7)
	if record.DepartmentName != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Department: %s", *record.DepartmentName))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s",
		record.PeriodStart.Format("2006-01-02"), record.PeriodEnd.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", record.Status))
	pdf.Ln(10)

	pdf.Cell(0, 8, fmt.Sprintf("Basic Salary: %s", record.BasicSalary.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Overtime Pay: %s", record.OvertimePay.StringFixed(2)))
	pdf.Ln(10)

	if len(record.DeductionDetail) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Deductions")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 12)

		names := make([]string, 0, len(record.DeductionDetail))
		for name := range record.DeductionDetail {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			pdf.Cell(0, 7, fmt.Sprintf("  %s: %s", name, record.DeductionDetail[name].StringFixed(2)))
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	pdf.Cell(0, 8, fmt.Sprintf("Total Deductions: %s", record.TotalDeductions.StringFixed(2)))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Net Pay: %s", record.NetPay.StringFixed(2)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}
