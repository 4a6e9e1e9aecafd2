package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suweldo/payroll-backend-go/internal/domain/report"
)

func payrollRows() []report.PayrollRow {
	dept := "Engineering"
	by := "u1"
	at := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	return []report.PayrollRow{
		{
			ReportID: 2, EmployeeName: "Ana Cruz", DepartmentName: &dept,
			PeriodStart: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:   time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
			BasicSalary: decimal.NewFromInt(26000), OvertimePay: decimal.NewFromFloat(156.25),
			TotalDeductions: decimal.NewFromFloat(62.50), NetPay: decimal.NewFromFloat(26093.75),
			Status: "processed", GeneratedBy: &by, GeneratedAt: at,
		},
		{
			ReportID: 1, EmployeeName: "Ben Reyes",
			PeriodStart: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:   time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
			BasicSalary: decimal.NewFromInt(14000), OvertimePay: decimal.Zero,
			TotalDeductions: decimal.NewFromInt(500), NetPay: decimal.NewFromInt(13500),
			Status: "paid", GeneratedBy: &by, GeneratedAt: at,
		},
	}
}

func TestBuildTable_PayrollAppendsTotalRow(t *testing.T) {
	header, rows := buildTable(report.TypePayroll, payrollRows(), map[string]string{"u1": "HR Admin"})

	require.Len(t, rows, 3)
	assert.Len(t, header, len(rows[0]))

	total := rows[2]
	assert.Equal(t, "TOTAL", total[0])
	assert.Equal(t, "40000.00", total[5]) // basic salary sum
	assert.Equal(t, "562.50", total[7])   // deductions sum
	assert.Equal(t, "39593.75", total[8]) // net pay sum
}

func TestBuildTable_ResolvesGeneratedByNames(t *testing.T) {
	_, rows := buildTable(report.TypePayroll, payrollRows(), map[string]string{"u1": "HR Admin"})
	assert.Equal(t, "HR Admin", rows[0][10])

	// unknown ids fall back to the raw id
	_, rows = buildTable(report.TypePayroll, payrollRows(), map[string]string{})
	assert.Equal(t, "u1", rows[0][10])
}

func TestBuildTable_EmptyEmitsNoDataRow(t *testing.T) {
	for _, typ := range []report.Type{
		report.TypePayroll, report.TypeAttendance, report.TypeEmployee,
		report.TypeDepartment, report.TypeDeduction,
	} {
		header, rows := buildTable(typ, nil, nil)
		require.Len(t, rows, 1, typ)
		require.NotEmpty(t, header, typ)
		assert.Equal(t, "No data", rows[0][0], typ)
		assert.Len(t, rows[0], len(header), typ)
	}
}

func TestBuildTable_DeductionOptionalPeriod(t *testing.T) {
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	rows := []report.DeductionRow{
		{ReportID: 1, EmployeeName: "Ana Cruz", DeductionName: "SSS Contribution",
			Amount: decimal.NewFromInt(900), PeriodStart: &start,
			GeneratedAt: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)},
	}

	_, cells := buildTable(report.TypeDeduction, rows, nil)
	require.Len(t, cells, 1)
	assert.Equal(t, "900.00", cells[0][3])
	assert.Equal(t, "2025-07-01", cells[0][4])
	assert.Equal(t, "", cells[0][5])
}

func TestRenderCSV(t *testing.T) {
	data, err := renderCSV([]string{"A", "B"}, [][]string{{"1", "2"}, {"3", "4"}})
	require.NoError(t, err)
	assert.Equal(t, "A,B\n1,2\n3,4\n", string(data))
}

func TestRenderXLS(t *testing.T) {
	data, err := renderXLS("payroll", []string{"A", "B"}, [][]string{{"1", "2"}})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	// xlsx containers are zip files
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}

func TestParseExportFormat(t *testing.T) {
	f, err := ParseExportFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseExportFormat("xls")
	require.NoError(t, err)
	assert.Equal(t, FormatXLS, f)

	_, err = ParseExportFormat("pdf")
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
}
