package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/suweldo/payroll-backend-go/internal/domain/auth"
	"github.com/suweldo/payroll-backend-go/internal/domain/report"
)

type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatXLS ExportFormat = "xls"
)

func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case FormatCSV, FormatXLS:
		return ExportFormat(s), nil
	}
	return "", report.ErrUnknownFormat
}

// exportLimit bounds a full-table dump.
const exportLimit = 100000

// ExportFile - a rendered export ready to stream to the client.
type ExportFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Export dumps the visible snapshot rows of one family as a tabular file.
// The payroll family appends a computed TOTAL row; generated_by ids are
// resolved to display names.
func (s *Service) Export(ctx context.Context, caller auth.Caller, typ report.Type, format ExportFormat, req report.ListRequest) (ExportFile, error) {
	if err := req.Validate(); err != nil {
		return ExportFile{}, err
	}

	// Exports dump the whole visible set as one oversized page.
	f := req.ToFilter()
	f.Page = 1
	f.Limit = exportLimit

	result, err := s.listFiltered(ctx, caller, typ, f)
	if err != nil {
		return ExportFile{}, err
	}

	names, err := s.resolveGeneratedBy(ctx, result.Items)
	if err != nil {
		return ExportFile{}, err
	}

	header, rows := buildTable(typ, result.Items, names)

	switch format {
	case FormatCSV:
		data, err := renderCSV(header, rows)
		if err != nil {
			return ExportFile{}, err
		}
		return ExportFile{
			Data:        data,
			Filename:    fmt.Sprintf("%s-report-%s.csv", typ, time.Now().Format("20060102")),
			ContentType: "text/csv",
		}, nil
	case FormatXLS:
		data, err := renderXLS(string(typ), header, rows)
		if err != nil {
			return ExportFile{}, err
		}
		return ExportFile{
			Data:        data,
			Filename:    fmt.Sprintf("%s-report-%s.xlsx", typ, time.Now().Format("20060102")),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		}, nil
	}
	return ExportFile{}, report.ErrUnknownFormat
}

// resolveGeneratedBy collects the distinct generated_by user ids present in
// the rows and resolves them to display names.
func (s *Service) resolveGeneratedBy(ctx context.Context, items interface{}) (map[string]string, error) {
	seen := make(map[string]bool)
	add := func(id *string) {
		if id != nil && *id != "" {
			seen[*id] = true
		}
	}

	switch rows := items.(type) {
	case []report.PayrollRow:
		for _, r := range rows {
			add(r.GeneratedBy)
		}
	case []report.AttendanceRow:
		for _, r := range rows {
			add(r.GeneratedBy)
		}
	case []report.EmployeeRow:
		for _, r := range rows {
			add(r.GeneratedBy)
		}
	case []report.DepartmentRow:
		for _, r := range rows {
			add(r.GeneratedBy)
		}
	case []report.DeductionRow:
		for _, r := range rows {
			add(r.GeneratedBy)
		}
	}

	if len(seen) == 0 {
		return map[string]string{}, nil
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	return s.userRepo.GetDisplayNames(ctx, ids)
}

// buildTable renders one family's rows into a fixed-order header and cell
// grid. Empty families produce a single "No data" row.
func buildTable(typ report.Type, items interface{}, names map[string]string) ([]string, [][]string) {
	displayName := func(id *string) string {
		if id == nil {
			return ""
		}
		if n, ok := names[*id]; ok {
			return n
		}
		return *id
	}
	date := func(t time.Time) string { return t.Format("2006-01-02") }
	optDate := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return date(*t)
	}
	str := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}

	var (
		header []string
		rows   [][]string
	)

	switch typed := items.(type) {
	case []report.PayrollRow:
		header = []string{"Report ID", "Employee", "Department", "Period Start", "Period End",
			"Basic Salary", "Overtime Pay", "Total Deductions", "Net Pay", "Status", "Generated By", "Generated At"}
		totalBasic, totalDeductions, totalNet := decimal.Zero, decimal.Zero, decimal.Zero
		for _, r := range typed {
			rows = append(rows, []string{
				fmt.Sprintf("%d", r.ReportID), r.EmployeeName, str(r.DepartmentName),
				date(r.PeriodStart), date(r.PeriodEnd),
				r.BasicSalary.StringFixed(2), r.OvertimePay.StringFixed(2),
				r.TotalDeductions.StringFixed(2), r.NetPay.StringFixed(2),
				r.Status, displayName(r.GeneratedBy), r.GeneratedAt.Format(time.RFC3339),
			})
			totalBasic = totalBasic.Add(r.BasicSalary)
			totalDeductions = totalDeductions.Add(r.TotalDeductions)
			totalNet = totalNet.Add(r.NetPay)
		}
		if len(rows) > 0 {
			rows = append(rows, []string{
				"TOTAL", "", "", "", "",
				totalBasic.StringFixed(2), "",
				totalDeductions.StringFixed(2), totalNet.StringFixed(2),
				"", "", "",
			})
		}

	case []report.AttendanceRow:
		header = []string{"Report ID", "Employee", "Department", "Period Start", "Period End",
			"Present Days", "Absent Days", "Leave Days", "Late Days", "Total Hours", "Generated By", "Generated At"}
		for _, r := range typed {
			rows = append(rows, []string{
				fmt.Sprintf("%d", r.ReportID), r.EmployeeName, str(r.DepartmentName),
				date(r.PeriodStart), date(r.PeriodEnd),
				fmt.Sprintf("%d", r.PresentDays), fmt.Sprintf("%d", r.AbsentDays),
				fmt.Sprintf("%d", r.LeaveDays), fmt.Sprintf("%d", r.LateDays),
				fmt.Sprintf("%.2f", r.TotalHours),
				displayName(r.GeneratedBy), r.GeneratedAt.Format(time.RFC3339),
			})
		}

	case []report.EmployeeRow:
		header = []string{"Report ID", "Employee Code", "Employee", "Department", "Position",
			"Status", "Hire Date", "Generated By", "Generated At"}
		for _, r := range typed {
			rows = append(rows, []string{
				fmt.Sprintf("%d", r.ReportID), r.EmployeeCode, r.EmployeeName,
				str(r.DepartmentName), str(r.Position), r.Status, date(r.HireDate),
				displayName(r.GeneratedBy), r.GeneratedAt.Format(time.RFC3339),
			})
		}

	case []report.DepartmentRow:
		header = []string{"Report ID", "Department", "Employee Count", "Total Basic Salary",
			"Generated By", "Generated At"}
		for _, r := range typed {
			rows = append(rows, []string{
				fmt.Sprintf("%d", r.ReportID), r.DepartmentName,
				fmt.Sprintf("%d", r.EmployeeCount), r.TotalBasicSalary.StringFixed(2),
				displayName(r.GeneratedBy), r.GeneratedAt.Format(time.RFC3339),
			})
		}

	case []report.DeductionRow:
		header = []string{"Report ID", "Employee", "Deduction", "Amount",
			"Period Start", "Period End", "Generated By", "Generated At"}
		for _, r := range typed {
			rows = append(rows, []string{
				fmt.Sprintf("%d", r.ReportID), r.EmployeeName, r.DeductionName,
				r.Amount.StringFixed(2), optDate(r.PeriodStart), optDate(r.PeriodEnd),
				displayName(r.GeneratedBy), r.GeneratedAt.Format(time.RFC3339),
			})
		}
	}

	if len(rows) == 0 {
		rows = append(rows, noDataRow(len(header)))
	}
	return header, rows
}

func noDataRow(width int) []string {
	row := make([]string, width)
	if width > 0 {
		row[0] = "No data"
	}
	return row
}

func renderCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLS(sheet string, header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return nil, err
		}
	}

	toAny := func(cells []string) []interface{} {
		out := make([]interface{}, len(cells))
		for i, c := range cells {
			out[i] = c
		}
		return out
	}

	headerCells := toAny(header)
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return nil, err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		cells := toAny(row)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
