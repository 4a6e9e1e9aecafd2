package postgresql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredicate_CountAndPageShareWhereClause(t *testing.T) {
	p := NewPredicate().
		Where("pr.employee_id = ?", "emp-1").
		Where("pr.period_start >= ?", "2024-01-01").
		Where("pr.status = ?", "processed")

	countSQL, countArgs := p.CountSQL("payroll_reports pr")
	pageSQL, pageArgs := p.PageSQL("pr.report_id", "payroll_reports pr", "pr.report_id DESC", 2, 50)

	assert.Equal(t,
		"SELECT COUNT(*) FROM payroll_reports pr WHERE pr.employee_id = $1 AND pr.period_start >= $2 AND pr.status = $3",
		countSQL,
	)
	assert.Equal(t,
		"SELECT pr.report_id FROM payroll_reports pr WHERE pr.employee_id = $1 AND pr.period_start >= $2 AND pr.status = $3 ORDER BY pr.report_id DESC LIMIT $4 OFFSET $5",
		pageSQL,
	)

	// Page args are count args plus limit/offset, nothing reordered.
	assert.Equal(t, countArgs, pageArgs[:len(countArgs)])
	assert.Equal(t, []interface{}{50, 50}, pageArgs[len(countArgs):])
}

func TestPredicate_NoConditions(t *testing.T) {
	p := NewPredicate()

	countSQL, args := p.CountSQL("attendance_reports")
	assert.Equal(t, "SELECT COUNT(*) FROM attendance_reports", countSQL)
	assert.Empty(t, args)

	pageSQL, pageArgs := p.PageSQL("*", "attendance_reports", "report_id DESC", 1, 20)
	assert.Equal(t, "SELECT * FROM attendance_reports ORDER BY report_id DESC LIMIT $1 OFFSET $2", pageSQL)
	assert.Equal(t, []interface{}{20, 0}, pageArgs)
}

func TestPredicate_ScopeEmployee(t *testing.T) {
	restricted := NewPredicate().ScopeEmployee("employee_id", "emp-42", false)
	sql, args := restricted.CountSQL("deduction_reports")
	assert.Contains(t, sql, "employee_id = $1")
	assert.Equal(t, []interface{}{"emp-42"}, args)

	privileged := NewPredicate().ScopeEmployee("employee_id", "emp-42", true)
	sql, args = privileged.CountSQL("deduction_reports")
	assert.Equal(t, "SELECT COUNT(*) FROM deduction_reports", sql)
	assert.Empty(t, args)
}

func TestPredicate_WhereIf(t *testing.T) {
	p := NewPredicate().
		WhereIf(false, "status = ?", "paid").
		WhereIf(true, "archived = ?", false)

	sql, args := p.CountSQL("payroll_records")
	assert.Equal(t, "SELECT COUNT(*) FROM payroll_records WHERE archived = $1", sql)
	assert.Equal(t, []interface{}{false}, args)
}

func TestPredicate_DeleteSharesPredicate(t *testing.T) {
	p := NewPredicate().
		Where("period_start >= ?", "2024-01-01").
		Where("employee_id = ?", "emp-7")

	delSQL, delArgs := p.DeleteSQL("deduction_reports")
	countSQL, countArgs := p.CountSQL("deduction_reports")

	assert.Equal(t, "DELETE FROM deduction_reports WHERE period_start >= $1 AND employee_id = $2", delSQL)
	assert.Equal(t, countArgs, delArgs)
	assert.Contains(t, countSQL, "WHERE period_start >= $1 AND employee_id = $2")
}
