package postgresql

import (
	"fmt"
	"strings"
)

// Predicate accumulates WHERE conditions once and renders both the COUNT and
// the page query from the same state, so the two can never disagree on which
// rows they cover. Conditions use `?` placeholders; rendering rewrites them
// to positional `$n` arguments.
type Predicate struct {
	conds []string
	args  []interface{}
}

func NewPredicate() *Predicate {
	return &Predicate{}
}

func (p *Predicate) Where(cond string, args ...interface{}) *Predicate {
	p.conds = append(p.conds, cond)
	p.args = append(p.args, args...)
	return p
}

// WhereIf adds the condition only when ok is true.
func (p *Predicate) WhereIf(ok bool, cond string, args ...interface{}) *Predicate {
	if ok {
		return p.Where(cond, args...)
	}
	return p
}

// ScopeEmployee restricts column to the caller's own employee id unless the
// caller can see all rows.
func (p *Predicate) ScopeEmployee(column, employeeID string, canSeeAll bool) *Predicate {
	if !canSeeAll {
		return p.Where(column+" = ?", employeeID)
	}
	return p
}

// Args returns the accumulated arguments in placeholder order.
func (p *Predicate) Args() []interface{} {
	return p.args
}

func (p *Predicate) whereClause() string {
	if len(p.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.conds, " AND ")
}

func renumber(sql string, start int) (string, int) {
	var b strings.Builder
	n := start
	for _, ch := range sql {
		if ch == '?' {
			fmt.Fprintf(&b, "$%d", n)
			n++
			continue
		}
		b.WriteRune(ch)
	}
	return b.String(), n
}

// CountSQL renders `SELECT COUNT(*) FROM <from> WHERE ...`.
func (p *Predicate) CountSQL(from string) (string, []interface{}) {
	sql, _ := renumber("SELECT COUNT(*) FROM "+from+p.whereClause(), 1)
	return sql, p.args
}

// PageSQL renders the page query with the identical WHERE clause plus
// ordering and LIMIT/OFFSET.
func (p *Predicate) PageSQL(selectCols, from, orderBy string, page, limit int) (string, []interface{}) {
	sql, next := renumber("SELECT "+selectCols+" FROM "+from+p.whereClause(), 1)
	sql += fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", orderBy, next, next+1)
	args := make([]interface{}, 0, len(p.args)+2)
	args = append(args, p.args...)
	args = append(args, limit, (page-1)*limit)
	return sql, args
}

// DeleteSQL renders a DELETE sharing the same predicate state.
func (p *Predicate) DeleteSQL(from string) (string, []interface{}) {
	sql, _ := renumber("DELETE FROM "+from+p.whereClause(), 1)
	return sql, p.args
}
