package deduction

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tag selects the allocation rule for one deduction type. New catalog rows
// carry the tag explicitly in the kind column; legacy rows have an empty kind
// and are classified by name via TagFromName when read.
type Tag string

const (
	TagSSS         Tag = "sss"
	TagPhilHealth  Tag = "philhealth"
	TagPagIbig     Tag = "pagibig"
	TagWithholding Tag = "withholding"
	TagOther       Tag = "other"
)

// TagFromName classifies a catalog row by its display name. Legacy path for
// rows created before the kind column existed.
func TagFromName(name string) Tag {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "sss"):
		return TagSSS
	case strings.Contains(n, "philhealth"):
		return TagPhilHealth
	case strings.Contains(n, "pagibig"), strings.Contains(n, "pag-ibig"):
		return TagPagIbig
	case strings.Contains(n, "withholding"), strings.Contains(n, "tax"):
		return TagWithholding
	default:
		return TagOther
	}
}

// Type - one entry of the deduction-type catalog. Read-only reference data.
type Type struct {
	ID            string
	Name          string
	Tag           Tag
	DefaultAmount decimal.Decimal
	CreatedAt     time.Time
}

// EffectiveTag resolves the allocation rule, falling back to name
// classification for legacy rows.
func (t Type) EffectiveTag() Tag {
	if t.Tag != "" {
		return t.Tag
	}
	return TagFromName(t.Name)
}

// EmployeeDeduction - explicit employee-to-deduction-type mapping with an
// agreed amount. Sparse; most installations only have catalog rows.
type EmployeeDeduction struct {
	ID         string
	EmployeeID string
	TypeID     string
	Amount     decimal.Decimal
	CreatedAt  time.Time

	// Joined fields
	TypeName *string
}
