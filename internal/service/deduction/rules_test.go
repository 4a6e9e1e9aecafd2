package deduction

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/suweldo/payroll-backend-go/internal/domain/deduction"
	payrollsvc "github.com/suweldo/payroll-backend-go/internal/service/payroll"
)

func TestTagFromName(t *testing.T) {
	tests := []struct {
		name string
		want deduction.Tag
	}{
		{"SSS Contribution", deduction.TagSSS},
		{"PhilHealth", deduction.TagPhilHealth},
		{"Pag-IBIG Fund", deduction.TagPagIbig},
		{"pagibig", deduction.TagPagIbig},
		{"Withholding Tax", deduction.TagWithholding},
		{"Income Tax", deduction.TagWithholding},
		{"Company Loan", deduction.TagOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, deduction.TagFromName(tt.name), tt.name)
	}
}

func TestEffectiveTag_PrefersExplicitTag(t *testing.T) {
	typ := deduction.Type{Name: "SSS Contribution", Tag: deduction.TagOther}
	assert.Equal(t, deduction.TagOther, typ.EffectiveTag())

	legacy := deduction.Type{Name: "SSS Contribution"}
	assert.Equal(t, deduction.TagSSS, legacy.EffectiveTag())
}

func TestAllocateAmount(t *testing.T) {
	estimator := payrollsvc.NewTrainLawEstimator()
	salary := decimal.NewFromInt(30000)
	lump := decimal.NewFromInt(2000)
	def := decimal.NewFromInt(500)

	tests := []struct {
		name string
		tag  deduction.Tag
		want float64
	}{
		{"sss is 4.5 percent", deduction.TagSSS, 1350},
		{"philhealth is 2.5 percent", deduction.TagPhilHealth, 750},
		{"pagibig capped at 100", deduction.TagPagIbig, 100},
		{"withholding uses brackets", deduction.TagWithholding, 1375.05}, // (30000-20833)*0.15
		{"other capped by lump share", deduction.TagOther, 200},          // min(500, 2000*0.10)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AllocateAmount(tt.tag, salary, lump, def, estimator)
			want := decimal.NewFromFloat(tt.want)
			assert.True(t, got.Equal(want), "got %s want %s", got, want)
		})
	}
}

func TestAllocateAmount_PagibigBelowCap(t *testing.T) {
	got := AllocateAmount(deduction.TagPagIbig, decimal.NewFromInt(4000), decimal.Zero, decimal.Zero, payrollsvc.NewTrainLawEstimator())
	assert.True(t, got.Equal(decimal.NewFromInt(80)), "got %s", got) // 2% of 4000
}

func TestAllocateAmount_OtherWithoutLumpUsesDefault(t *testing.T) {
	def := decimal.NewFromInt(500)
	got := AllocateAmount(deduction.TagOther, decimal.NewFromInt(30000), decimal.Zero, def, payrollsvc.NewTrainLawEstimator())
	assert.True(t, got.Equal(def), "got %s", got)
}
