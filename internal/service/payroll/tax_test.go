package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTrainLawEstimator(t *testing.T) {
	e := NewTrainLawEstimator()

	tests := []struct {
		name   string
		salary float64
		want   float64
	}{
		{"negative", -5000, 0},
		{"zero", 0, 0},
		{"below first floor", 15000, 0},
		{"at first floor", 20833, 0},
		{"second bracket", 25000, 625.05},      // (25000-20833)*0.15
		{"third bracket", 50000, 5208.40},      // 1875+(50000-33333)*0.20
		{"fourth bracket", 100000, 16041.58},   // 7708.33+(100000-66667)*0.25
		{"fifth bracket", 200000, 43541.70},    // 33541.80+(200000-166667)*0.30
		{"top bracket", 1000000, 300208.35},    // 183541.80+(1000000-666667)*0.35
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ComputeWithholdingTax(decimal.NewFromFloat(tt.salary))
			want := decimal.NewFromFloat(tt.want)
			assert.True(t, got.Equal(want), "got %s want %s", got, want)
		})
	}
}
