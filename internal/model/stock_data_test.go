package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetUpsidePct(t *testing.T) {
	ptr := func(v float64) *float64 { return &v }

	tests := []struct {
		name  string
		stock StockData
		want  *float64
	}{
		{"upside", StockData{Price: ptr(10), Target: ptr(12)}, ptr(20)},
		{"downside", StockData{Price: ptr(20), Target: ptr(18)}, ptr(-10)},
		{"no price", StockData{Target: ptr(12)}, nil},
		{"no target", StockData{Price: ptr(10)}, nil},
		{"zero price", StockData{Price: ptr(0), Target: ptr(12)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.stock.TargetUpsidePct()
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}
