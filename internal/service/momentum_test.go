package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMomentum(t *testing.T) {
	tests := []struct {
		name     string
		closes   []float64
		lookback int
		want     *float64
	}{
		{
			name:     "empty series",
			closes:   nil,
			lookback: 1,
			want:     nil,
		},
		{
			name:     "series shorter than lookback plus one",
			closes:   []float64{100, 101, 102},
			lookback: 3,
			want:     nil,
		},
		{
			name:     "exact boundary uses first close",
			closes:   []float64{100, 101, 102, 110},
			lookback: 3,
			want:     ptr(10),
		},
		{
			name:     "one session gain",
			closes:   []float64{95, 100, 110},
			lookback: 1,
			want:     ptr(10),
		},
		{
			name:     "negative change",
			closes:   []float64{200, 150},
			lookback: 1,
			want:     ptr(-25),
		},
		{
			name:     "zero reference close",
			closes:   []float64{0, 100},
			lookback: 1,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := momentum(closeSeries(tt.closes...), tt.lookback)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestMomentumLookbackWindows(t *testing.T) {
	// 253 sessions rising one unit per session covers every window.
	closes := make([]float64, 253)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	series := closeSeries(closes...)

	assert.NotNil(t, momentum(series, lookback1D))
	assert.NotNil(t, momentum(series, lookback1M))
	assert.NotNil(t, momentum(series, lookback3M))
	assert.NotNil(t, momentum(series, lookback1Y))

	oneYear := momentum(series, lookback1Y)
	assert.InDelta(t, (352.0-100.0)/100.0*100.0, *oneYear, 1e-9)

	// One session short of a year.
	assert.Nil(t, momentum(series[:252], lookback1Y))
}
