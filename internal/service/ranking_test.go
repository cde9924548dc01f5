package service

import (
	"testing"

	"stock-radar/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights map[string]float64
		want    map[string]float64
	}{
		{
			name:    "renormalized to sum one",
			weights: map[string]float64{SignalPERatio: 2, SignalMom1Y: 1, SignalDividendYieldPct: 1},
			want: map[string]float64{
				SignalPERatio:          0.5,
				SignalPriceToBook:      0,
				SignalDebtToEquity:     0,
				SignalMom1Y:            0.25,
				SignalDividendYieldPct: 0.25,
			},
		},
		{
			name:    "all zero falls back to equal weights",
			weights: map[string]float64{},
			want: map[string]float64{
				SignalPERatio:          0.2,
				SignalPriceToBook:      0.2,
				SignalDebtToEquity:     0.2,
				SignalMom1Y:            0.2,
				SignalDividendYieldPct: 0.2,
			},
		},
		{
			name:    "negative weights clamped to zero",
			weights: map[string]float64{SignalPERatio: -3, SignalMom1Y: 1},
			want: map[string]float64{
				SignalPERatio:          0,
				SignalPriceToBook:      0,
				SignalDebtToEquity:     0,
				SignalMom1Y:            1,
				SignalDividendYieldPct: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeWeights(tt.weights)

			var sum float64
			for key, want := range tt.want {
				assert.InDelta(t, want, got[key], 1e-9, "weight for %s", key)
				sum += got[key]
			}
			assert.InDelta(t, 1.0, sum, 1e-9)
		})
	}
}

func TestFractionalRanks(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []float64
	}{
		{
			name:   "single value degenerates to zero",
			values: []float64{42},
			want:   []float64{0},
		},
		{
			name:   "distinct values span zero to one",
			values: []float64{30, 10, 20},
			want:   []float64{1, 0, 0.5},
		},
		{
			name:   "ties share the average rank",
			values: []float64{5, 10, 10, 20},
			want:   []float64{0, 0.5, 0.5, 1},
		},
		{
			name:   "all equal all tie",
			values: []float64{7, 7, 7},
			want:   []float64{0.5, 0.5, 0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fractionalRanks(tt.values)
			assert.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-9, "rank at %d", i)
			}
		})
	}
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, median(nil))
	assert.Equal(t, 10.0, median([]float64{10}))
	assert.Equal(t, 10.0, median([]float64{20, 5, 10}))
	assert.Equal(t, 7.5, median([]float64{5, 10}))
}

func TestRankMedianImputation(t *testing.T) {
	// PE column [5, 10, missing, 20]: the missing value is imputed with the
	// median 10 and ties with the real 10 at the shared average rank.
	records := []model.StockData{
		{Ticker: "A", PERatio: ptr(5)},
		{Ticker: "B", PERatio: ptr(10)},
		{Ticker: "C"},
		{Ticker: "D", PERatio: ptr(20)},
	}
	weights := map[string]float64{SignalPERatio: 1}

	ranked := NewRankingService().Rank(records, weights)

	scores := make(map[string]float64, len(ranked))
	for _, r := range ranked {
		scores[r.Stock.Ticker] = r.Score
	}

	// Lower PE is better: inverted ranks [1, 0.5, 0.5, 0] rescale to
	// [100, 50, 50, 0].
	assert.InDelta(t, 100, scores["A"], 1e-9)
	assert.InDelta(t, 50, scores["B"], 1e-9)
	assert.InDelta(t, 50, scores["C"], 1e-9)
	assert.InDelta(t, 0, scores["D"], 1e-9)

	// Tied scores keep scan order: B was scanned before C.
	assert.Equal(t, "A", ranked[0].Stock.Ticker)
	assert.Equal(t, "B", ranked[1].Stock.Ticker)
	assert.Equal(t, "C", ranked[2].Stock.Ticker)
	assert.Equal(t, "D", ranked[3].Stock.Ticker)
}

func TestRankScoreBounds(t *testing.T) {
	records := []model.StockData{
		{Ticker: "AAA", PERatio: ptr(8), PriceToBook: ptr(1.2), DebtToEquity: ptr(30), Mom1Y: ptr(42), DividendYieldPct: ptr(3.1)},
		{Ticker: "BBB", PERatio: ptr(25), PriceToBook: ptr(6), DebtToEquity: ptr(180), Mom1Y: ptr(-12), DividendYieldPct: ptr(0)},
		{Ticker: "CCC", PERatio: ptr(14), Mom1Y: ptr(7)},
		{Ticker: "DDD", DividendYieldPct: ptr(5.5)},
	}

	ranked := NewRankingService().Rank(records, nil)

	assert.Len(t, ranked, len(records))
	for _, r := range ranked {
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 100.0)
	}
	assert.InDelta(t, 100, ranked[0].Score, 1e-9)
	assert.InDelta(t, 0, ranked[len(ranked)-1].Score, 1e-9)
}

func TestRankDegenerateSets(t *testing.T) {
	t.Run("empty set", func(t *testing.T) {
		assert.Nil(t, NewRankingService().Rank(nil, nil))
	})

	t.Run("single record scores zero", func(t *testing.T) {
		ranked := NewRankingService().Rank([]model.StockData{
			{Ticker: "ONLY", PERatio: ptr(12), Mom1Y: ptr(30)},
		}, nil)
		assert.Len(t, ranked, 1)
		assert.Equal(t, 0.0, ranked[0].Score)
	})

	t.Run("identical records all score zero", func(t *testing.T) {
		ranked := NewRankingService().Rank([]model.StockData{
			{Ticker: "X", PERatio: ptr(10), Mom1Y: ptr(5)},
			{Ticker: "Y", PERatio: ptr(10), Mom1Y: ptr(5)},
		}, nil)
		assert.Len(t, ranked, 2)
		assert.Equal(t, 0.0, ranked[0].Score)
		assert.Equal(t, 0.0, ranked[1].Score)
		assert.Equal(t, "X", ranked[0].Stock.Ticker)
		assert.Equal(t, "Y", ranked[1].Stock.Ticker)
	})
}
