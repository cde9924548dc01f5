package service

import (
	"sort"

	"stock-radar/internal/model"
)

// Signal keys accepted in the ranking weight map.
const (
	SignalPERatio          = "pe_ratio"
	SignalPriceToBook      = "price_to_book"
	SignalDebtToEquity     = "debt_to_equity"
	SignalMom1Y            = "mom_1y"
	SignalDividendYieldPct = "dividend_yield_pct"
)

type signalDef struct {
	key           string
	lowerIsBetter bool
	value         func(*model.StockData) *float64
}

var rankedSignals = []signalDef{
	{SignalPERatio, true, func(s *model.StockData) *float64 { return s.PERatio }},
	{SignalPriceToBook, true, func(s *model.StockData) *float64 { return s.PriceToBook }},
	{SignalDebtToEquity, true, func(s *model.StockData) *float64 { return s.DebtToEquity }},
	{SignalMom1Y, false, func(s *model.StockData) *float64 { return s.Mom1Y }},
	{SignalDividendYieldPct, false, func(s *model.StockData) *float64 { return s.DividendYieldPct }},
}

// RankedStock is one record annotated with its composite 0-100 score.
type RankedStock struct {
	Stock model.StockData
	Score float64
}

type RankingService interface {
	Rank(records []model.StockData, weights map[string]float64) []RankedStock
}

type rankingService struct{}

func NewRankingService() RankingService {
	return &rankingService{}
}

// Rank computes a robust percentile composite over five valuation and
// momentum signals. Missing values are imputed with the column median (not
// zero, which is not neutral for most of these metrics), each column is
// converted to an average-rank-for-ties fractional rank, lower-is-better
// columns are inverted, and the weighted sum is min-max rescaled to 0-100
// across the record set. The result is sorted descending by score; ties
// keep store-scan order, no secondary key is applied.
func (r *rankingService) Rank(records []model.StockData, weights map[string]float64) []RankedStock {
	n := len(records)
	if n == 0 {
		return nil
	}

	normalized := normalizeWeights(weights)

	composite := make([]float64, n)
	for _, signal := range rankedSignals {
		weight := normalized[signal.key]
		if weight == 0 {
			continue
		}

		column := imputedColumn(records, signal.value)
		ranks := fractionalRanks(column)
		for i := range ranks {
			if signal.lowerIsBetter {
				ranks[i] = 1 - ranks[i]
			}
			composite[i] += weight * ranks[i]
		}
	}

	minScore, maxScore := composite[0], composite[0]
	for _, c := range composite[1:] {
		if c < minScore {
			minScore = c
		}
		if c > maxScore {
			maxScore = c
		}
	}

	ranked := make([]RankedStock, n)
	for i, record := range records {
		score := 0.0
		if maxScore > minScore {
			score = (composite[i] - minScore) / (maxScore - minScore) * 100
		}
		ranked[i] = RankedStock{Stock: record, Score: score}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// normalizeWeights clamps negatives to zero and rescales the supplied
// weights to sum to 1. An empty or all-zero map falls back to equal weights
// across the five default signals.
func normalizeWeights(weights map[string]float64) map[string]float64 {
	normalized := make(map[string]float64, len(rankedSignals))

	var sum float64
	for _, signal := range rankedSignals {
		w := weights[signal.key]
		if w < 0 {
			w = 0
		}
		normalized[signal.key] = w
		sum += w
	}

	if sum == 0 {
		equal := 1.0 / float64(len(rankedSignals))
		for _, signal := range rankedSignals {
			normalized[signal.key] = equal
		}
		return normalized
	}

	for key := range normalized {
		normalized[key] /= sum
	}
	return normalized
}

// imputedColumn extracts one signal across the record set, replacing
// missing values with the median of the present ones. A column with no
// present values at all becomes constant and washes out of the composite.
func imputedColumn(records []model.StockData, value func(*model.StockData) *float64) []float64 {
	var present []float64
	for i := range records {
		if v := value(&records[i]); v != nil {
			present = append(present, *v)
		}
	}
	med := median(present)

	column := make([]float64, len(records))
	for i := range records {
		if v := value(&records[i]); v != nil {
			column[i] = *v
		} else {
			column[i] = med
		}
	}
	return column
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// fractionalRanks maps values to [0, 1] using average-rank-for-ties
// percentile scaling: (ordinal - 1) / (n - 1), with tied values sharing
// their average ordinal. A single-element input yields rank 0.
func fractionalRanks(values []float64) []float64 {
	n := len(values)
	ranks := make([]float64, n)
	if n <= 1 {
		return ranks
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	for start := 0; start < n; {
		end := start
		for end+1 < n && values[order[end+1]] == values[order[start]] {
			end++
		}
		// 1-based ordinals start+1 .. end+1 share their average.
		avg := float64(start+end)/2 + 1
		frac := (avg - 1) / float64(n-1)
		for k := start; k <= end; k++ {
			ranks[order[k]] = frac
		}
		start = end + 1
	}
	return ranks
}
