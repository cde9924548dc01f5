package service

import "stock-radar/internal/dto"

// Momentum lookbacks in trading sessions, approximating 1 day, 1 month,
// 3 months and 1 year of calendar time.
const (
	lookback1D = 1
	lookback1M = 22
	lookback3M = 66
	lookback1Y = 252
)

// momentum returns the percentage change between the latest close and the
// close lookback sessions earlier, or nil when the series is too short.
// The series must be chronological ascending.
func momentum(series []dto.ClosePoint, lookback int) *float64 {
	if len(series) < lookback+1 {
		return nil
	}
	latest := series[len(series)-1].Close
	old := series[len(series)-1-lookback].Close
	if old == 0 {
		return nil
	}
	v := (latest - old) / old * 100
	return &v
}
