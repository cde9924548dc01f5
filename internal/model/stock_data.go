package model

import "time"

// StockData is the latest known snapshot for one ticker. The table is keyed
// by ticker alone: every ingestion run rewrites the whole row, so readers
// always see exactly one live record per symbol.
//
// Nullable columns are pointers. A nil value means the provider returned
// nothing; zero is a legitimate value for some of these fields (dividend
// yield, momentum) and must never be used as a stand-in for "unknown".
type StockData struct {
	Ticker           string    `gorm:"primaryKey" json:"ticker"`
	ObservedAt       time.Time `gorm:"not null" json:"observed_at"`
	Name             string    `json:"name"`
	Price            *float64  `json:"price"`
	Target           *float64  `json:"target"`
	TargetLow        *float64  `json:"target_low"`
	TargetHigh       *float64  `json:"target_high"`
	PERatio          *float64  `gorm:"column:pe_ratio" json:"pe_ratio"`
	PriceToBook      *float64  `json:"price_to_book"`
	DebtToEquity     *float64  `json:"debt_to_equity"`
	DividendYieldPct *float64  `json:"dividend_yield_pct"`
	Mom1D            *float64  `gorm:"column:mom_1d" json:"mom_1d"`
	Mom1M            *float64  `gorm:"column:mom_1m" json:"mom_1m"`
	Mom3M            *float64  `gorm:"column:mom_3m" json:"mom_3m"`
	Mom1Y            *float64  `gorm:"column:mom_1y" json:"mom_1y"`
	MarketCap        *float64  `json:"market_cap"`
}

func (StockData) TableName() string {
	return "stock_data"
}

// TargetUpsidePct returns the percentage gap between the analyst target and
// the current price, or nil when either side is unknown.
func (s *StockData) TargetUpsidePct() *float64 {
	if s.Price == nil || s.Target == nil || *s.Price == 0 {
		return nil
	}
	v := (*s.Target - *s.Price) / *s.Price * 100
	return &v
}
