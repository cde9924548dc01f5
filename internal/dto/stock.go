package dto

// Fundamentals is one provider snapshot for a single ticker. Any field the
// provider did not supply stays nil.
type Fundamentals struct {
	Ticker           string   `json:"ticker"`
	Name             string   `json:"name"`
	Price            *float64 `json:"price"`
	Target           *float64 `json:"target"`
	TargetLow        *float64 `json:"target_low"`
	TargetHigh       *float64 `json:"target_high"`
	PERatio          *float64 `json:"pe_ratio"`
	PriceToBook      *float64 `json:"price_to_book"`
	DebtToEquity     *float64 `json:"debt_to_equity"`
	DividendYieldPct *float64 `json:"dividend_yield_pct"`
	MarketCap        *float64 `json:"market_cap"`
}

// ClosePoint is one daily close, chronological ascending within a series.
type ClosePoint struct {
	Timestamp int64   `json:"timestamp"`
	Close     float64 `json:"close"`
}

// RunReport aggregates the outcome of one ingestion run.
type RunReport struct {
	Total         int      `json:"total"`
	Succeeded     int      `json:"succeeded"`
	Skipped       int      `json:"skipped"`
	Failed        int      `json:"failed"`
	FailedTickers []string `json:"failed_tickers,omitempty"`
}

// Yahoo Finance chart API response (v8 /finance/chart/{symbol}).
type YahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

// YahooValue is Yahoo's {raw, fmt} number wrapper. Raw is nil when the
// provider has no value for the field.
type YahooValue struct {
	Raw *float64 `json:"raw"`
}

// Yahoo Finance quoteSummary response (v10 /finance/quoteSummary/{symbol}).
type YahooQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				ShortName string     `json:"shortName"`
				LongName  string     `json:"longName"`
				MarketCap YahooValue `json:"marketCap"`
			} `json:"price"`
			FinancialData struct {
				CurrentPrice    YahooValue `json:"currentPrice"`
				TargetMeanPrice YahooValue `json:"targetMeanPrice"`
				TargetLowPrice  YahooValue `json:"targetLowPrice"`
				TargetHighPrice YahooValue `json:"targetHighPrice"`
				DebtToEquity    YahooValue `json:"debtToEquity"`
			} `json:"financialData"`
			SummaryDetail struct {
				TrailingPE    YahooValue `json:"trailingPE"`
				DividendYield YahooValue `json:"dividendYield"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				PriceToBook YahooValue `json:"priceToBook"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"quoteSummary"`
}

// Yahoo trending feed response (v1 /finance/trending/{region}).
type YahooTrendingResponse struct {
	Finance struct {
		Result []struct {
			Quotes []struct {
				Symbol string `json:"symbol"`
			} `json:"quotes"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"finance"`
}

// StockTwits trending symbols response.
type StocktwitsTrendingResponse struct {
	Symbols []struct {
		Symbol string `json:"symbol"`
	} `json:"symbols"`
}
