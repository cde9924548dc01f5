package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"stock-radar/config"
	"stock-radar/internal/dto"
	"stock-radar/pkg/httpclient"
	"stock-radar/pkg/logger"
	"stock-radar/pkg/utils"

	"golang.org/x/time/rate"
)

type YahooFinanceRepository interface {
	GetFundamentals(ctx context.Context, ticker string) (*dto.Fundamentals, error)
	GetDailyHistory(ctx context.Context, ticker string, lookback string) ([]dto.ClosePoint, error)
}

var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "application/json, text/plain, */*",
	"Accept-Language": "en-US,en;q=0.9",
	"Referer":         "https://finance.yahoo.com/",
}

type yahooFinanceRepository struct {
	chartClient    httpclient.HTTPClient
	quoteClient    httpclient.HTTPClient
	cfg            *config.Config
	log            *logger.Logger
	requestLimiter *rate.Limiter
}

// NewYahooFinanceRepository builds the quote/history provider boundary. A
// shared rate limiter caps outbound requests across both endpoints so a
// full-universe run stays inside the provider's tolerance.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) YahooFinanceRepository {
	maxPerMinute := cfg.Yahoo.MaxRequestPerMinute
	if maxPerMinute <= 0 {
		maxPerMinute = 60
	}
	interval := time.Minute / time.Duration(maxPerMinute)
	return &yahooFinanceRepository{
		chartClient:    httpclient.New(cfg.Yahoo.ChartBaseURL, cfg.Yahoo.Timeout),
		quoteClient:    httpclient.New(cfg.Yahoo.QuoteBaseURL, cfg.Yahoo.Timeout),
		cfg:            cfg,
		log:            log,
		requestLimiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

func (r *yahooFinanceRepository) GetFundamentals(ctx context.Context, ticker string) (*dto.Fundamentals, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	queryParams := map[string]string{
		"modules": "price,financialData,summaryDetail,defaultKeyStatistics",
	}

	var quoteResp dto.YahooQuoteSummaryResponse
	resp, err := r.quoteClient.Get(ctx, "/"+ticker, queryParams, browserHeaders, &quoteResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fundamentals for %s: %w", ticker, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote summary returned status %d for %s", resp.StatusCode, ticker)
	}
	if quoteResp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quote summary error for %s: %v", ticker, quoteResp.QuoteSummary.Error)
	}
	if len(quoteResp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no quote summary data for %s", ticker)
	}

	result := quoteResp.QuoteSummary.Result[0]

	name := result.Price.LongName
	if name == "" {
		name = result.Price.ShortName
	}

	// Yahoo reports dividend yield as a fraction; the stored column is a
	// percentage. Zero is a real yield, so only present values are scaled.
	var dividendYieldPct *float64
	if raw := result.SummaryDetail.DividendYield.Raw; raw != nil {
		dividendYieldPct = utils.ToPointer(*raw * 100)
	}

	return &dto.Fundamentals{
		Ticker:           ticker,
		Name:             name,
		Price:            result.FinancialData.CurrentPrice.Raw,
		Target:           result.FinancialData.TargetMeanPrice.Raw,
		TargetLow:        result.FinancialData.TargetLowPrice.Raw,
		TargetHigh:       result.FinancialData.TargetHighPrice.Raw,
		PERatio:          result.SummaryDetail.TrailingPE.Raw,
		PriceToBook:      result.DefaultKeyStatistics.PriceToBook.Raw,
		DebtToEquity:     result.FinancialData.DebtToEquity.Raw,
		DividendYieldPct: dividendYieldPct,
		MarketCap:        result.Price.MarketCap.Raw,
	}, nil
}

// GetDailyHistory fetches daily closes for the given trailing window
// ("1y", "2y", ...), chronological ascending. Sessions with a missing or
// zero close are dropped.
func (r *yahooFinanceRepository) GetDailyHistory(ctx context.Context, ticker string, lookback string) ([]dto.ClosePoint, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	period1, period2 := lookbackToUnixRange(lookback)
	if period1 == 0 || period2 == 0 {
		return nil, fmt.Errorf("invalid history lookback: %s", lookback)
	}

	queryParams := map[string]string{
		"period1":        fmt.Sprintf("%d", period1),
		"period2":        fmt.Sprintf("%d", period2),
		"interval":       "1d",
		"includePrePost": "false",
		"events":         "div,split",
	}

	var chartResp dto.YahooChartResponse
	resp, err := r.chartClient.Get(ctx, "/"+ticker, queryParams, browserHeaders, &chartResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", ticker, err)
	}
	if resp.StatusCode != http.StatusOK {
		r.log.Error("Yahoo chart API returned non-OK status",
			logger.StringField("ticker", ticker),
			logger.IntField("status_code", resp.StatusCode))
		return nil, fmt.Errorf("chart api returned status %d for %s", resp.StatusCode, ticker)
	}
	if chartResp.Chart.Error != nil {
		return nil, fmt.Errorf("chart api error for %s: %v", ticker, chartResp.Chart.Error)
	}
	if len(chartResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart data for %s", ticker)
	}

	result := chartResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote series for %s", ticker)
	}

	closes := result.Indicators.Quote[0].Close
	var series []dto.ClosePoint
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == 0 {
			continue
		}
		series = append(series, dto.ClosePoint{Timestamp: ts, Close: closes[i]})
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("no usable close prices for %s", ticker)
	}
	return series, nil
}

func lookbackToUnixRange(lookback string) (int64, int64) {
	now := time.Now()
	switch lookback {
	case "1m":
		return now.AddDate(0, -1, 0).Unix(), now.Unix()
	case "3m":
		return now.AddDate(0, -3, 0).Unix(), now.Unix()
	case "6m":
		return now.AddDate(0, -6, 0).Unix(), now.Unix()
	case "1y":
		return now.AddDate(-1, 0, 0).Unix(), now.Unix()
	case "2y":
		return now.AddDate(-2, 0, 0).Unix(), now.Unix()
	default:
		return 0, 0
	}
}
