package repository

import (
	"context"
	"net/http"

	"stock-radar/config"
	"stock-radar/internal/dto"
	"stock-radar/pkg/httpclient"
	"stock-radar/pkg/logger"
)

// stocktwitsRepository discovers symbols from the StockTwits trending list.
type stocktwitsRepository struct {
	httpClient httpclient.HTTPClient
	log        *logger.Logger
}

func NewStocktwitsRepository(cfg *config.Config, log *logger.Logger) SymbolSourceRepository {
	return &stocktwitsRepository{
		httpClient: httpclient.New(cfg.Discovery.StocktwitsBaseURL, cfg.Discovery.Timeout),
		log:        log,
	}
}

func (r *stocktwitsRepository) Name() string {
	return "stocktwits-trending"
}

func (r *stocktwitsRepository) Discover(ctx context.Context) []string {
	headers := map[string]string{
		"User-Agent": browserHeaders["User-Agent"],
		"Referer":    "https://stocktwits.com/",
		"Origin":     "https://stocktwits.com",
	}

	var trendingResp dto.StocktwitsTrendingResponse
	resp, err := r.httpClient.Get(ctx, "/api/2/trending/symbols.json", nil, headers, &trendingResp)
	if err != nil {
		r.log.Warn("StockTwits fetch failed", logger.ErrorField(err))
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		r.log.Warn("StockTwits returned non-OK status",
			logger.IntField("status_code", resp.StatusCode))
		return nil
	}

	var symbols []string
	for _, s := range trendingResp.Symbols {
		symbols = append(symbols, s.Symbol)
	}

	filtered := filterSymbols(symbols)
	r.log.Debug("StockTwits discovered symbols", logger.IntField("count", len(filtered)))
	return filtered
}
