package repository

import (
	"context"
	"net/http"

	"stock-radar/config"
	"stock-radar/internal/dto"
	"stock-radar/pkg/httpclient"
	"stock-radar/pkg/logger"
)

// yahooTrendingRepository discovers symbols from Yahoo's trending feed for
// a single region.
type yahooTrendingRepository struct {
	httpClient httpclient.HTTPClient
	log        *logger.Logger
	region     string
}

func NewYahooTrendingRepository(cfg *config.Config, log *logger.Logger, region string) SymbolSourceRepository {
	return &yahooTrendingRepository{
		httpClient: httpclient.New(cfg.Discovery.TrendingBaseURL, cfg.Discovery.Timeout),
		log:        log,
		region:     region,
	}
}

func (r *yahooTrendingRepository) Name() string {
	return "yahoo-trending-" + r.region
}

func (r *yahooTrendingRepository) Discover(ctx context.Context) []string {
	var trendingResp dto.YahooTrendingResponse
	resp, err := r.httpClient.Get(ctx, "/"+r.region, nil, browserHeaders, &trendingResp)
	if err != nil {
		r.log.Warn("Yahoo trending fetch failed",
			logger.StringField("region", r.region),
			logger.ErrorField(err))
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		r.log.Warn("Yahoo trending returned non-OK status",
			logger.StringField("region", r.region),
			logger.IntField("status_code", resp.StatusCode))
		return nil
	}
	if trendingResp.Finance.Error != nil {
		r.log.Warn("Yahoo trending reported an error",
			logger.StringField("region", r.region),
			logger.Field("error", trendingResp.Finance.Error))
		return nil
	}

	var symbols []string
	for _, result := range trendingResp.Finance.Result {
		for _, quote := range result.Quotes {
			symbols = append(symbols, quote.Symbol)
		}
	}

	filtered := filterSymbols(symbols)
	r.log.Debug("Yahoo trending discovered symbols",
		logger.StringField("region", r.region),
		logger.IntField("count", len(filtered)))
	return filtered
}
