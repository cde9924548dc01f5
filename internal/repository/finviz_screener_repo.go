package repository

import (
	"bytes"
	"context"
	"net/http"

	"stock-radar/config"
	"stock-radar/pkg/httpclient"
	"stock-radar/pkg/logger"

	"github.com/PuerkitoBio/goquery"
)

// finvizScreenerRepository scrapes one Finviz screener page (top gainers,
// most active, ...) for ticker symbols. Screener markup drifts; anything
// that fails to parse simply yields no candidates.
type finvizScreenerRepository struct {
	httpClient httpclient.HTTPClient
	log        *logger.Logger
	category   string
}

func NewFinvizScreenerRepository(cfg *config.Config, log *logger.Logger, category string) SymbolSourceRepository {
	return &finvizScreenerRepository{
		httpClient: httpclient.New(cfg.Discovery.FinvizBaseURL, cfg.Discovery.Timeout),
		log:        log,
		category:   category,
	}
}

func (r *finvizScreenerRepository) Name() string {
	return "finviz-" + r.category
}

func (r *finvizScreenerRepository) Discover(ctx context.Context) []string {
	queryParams := map[string]string{
		"v": "111",
		"s": r.category,
	}
	headers := map[string]string{
		"User-Agent":      browserHeaders["User-Agent"],
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
		"Referer":         "https://finviz.com/",
	}

	resp, err := r.httpClient.Get(ctx, "/screener.ashx", queryParams, headers, nil)
	if err != nil {
		r.log.Warn("Finviz fetch failed",
			logger.StringField("category", r.category),
			logger.ErrorField(err))
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		r.log.Warn("Finviz returned non-OK status",
			logger.StringField("category", r.category),
			logger.IntField("status_code", resp.StatusCode))
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		r.log.Warn("Finviz HTML parse failed",
			logger.StringField("category", r.category),
			logger.ErrorField(err))
		return nil
	}

	var symbols []string
	doc.Find("a.tab-link").Each(func(_ int, sel *goquery.Selection) {
		symbols = append(symbols, sel.Text())
	})

	filtered := filterSymbols(symbols)
	r.log.Debug("Finviz discovered symbols",
		logger.StringField("category", r.category),
		logger.IntField("count", len(filtered)))
	return filtered
}
