package repository

import (
	"stock-radar/config"
	"stock-radar/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	StockDataRepo    StockDataRepository
	YahooFinanceRepo YahooFinanceRepository
	SymbolSources    []SymbolSourceRepository
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger) *Repository {
	var sources []SymbolSourceRepository
	for _, region := range cfg.Discovery.TrendingRegions {
		sources = append(sources, NewYahooTrendingRepository(cfg, log, region))
	}
	for _, category := range cfg.Discovery.FinvizCategories {
		sources = append(sources, NewFinvizScreenerRepository(cfg, log, category))
	}
	if cfg.Discovery.StocktwitsBaseURL != "" {
		sources = append(sources, NewStocktwitsRepository(cfg, log))
	}

	return &Repository{
		StockDataRepo:    NewStockDataRepository(db),
		YahooFinanceRepo: NewYahooFinanceRepository(cfg, log),
		SymbolSources:    sources,
	}
}
