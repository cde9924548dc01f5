package service

import (
	"stock-radar/config"
	"stock-radar/internal/repository"
	"stock-radar/pkg/cache"
	"stock-radar/pkg/logger"
)

type Service struct {
	RegistryService RegistryService
	IngestService   IngestService
	RankingService  RankingService
	ViewService     ViewService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
) *Service {
	registryService := NewRegistryService(log, repo.StockDataRepo, repo.SymbolSources)
	rankingService := NewRankingService()
	ingestService := NewIngestService(cfg, log, registryService, repo.YahooFinanceRepo, repo.StockDataRepo)
	viewService := NewViewService(cfg, log, repo.StockDataRepo, repo.YahooFinanceRepo, rankingService, inmemoryCache)

	return &Service{
		RegistryService: registryService,
		IngestService:   ingestService,
		RankingService:  rankingService,
		ViewService:     viewService,
	}
}
