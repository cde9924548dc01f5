package service

import (
	"context"
	"fmt"
	"sort"

	"stock-radar/internal/repository"
	"stock-radar/pkg/logger"
)

type RegistryService interface {
	Resolve(ctx context.Context) ([]string, error)
}

type registryService struct {
	log           *logger.Logger
	stockDataRepo repository.StockDataRepository
	sources       []repository.SymbolSourceRepository
}

func NewRegistryService(log *logger.Logger, stockDataRepo repository.StockDataRepository, sources []repository.SymbolSourceRepository) RegistryService {
	return &registryService{
		log:           log,
		stockDataRepo: stockDataRepo,
		sources:       sources,
	}
}

// Resolve unions the store's existing tickers with every discovery feed's
// output. Tickers already tracked keep being refreshed even when no feed
// currently surfaces them. A failed feed contributes nothing; a failed
// store read aborts the run.
func (s *registryService) Resolve(ctx context.Context) ([]string, error) {
	existing, err := s.stockDataRepo.GetTickers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read existing tickers: %w", err)
	}

	seen := make(map[string]bool)
	var tickers []string
	add := func(symbols []string) {
		for _, symbol := range symbols {
			if seen[symbol] {
				continue
			}
			seen[symbol] = true
			tickers = append(tickers, symbol)
		}
	}

	add(existing)
	for _, source := range s.sources {
		discovered := source.Discover(ctx)
		s.log.Info("Discovery feed resolved",
			logger.StringField("source", source.Name()),
			logger.IntField("count", len(discovered)))
		add(discovered)
	}

	// Order carries no meaning downstream; sort for stable logs.
	sort.Strings(tickers)

	s.log.Info("Ticker registry resolved",
		logger.IntField("existing", len(existing)),
		logger.IntField("total", len(tickers)))
	return tickers, nil
}
