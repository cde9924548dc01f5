package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"stock-radar/config"
	"stock-radar/internal/dto"
	"stock-radar/internal/model"
	"stock-radar/internal/repository"
	"stock-radar/pkg/logger"
	"stock-radar/pkg/utils"

	"golang.org/x/sync/errgroup"
)

type IngestService interface {
	Run(ctx context.Context) (*dto.RunReport, error)
}

type ingestService struct {
	cfg           *config.Config
	log           *logger.Logger
	registry      RegistryService
	yahooRepo     repository.YahooFinanceRepository
	stockDataRepo repository.StockDataRepository
}

func NewIngestService(
	cfg *config.Config,
	log *logger.Logger,
	registry RegistryService,
	yahooRepo repository.YahooFinanceRepository,
	stockDataRepo repository.StockDataRepository,
) IngestService {
	return &ingestService{
		cfg:           cfg,
		log:           log,
		registry:      registry,
		yahooRepo:     yahooRepo,
		stockDataRepo: stockDataRepo,
	}
}

type tickerOutcome int

const (
	outcomeSucceeded tickerOutcome = iota
	outcomeSkipped
	outcomeFailed
)

// Run executes one full discovery-and-refresh cycle. Each ticker is fetched,
// derived and upserted independently: fetch failures are counted and logged
// but never abort the run, and each upsert commits on its own, so an
// interrupted run leaves already-refreshed tickers in place. Only a store
// failure makes Run return an error.
func (s *ingestService) Run(ctx context.Context) (*dto.RunReport, error) {
	tickers, err := s.registry.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	observedAt := time.Now().UTC()
	report := &dto.RunReport{Total: len(tickers)}

	if len(tickers) == 0 {
		s.log.Info("No tickers to ingest")
		return report, nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	maxConcurrency := s.cfg.Ingest.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		storeErr  error
		semaphore = make(chan struct{}, maxConcurrency)
	)

	s.log.Info("Starting ingestion run",
		logger.IntField("total_tickers", len(tickers)),
		logger.IntField("max_concurrency", maxConcurrency))

	for _, ticker := range tickers {
		if !utils.ShouldContinue(runCtx, s.log) {
			break
		}

		wg.Add(1)
		semaphore <- struct{}{}

		ticker := ticker
		utils.GoSafe(func() {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			outcome, err := s.processTicker(runCtx, ticker, observedAt)

			mu.Lock()
			defer mu.Unlock()
			switch outcome {
			case outcomeSucceeded:
				report.Succeeded++
			case outcomeSkipped:
				report.Skipped++
			case outcomeFailed:
				report.Failed++
				report.FailedTickers = append(report.FailedTickers, ticker)
				var upsertErr *storeFailure
				if errors.As(err, &upsertErr) && storeErr == nil {
					storeErr = upsertErr.err
					cancel()
				}
			}
		})
	}

	wg.Wait()

	s.log.Info("Ingestion run finished",
		logger.IntField("total", report.Total),
		logger.IntField("succeeded", report.Succeeded),
		logger.IntField("skipped", report.Skipped),
		logger.IntField("failed", report.Failed))

	if storeErr != nil {
		return report, fmt.Errorf("store failure during ingestion: %w", storeErr)
	}
	return report, nil
}

// processTicker fetches fundamentals and two years of daily history in
// parallel, derives the four momentum windows from that single series, and
// upserts one complete row. A ticker without a usable price writes nothing.
func (s *ingestService) processTicker(ctx context.Context, ticker string, observedAt time.Time) (tickerOutcome, error) {
	fetchCtx := ctx
	if s.cfg.Ingest.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.cfg.Ingest.Timeout)
		defer cancel()
	}

	var (
		fundamentals *dto.Fundamentals
		series       []dto.ClosePoint
	)

	g, gctx := errgroup.WithContext(fetchCtx)
	g.Go(func() error {
		var err error
		fundamentals, err = s.yahooRepo.GetFundamentals(gctx, ticker)
		return err
	})
	g.Go(func() error {
		var err error
		series, err = s.yahooRepo.GetDailyHistory(gctx, ticker, s.cfg.Ingest.HistoryRange)
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Warn("Ticker fetch failed",
			logger.StringField("ticker", ticker),
			logger.ErrorField(err))
		return outcomeFailed, err
	}

	if fundamentals.Price == nil {
		s.log.Debug("Skipping ticker without price", logger.StringField("ticker", ticker))
		return outcomeSkipped, nil
	}

	record := &model.StockData{
		Ticker:           ticker,
		ObservedAt:       observedAt,
		Name:             fundamentals.Name,
		Price:            fundamentals.Price,
		Target:           fundamentals.Target,
		TargetLow:        fundamentals.TargetLow,
		TargetHigh:       fundamentals.TargetHigh,
		PERatio:          fundamentals.PERatio,
		PriceToBook:      fundamentals.PriceToBook,
		DebtToEquity:     fundamentals.DebtToEquity,
		DividendYieldPct: fundamentals.DividendYieldPct,
		Mom1D:            momentum(series, lookback1D),
		Mom1M:            momentum(series, lookback1M),
		Mom3M:            momentum(series, lookback3M),
		Mom1Y:            momentum(series, lookback1Y),
		MarketCap:        fundamentals.MarketCap,
	}

	if err := s.stockDataRepo.Upsert(ctx, record); err != nil {
		s.log.Error("Failed to upsert ticker",
			logger.StringField("ticker", ticker),
			logger.ErrorField(err))
		return outcomeFailed, &storeFailure{err: err}
	}

	s.log.Debug("Ticker refreshed", logger.StringField("ticker", ticker))
	return outcomeSucceeded, nil
}

// storeFailure marks errors from the persistence layer so Run can tell them
// apart from provider errors: fetch failures are contained, store failures
// abort the run.
type storeFailure struct {
	err error
}

func (e *storeFailure) Error() string {
	return e.err.Error()
}

func (e *storeFailure) Unwrap() error {
	return e.err
}
