package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"stock-radar/config"
	"stock-radar/internal/dto"
	"stock-radar/internal/model"
	"stock-radar/internal/repository"
	"stock-radar/pkg/cache"
	"stock-radar/pkg/logger"
)

const snapshotCacheKey = "stock_data:snapshot"

const defaultPageSize = 10

type ViewService interface {
	GetPage(ctx context.Context, req dto.GetStocksRequest) (*dto.StockPage, error)
	DeleteTicker(ctx context.Context, ticker string) error
	GetDetail(ctx context.Context, ticker string) (*dto.StockDetail, error)
	LastUpdatedAt(ctx context.Context) (time.Time, error)
}

type viewService struct {
	cfg           *config.Config
	log           *logger.Logger
	stockDataRepo repository.StockDataRepository
	yahooRepo     repository.YahooFinanceRepository
	ranking       RankingService
	cache         cache.Cache
}

func NewViewService(
	cfg *config.Config,
	log *logger.Logger,
	stockDataRepo repository.StockDataRepository,
	yahooRepo repository.YahooFinanceRepository,
	ranking RankingService,
	inmemoryCache cache.Cache,
) ViewService {
	return &viewService{
		cfg:           cfg,
		log:           log,
		stockDataRepo: stockDataRepo,
		yahooRepo:     yahooRepo,
		ranking:       ranking,
		cache:         inmemoryCache,
	}
}

// snapshot returns the scored view rows: one store scan, NULL-price rows
// dropped, target upside derived, ranking score annotated. The result is
// cached until the TTL elapses or a delete invalidates it.
func (s *viewService) snapshot(ctx context.Context) ([]dto.StockRow, error) {
	if cached, ok := s.cache.Get(snapshotCacheKey); ok {
		if rows, ok := cached.([]dto.StockRow); ok {
			return rows, nil
		}
	}

	records, err := s.stockDataRepo.ScanLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan stock data: %w", err)
	}

	var priced []model.StockData
	for _, record := range records {
		if record.Price == nil {
			continue
		}
		priced = append(priced, record)
	}

	ranked := s.ranking.Rank(priced, s.cfg.Ranking.Weights)

	rows := make([]dto.StockRow, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, dto.StockRow{
			StockData:       r.Stock,
			TargetUpsidePct: r.Stock.TargetUpsidePct(),
			Score:           r.Score,
		})
	}

	s.cache.Set(snapshotCacheKey, rows, s.cfg.View.SnapshotTTL)
	return rows, nil
}

func (s *viewService) GetPage(ctx context.Context, req dto.GetStocksRequest) (*dto.StockPage, error) {
	rows, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	sortColumn := req.Sort
	if sortColumn == "" {
		sortColumn = "score"
	}
	ascending := req.Order == "asc"
	if req.Order == "" && sortColumn == "score" {
		ascending = false
	}

	sorted := make([]dto.StockRow, len(rows))
	copy(sorted, rows)
	sortRows(sorted, sortColumn, ascending)

	pageSize := s.cfg.View.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	page := req.Page
	if page < 1 {
		page = 1
	}

	totalRows := len(sorted)
	totalPages := (totalRows + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	if start > totalRows {
		start = totalRows
	}
	end := start + pageSize
	if end > totalRows {
		end = totalRows
	}

	return &dto.StockPage{
		Rows:       sorted[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalRows:  totalRows,
		TotalPages: totalPages,
	}, nil
}

// DeleteTicker removes the record and synchronously invalidates the cached
// snapshot so the next page reflects the store's current contents.
func (s *viewService) DeleteTicker(ctx context.Context, ticker string) error {
	if err := s.stockDataRepo.Delete(ctx, ticker); err != nil {
		return fmt.Errorf("failed to delete ticker %s: %w", ticker, err)
	}
	s.cache.Delete(snapshotCacheKey)
	s.log.Info("Ticker deleted", logger.StringField("ticker", ticker))
	return nil
}

// LastUpdatedAt reports when the newest record in the store was observed.
// Zero time means the store is empty.
func (s *viewService) LastUpdatedAt(ctx context.Context) (time.Time, error) {
	return s.stockDataRepo.MaxObservedAt(ctx)
}

// GetDetail hits the live provider for fundamentals plus one year of daily
// closes, bypassing the store. Provider failure is returned to the caller
// as an error, never a crash.
func (s *viewService) GetDetail(ctx context.Context, ticker string) (*dto.StockDetail, error) {
	fundamentals, err := s.yahooRepo.GetFundamentals(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch detail for %s: %w", ticker, err)
	}
	history, err := s.yahooRepo.GetDailyHistory(ctx, ticker, "1y")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", ticker, err)
	}
	return &dto.StockDetail{
		Fundamentals: fundamentals,
		History:      history,
	}, nil
}

// sortRows sorts in place by the given column. NULL values go last
// regardless of direction; equal values keep their prior order.
func sortRows(rows []dto.StockRow, column string, ascending bool) {
	switch column {
	case "ticker":
		sort.SliceStable(rows, func(i, j int) bool {
			if ascending {
				return rows[i].Ticker < rows[j].Ticker
			}
			return rows[i].Ticker > rows[j].Ticker
		})
	case "name":
		sort.SliceStable(rows, func(i, j int) bool {
			if ascending {
				return rows[i].Name < rows[j].Name
			}
			return rows[i].Name > rows[j].Name
		})
	case "score":
		sort.SliceStable(rows, func(i, j int) bool {
			if ascending {
				return rows[i].Score < rows[j].Score
			}
			return rows[i].Score > rows[j].Score
		})
	default:
		value := numericColumn(column)
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := value(&rows[i]), value(&rows[j])
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			if ascending {
				return *a < *b
			}
			return *a > *b
		})
	}
}

func numericColumn(column string) func(*dto.StockRow) *float64 {
	switch column {
	case "price":
		return func(r *dto.StockRow) *float64 { return r.Price }
	case "target":
		return func(r *dto.StockRow) *float64 { return r.Target }
	case "target_low":
		return func(r *dto.StockRow) *float64 { return r.TargetLow }
	case "target_high":
		return func(r *dto.StockRow) *float64 { return r.TargetHigh }
	case "price_to_book":
		return func(r *dto.StockRow) *float64 { return r.PriceToBook }
	case "mom_1d":
		return func(r *dto.StockRow) *float64 { return r.Mom1D }
	case "mom_1m":
		return func(r *dto.StockRow) *float64 { return r.Mom1M }
	case "mom_3m":
		return func(r *dto.StockRow) *float64 { return r.Mom3M }
	case "mom_1y":
		return func(r *dto.StockRow) *float64 { return r.Mom1Y }
	default: // target_upside
		return func(r *dto.StockRow) *float64 { return r.TargetUpsidePct }
	}
}
