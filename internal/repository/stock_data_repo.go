package repository

import (
	"context"
	"time"

	"stock-radar/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockDataRepository interface {
	Upsert(ctx context.Context, stock *model.StockData) error
	Delete(ctx context.Context, ticker string) error
	ScanLatest(ctx context.Context) ([]model.StockData, error)
	GetTickers(ctx context.Context) ([]string, error)
	MaxObservedAt(ctx context.Context) (time.Time, error)
}

type stockDataRepository struct {
	db *gorm.DB
}

func NewStockDataRepository(db *gorm.DB) StockDataRepository {
	return &stockDataRepository{db: db}
}

// Upsert writes the full row for the ticker, replacing every column of any
// existing record. Fields the provider failed to supply this run overwrite
// previously known values with NULL; the store never merges partial rows.
func (r *stockDataRepository) Upsert(ctx context.Context, stock *model.StockData) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}},
		UpdateAll: true,
	}).Create(stock).Error
}

func (r *stockDataRepository) Delete(ctx context.Context, ticker string) error {
	return r.db.WithContext(ctx).Where("ticker = ?", ticker).Delete(&model.StockData{}).Error
}

// ScanLatest returns a point-in-time snapshot of every live record, in
// ticker order. With ticker-only keying every row is the latest by
// construction.
func (r *stockDataRepository) ScanLatest(ctx context.Context) ([]model.StockData, error) {
	var stocks []model.StockData
	if err := r.db.WithContext(ctx).Order("ticker ASC").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

func (r *stockDataRepository) GetTickers(ctx context.Context) ([]string, error) {
	var tickers []string
	err := r.db.WithContext(ctx).Model(&model.StockData{}).
		Order("ticker ASC").
		Pluck("ticker", &tickers).Error
	if err != nil {
		return nil, err
	}
	return tickers, nil
}

func (r *stockDataRepository) MaxObservedAt(ctx context.Context) (time.Time, error) {
	var maxObserved *time.Time
	err := r.db.WithContext(ctx).Model(&model.StockData{}).
		Select("MAX(observed_at)").
		Scan(&maxObserved).Error
	if err != nil {
		return time.Time{}, err
	}
	if maxObserved == nil {
		return time.Time{}, nil
	}
	return *maxObserved, nil
}
