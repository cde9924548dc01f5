package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"stock-radar/internal/dto"
	"stock-radar/internal/model"
)

type fakeStockDataRepo struct {
	mu        sync.Mutex
	records   map[string]model.StockData
	upsertErr error
	scanErr   error
	readErr   error
}

func newFakeStockDataRepo(records ...model.StockData) *fakeStockDataRepo {
	m := make(map[string]model.StockData)
	for _, r := range records {
		m[r.Ticker] = r
	}
	return &fakeStockDataRepo{records: m}
}

func (f *fakeStockDataRepo) Upsert(_ context.Context, stock *model.StockData) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[stock.Ticker] = *stock
	return nil
}

func (f *fakeStockDataRepo) Delete(_ context.Context, ticker string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, ticker)
	return nil
}

func (f *fakeStockDataRepo) ScanLatest(_ context.Context) ([]model.StockData, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.StockData
	for _, r := range f.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out, nil
}

func (f *fakeStockDataRepo) GetTickers(_ context.Context) ([]string, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for t := range f.records {
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeStockDataRepo) MaxObservedAt(_ context.Context) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var max time.Time
	for _, r := range f.records {
		if r.ObservedAt.After(max) {
			max = r.ObservedAt
		}
	}
	return max, nil
}

type fakeYahooRepo struct {
	fundamentals map[string]*dto.Fundamentals
	history      map[string][]dto.ClosePoint
	failTickers  map[string]bool
}

func (f *fakeYahooRepo) GetFundamentals(_ context.Context, ticker string) (*dto.Fundamentals, error) {
	if f.failTickers[ticker] {
		return nil, fmt.Errorf("provider error for %s", ticker)
	}
	if fund, ok := f.fundamentals[ticker]; ok {
		return fund, nil
	}
	return nil, fmt.Errorf("no quote summary data for %s", ticker)
}

func (f *fakeYahooRepo) GetDailyHistory(_ context.Context, ticker string, _ string) ([]dto.ClosePoint, error) {
	if f.failTickers[ticker] {
		return nil, fmt.Errorf("provider error for %s", ticker)
	}
	return f.history[ticker], nil
}

type fakeSymbolSource struct {
	name    string
	symbols []string
}

func (f *fakeSymbolSource) Name() string { return f.name }

func (f *fakeSymbolSource) Discover(_ context.Context) []string { return f.symbols }

func closeSeries(closes ...float64) []dto.ClosePoint {
	series := make([]dto.ClosePoint, len(closes))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		series[i] = dto.ClosePoint{Timestamp: base.AddDate(0, 0, i).Unix(), Close: c}
	}
	return series
}

func ptr(v float64) *float64 { return &v }
