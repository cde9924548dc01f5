package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"stock-radar/config"
	"stock-radar/internal/dto"
	"stock-radar/internal/model"
	"stock-radar/pkg/cache"
	"stock-radar/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViewFixture(store *fakeStockDataRepo, yahoo *fakeYahooRepo) ViewService {
	cfg := &config.Config{
		View: config.View{
			PageSize:    10,
			SnapshotTTL: time.Minute,
		},
	}
	if yahoo == nil {
		yahoo = &fakeYahooRepo{}
	}
	return NewViewService(cfg, logger.NewNop(), store, yahoo, NewRankingService(), cache.NewCache(time.Minute, time.Minute))
}

func TestGetPageHidesUnpricedRows(t *testing.T) {
	store := newFakeStockDataRepo(
		model.StockData{Ticker: "AAPL", Price: ptr(190)},
		model.StockData{Ticker: "GHOST"},
	)
	svc := newViewFixture(store, nil)

	page, err := svc.GetPage(context.Background(), dto.GetStocksRequest{})
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "AAPL", page.Rows[0].Ticker)
	assert.Equal(t, 1, page.TotalRows)
}

func TestGetPageDefaultSortScoreDescending(t *testing.T) {
	// A has the stronger momentum and upside on every signal present.
	store := newFakeStockDataRepo(
		model.StockData{Ticker: "B", Price: ptr(20), Target: ptr(18), Mom1Y: ptr(-10)},
		model.StockData{Ticker: "A", Price: ptr(10), Target: ptr(12), Mom1Y: ptr(20)},
	)
	svc := newViewFixture(store, nil)

	page, err := svc.GetPage(context.Background(), dto.GetStocksRequest{})
	require.NoError(t, err)
	require.Len(t, page.Rows, 2)
	assert.Equal(t, "A", page.Rows[0].Ticker)
	assert.Equal(t, "B", page.Rows[1].Ticker)
	assert.Greater(t, page.Rows[0].Score, page.Rows[1].Score)

	require.NotNil(t, page.Rows[0].TargetUpsidePct)
	assert.InDelta(t, 20, *page.Rows[0].TargetUpsidePct, 1e-9)
	require.NotNil(t, page.Rows[1].TargetUpsidePct)
	assert.InDelta(t, -10, *page.Rows[1].TargetUpsidePct, 1e-9)
}

func TestGetPageNullsSortLast(t *testing.T) {
	store := newFakeStockDataRepo(
		model.StockData{Ticker: "HI", Price: ptr(1), Mom1Y: ptr(30)},
		model.StockData{Ticker: "LO", Price: ptr(1), Mom1Y: ptr(-5)},
		model.StockData{Ticker: "NA", Price: ptr(1)},
	)
	svc := newViewFixture(store, nil)

	asc, err := svc.GetPage(context.Background(), dto.GetStocksRequest{Sort: "mom_1y", Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"LO", "HI", "NA"}, tickers(asc.Rows))

	desc, err := svc.GetPage(context.Background(), dto.GetStocksRequest{Sort: "mom_1y", Order: "desc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"HI", "LO", "NA"}, tickers(desc.Rows))
}

func TestGetPagePagination(t *testing.T) {
	var records []model.StockData
	for i := 0; i < 12; i++ {
		records = append(records, model.StockData{
			Ticker: fmt.Sprintf("T%02d", i),
			Price:  ptr(float64(i + 1)),
		})
	}
	store := newFakeStockDataRepo(records...)
	svc := newViewFixture(store, nil)

	first, err := svc.GetPage(context.Background(), dto.GetStocksRequest{Sort: "ticker", Order: "asc", Page: 1})
	require.NoError(t, err)
	assert.Len(t, first.Rows, 10)
	assert.Equal(t, 12, first.TotalRows)
	assert.Equal(t, 2, first.TotalPages)
	assert.Equal(t, "T00", first.Rows[0].Ticker)

	second, err := svc.GetPage(context.Background(), dto.GetStocksRequest{Sort: "ticker", Order: "asc", Page: 2})
	require.NoError(t, err)
	assert.Len(t, second.Rows, 2)
	assert.Equal(t, "T10", second.Rows[0].Ticker)

	// A page past the end is empty, not an error.
	third, err := svc.GetPage(context.Background(), dto.GetStocksRequest{Sort: "ticker", Order: "asc", Page: 3})
	require.NoError(t, err)
	assert.Empty(t, third.Rows)
	assert.Equal(t, 2, third.TotalPages)
}

func TestDeleteTickerInvalidatesSnapshot(t *testing.T) {
	store := newFakeStockDataRepo(
		model.StockData{Ticker: "AAPL", Price: ptr(190)},
		model.StockData{Ticker: "MSFT", Price: ptr(410)},
	)
	svc := newViewFixture(store, nil)

	warm, err := svc.GetPage(context.Background(), dto.GetStocksRequest{})
	require.NoError(t, err)
	require.Len(t, warm.Rows, 2)

	require.NoError(t, svc.DeleteTicker(context.Background(), "MSFT"))

	// The cached snapshot was dropped, so the next page re-scans the store.
	after, err := svc.GetPage(context.Background(), dto.GetStocksRequest{})
	require.NoError(t, err)
	require.Len(t, after.Rows, 1)
	assert.Equal(t, "AAPL", after.Rows[0].Ticker)
}

func TestGetDetail(t *testing.T) {
	yahoo := &fakeYahooRepo{
		fundamentals: map[string]*dto.Fundamentals{
			"AAPL": {Ticker: "AAPL", Name: "Apple Inc.", Price: ptr(190)},
		},
		history: map[string][]dto.ClosePoint{
			"AAPL": closeSeries(180, 185, 190),
		},
		failTickers: map[string]bool{"DOWN": true},
	}
	svc := newViewFixture(newFakeStockDataRepo(), yahoo)

	detail, err := svc.GetDetail(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", detail.Fundamentals.Name)
	assert.Len(t, detail.History, 3)

	_, err = svc.GetDetail(context.Background(), "DOWN")
	assert.Error(t, err)
}

func TestLastUpdatedAt(t *testing.T) {
	observed := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	store := newFakeStockDataRepo(
		model.StockData{Ticker: "OLD", Price: ptr(1), ObservedAt: observed.Add(-24 * time.Hour)},
		model.StockData{Ticker: "NEW", Price: ptr(1), ObservedAt: observed},
	)
	svc := newViewFixture(store, nil)

	got, err := svc.LastUpdatedAt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, observed, got)

	empty := newViewFixture(newFakeStockDataRepo(), nil)
	got, err = empty.LastUpdatedAt(context.Background())
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func tickers(rows []dto.StockRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Ticker
	}
	return out
}
