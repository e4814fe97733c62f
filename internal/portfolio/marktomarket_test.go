package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfino-trader/internal/models"
)

func TestMarkToMarketRevaluesPositions(t *testing.T) {
	quotes := testQuotes()
	l := New(quotes, Config{InitialVirtual: 200_000})

	_, err := l.ExecuteTrade(OrderRequest{Symbol: "RELIANCE", Quantity: 10, Side: models.OrderSideBuy, Kind: models.OrderKindMarket})
	require.NoError(t, err)

	// Price moves up.
	quotes["RELIANCE"] = models.Quote{Symbol: "RELIANCE", LTP: 1520, PrevClose: 1480}
	summary := l.MarkToMarket()

	pos, ok := l.Position("RELIANCE")
	require.True(t, ok)
	assert.Equal(t, 1520.0, pos.LTP)
	assert.Equal(t, 15_200.0, pos.CurrentValue)
	assert.Equal(t, 15_000.0, pos.InvestedValue)
	assert.InDelta(t, 200.0, pos.PnL, 1e-9)

	assert.Equal(t, 15_000.0, summary.TotalInvested)
	assert.Equal(t, 15_200.0, summary.TotalCurrentValue)
	assert.InDelta(t, 200.0, summary.TotalPnL, 1e-9)
	assert.InDelta(t, (1520.0-1480.0)*10, summary.TodayPnL, 1e-9)
	assert.Equal(t, summary.TotalInvested, summary.MarginUsed)
}

func TestMarkToMarketAggregatesAcrossPositions(t *testing.T) {
	quotes := testQuotes()
	l := New(quotes, Config{InitialVirtual: 500_000})

	_, err := l.ExecuteTrade(OrderRequest{Symbol: "RELIANCE", Quantity: 10, Side: models.OrderSideBuy, Kind: models.OrderKindMarket})
	require.NoError(t, err)
	_, err = l.ExecuteTrade(OrderRequest{Symbol: "TCS", Quantity: 5, Side: models.OrderSideBuy, Kind: models.OrderKindMarket})
	require.NoError(t, err)

	summary := l.MarkToMarket()
	assert.Equal(t, 10*1500.0+5*3000.0, summary.TotalInvested)
	assert.Equal(t, summary.TotalCurrentValue-summary.TotalInvested, summary.TotalPnL)
}

func TestMarkToMarketKeepsValuesWhenQuoteMissing(t *testing.T) {
	quotes := testQuotes()
	l := New(quotes, Config{InitialVirtual: 200_000})

	_, err := l.ExecuteTrade(OrderRequest{Symbol: "RELIANCE", Quantity: 10, Side: models.OrderSideBuy, Kind: models.OrderKindMarket})
	require.NoError(t, err)
	l.MarkToMarket()

	before, _ := l.Position("RELIANCE")
	delete(quotes, "RELIANCE")
	summary := l.MarkToMarket()

	after, _ := l.Position("RELIANCE")
	assert.Equal(t, before.CurrentValue, after.CurrentValue)
	assert.Equal(t, before.PnL, after.PnL)
	// The stale values still count toward the aggregates.
	assert.Equal(t, before.InvestedValue, summary.TotalInvested)
	assert.Equal(t, before.CurrentValue, summary.TotalCurrentValue)
}

func TestMarkToMarketStoresSummary(t *testing.T) {
	l := newTestLedger()

	summary := l.MarkToMarket()
	assert.Equal(t, models.PortfolioSummary{}, summary)
	assert.Equal(t, summary, l.Summary())
}

func TestSummaryWithLoss(t *testing.T) {
	quotes := testQuotes()
	l := New(quotes, Config{InitialVirtual: 200_000})

	_, err := l.ExecuteTrade(OrderRequest{Symbol: "RELIANCE", Quantity: 10, Side: models.OrderSideBuy, Kind: models.OrderKindMarket})
	require.NoError(t, err)

	quotes["RELIANCE"] = models.Quote{Symbol: "RELIANCE", LTP: 1450, PrevClose: 1480}
	summary := l.MarkToMarket()

	assert.InDelta(t, -500.0, summary.TotalPnL, 1e-9)
	assert.InDelta(t, (1450.0-1480.0)*10, summary.TodayPnL, 1e-9)
}
