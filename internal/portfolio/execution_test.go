package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfino-trader/internal/models"
)

func TestBuyOpensPosition(t *testing.T) {
	l := fundedLedger(t, 200_000)

	order, err := l.ExecuteTrade(OrderRequest{Symbol: "RELIANCE", Quantity: 10, Side: models.OrderSideBuy, Kind: models.OrderKindMarket})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusExecuted, order.Status)
	assert.Equal(t, 1500.0, order.Price)
	assert.Equal(t, 185_000.0, l.Balance().Virtual)

	pos, ok := l.Position("RELIANCE")
	require.True(t, ok)
	assert.Equal(t, 10, pos.Quantity)
	assert.Equal(t, 1500.0, pos.AvgPrice)
	assert.Equal(t, 15_000.0, pos.InvestedValue)
}

func TestBuyAveragesIntoExistingPosition(t *testing.T) {
	l := fundedLedger(t, 200_000)

	_, err := l.ExecuteTrade(OrderRequest{Symbol: "RELIANCE", Quantity: 10, Side: models.OrderSideBuy, Kind: models.OrderKindLimit, LimitPrice: 1400})
	require.NoError(t, err)
	_, err = l.ExecuteTrade(OrderRequest{Symbol: "RELIANCE", Quantity: 10, Side: models.OrderSideBuy, Kind: models.OrderKindLimit, LimitPrice: 1600})
	require.NoError(t, err)

	pos, ok := l.Position("RELIANCE")
	require.True(t, ok)
	assert.Equal(t, 20, pos.Quantity)
	assert.InDelta(t, 1500.0, pos.AvgPrice, 1e-9)
	assert.InDelta(t, 30_000.0, pos.InvestedValue, 1e-9)
}

func TestBuyInsufficientVirtualBalance(t *testing.T) {
	l := fundedLedger(t, 1000)

	_, err := l.ExecuteTrade(OrderRequest{Symbol: "RELIANCE", Quantity: 1, Side: models.OrderSideBuy, Kind: models.OrderKindMarket})
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// Failed validation leaves no trace.
	assert.Equal(t, 1000.0, l.Balance().Virtual)
	assert.Empty(t, l.Positions())
	assert.Empty(t, l.Orders())
}

func TestBuyUnknownSymbol(t *testing.T) {
	l := fundedLedger(t, 200_000)

	_, err := l.ExecuteTrade(OrderRequest{Symbol: "NOSUCH", Quantity: 1, Side: models.OrderSideBuy, Kind: models.OrderKindMarket})
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestOrderRejectsNonPositiveQuantity(t *testing.T) {
	l := fundedLedger(t, 200_000)

	_, err := l.ExecuteTrade(OrderRequest{Symbol: "RELIANCE", Quantity: 0, Side: models.OrderSideBuy, Kind: models.OrderKindMarket})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = l.ExecuteTrade(OrderRequest{Symbol: "RELIANCE", Quantity: -3, Side: models.OrderSideBuy, Kind: models.OrderKindMarket})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestLimitOrderExecutesAtLimitPrice(t *testing.T) {
	l := fundedLedger(t, 200_000)

	order, err := l.ExecuteTrade(OrderRequest{Symbol: "TCS", Quantity: 5, Side: models.OrderSideBuy, Kind: models.OrderKindLimit, LimitPrice: 2950})
	require.NoError(t, err)

	assert.Equal(t, 2950.0, order.Price)
	assert.Equal(t, 200_000.0-5*2950, l.Balance().Virtual)
}

func TestLimitOrderWithoutPriceFallsBackToLTP(t *testing.T) {
	l := fundedLedger(t, 200_000)

	order, err := l.ExecuteTrade(OrderRequest{Symbol: "TCS", Quantity: 1, Side: models.OrderSideBuy, Kind: models.OrderKindLimit})
	require.NoError(t, err)
	assert.Equal(t, 3000.0, order.Price)
}

func TestSellPartialKeepsAvgPrice(t *testing.T) {
	l := fundedLedger(t, 200_000)

	_, err := l.ExecuteTrade(OrderRequest{Symbol: "RELIANCE", Quantity: 10, Side: models.OrderSideBuy, Kind: models.OrderKindMarket})
	require.NoError(t, err)

	_, err = l.ExecuteTrade(OrderRequest{Symbol: "RELIANCE", Quantity: 4, Side: models.OrderSideSell, Kind: models.OrderKindMarket})
	require.NoError(t, err)

	pos, ok := l.Position("RELIANCE")
	require.True(t, ok)
	assert.Equal(t, 6, pos.Quantity)
	assert.Equal(t, 1500.0, pos.AvgPrice)
	assert.Equal(t, 9000.0, pos.InvestedValue)
}

func TestSellFullExitRemovesPosition(t *testing.T) {
	l := fundedLedger(t, 200_000)

	_, err := l.ExecuteTrade(OrderRequest{Symbol: "RELIANCE", Quantity: 10, Side: models.OrderSideBuy, Kind: models.OrderKindMarket})
	require.NoError(t, err)

	_, err = l.ExecuteTrade(OrderRequest{Symbol: "RELIANCE", Quantity: 10, Side: models.OrderSideSell, Kind: models.OrderKindMarket})
	require.NoError(t, err)

	_, ok := l.Position("RELIANCE")
	assert.False(t, ok)
	assert.Equal(t, 200_000.0, l.Balance().Virtual)
}

func TestSellWithoutPosition(t *testing.T) {
	l := fundedLedger(t, 200_000)

	_, err := l.ExecuteTrade(OrderRequest{Symbol: "RELIANCE", Quantity: 1, Side: models.OrderSideSell, Kind: models.OrderKindMarket})
	assert.ErrorIs(t, err, ErrNoPosition)
}

func TestSellMoreThanHeld(t *testing.T) {
	l := fundedLedger(t, 200_000)

	_, err := l.ExecuteTrade(OrderRequest{Symbol: "RELIANCE", Quantity: 5, Side: models.OrderSideBuy, Kind: models.OrderKindMarket})
	require.NoError(t, err)

	_, err = l.ExecuteTrade(OrderRequest{Symbol: "RELIANCE", Quantity: 6, Side: models.OrderSideSell, Kind: models.OrderKindMarket})
	assert.ErrorIs(t, err, ErrInsufficientQuantity)

	pos, _ := l.Position("RELIANCE")
	assert.Equal(t, 5, pos.Quantity)
}

func TestOrderHistoryNewestFirst(t *testing.T) {
	l := fundedLedger(t, 200_000)

	_, err := l.ExecuteTrade(OrderRequest{Symbol: "RELIANCE", Quantity: 1, Side: models.OrderSideBuy, Kind: models.OrderKindMarket})
	require.NoError(t, err)
	_, err = l.ExecuteTrade(OrderRequest{Symbol: "TCS", Quantity: 1, Side: models.OrderSideBuy, Kind: models.OrderKindMarket})
	require.NoError(t, err)

	orders := l.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "TCS", orders[0].Symbol)
	assert.Equal(t, "RELIANCE", orders[1].Symbol)
}

func TestBracketOrderRecordsProtectiveLegs(t *testing.T) {
	l := fundedLedger(t, 200_000)

	entry, err := l.ExecuteBracketOrder(OrderRequest{
		Symbol:   "RELIANCE",
		Quantity: 10,
		Side:     models.OrderSideBuy,
		Kind:     models.OrderKindMarket,
	}, 1400, 1600)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusExecuted, entry.Status)

	orders := l.Orders()
	require.Len(t, orders, 3)

	// Newest first: take-profit, stop-loss, then the entry.
	tp, sl := orders[0], orders[1]
	assert.Equal(t, models.OrderKindTakeProfit, tp.Kind)
	assert.Equal(t, models.OrderStatusPending, tp.Status)
	assert.Equal(t, 1600.0, tp.Price)
	assert.Equal(t, models.OrderSideSell, tp.Side)

	assert.Equal(t, models.OrderKindStopLoss, sl.Kind)
	assert.Equal(t, models.OrderStatusPending, sl.Status)
	assert.Equal(t, 1400.0, sl.Price)
	assert.Equal(t, models.OrderSideSell, sl.Side)

	assert.Equal(t, entry.ID, orders[2].ID)
}

func TestBracketOrderFailedEntryRecordsNothing(t *testing.T) {
	l := fundedLedger(t, 100)

	_, err := l.ExecuteBracketOrder(OrderRequest{
		Symbol:   "RELIANCE",
		Quantity: 10,
		Side:     models.OrderSideBuy,
		Kind:     models.OrderKindMarket,
	}, 1400, 1600)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Empty(t, l.Orders())
}

func TestProtectiveLegsStayPending(t *testing.T) {
	l := fundedLedger(t, 200_000)

	_, err := l.ExecuteBracketOrder(OrderRequest{
		Symbol:   "RELIANCE",
		Quantity: 10,
		Side:     models.OrderSideBuy,
		Kind:     models.OrderKindMarket,
	}, 1400, 1600)
	require.NoError(t, err)

	// Evaluation passes never touch bracket protective records.
	l.MarkToMarket()
	l.EvaluateGTTs(time.Now())
	l.EvaluateAlerts(time.Now())

	orders := l.Orders()
	require.Len(t, orders, 3)
	assert.Equal(t, models.OrderStatusPending, orders[0].Status)
	assert.Equal(t, models.OrderStatusPending, orders[1].Status)
}
