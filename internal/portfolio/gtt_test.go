package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfino-trader/internal/models"
)

func TestCreateSingleGTT(t *testing.T) {
	l := newTestLedger()

	gtt, err := l.CreateSingleGTT("RELIANCE", models.OrderSideSell, 10, 1550, 1550)
	require.NoError(t, err)

	assert.Equal(t, models.GTTSingle, gtt.TriggerType)
	assert.Equal(t, models.GTTStatusActive, gtt.Status)
	assert.Equal(t, 1550.0, gtt.TriggerPrice)
	assert.WithinDuration(t, time.Now().Add(models.GTTValidity), gtt.ExpiresAt, time.Minute)

	require.Len(t, l.GTTOrders(), 1)
}

func TestCreateGTTRejectsNonPositiveQuantity(t *testing.T) {
	l := newTestLedger()

	_, err := l.CreateSingleGTT("RELIANCE", models.OrderSideBuy, 0, 1550, 1550)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = l.CreateOCOGTT("RELIANCE", -1, 1400, 1400, 1600, 1600)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestOCOGTTIsSellSide(t *testing.T) {
	l := newTestLedger()

	gtt, err := l.CreateOCOGTT("RELIANCE", 10, 1400, 1400, 1600, 1600)
	require.NoError(t, err)
	assert.Equal(t, models.OrderSideSell, gtt.Side)
	assert.Equal(t, models.GTTOCO, gtt.TriggerType)
}

func TestDeleteGTT(t *testing.T) {
	l := newTestLedger()
	gtt, err := l.CreateSingleGTT("RELIANCE", models.OrderSideSell, 10, 1550, 1550)
	require.NoError(t, err)

	assert.True(t, l.DeleteGTT(gtt.ID))
	assert.False(t, l.DeleteGTT(gtt.ID))
	assert.Empty(t, l.GTTOrders())
}

func TestSingleGTTDoesNotFireBelowTrigger(t *testing.T) {
	l := fundedLedger(t, 200_000)
	// RELIANCE LTP is 1500, trigger well above.
	_, err := l.CreateSingleGTT("RELIANCE", models.OrderSideBuy, 10, 1550, 1550)
	require.NoError(t, err)

	events := l.EvaluateGTTs(time.Now())
	assert.Empty(t, events)
	assert.Equal(t, models.GTTStatusActive, l.GTTOrders()[0].Status)
}

func TestSingleGTTFiresAtOrAboveTrigger(t *testing.T) {
	l := fundedLedger(t, 200_000)
	_, err := l.CreateSingleGTT("RELIANCE", models.OrderSideBuy, 10, 1500, 1495)
	require.NoError(t, err)

	events := l.EvaluateGTTs(time.Now())
	require.Len(t, events, 1)
	require.NoError(t, events[0].Err)

	assert.Equal(t, models.GTTStatusTriggered, events[0].GTT.Status)
	assert.Equal(t, models.OrderStatusExecuted, events[0].Order.Status)
	assert.Equal(t, 1495.0, events[0].Order.Price)
	assert.Equal(t, models.OrderKindLimit, events[0].Order.Kind)

	pos, ok := l.Position("RELIANCE")
	require.True(t, ok)
	assert.Equal(t, 10, pos.Quantity)
}

func TestTriggeredGTTNeverFiresAgain(t *testing.T) {
	l := fundedLedger(t, 200_000)
	_, err := l.CreateSingleGTT("RELIANCE", models.OrderSideBuy, 10, 1500, 1500)
	require.NoError(t, err)

	first := l.EvaluateGTTs(time.Now())
	require.Len(t, first, 1)

	// The condition still holds on subsequent cycles; the terminal status
	// retires the trigger.
	for i := 0; i < 5; i++ {
		assert.Empty(t, l.EvaluateGTTs(time.Now()))
	}

	executed := 0
	for _, o := range l.Orders() {
		if o.Status == models.OrderStatusExecuted {
			executed++
		}
	}
	assert.Equal(t, 1, executed)
}

func TestGTTCancelledWhenExecutionFails(t *testing.T) {
	// No virtual balance, so the triggered BUY cannot execute.
	l := fundedLedger(t, 0)
	_, err := l.CreateSingleGTT("RELIANCE", models.OrderSideBuy, 10, 1500, 1500)
	require.NoError(t, err)

	events := l.EvaluateGTTs(time.Now())
	require.Len(t, events, 1)
	assert.ErrorIs(t, events[0].Err, ErrInsufficientBalance)
	assert.Equal(t, models.GTTStatusCancelled, events[0].GTT.Status)

	// Cancelled is terminal too.
	assert.Empty(t, l.EvaluateGTTs(time.Now()))
	assert.Empty(t, l.Orders())
}

func TestOCOStopLossLegSells(t *testing.T) {
	l := fundedLedger(t, 200_000)
	_, err := l.ExecuteTrade(OrderRequest{Symbol: "RELIANCE", Quantity: 10, Side: models.OrderSideBuy, Kind: models.OrderKindMarket})
	require.NoError(t, err)

	// LTP 1500 is below the 1520 stop-loss trigger.
	_, err = l.CreateOCOGTT("RELIANCE", 10, 1520, 1515, 1600, 1600)
	require.NoError(t, err)

	events := l.EvaluateGTTs(time.Now())
	require.Len(t, events, 1)
	require.NoError(t, events[0].Err)
	assert.Equal(t, models.OrderSideSell, events[0].Order.Side)
	assert.Equal(t, 1515.0, events[0].Order.Price)

	_, ok := l.Position("RELIANCE")
	assert.False(t, ok)
}

func TestOCOTargetLegSells(t *testing.T) {
	l := fundedLedger(t, 200_000)
	_, err := l.ExecuteTrade(OrderRequest{Symbol: "RELIANCE", Quantity: 10, Side: models.OrderSideBuy, Kind: models.OrderKindMarket})
	require.NoError(t, err)

	// LTP 1500 reaches the 1490 target, stop-loss at 1400 does not hold.
	_, err = l.CreateOCOGTT("RELIANCE", 10, 1400, 1400, 1490, 1490)
	require.NoError(t, err)

	events := l.EvaluateGTTs(time.Now())
	require.Len(t, events, 1)
	assert.Equal(t, 1490.0, events[0].Order.Price)
	assert.Equal(t, models.GTTStatusTriggered, events[0].GTT.Status)
}

func TestOCOStopLossWinsWhenBothLegsHold(t *testing.T) {
	l := fundedLedger(t, 200_000)
	_, err := l.ExecuteTrade(OrderRequest{Symbol: "RELIANCE", Quantity: 10, Side: models.OrderSideBuy, Kind: models.OrderKindMarket})
	require.NoError(t, err)

	// LTP 1500: at or below stop-loss 1500 and at or above target 1500.
	_, err = l.CreateOCOGTT("RELIANCE", 10, 1500, 1450, 1500, 1550)
	require.NoError(t, err)

	events := l.EvaluateGTTs(time.Now())
	require.Len(t, events, 1)
	assert.Equal(t, 1450.0, events[0].Order.Price)
}

func TestExpiredGTTMarkedWithoutExecuting(t *testing.T) {
	l := fundedLedger(t, 200_000)
	_, err := l.CreateSingleGTT("RELIANCE", models.OrderSideBuy, 10, 1500, 1500)
	require.NoError(t, err)

	// Evaluate from a time past the validity window. The condition holds,
	// but an expired GTT must not execute.
	future := time.Now().Add(models.GTTValidity + time.Hour)
	events := l.EvaluateGTTs(future)

	assert.Empty(t, events)
	assert.Equal(t, models.GTTStatusExpired, l.GTTOrders()[0].Status)
	assert.Empty(t, l.Orders())
}

func TestGTTSkipsMissingQuote(t *testing.T) {
	quotes := quoteMap{}
	l := New(quotes, Config{InitialVirtual: 200_000})

	_, err := l.CreateSingleGTT("RELIANCE", models.OrderSideBuy, 10, 1500, 1500)
	require.NoError(t, err)

	assert.Empty(t, l.EvaluateGTTs(time.Now()))
	assert.Equal(t, models.GTTStatusActive, l.GTTOrders()[0].Status)
}
