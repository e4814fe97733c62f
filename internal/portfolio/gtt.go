package portfolio

import (
	"fmt"
	"time"

	"nfino-trader/internal/models"
)

// GTTEvent records the outcome of one GTT trigger during evaluation.
type GTTEvent struct {
	GTT   models.GTTOrder
	Order models.Order // the synthetic order, when execution succeeded
	Err   error        // execution failure, when the GTT was cancelled
}

// CreateSingleGTT registers a single-trigger GTT order.
func (l *Ledger) CreateSingleGTT(symbol string, side models.OrderSide, quantity int, triggerPrice, limitPrice float64) (models.GTTOrder, error) {
	if quantity <= 0 {
		return models.GTTOrder{}, fmt.Errorf("gtt quantity: %w", ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	gtt := l.newGTT(symbol, side, models.GTTSingle, quantity)
	gtt.TriggerPrice = triggerPrice
	gtt.LimitPrice = limitPrice
	l.gtts = append([]models.GTTOrder{gtt}, l.gtts...)
	return gtt, nil
}

// CreateOCOGTT registers a one-cancels-other GTT: a stop-loss leg and a
// target leg protecting an existing long holding. OCO GTTs are SELL side.
func (l *Ledger) CreateOCOGTT(symbol string, quantity int, stopLossTrigger, stopLossLimit, targetTrigger, targetLimit float64) (models.GTTOrder, error) {
	if quantity <= 0 {
		return models.GTTOrder{}, fmt.Errorf("gtt quantity: %w", ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	gtt := l.newGTT(symbol, models.OrderSideSell, models.GTTOCO, quantity)
	gtt.StopLossTrigger = stopLossTrigger
	gtt.StopLossLimit = stopLossLimit
	gtt.TargetTrigger = targetTrigger
	gtt.TargetLimit = targetLimit
	l.gtts = append([]models.GTTOrder{gtt}, l.gtts...)
	return gtt, nil
}

// newGTT builds an ACTIVE GTT with the fixed validity window. Callers must
// hold the lock.
func (l *Ledger) newGTT(symbol string, side models.OrderSide, triggerType models.GTTTriggerType, quantity int) models.GTTOrder {
	l.gttSeq++
	now := time.Now()
	return models.GTTOrder{
		ID:          fmt.Sprintf("gtt_%d_%d", now.Unix(), l.gttSeq),
		Symbol:      symbol,
		Side:        side,
		TriggerType: triggerType,
		Quantity:    quantity,
		Status:      models.GTTStatusActive,
		CreatedAt:   now,
		ExpiresAt:   now.Add(models.GTTValidity),
	}
}

// DeleteGTT removes a GTT unconditionally, regardless of status.
func (l *Ledger) DeleteGTT(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.gtts {
		if l.gtts[i].ID == id {
			l.gtts = append(l.gtts[:i], l.gtts[i+1:]...)
			return true
		}
	}
	return false
}

// EvaluateGTTs runs one evaluation pass over all ACTIVE GTTs against the
// current quotes. A triggered GTT submits its synthetic order synchronously
// within this pass and moves to TRIGGERED on success or CANCELLED on
// execution failure; either way the status transition itself guarantees the
// GTT is never evaluated again. GTTs past their expiry are marked EXPIRED
// without executing.
func (l *Ledger) EvaluateGTTs(now time.Time) []GTTEvent {
	l.mu.Lock()
	defer l.mu.Unlock()

	var events []GTTEvent
	for i := range l.gtts {
		gtt := &l.gtts[i]
		if gtt.Status != models.GTTStatusActive {
			continue
		}
		if now.After(gtt.ExpiresAt) {
			gtt.Status = models.GTTStatusExpired
			continue
		}

		quote, ok := l.quotes.Get(gtt.Symbol)
		if !ok {
			continue
		}

		triggered, side, price := evalGTTTrigger(gtt, quote.LTP)
		if !triggered {
			continue
		}

		order, err := l.executeLocked(OrderRequest{
			Symbol:     gtt.Symbol,
			Quantity:   gtt.Quantity,
			Side:       side,
			Kind:       models.OrderKindLimit,
			LimitPrice: price,
		})
		if err != nil {
			gtt.Status = models.GTTStatusCancelled
		} else {
			gtt.Status = models.GTTStatusTriggered
		}
		events = append(events, GTTEvent{GTT: *gtt, Order: order, Err: err})
	}
	return events
}

// evalGTTTrigger decides whether a GTT fires at the given last price and
// with which side and execution price.
//
// Both BUY and SELL single triggers fire at or above the trigger price: a
// SELL single GTT is a target-style (sell-at-or-above) trigger, and
// stop-style SELL protection is expressed with the OCO stop-loss leg.
func evalGTTTrigger(gtt *models.GTTOrder, ltp float64) (bool, models.OrderSide, float64) {
	switch gtt.TriggerType {
	case models.GTTSingle:
		if ltp >= gtt.TriggerPrice {
			return true, gtt.Side, gtt.LimitPrice
		}
	case models.GTTOCO:
		// The stop-loss leg wins when both conditions hold in one cycle;
		// the other leg is retired by the terminal status either way.
		if ltp <= gtt.StopLossTrigger {
			return true, models.OrderSideSell, gtt.StopLossLimit
		}
		if ltp >= gtt.TargetTrigger {
			return true, models.OrderSideSell, gtt.TargetLimit
		}
	}
	return false, gtt.Side, 0
}
