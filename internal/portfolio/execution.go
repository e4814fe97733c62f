package portfolio

import (
	"fmt"
	"time"

	"nfino-trader/internal/models"
	"nfino-trader/pkg/utils"
)

// OrderRequest describes an immediate order submission.
type OrderRequest struct {
	Symbol   string
	Quantity int
	Side     models.OrderSide
	Kind     models.OrderKind
	// LimitPrice is honored when Kind is LIMIT; zero means "no limit given"
	// and the order executes at the last traded price.
	LimitPrice float64
}

// ExecuteTrade validates and executes an immediate order against the
// current quote. On success the returned order is EXECUTED with its
// execution price set; on failure no state changes.
func (l *Ledger) ExecuteTrade(req OrderRequest) (models.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.executeLocked(req)
}

// executeLocked is the execution path shared with GTT-triggered synthetic
// orders. Callers must hold the lock.
func (l *Ledger) executeLocked(req OrderRequest) (models.Order, error) {
	if req.Quantity <= 0 {
		return models.Order{}, fmt.Errorf("order quantity: %w", ErrInvalidAmount)
	}

	quote, ok := l.quotes.Get(req.Symbol)
	if !ok {
		return models.Order{}, fmt.Errorf("%w: %s", ErrUnknownSymbol, req.Symbol)
	}

	price := quote.LTP
	if req.Kind == models.OrderKindLimit && req.LimitPrice > 0 {
		price = req.LimitPrice
	}
	tradeValue := float64(req.Quantity) * price

	posIdx := l.findPosition(req.Symbol)

	switch req.Side {
	case models.OrderSideBuy:
		if l.balance.Virtual < tradeValue {
			return models.Order{}, fmt.Errorf("%w: need %s, have %s",
				ErrInsufficientBalance,
				utils.FormatIndianCurrency(tradeValue),
				utils.FormatIndianCurrency(l.balance.Virtual))
		}
	case models.OrderSideSell:
		if posIdx < 0 {
			return models.Order{}, fmt.Errorf("%w: you don't hold %s", ErrNoPosition, req.Symbol)
		}
		if l.positions[posIdx].Quantity < req.Quantity {
			return models.Order{}, fmt.Errorf("%w: holding %d, requested %d",
				ErrInsufficientQuantity, l.positions[posIdx].Quantity, req.Quantity)
		}
	}

	if req.Side == models.OrderSideBuy {
		l.balance.Virtual -= tradeValue
		if posIdx >= 0 {
			pos := &l.positions[posIdx]
			totalQty := pos.Quantity + req.Quantity
			pos.AvgPrice = (pos.AvgPrice*float64(pos.Quantity) + tradeValue) / float64(totalQty)
			pos.Quantity = totalQty
			pos.InvestedValue = float64(pos.Quantity) * pos.AvgPrice
		} else {
			l.positions = append(l.positions, models.Position{
				Symbol:        req.Symbol,
				Quantity:      req.Quantity,
				AvgPrice:      price,
				LTP:           quote.LTP,
				InvestedValue: tradeValue,
				CurrentValue:  tradeValue,
			})
		}
	} else {
		l.balance.Virtual += tradeValue
		pos := &l.positions[posIdx]
		if pos.Quantity == req.Quantity {
			l.positions = append(l.positions[:posIdx], l.positions[posIdx+1:]...)
		} else {
			pos.Quantity -= req.Quantity
			pos.InvestedValue = float64(pos.Quantity) * pos.AvgPrice
		}
	}

	order := l.appendOrder(req.Symbol, req.Quantity, price, req.Kind, req.Side, models.OrderStatusExecuted)
	return order, nil
}

// ExecuteBracketOrder executes the entry order exactly like ExecuteTrade,
// then records two PENDING protective orders on the opposite side at the
// stop-loss and take-profit prices. The protective records are informational
// only; the monitor does not own or execute them.
func (l *Ledger) ExecuteBracketOrder(req OrderRequest, stopLossPrice, takeProfitPrice float64) (models.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, err := l.executeLocked(req)
	if err != nil {
		return models.Order{}, err
	}

	protectiveSide := req.Side.Opposite()
	l.appendOrder(req.Symbol, req.Quantity, stopLossPrice, models.OrderKindStopLoss, protectiveSide, models.OrderStatusPending)
	l.appendOrder(req.Symbol, req.Quantity, takeProfitPrice, models.OrderKindTakeProfit, protectiveSide, models.OrderStatusPending)

	return entry, nil
}

// appendOrder prepends an order record. Callers must hold the lock.
func (l *Ledger) appendOrder(symbol string, qty int, price float64, kind models.OrderKind, side models.OrderSide, status models.OrderStatus) models.Order {
	l.orderSeq++
	order := models.Order{
		ID:       fmt.Sprintf("ord_%d_%d", time.Now().Unix(), l.orderSeq),
		Symbol:   symbol,
		Quantity: qty,
		Price:    price,
		Kind:     kind,
		Side:     side,
		Status:   status,
		PlacedAt: time.Now(),
	}
	l.orders = append([]models.Order{order}, l.orders...)
	return order
}
