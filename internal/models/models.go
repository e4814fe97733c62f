// Package models provides domain models for the paper trading application.
package models

import (
	"time"
)

// OrderSide represents the side of an order.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// Opposite returns the other side.
func (s OrderSide) Opposite() OrderSide {
	if s == OrderSideBuy {
		return OrderSideSell
	}
	return OrderSideBuy
}

// OrderKind represents the kind of an order.
type OrderKind string

const (
	OrderKindMarket     OrderKind = "MARKET"
	OrderKindLimit      OrderKind = "LIMIT"
	OrderKindStopLoss   OrderKind = "STOP_LOSS_MARKET"
	OrderKindTakeProfit OrderKind = "TAKE_PROFIT_MARKET"
)

// OrderStatus represents the lifecycle status of an order.
type OrderStatus string

const (
	OrderStatusExecuted OrderStatus = "EXECUTED"
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusFailed   OrderStatus = "FAILED"
)

// Tick represents one real-time market data update.
// Only Symbol and LTP are guaranteed; every other field may be absent
// (zero) and is reconciled against the previous quote by the board.
type Tick struct {
	Symbol        string  `json:"symbol"`
	LTP           float64 `json:"ltp"`
	Change        float64 `json:"change,omitempty"`
	PercentChange float64 `json:"percentChange,omitempty"`
	Open          float64 `json:"open,omitempty"`
	High          float64 `json:"high,omitempty"`
	Low           float64 `json:"low,omitempty"`
	Volume        int64   `json:"volume,omitempty"`
	Timestamp     int64   `json:"timestamp,omitempty"` // unix millis, feed-supplied
}

// Quote represents the latest known market state for a symbol.
type Quote struct {
	Symbol        string
	Name          string
	Exchange      string
	LTP           float64
	Open          float64
	High          float64
	Low           float64
	PrevClose     float64
	Change        float64
	ChangePercent float64
	Volume        int64
	UpdatedAt     time.Time
}

// Balance represents the three-tier simulated currency balances.
type Balance struct {
	Fiat    float64 // deposit currency (INR)
	Tokens  float64 // reward tokens (NXO)
	Virtual float64 // spendable trading currency
}

// PortfolioSummary holds the aggregated mark-to-market view.
type PortfolioSummary struct {
	TotalInvested     float64
	TotalCurrentValue float64
	TotalPnL          float64
	TodayPnL          float64
	MarginUsed        float64
}
