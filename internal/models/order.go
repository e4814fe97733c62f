package models

import "time"

// Order represents a simulated trading order.
// Orders are immutable after creation except for the status transition.
type Order struct {
	ID       string
	Symbol   string
	Quantity int
	Price    float64 // execution price once EXECUTED, protective price while PENDING
	Kind     OrderKind
	Side     OrderSide
	Status   OrderStatus
	PlacedAt time.Time
}

// Position represents an open long position.
// Quantity is always > 0 while the position exists; full exits remove the
// entry entirely and short selling is not permitted.
type Position struct {
	Symbol        string
	Quantity      int
	AvgPrice      float64
	LTP           float64
	PnL           float64
	InvestedValue float64
	CurrentValue  float64
}
