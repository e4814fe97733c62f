package models

import "time"

// GTTTriggerType represents the trigger kind of a GTT order.
type GTTTriggerType string

const (
	// GTTSingle carries one trigger price and one limit price.
	GTTSingle GTTTriggerType = "SINGLE"
	// GTTOCO carries a stop-loss leg and a target leg; whichever fires
	// first retires the other. OCO GTTs are protective SELLs on a holding.
	GTTOCO GTTTriggerType = "OCO"
)

// GTTStatus represents the lifecycle status of a GTT order.
// ACTIVE is the only non-terminal state; a GTT is never re-evaluated once
// it leaves ACTIVE.
type GTTStatus string

const (
	GTTStatusActive    GTTStatus = "ACTIVE"
	GTTStatusTriggered GTTStatus = "TRIGGERED"
	GTTStatusCancelled GTTStatus = "CANCELLED"
	GTTStatusExpired   GTTStatus = "EXPIRED"
)

// GTTValidity is the fixed validity period of a GTT order from creation.
const GTTValidity = 365 * 24 * time.Hour

// GTTOrder represents a Good Till Triggered conditional order.
type GTTOrder struct {
	ID          string
	Symbol      string
	Side        OrderSide
	TriggerType GTTTriggerType
	Quantity    int
	Status      GTTStatus
	CreatedAt   time.Time
	ExpiresAt   time.Time

	// SINGLE trigger
	TriggerPrice float64
	LimitPrice   float64

	// OCO legs
	StopLossTrigger float64
	StopLossLimit   float64
	TargetTrigger   float64
	TargetLimit     float64
}
