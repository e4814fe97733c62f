package models

import "time"

// AlertField is the closed set of quote fields an alert may monitor.
type AlertField string

const (
	AlertFieldLTP           AlertField = "ltp"
	AlertFieldOpen          AlertField = "open"
	AlertFieldHigh          AlertField = "high"
	AlertFieldLow           AlertField = "low"
	AlertFieldPrevClose     AlertField = "prev_close"
	AlertFieldChange        AlertField = "change"
	AlertFieldChangePercent AlertField = "change_percent"
	AlertFieldVolume        AlertField = "volume"
)

// AlertOperator is the comparison applied between the monitored field and
// the threshold value.
type AlertOperator string

const (
	AlertOpGTE AlertOperator = ">="
	AlertOpGT  AlertOperator = ">"
	AlertOpLTE AlertOperator = "<="
	AlertOpLT  AlertOperator = "<"
	// AlertOpEQ is exact float equality; it only fires when the feed
	// delivers the threshold value bit-for-bit.
	AlertOpEQ AlertOperator = "=="
)

// AlertKind distinguishes notification-only alerts from the reserved
// alert-triggers-order kind, which is an extension point and never
// submits orders.
type AlertKind string

const (
	AlertKindOnly AlertKind = "ALERT_ONLY"
	AlertKindATO  AlertKind = "ATO"
)

// AlertStatus represents the lifecycle status of an alert.
// The ACTIVE -> TRIGGERED transition is one-way; an alert fires at most once.
type AlertStatus string

const (
	AlertStatusActive    AlertStatus = "ACTIVE"
	AlertStatusTriggered AlertStatus = "TRIGGERED"
	AlertStatusCancelled AlertStatus = "CANCELLED"
	AlertStatusExpired   AlertStatus = "EXPIRED"
)

// AlertValidity is the fixed validity period of an alert from creation.
const AlertValidity = 365 * 24 * time.Hour

// Alert represents a price alert on a quote field.
type Alert struct {
	ID        string
	Symbol    string
	Field     AlertField
	Operator  AlertOperator
	Value     float64
	Kind      AlertKind
	Status    AlertStatus
	CreatedAt time.Time
	ExpiresAt time.Time
}
