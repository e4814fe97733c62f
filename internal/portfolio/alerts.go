package portfolio

import (
	"fmt"
	"time"

	"nfino-trader/internal/models"
)

// AlertEvent records one alert firing during evaluation.
type AlertEvent struct {
	Alert models.Alert
	Quote models.Quote
	Value float64 // the monitored field's value at trigger time
}

// CreateAlert registers a price alert on a quote field.
func (l *Ledger) CreateAlert(symbol string, field models.AlertField, op models.AlertOperator, value float64, kind models.AlertKind) (models.Alert, error) {
	if !validAlertField(field) {
		return models.Alert{}, fmt.Errorf("unknown alert field %q", field)
	}
	if !validAlertOperator(op) {
		return models.Alert{}, fmt.Errorf("unknown alert operator %q", op)
	}
	if kind == "" {
		kind = models.AlertKindOnly
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.alertSeq++
	now := time.Now()
	alert := models.Alert{
		ID:        fmt.Sprintf("alert_%d_%d", now.Unix(), l.alertSeq),
		Symbol:    symbol,
		Field:     field,
		Operator:  op,
		Value:     value,
		Kind:      kind,
		Status:    models.AlertStatusActive,
		CreatedAt: now,
		ExpiresAt: now.Add(models.AlertValidity),
	}
	l.alerts = append([]models.Alert{alert}, l.alerts...)
	return alert, nil
}

// DeleteAlert removes an alert unconditionally, regardless of status.
func (l *Ledger) DeleteAlert(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.alerts {
		if l.alerts[i].ID == id {
			l.alerts = append(l.alerts[:i], l.alerts[i+1:]...)
			return true
		}
	}
	return false
}

// EvaluateAlerts runs one evaluation pass over all ACTIVE alerts. A matched
// alert moves to TRIGGERED (one-way, fires at most once) and is returned so
// the caller can notify. Alerts past expiry are marked EXPIRED. ATO alerts
// notify like any other; order execution on trigger is a reserved
// extension and is not performed.
func (l *Ledger) EvaluateAlerts(now time.Time) []AlertEvent {
	l.mu.Lock()
	defer l.mu.Unlock()

	var events []AlertEvent
	for i := range l.alerts {
		alert := &l.alerts[i]
		if alert.Status != models.AlertStatusActive {
			continue
		}
		if now.After(alert.ExpiresAt) {
			alert.Status = models.AlertStatusExpired
			continue
		}

		quote, ok := l.quotes.Get(alert.Symbol)
		if !ok {
			continue
		}

		value, ok := alertFieldValue(quote, alert.Field)
		if !ok {
			continue
		}
		if !alertCompare(alert.Operator, value, alert.Value) {
			continue
		}

		alert.Status = models.AlertStatusTriggered
		events = append(events, AlertEvent{Alert: *alert, Quote: quote, Value: value})
	}
	return events
}

// alertFieldValue is the typed accessor for the closed monitorable field set.
func alertFieldValue(q models.Quote, field models.AlertField) (float64, bool) {
	switch field {
	case models.AlertFieldLTP:
		return q.LTP, true
	case models.AlertFieldOpen:
		return q.Open, true
	case models.AlertFieldHigh:
		return q.High, true
	case models.AlertFieldLow:
		return q.Low, true
	case models.AlertFieldPrevClose:
		return q.PrevClose, true
	case models.AlertFieldChange:
		return q.Change, true
	case models.AlertFieldChangePercent:
		return q.ChangePercent, true
	case models.AlertFieldVolume:
		return float64(q.Volume), true
	default:
		return 0, false
	}
}

func alertCompare(op models.AlertOperator, value, threshold float64) bool {
	switch op {
	case models.AlertOpGTE:
		return value >= threshold
	case models.AlertOpGT:
		return value > threshold
	case models.AlertOpLTE:
		return value <= threshold
	case models.AlertOpLT:
		return value < threshold
	case models.AlertOpEQ:
		return value == threshold
	default:
		return false
	}
}

func validAlertField(f models.AlertField) bool {
	switch f {
	case models.AlertFieldLTP, models.AlertFieldOpen, models.AlertFieldHigh,
		models.AlertFieldLow, models.AlertFieldPrevClose, models.AlertFieldChange,
		models.AlertFieldChangePercent, models.AlertFieldVolume:
		return true
	}
	return false
}

func validAlertOperator(op models.AlertOperator) bool {
	switch op {
	case models.AlertOpGTE, models.AlertOpGT, models.AlertOpLTE, models.AlertOpLT, models.AlertOpEQ:
		return true
	}
	return false
}
