// Package notify delivers user-visible notifications for trigger events.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"nfino-trader/internal/models"
)

// Notifier defines the interface for sending notifications.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
	SendAlert(ctx context.Context, alert models.Alert, value float64) error
	SendGTT(ctx context.Context, gtt models.GTTOrder, order models.Order, execErr error) error
	SendError(ctx context.Context, err error, context string) error
}

// Channel defines the interface for a notification channel.
type Channel interface {
	Name() string
	Send(ctx context.Context, n Notification) error
	IsEnabled() bool
}

// Notification represents a notification message.
type Notification struct {
	Type      Type
	Title     string
	Message   string
	Data      map[string]interface{}
	Timestamp time.Time
}

// Type represents the kind of notification.
type Type string

const (
	TypeAlert Type = "alert"
	TypeGTT   Type = "gtt"
	TypeError Type = "error"
	TypeInfo  Type = "info"
)

// Level filters which notifications are delivered.
type Level string

const (
	LevelAll        Level = "all"
	LevelAlertsOnly Level = "alerts_only"
	LevelErrorsOnly Level = "errors_only"
)

// MultiNotifier fans notifications out to every enabled channel, subject to
// the level filter.
type MultiNotifier struct {
	channels []Channel
	level    Level
	mu       sync.RWMutex
}

// NewMultiNotifier creates a notifier over the given channels.
func NewMultiNotifier(level Level, channels ...Channel) *MultiNotifier {
	if level == "" {
		level = LevelAll
	}
	return &MultiNotifier{channels: channels, level: level}
}

// AddChannel registers an additional channel.
func (m *MultiNotifier) AddChannel(ch Channel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels = append(m.channels, ch)
}

// Send delivers a notification to every enabled channel.
func (m *MultiNotifier) Send(ctx context.Context, n Notification) error {
	if !m.allowed(n.Type) {
		return nil
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}

	m.mu.RLock()
	channels := make([]Channel, len(m.channels))
	copy(channels, m.channels)
	m.mu.RUnlock()

	var firstErr error
	for _, ch := range channels {
		if !ch.IsEnabled() {
			continue
		}
		if err := ch.Send(ctx, n); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("channel %s: %w", ch.Name(), err)
		}
	}
	return firstErr
}

func (m *MultiNotifier) allowed(t Type) bool {
	switch m.level {
	case LevelErrorsOnly:
		return t == TypeError
	case LevelAlertsOnly:
		return t == TypeAlert || t == TypeGTT || t == TypeError
	default:
		return true
	}
}

// SendAlert notifies a triggered price alert.
func (m *MultiNotifier) SendAlert(ctx context.Context, alert models.Alert, value float64) error {
	return m.Send(ctx, Notification{
		Type:    TypeAlert,
		Title:   fmt.Sprintf("Alert triggered for %s", alert.Symbol),
		Message: fmt.Sprintf("%s is now %s %g (current value %.2f)", alert.Field, alert.Operator, alert.Value, value),
		Data: map[string]interface{}{
			"alert_id": alert.ID,
			"symbol":   alert.Symbol,
			"field":    string(alert.Field),
			"operator": string(alert.Operator),
			"value":    alert.Value,
			"current":  value,
		},
	})
}

// SendGTT notifies a triggered GTT, including the execution outcome.
func (m *MultiNotifier) SendGTT(ctx context.Context, gtt models.GTTOrder, order models.Order, execErr error) error {
	n := Notification{
		Type: TypeGTT,
		Data: map[string]interface{}{
			"gtt_id": gtt.ID,
			"symbol": gtt.Symbol,
			"status": string(gtt.Status),
		},
	}
	if execErr != nil {
		n.Title = fmt.Sprintf("GTT cancelled for %s", gtt.Symbol)
		n.Message = fmt.Sprintf("trigger fired but execution failed: %v", execErr)
	} else {
		n.Title = fmt.Sprintf("GTT triggered for %s", gtt.Symbol)
		n.Message = fmt.Sprintf("%s %d @ %.2f executed", order.Side, order.Quantity, order.Price)
		n.Data["order_id"] = order.ID
	}
	return m.Send(ctx, n)
}

// SendError notifies an operational error.
func (m *MultiNotifier) SendError(ctx context.Context, err error, context string) error {
	return m.Send(ctx, Notification{
		Type:    TypeError,
		Title:   "Error",
		Message: fmt.Sprintf("%s: %v", context, err),
	})
}

var _ Notifier = (*MultiNotifier)(nil)

// WebhookChannel POSTs notifications as JSON to a configured URL.
type WebhookChannel struct {
	url     string
	enabled bool
	client  *http.Client
}

// NewWebhookChannel creates a webhook channel.
func NewWebhookChannel(url string, enabled bool) *WebhookChannel {
	return &WebhookChannel{
		url:     url,
		enabled: enabled && url != "",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Name implements Channel.
func (w *WebhookChannel) Name() string { return "webhook" }

// IsEnabled implements Channel.
func (w *WebhookChannel) IsEnabled() bool { return w.enabled }

// Send implements Channel.
func (w *WebhookChannel) Send(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(map[string]interface{}{
		"type":      string(n.Type),
		"title":     n.Title,
		"message":   n.Message,
		"data":      n.Data,
		"timestamp": n.Timestamp.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
