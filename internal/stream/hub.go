// Package stream distributes price feed cycles to consumers.
package stream

import (
	"context"
	"sync"
	"time"

	"nfino-trader/internal/market"
	"nfino-trader/internal/models"
)

// HubConfig holds configuration for the cycle hub.
type HubConfig struct {
	// BufferSize is the size of the internal cycle channel buffer.
	BufferSize int
	// SubscriberBufferSize is the size of each subscriber's channel buffer.
	SubscriberBufferSize int
}

// DefaultHubConfig returns the default hub configuration.
func DefaultHubConfig() HubConfig {
	return HubConfig{
		BufferSize:           64,
		SubscriberBufferSize: 16,
	}
}

// Consumer processes one feed cycle at a time.
type Consumer interface {
	// OnCycle is called once per feed update with the full tick batch.
	OnCycle(ticks []models.Tick)
}

// Hub fans feed cycles out to consumers and channel subscribers.
//
// Consumers are invoked sequentially, in registration order, on a single
// dispatch goroutine; a cycle is fully processed before the next one is
// delivered. This serialization is what gives the portfolio engine its
// mark-to-market -> GTT -> alert ordering within each cycle. Channel
// subscribers receive cycles with non-blocking sends so a slow reader
// cannot stall evaluation.
type Hub struct {
	config    HubConfig
	feed      market.Feed
	cycleChan chan []models.Tick
	done      chan struct{}

	mu          sync.RWMutex
	started     bool
	consumers   []Consumer
	subscribers []*Subscriber

	metricsMu       sync.RWMutex
	cyclesReceived  uint64
	cyclesDelivered uint64
	cyclesDropped   uint64
}

// Subscriber represents a channel subscriber with metadata.
type Subscriber struct {
	Channel      chan []models.Tick
	DroppedCount int
	CreatedAt    time.Time
}

// NewHub creates a hub with default configuration.
func NewHub() *Hub {
	return NewHubWithConfig(DefaultHubConfig())
}

// NewHubWithConfig creates a hub with custom configuration.
func NewHubWithConfig(cfg HubConfig) *Hub {
	return &Hub{
		config:    cfg,
		cycleChan: make(chan []models.Tick, cfg.BufferSize),
		done:      make(chan struct{}),
	}
}

// SetFeed sets the feed the hub drains when started.
func (h *Hub) SetFeed(feed market.Feed) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.feed = feed
}

// Start connects the feed, when one is set, and begins the dispatch loop.
// On a connect error the hub stays stopped, so the caller can swap the feed
// with SetFeed and call Start again. Ticks the feed emits before the
// dispatch loop is up buffer in the cycle channel.
func (h *Hub) Start(ctx context.Context) error {
	h.mu.Lock()
	if h.started {
		h.mu.Unlock()
		return nil
	}
	feed := h.feed
	h.mu.Unlock()

	if feed != nil {
		feed.OnTicks(func(ticks []models.Tick) {
			h.Publish(ticks)
		})
		if err := feed.Connect(ctx); err != nil {
			return err
		}
	}

	h.mu.Lock()
	if h.started {
		h.mu.Unlock()
		return nil
	}
	h.started = true
	h.mu.Unlock()

	go h.dispatchLoop(ctx)
	return nil
}

// Stop stops the dispatch loop and closes subscriber channels.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.started {
		return
	}
	close(h.done)
	h.started = false

	for _, sub := range h.subscribers {
		close(sub.Channel)
	}
	h.subscribers = nil

	if h.feed != nil {
		h.feed.Disconnect()
	}
}

// Publish queues one cycle for dispatch. Non-blocking: if the internal
// buffer is full the cycle is dropped and counted.
func (h *Hub) Publish(ticks []models.Tick) {
	select {
	case h.cycleChan <- ticks:
	default:
		h.metricsMu.Lock()
		h.cyclesDropped++
		h.metricsMu.Unlock()
	}
}

func (h *Hub) dispatchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-h.done:
			return
		case ticks := <-h.cycleChan:
			h.metricsMu.Lock()
			h.cyclesReceived++
			h.metricsMu.Unlock()

			h.deliver(ticks)
		}
	}
}

func (h *Hub) deliver(ticks []models.Tick) {
	h.mu.RLock()
	consumers := make([]Consumer, len(h.consumers))
	copy(consumers, h.consumers)
	subs := make([]*Subscriber, len(h.subscribers))
	copy(subs, h.subscribers)
	h.mu.RUnlock()

	for _, c := range consumers {
		c.OnCycle(ticks)
	}

	for _, sub := range subs {
		select {
		case sub.Channel <- ticks:
		default:
			sub.DroppedCount++
			h.metricsMu.Lock()
			h.cyclesDropped++
			h.metricsMu.Unlock()
		}
	}

	h.metricsMu.Lock()
	h.cyclesDelivered++
	h.metricsMu.Unlock()
}

// RegisterConsumer adds a consumer. Registration order is delivery order.
func (h *Hub) RegisterConsumer(c Consumer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.consumers = append(h.consumers, c)
}

// UnregisterConsumer removes a consumer.
func (h *Hub) UnregisterConsumer(c Consumer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, existing := range h.consumers {
		if existing == c {
			h.consumers = append(h.consumers[:i], h.consumers[i+1:]...)
			return
		}
	}
}

// Subscribe returns a channel receiving each dispatched cycle.
func (h *Hub) Subscribe() <-chan []models.Tick {
	sub := &Subscriber{
		Channel:   make(chan []models.Tick, h.config.SubscriberBufferSize),
		CreatedAt: time.Now(),
	}
	h.mu.Lock()
	h.subscribers = append(h.subscribers, sub)
	h.mu.Unlock()
	return sub.Channel
}

// Unsubscribe removes and closes a subscriber channel.
func (h *Hub) Unsubscribe(ch <-chan []models.Tick) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, sub := range h.subscribers {
		if sub.Channel == ch {
			close(sub.Channel)
			h.subscribers = append(h.subscribers[:i], h.subscribers[i+1:]...)
			return
		}
	}
}

// ConsumerFunc adapts a function to the Consumer interface.
type ConsumerFunc func([]models.Tick)

// OnCycle implements Consumer.
func (f ConsumerFunc) OnCycle(ticks []models.Tick) { f(ticks) }

// HubMetrics contains hub performance counters.
type HubMetrics struct {
	CyclesReceived  uint64
	CyclesDelivered uint64
	CyclesDropped   uint64
	Consumers       int
	Subscribers     int
}

// Metrics returns a snapshot of the hub counters.
func (h *Hub) Metrics() HubMetrics {
	h.metricsMu.RLock()
	m := HubMetrics{
		CyclesReceived:  h.cyclesReceived,
		CyclesDelivered: h.cyclesDelivered,
		CyclesDropped:   h.cyclesDropped,
	}
	h.metricsMu.RUnlock()

	h.mu.RLock()
	m.Consumers = len(h.consumers)
	m.Subscribers = len(h.subscribers)
	h.mu.RUnlock()
	return m
}

// IsStarted returns whether the hub is running.
func (h *Hub) IsStarted() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.started
}
