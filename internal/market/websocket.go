package market

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"nfino-trader/internal/models"
)

// WebSocketFeed consumes tick batches from the broadcast server over a
// WebSocket connection. Messages are JSON, either a single tick object or
// an array of ticks; one message is one cycle.
//
// The feed reconnects on failure with exponential backoff (base delay
// doubling up to the configured cap) and keeps retrying until the context
// is cancelled or Disconnect is called.
type WebSocketFeed struct {
	url         string
	dialTimeout time.Duration
	baseDelay   time.Duration
	maxDelay    time.Duration

	mu      sync.Mutex
	conn    *websocket.Conn
	cancel  context.CancelFunc
	running bool

	onTicks func([]models.Tick)
	onError func(error)
}

// WebSocketFeedConfig holds configuration for the WebSocket feed.
type WebSocketFeedConfig struct {
	URL         string
	DialTimeout time.Duration
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// NewWebSocketFeed creates a WebSocket feed client.
func NewWebSocketFeed(cfg WebSocketFeedConfig) *WebSocketFeed {
	f := &WebSocketFeed{
		url:         cfg.URL,
		dialTimeout: cfg.DialTimeout,
		baseDelay:   cfg.BaseDelay,
		maxDelay:    cfg.MaxDelay,
	}
	if f.dialTimeout == 0 {
		f.dialTimeout = 10 * time.Second
	}
	if f.baseDelay == 0 {
		f.baseDelay = time.Second
	}
	if f.maxDelay == 0 {
		f.maxDelay = 30 * time.Second
	}
	return f
}

// Connect dials the feed and starts the read loop. The first dial is
// synchronous so the caller can fall back to the simulator when the server
// is unreachable; reconnects after that happen in the background.
func (f *WebSocketFeed) Connect(ctx context.Context) error {
	f.mu.Lock()
	if f.running {
		f.mu.Unlock()
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.running = true
	f.mu.Unlock()

	conn, err := f.dial(ctx)
	if err != nil {
		f.mu.Lock()
		f.running = false
		f.cancel = nil
		f.mu.Unlock()
		cancel()
		return fmt.Errorf("connecting to feed %s: %w", f.url, err)
	}

	f.mu.Lock()
	f.conn = conn
	f.mu.Unlock()

	go f.run(ctx)
	return nil
}

func (f *WebSocketFeed) dial(ctx context.Context) (*websocket.Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, f.dialTimeout)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, f.url, nil)
	return conn, err
}

// run reads messages until the connection drops, then reconnects with
// backoff. Exits when the context is cancelled.
func (f *WebSocketFeed) run(ctx context.Context) {
	delay := f.baseDelay

	for {
		f.mu.Lock()
		conn := f.conn
		f.mu.Unlock()

		if conn != nil {
			err := f.readLoop(ctx, conn)
			conn.Close()
			f.mu.Lock()
			f.conn = nil
			f.mu.Unlock()

			if ctx.Err() != nil {
				return
			}
			f.emitError(err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		delay *= 2
		if delay > f.maxDelay {
			delay = f.maxDelay
		}

		conn, err := f.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			f.emitError(fmt.Errorf("feed reconnect: %w", err))
			continue
		}

		delay = f.baseDelay
		f.mu.Lock()
		f.conn = conn
		f.mu.Unlock()
	}
}

func (f *WebSocketFeed) readLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		batch, err := parseTicks(data)
		if err != nil {
			f.emitError(err)
			continue
		}
		if len(batch) == 0 {
			continue
		}

		f.mu.Lock()
		handler := f.onTicks
		f.mu.Unlock()
		if handler != nil {
			handler(batch)
		}
	}
}

// parseTicks decodes a feed message holding either one tick or an array.
func parseTicks(data []byte) ([]models.Tick, error) {
	var batch []models.Tick
	if err := json.Unmarshal(data, &batch); err == nil {
		return batch, nil
	}

	var single models.Tick
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("decoding feed message: %w", err)
	}
	return []models.Tick{single}, nil
}

// Disconnect closes the connection and stops reconnecting.
func (f *WebSocketFeed) Disconnect() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	if f.conn != nil {
		f.conn.Close()
		f.conn = nil
	}
	f.running = false
	return nil
}

// OnTicks registers the tick batch handler.
func (f *WebSocketFeed) OnTicks(handler func([]models.Tick)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onTicks = handler
}

// OnError registers the error handler.
func (f *WebSocketFeed) OnError(handler func(error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onError = handler
}

func (f *WebSocketFeed) emitError(err error) {
	if err == nil {
		return
	}
	f.mu.Lock()
	handler := f.onError
	f.mu.Unlock()
	if handler != nil {
		handler(err)
	}
}

var _ Feed = (*WebSocketFeed)(nil)
