package market

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"nfino-trader/internal/models"
)

// SimulatedFeed generates random-walk ticks for the seed catalog at a fixed
// cadence. It stands in for the broadcast server when no live feed is
// configured or reachable.
type SimulatedFeed struct {
	interval time.Duration
	rng      *rand.Rand

	mu      sync.Mutex
	prices  []simPrice
	onTicks func([]models.Tick)
	onError func(error)
	cancel  context.CancelFunc
	running bool
}

type simPrice struct {
	symbol string
	price  float64
	volume int64
}

// SimulatedFeedConfig holds configuration for the simulated feed.
type SimulatedFeedConfig struct {
	Interval time.Duration
	Seed     int64 // 0 selects a time-based seed
}

// NewSimulatedFeed creates a simulated feed over the seed catalog.
func NewSimulatedFeed(cfg SimulatedFeedConfig) *SimulatedFeed {
	interval := cfg.Interval
	if interval == 0 {
		interval = time.Second
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(seed))
	catalog := Catalog()
	prices := make([]simPrice, 0, len(catalog))
	for _, q := range catalog {
		prices = append(prices, simPrice{symbol: q.Symbol, price: q.LTP, volume: 100000 + rng.Int63n(900000)})
	}

	return &SimulatedFeed{
		interval: interval,
		rng:      rng,
		prices:   prices,
	}
}

// Connect starts the tick loop. It returns immediately; ticks are delivered
// on a background goroutine until the context is done or Disconnect is
// called.
func (f *SimulatedFeed) Connect(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.running {
		return nil
	}
	ctx, f.cancel = context.WithCancel(ctx)
	f.running = true

	go f.loop(ctx)
	return nil
}

func (f *SimulatedFeed) loop(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			batch := f.nextBatch()
			f.mu.Lock()
			handler := f.onTicks
			f.mu.Unlock()
			if handler != nil {
				handler(batch)
			}
		}
	}
}

// nextBatch advances every price by a small random move, matching the
// broadcast server's behavior: move within ±0.05% of the price, high/low
// quoted as a 1% band around the new price.
func (f *SimulatedFeed) nextBatch() []models.Tick {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now().UnixMilli()
	batch := make([]models.Tick, 0, len(f.prices))
	for i := range f.prices {
		p := &f.prices[i]
		move := (f.rng.Float64() - 0.5) * (p.price * 0.001)
		p.price += move
		p.volume += f.rng.Int63n(5000)

		batch = append(batch, models.Tick{
			Symbol:        p.symbol,
			LTP:           round2(p.price),
			Change:        round2(move),
			PercentChange: round2(move / p.price * 100),
			High:          round2(p.price * 1.01),
			Low:           round2(p.price * 0.99),
			Volume:        p.volume,
			Timestamp:     now,
		})
	}
	return batch
}

// Disconnect stops the tick loop.
func (f *SimulatedFeed) Disconnect() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.running = false
	return nil
}

// OnTicks registers the tick batch handler.
func (f *SimulatedFeed) OnTicks(handler func([]models.Tick)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onTicks = handler
}

// OnError registers the error handler. The simulator never errors.
func (f *SimulatedFeed) OnError(handler func(error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onError = handler
}

func round2(v float64) float64 {
	if v < 0 {
		return float64(int64(v*100-0.5)) / 100
	}
	return float64(int64(v*100+0.5)) / 100
}

var _ Feed = (*SimulatedFeed)(nil)
