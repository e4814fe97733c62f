// Package market provides the price feed and the latest-quote board.
package market

import (
	"sort"
	"sync"
	"time"

	"nfino-trader/internal/models"
)

// Board maintains the latest known quote per symbol.
// Ticks are partial: any field other than symbol and LTP may be absent, in
// which case the previous quote supplies it or it is derived from the
// previous close. Symbols missing from an update keep their last quote.
type Board struct {
	mu     sync.RWMutex
	quotes map[string]models.Quote
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{quotes: make(map[string]models.Quote)}
}

// Seed installs the initial quote set, replacing any existing entries.
func (b *Board) Seed(quotes []models.Quote) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.quotes = make(map[string]models.Quote, len(quotes))
	for _, q := range quotes {
		if q.PrevClose != 0 {
			q.Change = q.LTP - q.PrevClose
			q.ChangePercent = q.Change / q.PrevClose * 100
		}
		b.quotes[q.Symbol] = q
	}
}

// Apply merges a tick into the board. Ticks for symbols the board does not
// track are ignored.
func (b *Board) Apply(tick models.Tick) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.apply(tick)
}

// ApplyAll merges one feed cycle's batch of ticks.
func (b *Board) ApplyAll(ticks []models.Tick) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range ticks {
		b.apply(t)
	}
}

func (b *Board) apply(tick models.Tick) {
	q, ok := b.quotes[tick.Symbol]
	if !ok || tick.LTP == 0 {
		return
	}

	q.LTP = tick.LTP

	if tick.Change != 0 {
		q.Change = tick.Change
	} else if q.PrevClose != 0 {
		q.Change = tick.LTP - q.PrevClose
	}
	if tick.PercentChange != 0 {
		q.ChangePercent = tick.PercentChange
	} else if q.PrevClose != 0 {
		q.ChangePercent = (tick.LTP - q.PrevClose) / q.PrevClose * 100
	}

	if tick.Open != 0 {
		q.Open = tick.Open
	}
	if tick.High != 0 {
		q.High = maxf(q.High, tick.High)
	} else {
		q.High = maxf(q.High, tick.LTP)
	}
	if tick.Low != 0 {
		q.Low = minf(q.Low, tick.Low)
	} else {
		q.Low = minf(q.Low, tick.LTP)
	}
	if tick.Volume != 0 {
		q.Volume = tick.Volume
	}

	q.UpdatedAt = time.Now()
	b.quotes[tick.Symbol] = q
}

// Get returns the latest quote for a symbol.
func (b *Board) Get(symbol string) (models.Quote, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	q, ok := b.quotes[symbol]
	return q, ok
}

// Snapshot returns all quotes sorted by symbol.
func (b *Board) Snapshot() []models.Quote {
	b.mu.RLock()
	defer b.mu.RUnlock()

	quotes := make([]models.Quote, 0, len(b.quotes))
	for _, q := range b.quotes {
		quotes = append(quotes, q)
	}
	sort.Slice(quotes, func(i, j int) bool { return quotes[i].Symbol < quotes[j].Symbol })
	return quotes
}

// Symbols returns all tracked symbols.
func (b *Board) Symbols() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	symbols := make([]string, 0, len(b.quotes))
	for s := range b.quotes {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a == 0 {
		return b
	}
	if a < b {
		return a
	}
	return b
}
